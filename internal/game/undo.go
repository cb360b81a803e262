package game

// UndoStack holds deep copies of BattleState taken before each mutating
// action. It is unbounded.
type UndoStack struct {
	snapshots []*BattleState
}

// Push stores a deep copy of s.
func (u *UndoStack) Push(s *BattleState) {
	u.snapshots = append(u.snapshots, s.Clone())
}

// Pop removes and returns the most recent snapshot.
func (u *UndoStack) Pop() (*BattleState, bool) {
	n := len(u.snapshots)
	if n == 0 {
		return nil, false
	}
	s := u.snapshots[n-1]
	u.snapshots[n-1] = nil
	u.snapshots = u.snapshots[:n-1]
	return s, true
}

// Len returns the number of stored snapshots.
func (u *UndoStack) Len() int {
	return len(u.snapshots)
}

