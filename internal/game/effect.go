package game

import "github.com/peterkuimelis/plumbers/internal/log"

// CanPlay reports whether card may be played against s right now, and the
// reason shown to the player when it may not.
func CanPlay(s *BattleState, card *Card) (bool, string) {
	if card.Type == CardTypeSandwich && s.ActivePlumber == nil {
		return false, "No plumber to heal. Play a plumber first."
	}
	return true, ""
}

// resolveEffect applies card to s and returns the single log event that
// describes it. The card must already be out of the hand; every variant ends
// with the card on the discard pile.
func resolveEffect(s *BattleState, card *Card) log.GameEvent {
	phase := s.Phase.String()
	var ev log.GameEvent

	switch card.Type {
	case CardTypePlumber:
		// The previous plumber's card reached the discard pile when it was
		// played; replacing it only clears the slot.
		replaced := ""
		if prev := s.ActivePlumber; prev != nil {
			replaced = prev.Name
		}
		maxHP := scale(card.HP, s.HealthMultiplier)
		s.ActivePlumber = &ActivePlumber{
			CardID:     card.ID,
			Name:       card.Name,
			BaseHP:     card.HP,
			BaseDamage: card.Damage,
			MaxHP:      maxHP,
			HP:         maxHP,
		}
		ev = log.NewDeployEvent(s.Turn, phase, card.ID, card.Name, maxHP, replaced)

	case CardTypeTool:
		dmg := scale(card.Damage, s.DamageMultiplier)
		s.hitEmergency(dmg)
		ev = log.NewToolEvent(s.Turn, phase, card.ID, card.Name, dmg)

	case CardTypePowerUp:
		_, newMax := s.ApplyBoost(card.Name, card.Boost)
		if card.Boost.Stat == BoostDamage {
			ev = log.NewPowerUpEvent(s.Turn, phase, card.ID, card.Name, s.DamageMultiplier)
		} else {
			plumber := ""
			if s.ActivePlumber != nil {
				plumber = s.ActivePlumber.Name
			}
			ev = log.NewFortifyEvent(s.Turn, phase, card.ID, card.Name, plumber, newMax)
		}

	case CardTypeSandwich:
		p := s.ActivePlumber
		healed := clamp(p.HP+card.Health, 0, p.MaxHP)
		amount := healed - p.HP
		p.HP = healed
		ev = log.NewHealEvent(s.Turn, phase, card.ID, card.Name, amount, p.Name)

	case CardTypeExcuse:
		s.Emergency.TurnsLeft += card.TimeGain
		ev = log.NewExcuseEvent(s.Turn, phase, card.ID, card.Name, card.TimeGain)
	}

	s.Discard(card.ID)
	return ev
}

// hitEmergency deals damage to the emergency, clamped to [0, MaxHP], and
// pins the clock reading the first time HP reaches zero.
func (s *BattleState) hitEmergency(damage int) {
	e := &s.Emergency
	e.HP = clamp(e.HP-damage, 0, e.MaxHP)
	if e.Fixed() && s.FixedWithTurns < 0 {
		s.FixedWithTurns = e.TurnsLeft
	}
}
