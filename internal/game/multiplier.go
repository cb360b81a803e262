package game

import (
	"fmt"
	"math"
)

// compound multiplies a standing multiplier by a power-up factor, rounded to
// two decimals.
func compound(current, factor float64) float64 {
	return math.Round(current*factor*100) / 100
}

// scale applies a multiplier to a base stat and rounds to the nearest point.
func scale(base int, multiplier float64) int {
	return int(math.Round(float64(base) * multiplier))
}

// boostLabel is the active-effects entry for a power-up, e.g.
// "Caffeinated Surge (+20% dmg)".
func boostLabel(name string, b Boost) string {
	pct := int(math.Round((b.Factor - 1) * 100))
	if b.Stat == BoostHealth {
		return fmt.Sprintf("%s (+%d%% HP)", name, pct)
	}
	return fmt.Sprintf("%s (+%d%% dmg)", name, pct)
}

// ApplyBoost compounds b into the matching multiplier and records the buff.
// A health boost refits the active plumber: MaxHP is recomputed from BaseHP
// and current HP grows by the same delta. It returns the plumber's old and
// new MaxHP (both zero when no plumber is deployed).
func (s *BattleState) ApplyBoost(name string, b Boost) (oldMax, newMax int) {
	s.ActiveEffects = append(s.ActiveEffects, boostLabel(name, b))

	if b.Stat == BoostDamage {
		s.DamageMultiplier = compound(s.DamageMultiplier, b.Factor)
		return 0, 0
	}

	s.HealthMultiplier = compound(s.HealthMultiplier, b.Factor)
	p := s.ActivePlumber
	if p == nil {
		return 0, 0
	}
	oldMax = p.MaxHP
	p.MaxHP = scale(p.BaseHP, s.HealthMultiplier)
	p.HP = clamp(p.HP+(p.MaxHP-oldMax), 0, p.MaxHP)
	return oldMax, p.MaxHP
}

// PlumberDamage is the active plumber's end-of-turn fix, or 0 with no plumber.
func (s *BattleState) PlumberDamage() int {
	if s.ActivePlumber == nil {
		return 0
	}
	return scale(s.ActivePlumber.BaseDamage, s.DamageMultiplier)
}

// CounterAttack is the pressure surge dealt when the clock will read
// turnsLeft after this turn.
func CounterAttack(turnsLeft int) int {
	return max(CounterFloor, CounterBase+max(0, CounterRampFrom-turnsLeft)*CounterRamp)
}

// Reward is the coin payout for fixing an emergency with turnsLeft on the clock.
func Reward(turnsLeft int) int {
	return BaseReward + max(0, turnsLeft)*RewardPerTurn
}
