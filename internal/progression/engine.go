// Package progression implements the leveling engine: experience and
// attribute gains from a day's workout, level-up resolution, and the
// completion tracker that ties them to the persisted records.
package progression

import (
	"math"

	"github.com/meltforce/arise/internal/models"
)

const (
	baseXP           = 50
	completionXPMax  = 50
	fullCompletionXP = 25
	willpowerAccrual = 0.05 // universal per-exercise willpower gain
	thresholdGrowth  = 1.5
)

// attributeWeights maps exercise names to per-attribute gain weights at full
// completion. This is a closed policy table: a new exercise type needs an
// explicit entry here, otherwise it earns only the universal willpower
// accrual.
var attributeWeights = map[string]models.AttributeGains{
	models.ExercisePushUps: {Strength: 0.2},
	models.ExerciseSquats:  {Strength: 0.1, Agility: 0.1},
	models.ExerciseRunning: {Endurance: 0.2},
	models.ExerciseSitUps:  {Strength: 0.05, Endurance: 0.15},
}

// ExperienceGain computes the XP earned for a workout: a flat base, a share
// proportional to the average per-exercise completion percentage (each
// capped at 100%), and a bonus when the workout is marked fully completed.
func ExperienceGain(w *models.DailyWorkout) int {
	if len(w.Exercises) == 0 {
		return baseXP
	}

	var total float64
	for i := range w.Exercises {
		e := &w.Exercises[i]
		pct := e.Completed / e.Target * 100
		if pct > 100 {
			pct = 100
		}
		total += pct
	}
	avgCompletion := total / float64(len(w.Exercises))
	completionXP := int(math.Round(avgCompletion / 100 * completionXPMax))

	xp := baseXP + completionXP
	if w.Completed {
		xp += fullCompletionXP
	}
	return xp
}

// AttributeGains computes the attribute deltas for a workout. Each exercise
// contributes its weight table entry scaled by completion ratio (capped at
// 1), plus the universal willpower accrual. Every delta is rounded to one
// decimal place.
func AttributeGains(w *models.DailyWorkout) models.AttributeGains {
	var g models.AttributeGains
	for i := range w.Exercises {
		e := &w.Exercises[i]
		ratio := e.Completed / e.Target
		if ratio > 1 {
			ratio = 1
		}

		weights := attributeWeights[e.Name]
		g.Strength += ratio * weights.Strength
		g.Endurance += ratio * weights.Endurance
		g.Agility += ratio * weights.Agility
		g.Willpower += ratio * willpowerAccrual
	}

	g.Strength = round1(g.Strength)
	g.Endurance = round1(g.Endurance)
	g.Agility = round1(g.Agility)
	g.Willpower = round1(g.Willpower)
	return g
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// LevelUpResult is the outcome of resolving accumulated experience against
// level thresholds.
type LevelUpResult struct {
	LeveledUp             bool `json:"leveledUp"`
	Level                 int  `json:"newLevel"`
	Experience            int  `json:"newExperience"`
	ExperienceToNextLevel int  `json:"newExperienceToNextLevel"`
}

// ResolveLevelUp consumes experience against the level threshold until the
// remainder is below it, growing the threshold by half each level. Overflow
// experience carries over, so after resolution experience is always below
// the threshold. Does not mutate its input.
func ResolveLevelUp(p *models.UserProgress) LevelUpResult {
	r := LevelUpResult{
		Level:                 p.Level,
		Experience:            p.Experience,
		ExperienceToNextLevel: p.ExperienceToNextLevel,
	}

	for r.Experience >= r.ExperienceToNextLevel {
		r.Experience -= r.ExperienceToNextLevel
		r.Level++
		r.ExperienceToNextLevel = int(math.Round(float64(r.ExperienceToNextLevel) * thresholdGrowth))
		r.LeveledUp = true
	}
	return r
}
