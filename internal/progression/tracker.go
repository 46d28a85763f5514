package progression

import (
	"context"
	"log/slog"

	"github.com/meltforce/arise/internal/models"
	"github.com/meltforce/arise/internal/storage"
)

// Tracker applies workout completions to the persisted progression records.
type Tracker struct {
	records *storage.Records
	log     *slog.Logger
}

// NewTracker creates a Tracker over the given records.
func NewTracker(records *storage.Records, log *slog.Logger) *Tracker {
	return &Tracker{records: records, log: log}
}

// CompletionResult summarizes a credited workout completion for display.
type CompletionResult struct {
	Progress         *models.UserProgress  `json:"progress"`
	LeveledUp        bool                  `json:"leveledUp"`
	NewLevel         int                   `json:"newLevel"`
	ExperienceGained int                   `json:"experienceGained"`
	AttributeGains   models.AttributeGains `json:"attributeGains"`
}

// CompleteWorkout credits the workout against the progress record if every
// exercise has reached its target and the workout has not been credited
// already. Returns nil when nothing happened, so a day's completion is
// applied at most once.
//
// On trigger it marks the workout completed, advances or resets the streak,
// bumps the total and monthly counters, applies experience and attribute
// gains, resolves any level-up (persisting an unshown notification), and
// persists both records.
func (t *Tracker) CompleteWorkout(ctx context.Context, w *models.DailyWorkout, p *models.UserProgress) *CompletionResult {
	if w.Completed || !w.AllTargetsMet() {
		return nil
	}

	w.Completed = true

	today := t.records.Today()
	month := t.records.CurrentMonth()

	// A streak continues when this is the first ever completion or the
	// previous one was exactly yesterday.
	isNewStreak := p.LastCompletedDate == nil ||
		models.IsConsecutiveDay(*p.LastCompletedDate, today)
	if isNewStreak {
		p.StreakDays++
	} else {
		p.StreakDays = 1
	}

	p.TotalWorkoutsCompleted++
	p.LastCompletedDate = &today
	if p.MonthlyWorkouts == nil {
		p.MonthlyWorkouts = map[string]int{}
	}
	p.MonthlyWorkouts[month]++

	xp := ExperienceGain(w)
	p.Experience += xp

	gains := AttributeGains(w)
	p.Attributes.Add(gains)

	result := &CompletionResult{
		Progress:         p,
		ExperienceGained: xp,
		AttributeGains:   gains,
		NewLevel:         p.Level,
	}

	if lvl := ResolveLevelUp(p); lvl.LeveledUp {
		p.Level = lvl.Level
		p.Experience = lvl.Experience
		p.ExperienceToNextLevel = lvl.ExperienceToNextLevel
		result.LeveledUp = true
		result.NewLevel = lvl.Level
		t.records.SaveLevelUpNotification(ctx, &models.LevelUpNotification{Level: lvl.Level})
		t.log.Info("level up", "level", lvl.Level, "experience", lvl.Experience)
	}

	t.records.SaveDailyWorkout(ctx, w)
	t.records.SaveUserProgress(ctx, p)

	t.log.Info("workout completed",
		"date", today,
		"streak", p.StreakDays,
		"total", p.TotalWorkoutsCompleted,
		"xp", xp,
	)
	return result
}
