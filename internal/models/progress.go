package models

// UserAttributes are the four trained stats. Each starts at 1 and only ever
// grows, by fractional amounts, when a workout is completed.
type UserAttributes struct {
	Strength  float64 `json:"strength"`
	Endurance float64 `json:"endurance"`
	Agility   float64 `json:"agility"`
	Willpower float64 `json:"willpower"`
}

// AttributeGains are the per-completion attribute deltas, reported back to
// the caller for display and added elementwise to UserAttributes.
type AttributeGains struct {
	Strength  float64 `json:"strength"`
	Endurance float64 `json:"endurance"`
	Agility   float64 `json:"agility"`
	Willpower float64 `json:"willpower"`
}

// Add applies the gains to the attributes.
func (a *UserAttributes) Add(g AttributeGains) {
	a.Strength += g.Strength
	a.Endurance += g.Endurance
	a.Agility += g.Agility
	a.Willpower += g.Willpower
}

// UserProgress is the single long-lived progression record. The JSON layout
// is the storage format and must round-trip losslessly.
type UserProgress struct {
	StreakDays             int            `json:"streakDays"`
	TotalWorkoutsCompleted int            `json:"totalWorkoutsCompleted"`
	LastCompletedDate      *string        `json:"lastCompletedDate"`
	Level                  int            `json:"level"`
	Experience             int            `json:"experience"`
	ExperienceToNextLevel  int            `json:"experienceToNextLevel"`
	MonthlyWorkouts        map[string]int `json:"monthlyWorkouts"`
	Attributes             UserAttributes `json:"attributes"`
}

// NewUserProgress returns the initial progression record: level 1, no
// experience, 100 XP to the next level, all attributes at 1.
func NewUserProgress() *UserProgress {
	return &UserProgress{
		Level:                 1,
		ExperienceToNextLevel: 100,
		MonthlyWorkouts:       map[string]int{},
		Attributes: UserAttributes{
			Strength:  1,
			Endurance: 1,
			Agility:   1,
			Willpower: 1,
		},
	}
}

// FillDefaults backfills fields that may be absent in records persisted by
// older schema versions, using the initial-record values. Present fields are
// left alone.
func (p *UserProgress) FillDefaults() {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.ExperienceToNextLevel <= 0 {
		p.ExperienceToNextLevel = 100
	}
	if p.MonthlyWorkouts == nil {
		p.MonthlyWorkouts = map[string]int{}
	}
	if p.Attributes == (UserAttributes{}) {
		p.Attributes = UserAttributes{Strength: 1, Endurance: 1, Agility: 1, Willpower: 1}
	}
}

// LevelUpNotification signals a pending one-time level-up celebration.
// It is created unshown when a level-up fires and marked shown the first
// time a client acknowledges it.
type LevelUpNotification struct {
	Shown bool `json:"shown"`
	Level int  `json:"level"`
}
