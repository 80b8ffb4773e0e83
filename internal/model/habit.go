package model

// MaxActiveHabits caps concurrently active habits per user.
const MaxActiveHabits = 5

// DefaultHabitTargetDays is the classic 21-day habit window.
const DefaultHabitTargetDays = 21

// HabitTracker is a daily check-in log. Completions holds ISO calendar
// dates, one per day at most.
type HabitTracker struct {
	BaseModel
	UserID        uint     `gorm:"not null;index" json:"userId"`
	HabitName     string   `gorm:"size:200;not null" json:"habitName"`
	HabitEmoji    string   `gorm:"size:50" json:"habitEmoji"`
	TargetDays    int      `gorm:"default:21" json:"targetDays"`
	StreakCurrent int      `gorm:"default:0" json:"streakCurrent"`
	StreakBest    int      `gorm:"default:0" json:"streakBest"`
	Completions   []string `gorm:"serializer:json;type:text" json:"completions"`
	IsActive      bool     `gorm:"default:true" json:"isActive"`
}

func (HabitTracker) TableName() string {
	return "habit_trackers"
}

type HabitPreset struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

var HabitPresets = []HabitPreset{
	{Name: "Track every expense", Emoji: "FileText"},
	{Name: "No impulse purchases", Emoji: "StopCircle"},
	{Name: "Review budget daily", Emoji: "BarChart2"},
	{Name: "Save spare change", Emoji: "PiggyBank"},
	{Name: "Read financial news", Emoji: "Newspaper"},
	{Name: "Pack lunch instead of buying", Emoji: "Utensils"},
}
