package model

import "time"

// UserProgress marks completion of one lesson by one user. At most one row
// per (user, lesson); repeat completions are absorbed, never double-counted.
type UserProgress struct {
	BaseModel
	UserID      uint       `gorm:"not null;index:idx_user_lesson,unique" json:"userId"`
	LessonID    uint       `gorm:"not null;index:idx_user_lesson,unique" json:"lessonId"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	XPEarned    int        `gorm:"default:0" json:"xpEarned"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// UserStats is the per-user progression ledger: XP total, earned title,
// and the daily activity streak. One row per user.
type UserStats struct {
	BaseModel
	UserID         uint       `gorm:"uniqueIndex;not null" json:"userId"`
	TotalXP        int        `gorm:"default:0" json:"totalXp"`
	CurrentTitle   string     `gorm:"size:50;default:'Beginner'" json:"currentTitle"`
	StreakDays     int        `gorm:"default:0" json:"streakDays"`
	LastActivityAt *time.Time `json:"lastActivityAt"`
}

func (UserStats) TableName() string {
	return "user_stats"
}

type TitleThreshold struct {
	XP    int
	Title string
}

// TitleThresholds is ordered ascending; the earned title is the highest
// threshold not exceeding total XP.
var TitleThresholds = []TitleThreshold{
	{0, "Beginner"},
	{200, "Confident"},
	{500, "Strategist"},
	{900, "Investor"},
	{1400, "Master"},
}

func TitleForXP(xp int) string {
	title := TitleThresholds[0].Title
	for _, t := range TitleThresholds {
		if xp >= t.XP {
			title = t.Title
		}
	}
	return title
}

// NextTitle returns the first threshold above xp, or nil at max title.
func NextTitle(xp int) *TitleThreshold {
	for _, t := range TitleThresholds {
		if xp < t.XP {
			threshold := t
			return &threshold
		}
	}
	return nil
}

var xpPerLevel = map[int]int{
	1: 20,
	2: 30,
	3: 40,
	4: 45,
	5: 50,
}

func XPForLevel(level int) int {
	if xp, ok := xpPerLevel[level]; ok {
		return xp
	}
	return 20
}
