package model

// Lesson is one entry in the fixed course catalog (5 levels x 3 modules).
type Lesson struct {
	BaseModel
	Level        int    `gorm:"not null;index" json:"level"`
	Module       int    `gorm:"not null" json:"module"`
	LessonNumber int    `gorm:"not null" json:"lessonNumber"`
	Title        string `gorm:"size:255;not null" json:"title"`
	TopicKey     string `gorm:"size:100;uniqueIndex;not null" json:"topicKey"`
}

func (Lesson) TableName() string {
	return "lessons"
}

type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation,omitempty"`
}

// LessonContent holds generated lesson material. Flashcards and quiz are
// typed columns, validated on read rather than stored as opaque blobs.
type LessonContent struct {
	BaseModel
	LessonID   uint           `gorm:"uniqueIndex;not null" json:"lessonId"`
	LessonText string         `gorm:"type:longtext" json:"lessonText"`
	Flashcards []Flashcard    `gorm:"serializer:json;type:text" json:"flashcards"`
	Quiz       []QuizQuestion `gorm:"serializer:json;type:text" json:"quiz"`
}

func (LessonContent) TableName() string {
	return "lesson_contents"
}

var LevelTitles = map[int]string{
	1: "Beginner",
	2: "Intermediate",
	3: "Advanced",
	4: "Expert",
	5: "Master",
}

var ModuleTitles = map[int]map[int]string{
	1: {1: "Money & Basic Rules", 2: "Budgeting & Expense Control", 3: "Banks & Financial Security"},
	2: {1: "Debts & Credits", 2: "Savings & Financial Goals", 3: "Risks & Insurance"},
	3: {1: "Investments — Basics", 2: "Taxes & Legal Aspects", 3: "Financial Psychology & Habits"},
	4: {1: "Income, Career & Business Logic", 2: "Automated Financial Systems", 3: "Real Estate & Major Decisions"},
	5: {1: "Portfolio & Long-term Strategy", 2: "Financial Freedom & Life Plan", 3: "High-Level Financial Mindset"},
}
