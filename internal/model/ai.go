package model

// ChatMessage is one turn of the coach conversation, scoped per lesson.
type ChatMessage struct {
	BaseModel
	UserID        uint   `gorm:"not null;index:idx_chat_user_lesson" json:"userId"`
	LessonID      uint   `gorm:"not null;index:idx_chat_user_lesson" json:"lessonId"`
	Role          string `gorm:"size:20;not null" json:"role"` // user | assistant
	Content       string `gorm:"type:text;not null" json:"content"`
	PromptVersion string `gorm:"size:50" json:"-"`
	LatencyMS     int    `gorm:"default:0" json:"-"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

// RegeneratedContent caches customized lesson regenerations, keyed by a
// deterministic hash of the regeneration parameters.
type RegeneratedContent struct {
	BaseModel
	LessonID      uint           `gorm:"not null;index:idx_regen_lookup" json:"lessonId"`
	UserLevel     int            `gorm:"not null;index:idx_regen_lookup" json:"userLevel"`
	ParamsHash    string         `gorm:"size:32;not null;index:idx_regen_lookup" json:"-"`
	LessonText    string         `gorm:"type:longtext" json:"lessonText"`
	Flashcards    []Flashcard    `gorm:"serializer:json;type:text" json:"flashcards"`
	Quiz          []QuizQuestion `gorm:"serializer:json;type:text" json:"quiz"`
	PromptVersion string         `gorm:"size:50" json:"-"`
}

func (RegeneratedContent) TableName() string {
	return "regenerated_contents"
}

type MiniTestQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// DictionaryEntry caches term lookups per (term, user level).
type DictionaryEntry struct {
	BaseModel
	Term          string             `gorm:"size:200;not null;index:idx_dict_term_level" json:"term"`
	UserLevel     int                `gorm:"not null;index:idx_dict_term_level" json:"userLevel"`
	LessonID      *uint              `json:"lessonId"`
	Definition    string             `gorm:"type:text" json:"definition"`
	Example       string             `gorm:"type:text" json:"example"`
	MiniTest      []MiniTestQuestion `gorm:"serializer:json;type:text" json:"miniTest"`
	PromptVersion string             `gorm:"size:50" json:"-"`
}

func (DictionaryEntry) TableName() string {
	return "dictionary_entries"
}
