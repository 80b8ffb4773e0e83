package repository

import (
	"finverse_backend/internal/model"

	"gorm.io/gorm"
)

// AIRepository persists gateway artifacts: chat history and the durable
// caches for regenerated lessons and dictionary lookups.
type AIRepository struct {
	DB *gorm.DB
}

func NewAIRepository(db *gorm.DB) *AIRepository {
	return &AIRepository{DB: db}
}

func (r *AIRepository) CreateChatMessage(msg *model.ChatMessage) error {
	return r.DB.Create(msg).Error
}

// RecentChatMessages returns the newest messages oldest-first, for prompt
// context.
func (r *AIRepository) RecentChatMessages(userID, lessonID uint, limit int) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// AllChatMessages returns the whole thread oldest-first.
func (r *AIRepository) AllChatMessages(userID, lessonID uint) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

func (r *AIRepository) FindRegenerated(lessonID uint, userLevel int, paramsHash string) (*model.RegeneratedContent, error) {
	var cached model.RegeneratedContent
	err := r.DB.Where("lesson_id = ? AND user_level = ? AND params_hash = ?", lessonID, userLevel, paramsHash).
		First(&cached).Error
	return &cached, err
}

func (r *AIRepository) CreateRegenerated(content *model.RegeneratedContent) error {
	return r.DB.Create(content).Error
}

func (r *AIRepository) FindDictionaryEntry(term string, userLevel int) (*model.DictionaryEntry, error) {
	var entry model.DictionaryEntry
	err := r.DB.Where("term = ? AND user_level = ?", term, userLevel).First(&entry).Error
	return &entry, err
}

func (r *AIRepository) CreateDictionaryEntry(entry *model.DictionaryEntry) error {
	return r.DB.Create(entry).Error
}
