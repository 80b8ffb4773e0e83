package repository

import (
	"finverse_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	return &lesson, err
}

func (r *LessonRepository) ListAll() ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Order("level, module, lesson_number").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) CountByLevel(level int) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).Where("level = ?", level).Count(&count).Error
	return count, err
}

func (r *LessonRepository) CountByLevelAndModule(level, module int) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).
		Where("level = ? AND module = ?", level, module).
		Count(&count).Error
	return count, err
}

func (r *LessonRepository) FindContent(lessonID uint) (*model.LessonContent, error) {
	var content model.LessonContent
	err := r.DB.Where("lesson_id = ?", lessonID).First(&content).Error
	return &content, err
}

func (r *LessonRepository) CreateContent(content *model.LessonContent) error {
	return r.DB.Create(content).Error
}

func (r *LessonRepository) DeleteContent(lessonID uint) error {
	return r.DB.Where("lesson_id = ?", lessonID).Delete(&model.LessonContent{}).Error
}

// LessonIDsWithContent returns the set of lessons that already have
// generated content.
func (r *LessonRepository) LessonIDsWithContent() (map[uint]bool, error) {
	var ids []uint
	err := r.DB.Model(&model.LessonContent{}).Pluck("lesson_id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
