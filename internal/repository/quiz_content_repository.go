package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type QuizContentRepository struct {
	DB *gorm.DB
}

func NewQuizContentRepository(db *gorm.DB) *QuizContentRepository {
	return &QuizContentRepository{DB: db}
}

func (r *QuizContentRepository) FindByLessonID(lessonID uint) (*model.LessonQuizContent, error) {
	var content model.LessonQuizContent
	err := r.DB.Where("lesson_id = ?", lessonID).First(&content).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// Upsert 一个课时只有一份测验内容：存在则覆盖，不存在则创建
func (r *QuizContentRepository) Upsert(content *model.LessonQuizContent) error {
	var existing model.LessonQuizContent
	err := r.DB.Where("lesson_id = ?", content.LessonID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(content).Error
	}
	if err != nil {
		return err
	}

	existing.Content = content.Content
	existing.TotalPoints = content.TotalPoints
	existing.QuestionCount = content.QuestionCount
	existing.UpdatedBy = content.UpdatedBy
	if err := r.DB.Save(&existing).Error; err != nil {
		return err
	}
	content.ID = existing.ID
	return nil
}

func (r *QuizContentRepository) DeleteByLessonID(lessonID uint) error {
	return r.DB.Where("lesson_id = ?", lessonID).Delete(&model.LessonQuizContent{}).Error
}
