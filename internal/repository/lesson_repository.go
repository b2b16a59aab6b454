package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) CreateTopic(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

func (r *LessonRepository) FindTopicByID(id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.First(&topic, id).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *LessonRepository) UpdateTopic(topic *model.Topic) error {
	return r.DB.Save(topic).Error
}

func (r *LessonRepository) DeleteTopic(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("topic_id = ?", id).Delete(&model.Lesson{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Topic{}, id).Error
	})
}

func (r *LessonRepository) ListTopics(courseID uint) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Where("course_id = ?", courseID).Order("sort_order asc, created_at asc").Find(&topics).Error
	return topics, err
}

// NextTopicSortOrder 新章节追加到末尾
func (r *LessonRepository) NextTopicSortOrder(courseID uint) int {
	var max int
	r.DB.Model(&model.Topic{}).Where("course_id = ?", courseID).
		Select("COALESCE(MAX(sort_order), -1)").Scan(&max)
	return max + 1
}

func (r *LessonRepository) CreateLesson(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindLessonByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) UpdateLesson(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) DeleteLesson(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", id).Delete(&model.LessonQuizContent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Lesson{}, id).Error
	})
}

func (r *LessonRepository) ListLessons(topicID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("topic_id = ?", topicID).Order("sort_order asc, created_at asc").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) NextLessonSortOrder(topicID uint) int {
	var max int
	r.DB.Model(&model.Lesson{}).Where("topic_id = ?", topicID).
		Select("COALESCE(MAX(sort_order), -1)").Scan(&max)
	return max + 1
}

// ReorderLessons 按给定ID顺序重写 sort_order
func (r *LessonRepository) ReorderLessons(topicID uint, orderedIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			if err := tx.Model(&model.Lesson{}).
				Where("id = ? AND topic_id = ?", id, topicID).
				Update("sort_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ReorderTopics 按给定ID顺序重写 sort_order
func (r *LessonRepository) ReorderTopics(courseID uint, orderedIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			if err := tx.Model(&model.Topic{}).
				Where("id = ? AND course_id = ?", id, courseID).
				Update("sort_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
