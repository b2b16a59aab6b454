package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) CreateSubmission(submission *model.AssignmentSubmission) error {
	return r.DB.Create(submission).Error
}

func (r *AssignmentRepository) FindSubmissionByID(id string) (*model.AssignmentSubmission, error) {
	var s model.AssignmentSubmission
	err := r.DB.First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AssignmentRepository) FindSubmissionByUserAndLesson(userID, lessonID uint) (*model.AssignmentSubmission, error) {
	var s model.AssignmentSubmission
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AssignmentRepository) UpdateSubmission(submission *model.AssignmentSubmission) error {
	return r.DB.Save(submission).Error
}

func (r *AssignmentRepository) ListByLesson(lessonID uint, page, limit int) ([]model.AssignmentSubmission, int64, error) {
	query := r.DB.Model(&model.AssignmentSubmission{}).Where("lesson_id = ?", lessonID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var submissions []model.AssignmentSubmission
	offset := (page - 1) * limit
	err := query.Order("submitted_at desc").Offset(offset).Limit(limit).Find(&submissions).Error
	return submissions, total, err
}

func (r *AssignmentRepository) ListByUser(userID uint) ([]model.AssignmentSubmission, error) {
	var submissions []model.AssignmentSubmission
	err := r.DB.Where("user_id = ?", userID).Order("submitted_at desc").Find(&submissions).Error
	return submissions, err
}
