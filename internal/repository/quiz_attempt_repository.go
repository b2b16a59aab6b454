package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type QuizAttemptRepository struct {
	DB *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{DB: db}
}

func (r *QuizAttemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *QuizAttemptRepository) FindByID(id string) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.First(&attempt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// CompleteIfPending 写入评分结果，条件更新保证同一条记录只会被提交一次：
// completed_at 非空的记录不会被覆盖。返回 false 表示没有行被更新
// （已被并发提交抢先），调用方据此拒绝本次提交
func (r *QuizAttemptRepository) CompleteIfPending(attempt *model.QuizAttempt) (bool, error) {
	res := r.DB.Model(&model.QuizAttempt{}).
		Where("id = ? AND completed_at IS NULL", attempt.ID).
		Updates(map[string]interface{}{
			"completed_at":       attempt.CompletedAt,
			"time_spent_seconds": attempt.TimeSpentSeconds,
			"answers":            attempt.Answers,
			"breakdown":          attempt.Breakdown,
			"score":              attempt.Score,
			"total_points":       attempt.TotalPoints,
			"percentage":         attempt.Percentage,
			"passed":             attempt.Passed,
			"pending_review":     attempt.PendingReview,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CountCompletedByUserAndLesson 已提交次数，用于 maxAttempts 限制
func (r *QuizAttemptRepository) CountCompletedByUserAndLesson(userID, lessonID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("user_id = ? AND lesson_id = ? AND completed_at IS NOT NULL", userID, lessonID).
		Count(&count).Error
	return count, err
}

// FindInProgress 该学生在该测验上未提交的记录（如果有）
func (r *QuizAttemptRepository) FindInProgress(userID, lessonID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.Where("user_id = ? AND lesson_id = ? AND completed_at IS NULL", userID, lessonID).
		Order("started_at desc").First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *QuizAttemptRepository) ListByUser(userID uint, page, limit int) ([]model.QuizAttempt, int64, error) {
	query := r.DB.Model(&model.QuizAttempt{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var attempts []model.QuizAttempt
	offset := (page - 1) * limit
	err := query.Order("started_at desc").Offset(offset).Limit(limit).Find(&attempts).Error
	return attempts, total, err
}

func (r *QuizAttemptRepository) ListByLesson(lessonID uint, page, limit int, completedOnly bool) ([]model.QuizAttempt, int64, error) {
	query := r.DB.Model(&model.QuizAttempt{}).Where("lesson_id = ?", lessonID)
	if completedOnly {
		query = query.Where("completed_at IS NOT NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var attempts []model.QuizAttempt
	offset := (page - 1) * limit
	err := query.Order("started_at desc").Offset(offset).Limit(limit).Find(&attempts).Error
	return attempts, total, err
}

// ListByCourseIDs 跨课程查询，教师查看名下所有课程的答题记录
func (r *QuizAttemptRepository) ListByCourseIDs(courseIDs []uint, page, limit int) ([]model.QuizAttempt, int64, error) {
	if len(courseIDs) == 0 {
		return nil, 0, nil
	}
	query := r.DB.Model(&model.QuizAttempt{}).
		Where("course_id IN ? AND completed_at IS NOT NULL", courseIDs)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var attempts []model.QuizAttempt
	offset := (page - 1) * limit
	err := query.Order("completed_at desc").Offset(offset).Limit(limit).Find(&attempts).Error
	return attempts, total, err
}
