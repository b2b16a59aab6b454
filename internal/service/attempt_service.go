package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/quiz"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AttemptService 答题生命周期：开始 -> 作答 -> 提交评分。
// 提交后记录不可变，重复提交直接拒绝
type AttemptService struct {
	AttemptRepo    *repository.QuizAttemptRepository
	LessonRepo     *repository.LessonRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ContentSvc     *QuizContentService
}

func NewAttemptService(
	attemptRepo *repository.QuizAttemptRepository,
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	contentSvc *QuizContentService,
) *AttemptService {
	return &AttemptService{
		AttemptRepo:    attemptRepo,
		LessonRepo:     lessonRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		ContentSvc:     contentSvc,
	}
}

// StartAttempt 开始一次答题。已有未提交记录时直接返回该记录，不重复创建。
// feedbackMode 为 retry 且设置了 maxAttempts 时，按已提交次数限制
func (s *AttemptService) StartAttempt(ctx context.Context, userID, lessonID uint) (*model.QuizAttempt, error) {
	lesson, err := s.LessonRepo.FindLessonByID(lessonID)
	if err != nil {
		return nil, util.ErrLessonNotFound
	}
	if lesson.ContentType != model.LessonQuiz {
		return nil, util.ErrLessonNotQuiz
	}

	enrolled, err := s.EnrollmentRepo.Exists(userID, lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	content, err := s.ContentSvc.LoadParsed(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.AttemptRepo.FindInProgress(userID, lessonID); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if content.Settings.FeedbackMode == quiz.FeedbackRetry && content.Settings.MaxAttempts > 0 {
		count, err := s.AttemptRepo.CountCompletedByUserAndLesson(userID, lessonID)
		if err != nil {
			return nil, err
		}
		if count >= int64(content.Settings.MaxAttempts) {
			return nil, util.ErrMaxAttemptsReached
		}
	}

	attempt := &model.QuizAttempt{
		LessonID:  lessonID,
		CourseID:  lesson.CourseID,
		UserID:    userID,
		StartedAt: time.Now(),
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// SubmitAttempt 提交答案并评分。条件更新保证并发重复提交只有一个成功
func (s *AttemptService) SubmitAttempt(ctx context.Context, userID uint, attemptID string, answers quiz.AnswerSet) (*model.QuizAttempt, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, util.ErrAttemptNotFound
	}
	if attempt.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if attempt.IsCompleted() {
		return nil, util.ErrAttemptAlreadySubmitted
	}

	content, err := s.ContentSvc.LoadParsed(ctx, attempt.LessonID)
	if err != nil {
		return nil, err
	}

	result := quiz.Score(content, answers)

	rawAnswers, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	breakdown, err := json.Marshal(result.PerQuestion)
	if err != nil {
		return nil, err
	}

	pendingReview := false
	for _, qr := range result.PerQuestion {
		if qr.PendingReview {
			pendingReview = true
			break
		}
	}

	now := time.Now()
	attempt.CompletedAt = &now
	attempt.TimeSpentSeconds = int(now.Sub(attempt.StartedAt).Seconds())
	attempt.Answers = rawAnswers
	attempt.Breakdown = breakdown
	attempt.Score = result.TotalScore
	attempt.TotalPoints = result.TotalPoints
	attempt.Percentage = result.Percentage
	attempt.Passed = result.Passed
	attempt.PendingReview = pendingReview

	updated, err := s.AttemptRepo.CompleteIfPending(attempt)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, util.ErrAttemptAlreadySubmitted
	}

	monitoring.ObserveQuizSubmission(result.Passed)
	logger.Log.Info("测验提交完成",
		zap.String("attemptId", attempt.ID),
		zap.Uint("userId", userID),
		zap.Uint("lessonId", attempt.LessonID),
		zap.Int("score", result.TotalScore),
		zap.Float64("percentage", result.Percentage),
		zap.Bool("passed", result.Passed),
	)
	return attempt, nil
}

// GetAttempt 查询单条记录：本人、该课程的教师或管理员可见
func (s *AttemptService) GetAttempt(userID uint, attemptID string, isAdmin bool) (*model.QuizAttempt, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, util.ErrAttemptNotFound
	}
	if attempt.UserID == userID || isAdmin {
		return attempt, nil
	}

	course, err := s.CourseRepo.FindByID(attempt.CourseID)
	if err != nil || course.InstructorID != userID {
		return nil, util.ErrPermissionDenied
	}
	return attempt, nil
}
