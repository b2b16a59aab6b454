package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/quiz"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const quizContentCacheTTL = 10 * time.Minute

// QuizContentService 负责测验内容的保存与读取。
// 保存时做结构校验并重算元数据，读取走 Redis 缓存
type QuizContentService struct {
	ContentRepo    *repository.QuizContentRepository
	LessonRepo     *repository.LessonRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Redis          *redis.Client
}

func NewQuizContentService(
	contentRepo *repository.QuizContentRepository,
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	rdb *redis.Client,
) *QuizContentService {
	return &QuizContentService{
		ContentRepo:    contentRepo,
		LessonRepo:     lessonRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		Redis:          rdb,
	}
}

func quizContentCacheKey(lessonID uint) string {
	return fmt.Sprintf("quiz:content:%d", lessonID)
}

// requireQuizLesson 课时必须存在且类型为 quiz
func (s *QuizContentService) requireQuizLesson(lessonID uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindLessonByID(lessonID)
	if err != nil {
		return nil, util.ErrLessonNotFound
	}
	if lesson.ContentType != model.LessonQuiz {
		return nil, util.ErrLessonNotQuiz
	}
	return lesson, nil
}

// Save 校验并保存测验内容。返回校验错误列表时不落库
func (s *QuizContentService) Save(lessonID, instructorID uint, raw json.RawMessage) (*model.LessonQuizContent, []quiz.ValidationError, error) {
	lesson, err := s.requireQuizLesson(lessonID)
	if err != nil {
		return nil, nil, err
	}

	course, err := s.CourseRepo.FindByID(lesson.CourseID)
	if err != nil {
		return nil, nil, util.ErrCourseNotFound
	}
	if course.InstructorID != instructorID {
		return nil, nil, util.ErrPermissionDenied
	}

	content, verrs := quiz.Validate(raw)
	if len(verrs) > 0 {
		return nil, verrs, nil
	}

	// 以校验后的规范化内容落库，元数据由服务端重算
	normalized, err := json.Marshal(content)
	if err != nil {
		return nil, nil, err
	}

	record := &model.LessonQuizContent{
		LessonID:      lessonID,
		CourseID:      lesson.CourseID,
		Content:       normalized,
		TotalPoints:   content.Metadata.TotalPoints,
		QuestionCount: content.Metadata.QuestionCount,
		UpdatedBy:     instructorID,
	}
	if err := s.ContentRepo.Upsert(record); err != nil {
		return nil, nil, err
	}

	s.invalidateCache(lessonID)
	return record, nil, nil
}

// GetContent 完整内容（含答案），仅教师/管理员可见
func (s *QuizContentService) GetContent(lessonID, instructorID uint, isAdmin bool) (*model.LessonQuizContent, error) {
	lesson, err := s.requireQuizLesson(lessonID)
	if err != nil {
		return nil, err
	}

	if !isAdmin {
		course, err := s.CourseRepo.FindByID(lesson.CourseID)
		if err != nil {
			return nil, util.ErrCourseNotFound
		}
		if course.InstructorID != instructorID {
			return nil, util.ErrPermissionDenied
		}
	}

	record, err := s.ContentRepo.FindByLessonID(lessonID)
	if err != nil {
		return nil, util.ErrQuizContentNotFound
	}
	return record, nil
}

// LoadParsed 读取并解析测验内容，优先走缓存。评分与交卷路径都从这里取题
func (s *QuizContentService) LoadParsed(ctx context.Context, lessonID uint) (*quiz.Content, error) {
	key := quizContentCacheKey(lessonID)

	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, key).Bytes()
		if err == nil {
			var content quiz.Content
			if err := json.Unmarshal(cached, &content); err == nil {
				return &content, nil
			}
		}
	}

	record, err := s.ContentRepo.FindByLessonID(lessonID)
	if err != nil {
		return nil, util.ErrQuizContentNotFound
	}

	var content quiz.Content
	if err := json.Unmarshal(record.Content, &content); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := s.Redis.Set(ctx, key, []byte(record.Content), quizContentCacheTTL).Err(); err != nil {
			logger.Log.Warn("缓存测验内容失败", zap.Uint("lessonId", lessonID), zap.Error(err))
		}
	}
	return &content, nil
}

// StudentContent 学生视角的内容：抽题、乱序、剥离答案。
// 非试看课时要求已选课
func (s *QuizContentService) StudentContent(ctx context.Context, lessonID, userID uint) (*quiz.Content, error) {
	lesson, err := s.requireQuizLesson(lessonID)
	if err != nil {
		return nil, err
	}

	if !lesson.IsPreview {
		enrolled, err := s.EnrollmentRepo.Exists(userID, lesson.CourseID)
		if err != nil {
			return nil, err
		}
		if !enrolled {
			return nil, util.ErrNotEnrolled
		}
	}

	content, err := s.LoadParsed(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return quiz.StudentView(content, rng), nil
}

// Delete 删除测验内容（课时本身保留）
func (s *QuizContentService) Delete(lessonID, instructorID uint, isAdmin bool) error {
	lesson, err := s.requireQuizLesson(lessonID)
	if err != nil {
		return err
	}

	if !isAdmin {
		course, err := s.CourseRepo.FindByID(lesson.CourseID)
		if err != nil {
			return util.ErrCourseNotFound
		}
		if course.InstructorID != instructorID {
			return util.ErrPermissionDenied
		}
	}

	if err := s.ContentRepo.DeleteByLessonID(lessonID); err != nil {
		return err
	}
	s.invalidateCache(lessonID)
	return nil
}

func (s *QuizContentService) invalidateCache(lessonID uint) {
	if s.Redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Redis.Del(ctx, quizContentCacheKey(lessonID)).Err(); err != nil {
		logger.Log.Warn("清除测验内容缓存失败", zap.Uint("lessonId", lessonID), zap.Error(err))
	}
}
