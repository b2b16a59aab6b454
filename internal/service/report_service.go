package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

// ReportService 答题记录查询：学生看自己的，教师看名下课程的
type ReportService struct {
	AttemptRepo *repository.QuizAttemptRepository
	LessonRepo  *repository.LessonRepository
	CourseRepo  *repository.CourseRepository
}

func NewReportService(
	attemptRepo *repository.QuizAttemptRepository,
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
) *ReportService {
	return &ReportService{
		AttemptRepo: attemptRepo,
		LessonRepo:  lessonRepo,
		CourseRepo:  courseRepo,
	}
}

func (s *ReportService) MyAttempts(userID uint, page, limit int) ([]model.QuizAttempt, int64, error) {
	return s.AttemptRepo.ListByUser(userID, page, limit)
}

// LessonAttempts 某测验课时的全部提交记录，要求请求者是课程教师（或管理员）
func (s *ReportService) LessonAttempts(lessonID, instructorID uint, isAdmin bool, page, limit int, completedOnly bool) ([]model.QuizAttempt, int64, error) {
	lesson, err := s.LessonRepo.FindLessonByID(lessonID)
	if err != nil {
		return nil, 0, util.ErrLessonNotFound
	}

	if !isAdmin {
		course, err := s.CourseRepo.FindByID(lesson.CourseID)
		if err != nil {
			return nil, 0, util.ErrCourseNotFound
		}
		if course.InstructorID != instructorID {
			return nil, 0, util.ErrPermissionDenied
		}
	}

	return s.AttemptRepo.ListByLesson(lessonID, page, limit, completedOnly)
}

// InstructorAttempts 教师名下所有课程的已提交记录
func (s *ReportService) InstructorAttempts(instructorID uint, page, limit int) ([]model.QuizAttempt, int64, error) {
	courseIDs, err := s.CourseRepo.CourseIDsByInstructor(instructorID)
	if err != nil {
		return nil, 0, err
	}
	return s.AttemptRepo.ListByCourseIDs(courseIDs, page, limit)
}
