package service

import (
	"errors"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type AssignmentService struct {
	AssignmentRepo *repository.AssignmentRepository
	LessonRepo     *repository.LessonRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
) *AssignmentService {
	return &AssignmentService{
		AssignmentRepo: assignmentRepo,
		LessonRepo:     lessonRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
	}
}

// Submit 提交作业，每个课时每人只能提交一次
func (s *AssignmentService) Submit(userID, lessonID uint, content, fileURL string) (*model.AssignmentSubmission, error) {
	lesson, err := s.LessonRepo.FindLessonByID(lessonID)
	if err != nil {
		return nil, util.ErrLessonNotFound
	}
	if lesson.ContentType != model.LessonAssignment {
		return nil, errors.New("lesson is not an assignment")
	}

	enrolled, err := s.EnrollmentRepo.Exists(userID, lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	if _, err := s.AssignmentRepo.FindSubmissionByUserAndLesson(userID, lessonID); err == nil {
		return nil, util.ErrAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	submission := &model.AssignmentSubmission{
		LessonID:    lessonID,
		CourseID:    lesson.CourseID,
		UserID:      userID,
		Content:     content,
		FileURL:     fileURL,
		SubmittedAt: time.Now(),
	}
	if err := s.AssignmentRepo.CreateSubmission(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *AssignmentService) MySubmissions(userID uint) ([]model.AssignmentSubmission, error) {
	return s.AssignmentRepo.ListByUser(userID)
}

// LessonSubmissions 某作业课时的全部提交，要求请求者是课程教师（或管理员）
func (s *AssignmentService) LessonSubmissions(lessonID, instructorID uint, isAdmin bool, page, limit int) ([]model.AssignmentSubmission, int64, error) {
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

	return s.AssignmentRepo.ListByLesson(lessonID, page, limit)
}

// Grade 教师给分，0-100
func (s *AssignmentService) Grade(submissionID string, instructorID uint, isAdmin bool, grade int, feedback string) (*model.AssignmentSubmission, error) {
	if grade < 0 || grade > 100 {
		return nil, errors.New("grade must be between 0 and 100")
	}

	submission, err := s.AssignmentRepo.FindSubmissionByID(submissionID)
	if err != nil {
		return nil, errors.New("submission not found")
	}

	if !isAdmin {
		course, err := s.CourseRepo.FindByID(submission.CourseID)
		if err != nil {
			return nil, util.ErrCourseNotFound
		}
		if course.InstructorID != instructorID {
			return nil, util.ErrPermissionDenied
		}
	}

	now := time.Now()
	submission.Grade = &grade
	submission.Feedback = feedback
	submission.GradedBy = instructorID
	submission.GradedAt = &now

	if err := s.AssignmentRepo.UpdateSubmission(submission); err != nil {
		return nil, err
	}
	return submission, nil
}
