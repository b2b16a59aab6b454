package util

import "errors"

var (
	ErrUserNotFound            = errors.New("用户不存在")
	ErrEmailRegistered         = errors.New("该邮箱已被注册")
	ErrPermissionDenied        = errors.New("permission denied")
	ErrCourseNotFound          = errors.New("course not found")
	ErrLessonNotFound          = errors.New("lesson not found")
	ErrLessonNotQuiz           = errors.New("lesson is not a quiz")
	ErrQuizContentNotFound     = errors.New("quiz content not found")
	ErrNotEnrolled             = errors.New("not enrolled in this course")
	ErrAlreadyEnrolled         = errors.New("already enrolled in this course")
	ErrAttemptNotFound         = errors.New("attempt not found")
	ErrAttemptAlreadySubmitted = errors.New("attempt already submitted")
	ErrMaxAttemptsReached      = errors.New("maximum attempts reached")
	ErrCourseNotPublished      = errors.New("course not published")
	ErrAlreadySubmitted        = errors.New("assignment already submitted")
)
