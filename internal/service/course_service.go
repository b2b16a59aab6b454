package service

import (
	"errors"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"time"
)

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	enrollmentRepo *repository.EnrollmentRepository,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
		EnrollmentRepo: enrollmentRepo,
	}
}

type CourseReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Thumbnail   *string `json:"thumbnail"`
	IsPublished *bool   `json:"isPublished"`
}

func (s *CourseService) CreateCourse(instructorID uint, req CourseReq) (*model.Course, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errors.New("title is required")
	}

	course := &model.Course{
		Title:        *req.Title,
		InstructorID: instructorID,
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.Thumbnail != nil {
		course.Thumbnail = *req.Thumbnail
	}
	if req.IsPublished != nil && *req.IsPublished {
		course.IsPublished = true
		now := time.Now()
		course.PublishedAt = &now
	}

	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

// requireOwnership 课程必须属于该教师（管理员除外，控制器层已放行）
func (s *CourseService) requireOwnership(courseID, instructorID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}
	if course.InstructorID != instructorID {
		return nil, util.ErrPermissionDenied
	}
	return course, nil
}

func (s *CourseService) UpdateCourse(courseID, instructorID uint, req CourseReq) (*model.Course, error) {
	course, err := s.requireOwnership(courseID, instructorID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.Thumbnail != nil {
		course.Thumbnail = *req.Thumbnail
	}
	if req.IsPublished != nil {
		if *req.IsPublished && !course.IsPublished {
			now := time.Now()
			course.PublishedAt = &now
		}
		course.IsPublished = *req.IsPublished
	}

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) DeleteCourse(courseID, instructorID uint) error {
	if _, err := s.requireOwnership(courseID, instructorID); err != nil {
		return err
	}
	return s.CourseRepo.Delete(courseID)
}

func (s *CourseService) ListCourses(page, limit int, publishedOnly bool, category string) ([]model.Course, int64, error) {
	return s.CourseRepo.List(page, limit, publishedOnly, category)
}

func (s *CourseService) ListInstructorCourses(instructorID uint) ([]model.Course, error) {
	return s.CourseRepo.ListByInstructor(instructorID)
}

// TopicWithLessons 课程详情里的章节树
type TopicWithLessons struct {
	model.Topic
	Lessons []model.Lesson `json:"lessons"`
}

type CourseDetail struct {
	Course        *model.Course      `json:"course"`
	Topics        []TopicWithLessons `json:"topics"`
	EnrolledCount int64              `json:"enrolledCount"`
}

func (s *CourseService) GetCourseDetail(courseID uint) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	topics, err := s.LessonRepo.ListTopics(courseID)
	if err != nil {
		return nil, err
	}

	tree := make([]TopicWithLessons, len(topics))
	for i, t := range topics {
		lessons, err := s.LessonRepo.ListLessons(t.ID)
		if err != nil {
			return nil, err
		}
		tree[i] = TopicWithLessons{Topic: t, Lessons: lessons}
	}

	enrolled, _ := s.EnrollmentRepo.CountByCourse(courseID)

	return &CourseDetail{Course: course, Topics: tree, EnrolledCount: enrolled}, nil
}

type TopicReq struct {
	Title   *string `json:"title"`
	Summary *string `json:"summary"`
}

func (s *CourseService) CreateTopic(courseID, instructorID uint, req TopicReq) (*model.Topic, error) {
	if _, err := s.requireOwnership(courseID, instructorID); err != nil {
		return nil, err
	}
	if req.Title == nil || *req.Title == "" {
		return nil, errors.New("title is required")
	}

	topic := &model.Topic{
		CourseID:  courseID,
		Title:     *req.Title,
		SortOrder: s.LessonRepo.NextTopicSortOrder(courseID),
	}
	if req.Summary != nil {
		topic.Summary = *req.Summary
	}

	if err := s.LessonRepo.CreateTopic(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *CourseService) UpdateTopic(topicID, instructorID uint, req TopicReq) (*model.Topic, error) {
	topic, err := s.LessonRepo.FindTopicByID(topicID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOwnership(topic.CourseID, instructorID); err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		topic.Title = *req.Title
	}
	if req.Summary != nil {
		topic.Summary = *req.Summary
	}

	if err := s.LessonRepo.UpdateTopic(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *CourseService) DeleteTopic(topicID, instructorID uint) error {
	topic, err := s.LessonRepo.FindTopicByID(topicID)
	if err != nil {
		return err
	}
	if _, err := s.requireOwnership(topic.CourseID, instructorID); err != nil {
		return err
	}
	return s.LessonRepo.DeleteTopic(topicID)
}

func (s *CourseService) ReorderTopics(courseID, instructorID uint, orderedIDs []uint) error {
	if _, err := s.requireOwnership(courseID, instructorID); err != nil {
		return err
	}
	return s.LessonRepo.ReorderTopics(courseID, orderedIDs)
}

type LessonReq struct {
	Title       *string                  `json:"title"`
	ContentType *model.LessonContentType `json:"contentType"`
	Body        *string                  `json:"body"`
	VideoURL    *string                  `json:"videoUrl"`
	Duration    *int                     `json:"duration"`
	IsPreview   *bool                    `json:"isPreview"`
}

func (s *CourseService) CreateLesson(topicID, instructorID uint, req LessonReq) (*model.Lesson, error) {
	topic, err := s.LessonRepo.FindTopicByID(topicID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOwnership(topic.CourseID, instructorID); err != nil {
		return nil, err
	}
	if req.Title == nil || *req.Title == "" {
		return nil, errors.New("title is required")
	}

	lesson := &model.Lesson{
		TopicID:   topicID,
		CourseID:  topic.CourseID,
		Title:     *req.Title,
		SortOrder: s.LessonRepo.NextLessonSortOrder(topicID),
	}
	if req.ContentType != nil {
		lesson.ContentType = *req.ContentType
	}
	if req.Body != nil {
		lesson.Body = *req.Body
	}
	if req.VideoURL != nil {
		lesson.VideoURL = *req.VideoURL
	}
	if req.Duration != nil {
		lesson.Duration = *req.Duration
	}
	if req.IsPreview != nil {
		lesson.IsPreview = *req.IsPreview
	}

	if err := s.LessonRepo.CreateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) UpdateLesson(lessonID, instructorID uint, req LessonReq) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindLessonByID(lessonID)
	if err != nil {
		return nil, util.ErrLessonNotFound
	}
	if _, err := s.requireOwnership(lesson.CourseID, instructorID); err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		lesson.Title = *req.Title
	}
	if req.ContentType != nil {
		lesson.ContentType = *req.ContentType
	}
	if req.Body != nil {
		lesson.Body = *req.Body
	}
	if req.VideoURL != nil {
		lesson.VideoURL = *req.VideoURL
	}
	if req.Duration != nil {
		lesson.Duration = *req.Duration
	}
	if req.IsPreview != nil {
		lesson.IsPreview = *req.IsPreview
	}

	if err := s.LessonRepo.UpdateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) DeleteLesson(lessonID, instructorID uint) error {
	lesson, err := s.LessonRepo.FindLessonByID(lessonID)
	if err != nil {
		return util.ErrLessonNotFound
	}
	if _, err := s.requireOwnership(lesson.CourseID, instructorID); err != nil {
		return err
	}
	return s.LessonRepo.DeleteLesson(lessonID)
}

func (s *CourseService) ReorderLessons(topicID, instructorID uint, orderedIDs []uint) error {
	topic, err := s.LessonRepo.FindTopicByID(topicID)
	if err != nil {
		return err
	}
	if _, err := s.requireOwnership(topic.CourseID, instructorID); err != nil {
		return err
	}
	return s.LessonRepo.ReorderLessons(topicID, orderedIDs)
}

func (s *CourseService) Enroll(userID, courseID uint) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}
	if !course.IsPublished {
		return nil, util.ErrCourseNotPublished
	}

	exists, err := s.EnrollmentRepo.Exists(userID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrAlreadyEnrolled
	}

	enrollment := &model.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *CourseService) MyEnrollments(userID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.ListByUser(userID)
}
