package model

import "time"

// swagger:model Course
type Course struct {
	BaseModel
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	Category     string     `gorm:"size:100" json:"category"`
	Thumbnail    string     `gorm:"size:255" json:"thumbnail"`
	InstructorID uint       `gorm:"index;not null" json:"instructorId"`
	IsPublished  bool       `gorm:"default:false" json:"isPublished"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// Topic 课程章节，按 sort_order 排列
type Topic struct {
	BaseModel
	CourseID  uint   `gorm:"index;not null" json:"courseId"`
	Title     string `gorm:"size:255;not null" json:"title"`
	Summary   string `gorm:"type:text" json:"summary"`
	SortOrder int    `gorm:"default:0" json:"sortOrder"`
}

func (Topic) TableName() string {
	return "topics"
}

type LessonContentType string

const (
	LessonVideo      LessonContentType = "video"
	LessonArticle    LessonContentType = "article"
	LessonQuiz       LessonContentType = "quiz"
	LessonAssignment LessonContentType = "assignment"
)

// Lesson 章节下的课时。content_type 为 quiz 时关联一条 LessonQuizContent
type Lesson struct {
	BaseModel
	TopicID     uint              `gorm:"index;not null" json:"topicId"`
	CourseID    uint              `gorm:"index;not null" json:"courseId"`
	Title       string            `gorm:"size:255;not null" json:"title"`
	ContentType LessonContentType `gorm:"type:enum('video','article','quiz','assignment');default:'article'" json:"contentType"`
	Body        string            `gorm:"type:longtext" json:"body"`
	VideoURL    string            `gorm:"size:512" json:"videoUrl"`
	Duration    int               `gorm:"default:0" json:"duration"` // 秒
	SortOrder   int               `gorm:"default:0" json:"sortOrder"`
	IsPreview   bool              `gorm:"default:false" json:"isPreview"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// Enrollment 学生选课记录，(user, course) 唯一
type Enrollment struct {
	BaseModel
	UserID     uint      `gorm:"uniqueIndex:idx_user_course;not null" json:"userId"`
	CourseID   uint      `gorm:"uniqueIndex:idx_user_course;not null" json:"courseId"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
