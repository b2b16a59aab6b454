package model

import "time"

// AssignmentSubmission 作业课时的提交记录，由教师人工给分
type AssignmentSubmission struct {
	UUIDBase
	LessonID    uint       `gorm:"index;not null" json:"lessonId"`
	CourseID    uint       `gorm:"index;not null" json:"courseId"`
	UserID      uint       `gorm:"index;not null" json:"userId"`
	Content     string     `gorm:"type:longtext" json:"content"`
	FileURL     string     `gorm:"size:512" json:"fileUrl"`
	SubmittedAt time.Time  `json:"submittedAt"`
	Grade       *int       `json:"grade,omitempty"`
	Feedback    string     `gorm:"type:text" json:"feedback"`
	GradedBy    uint       `gorm:"default:0" json:"gradedBy"`
	GradedAt    *time.Time `json:"gradedAt,omitempty"`
}

func (AssignmentSubmission) TableName() string {
	return "assignment_submissions"
}
