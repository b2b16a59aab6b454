package model

import "encoding/json"

// LessonQuizContent 测验课时的内容快照：题目+设置的JSON，
// 以及保存时重新计算的派生元数据。TotalPoints/QuestionCount
// 从不采信客户端提交的值
type LessonQuizContent struct {
	BaseModel
	LessonID      uint            `gorm:"uniqueIndex;not null" json:"lessonId"`
	CourseID      uint            `gorm:"index;not null" json:"courseId"`
	Content       json.RawMessage `gorm:"type:json;not null" json:"content"`
	TotalPoints   int             `gorm:"default:0" json:"totalPoints"`
	QuestionCount int             `gorm:"default:0" json:"questionCount"`
	UpdatedBy     uint            `gorm:"index" json:"updatedBy"`
}

func (LessonQuizContent) TableName() string {
	return "lesson_quiz_contents"
}
