package model

import (
	"encoding/json"
	"time"
)

// QuizAttempt 学生对一个测验课时的一次作答。
// 创建时只有 StartedAt；提交时由评分引擎一次性写入其余字段，
// 之后不可变更——重复提交直接拒绝，绝不重新评分
type QuizAttempt struct {
	UUIDBase
	LessonID         uint            `gorm:"index;not null" json:"lessonId"`
	CourseID         uint            `gorm:"index;not null" json:"courseId"`
	UserID           uint            `gorm:"index;not null" json:"userId"`
	StartedAt        time.Time       `gorm:"not null" json:"startedAt"`
	CompletedAt      *time.Time      `gorm:"index" json:"completedAt"`
	TimeSpentSeconds int             `gorm:"default:0" json:"timeSpentSeconds"`
	Answers          json.RawMessage `gorm:"type:json" json:"answers,omitempty"`
	Breakdown        json.RawMessage `gorm:"type:json" json:"breakdown,omitempty"` // 每题得分明细
	Score            int             `gorm:"default:0" json:"score"`
	TotalPoints      int             `gorm:"default:0" json:"totalPoints"`
	Percentage       float64         `gorm:"default:0" json:"percentage"`
	Passed           bool            `gorm:"default:false" json:"passed"`
	PendingReview    bool            `gorm:"default:false" json:"pendingReview"` // 含开放题，等待人工评阅
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// IsCompleted 是否已提交
func (a *QuizAttempt) IsCompleted() bool {
	return a.CompletedAt != nil
}
