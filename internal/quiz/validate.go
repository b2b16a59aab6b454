package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ValidationError 内容校验错误，返回给教师端并阻止保存
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate 校验教师保存的测验内容。纯函数，无副作用。
// 未知字段静默丢弃（向前兼容）。校验通过后重新计算派生元数据并返回
// 规范化的 Content；评分引擎假定读到的内容已经过这里校验，不再重复校验
func Validate(raw []byte) (*Content, []ValidationError) {
	var content Content
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, []ValidationError{{Field: "content", Message: "invalid JSON: " + err.Error()}}
	}

	var errs []ValidationError

	if content.Questions == nil {
		errs = append(errs, ValidationError{Field: "questions", Message: "questions is required"})
	} else if len(content.Questions) == 0 {
		errs = append(errs, ValidationError{Field: "questions", Message: "quiz must contain at least one question"})
	}

	seen := make(map[string]bool, len(content.Questions))
	for i := range content.Questions {
		q := &content.Questions[i]
		field := fmt.Sprintf("questions[%d]", i)

		if q.ID == "" {
			errs = append(errs, ValidationError{Field: field + ".id", Message: "question id is required"})
		} else if seen[q.ID] {
			errs = append(errs, ValidationError{Field: field + ".id", Message: "duplicate question id: " + q.ID})
		}
		seen[q.ID] = true

		if !KnownTypes[q.Type] {
			errs = append(errs, ValidationError{Field: field + ".type", Message: "unrecognized question type: " + string(q.Type)})
		}
		if strings.TrimSpace(q.Prompt) == "" {
			errs = append(errs, ValidationError{Field: field + ".prompt", Message: "prompt must not be empty"})
		}
		if q.Points <= 0 {
			errs = append(errs, ValidationError{Field: field + ".points", Message: "points must be positive"})
		}
	}

	s := &content.Settings
	if s.PassingScore < 0 || s.PassingScore > 100 {
		errs = append(errs, ValidationError{Field: "settings.passingScore", Message: "passingScore must be between 0 and 100"})
	}
	if s.FeedbackMode == "" {
		s.FeedbackMode = FeedbackDefault
	}
	switch s.FeedbackMode {
	case FeedbackDefault, FeedbackReveal:
	case FeedbackRetry:
		if s.MaxAttempts < 1 {
			errs = append(errs, ValidationError{Field: "settings.maxAttempts", Message: "maxAttempts is required when feedbackMode is retry"})
		}
	default:
		errs = append(errs, ValidationError{Field: "settings.feedbackMode", Message: "unrecognized feedback mode: " + s.FeedbackMode})
	}
	if s.MaxQuestions < 0 {
		errs = append(errs, ValidationError{Field: "settings.maxQuestions", Message: "maxQuestions must not be negative"})
	}

	if len(errs) > 0 {
		return nil, errs
	}

	content.Metadata = ComputeMetadata(content.Questions)
	return &content, nil
}
