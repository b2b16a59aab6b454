package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() []byte {
	return []byte(`{
		"questions": [
			{"id": "q1", "type": "true_false", "prompt": "1+1=2?", "points": 5, "correctAnswer": true},
			{"id": "q2", "type": "single_choice", "prompt": "选一个", "points": 3, "correctAnswer": "b",
			 "options": [{"id":"a","text":"A"},{"id":"b","text":"B"}]}
		],
		"settings": {"passingScore": 70}
	}`)
}

func fieldsOf(errs []ValidationError) []string {
	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
	}
	return fields
}

func TestValidateOK(t *testing.T) {
	content, errs := Validate(validRaw())
	require.Empty(t, errs)
	require.NotNil(t, content)

	// 元数据由服务端重算
	assert.Equal(t, 2, content.Metadata.QuestionCount)
	assert.Equal(t, 8, content.Metadata.TotalPoints)
	// 空 feedbackMode 归一化为 default
	assert.Equal(t, FeedbackDefault, content.Settings.FeedbackMode)
}

func TestValidateInvalidJSON(t *testing.T) {
	content, errs := Validate([]byte(`{not json`))
	assert.Nil(t, content)
	require.Len(t, errs, 1)
	assert.Equal(t, "content", errs[0].Field)
}

func TestValidateMissingQuestions(t *testing.T) {
	_, errs := Validate([]byte(`{"settings": {"passingScore": 50}}`))
	assert.Contains(t, fieldsOf(errs), "questions")

	_, errs = Validate([]byte(`{"questions": [], "settings": {"passingScore": 50}}`))
	assert.Contains(t, fieldsOf(errs), "questions")
}

func TestValidateQuestionErrors(t *testing.T) {
	raw := []byte(`{
		"questions": [
			{"id": "", "type": "true_false", "prompt": "ok", "points": 5},
			{"id": "q2", "type": "mind_reading", "prompt": "ok", "points": 5},
			{"id": "q3", "type": "true_false", "prompt": "   ", "points": 5},
			{"id": "q3", "type": "true_false", "prompt": "ok", "points": 0}
		],
		"settings": {"passingScore": 50}
	}`)

	content, errs := Validate(raw)
	assert.Nil(t, content)

	fields := fieldsOf(errs)
	assert.Contains(t, fields, "questions[0].id")
	assert.Contains(t, fields, "questions[1].type")
	assert.Contains(t, fields, "questions[2].prompt")
	assert.Contains(t, fields, "questions[3].id") // 与 q3 重复
	assert.Contains(t, fields, "questions[3].points")
}

func TestValidateSettings(t *testing.T) {
	raw := []byte(`{
		"questions": [{"id": "q1", "type": "true_false", "prompt": "ok", "points": 5, "correctAnswer": true}],
		"settings": {"passingScore": 101, "maxQuestions": -1}
	}`)
	_, errs := Validate(raw)
	fields := fieldsOf(errs)
	assert.Contains(t, fields, "settings.passingScore")
	assert.Contains(t, fields, "settings.maxQuestions")
}

func TestValidateRetryRequiresMaxAttempts(t *testing.T) {
	raw := []byte(`{
		"questions": [{"id": "q1", "type": "true_false", "prompt": "ok", "points": 5, "correctAnswer": true}],
		"settings": {"passingScore": 50, "feedbackMode": "retry"}
	}`)
	_, errs := Validate(raw)
	assert.Contains(t, fieldsOf(errs), "settings.maxAttempts")

	raw = []byte(`{
		"questions": [{"id": "q1", "type": "true_false", "prompt": "ok", "points": 5, "correctAnswer": true}],
		"settings": {"passingScore": 50, "feedbackMode": "retry", "maxAttempts": 3}
	}`)
	content, errs := Validate(raw)
	assert.Empty(t, errs)
	assert.Equal(t, 3, content.Settings.MaxAttempts)
}

func TestValidateUnknownFeedbackMode(t *testing.T) {
	raw := []byte(`{
		"questions": [{"id": "q1", "type": "true_false", "prompt": "ok", "points": 5, "correctAnswer": true}],
		"settings": {"passingScore": 50, "feedbackMode": "punish"}
	}`)
	_, errs := Validate(raw)
	assert.Contains(t, fieldsOf(errs), "settings.feedbackMode")
}

func TestValidateIgnoresUnknownFields(t *testing.T) {
	// 向前兼容：未知字段静默丢弃
	raw := []byte(`{
		"questions": [{"id": "q1", "type": "true_false", "prompt": "ok", "points": 5, "correctAnswer": true,
		               "futureField": {"nested": true}}],
		"settings": {"passingScore": 50, "somethingNew": 42}
	}`)
	content, errs := Validate(raw)
	assert.Empty(t, errs)
	assert.NotNil(t, content)
}

func TestValidateRecomputesMetadata(t *testing.T) {
	// 客户端提交的元数据被忽略并重算
	raw := []byte(`{
		"questions": [{"id": "q1", "type": "true_false", "prompt": "ok", "points": 5, "correctAnswer": true}],
		"settings": {"passingScore": 50},
		"metadata": {"totalPoints": 999, "questionCount": 42}
	}`)
	content, errs := Validate(raw)
	require.Empty(t, errs)
	assert.Equal(t, 5, content.Metadata.TotalPoints)
	assert.Equal(t, 1, content.Metadata.QuestionCount)
}
