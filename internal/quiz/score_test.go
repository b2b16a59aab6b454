package quiz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleContent(passingScore float64) *Content {
	return &Content{
		Questions: []Question{
			{ID: "q1", Type: TrueFalse, Prompt: "1+1=2?", Points: 5, CorrectAnswer: json.RawMessage(`true`)},
			{ID: "q2", Type: SingleChoice, Prompt: "选一个", Points: 5, CorrectAnswer: json.RawMessage(`"b"`)},
			{ID: "q3", Type: Matching, Prompt: "连线", Points: 3, CorrectAnswer: json.RawMessage(`{"l1":"r1","l2":"r2","l3":"r3"}`)},
		},
		Settings: Settings{PassingScore: passingScore},
	}
}

func TestScoreAllCorrect(t *testing.T) {
	content := sampleContent(70)
	answers := AnswerSet{
		"q1": json.RawMessage(`true`),
		"q2": json.RawMessage(`"b"`),
		"q3": json.RawMessage(`{"l1":"r1","l2":"r2","l3":"r3"}`),
	}

	result := Score(content, answers)
	assert.Equal(t, 13, result.TotalScore)
	assert.Equal(t, 13, result.TotalPoints)
	assert.InDelta(t, 100, result.Percentage, 1e-9)
	assert.True(t, result.Passed)
	assert.Len(t, result.PerQuestion, 3)
}

func TestScoreUnansweredCountsAsZero(t *testing.T) {
	content := sampleContent(50)
	answers := AnswerSet{
		"q1": json.RawMessage(`true`),
		// q2 缺席，q3 显式 null
		"q3": json.RawMessage(`null`),
	}

	result := Score(content, answers)
	assert.Equal(t, 5, result.TotalScore)
	// 未作答的题目仍计入总分母
	assert.Equal(t, 13, result.TotalPoints)
	assert.False(t, result.PerQuestion["q2"].IsCorrect)
	assert.Equal(t, 0, result.PerQuestion["q2"].PointsEarned)
	assert.Equal(t, 0, result.PerQuestion["q3"].PointsEarned)
}

func TestScorePassBoundaryInclusive(t *testing.T) {
	content := &Content{
		Questions: []Question{
			{ID: "q1", Type: TrueFalse, Prompt: "对错", Points: 7, CorrectAnswer: json.RawMessage(`true`)},
			{ID: "q2", Type: TrueFalse, Prompt: "对错", Points: 3, CorrectAnswer: json.RawMessage(`true`)},
		},
		Settings: Settings{PassingScore: 70},
	}
	answers := AnswerSet{"q1": json.RawMessage(`true`), "q2": json.RawMessage(`false`)}

	// 恰好 70% 判通过
	result := Score(content, answers)
	assert.InDelta(t, 70, result.Percentage, 1e-9)
	assert.True(t, result.Passed)

	content.Settings.PassingScore = 70.1
	result = Score(content, answers)
	assert.False(t, result.Passed)
}

func TestScoreZeroTotalPoints(t *testing.T) {
	// 空卷：百分比定义为 0，不报错
	content := &Content{Settings: Settings{PassingScore: 0}}

	result := Score(content, AnswerSet{})
	require.NotNil(t, result)
	assert.Equal(t, 0, result.TotalPoints)
	assert.Equal(t, 0.0, result.Percentage)
	// passingScore 为 0 时 0 >= 0 成立
	assert.True(t, result.Passed)
}

func TestScorePerQuestionRounding(t *testing.T) {
	// 单题内独立舍入：两道排序题各对一半
	content := &Content{
		Questions: []Question{
			{ID: "q1", Type: SortAnswer, Prompt: "排序", Points: 1, CorrectAnswer: json.RawMessage(`["a","b"]`)},
			{ID: "q2", Type: SortAnswer, Prompt: "排序", Points: 1, CorrectAnswer: json.RawMessage(`["a","b"]`)},
		},
		Settings: Settings{PassingScore: 50},
	}
	answers := AnswerSet{
		"q1": json.RawMessage(`["a","x"]`),
		"q2": json.RawMessage(`["a","x"]`),
	}

	// 每题 1 × 1/2 = 0.5 -> 1 分，总分是已舍入分之和
	result := Score(content, answers)
	assert.Equal(t, 1, result.PerQuestion["q1"].PointsEarned)
	assert.Equal(t, 1, result.PerQuestion["q2"].PointsEarned)
	assert.Equal(t, 2, result.TotalScore)
}

func TestScorePendingReviewDoesNotBlockScoring(t *testing.T) {
	content := &Content{
		Questions: []Question{
			{ID: "q1", Type: OpenEnded, Prompt: "论述", Points: 10},
			{ID: "q2", Type: TrueFalse, Prompt: "对错", Points: 5, CorrectAnswer: json.RawMessage(`true`)},
		},
		Settings: Settings{PassingScore: 30},
	}
	answers := AnswerSet{
		"q1": json.RawMessage(`"我的回答"`),
		"q2": json.RawMessage(`true`),
	}

	result := Score(content, answers)
	assert.True(t, result.PerQuestion["q1"].PendingReview)
	assert.Equal(t, 0, result.PerQuestion["q1"].PointsEarned)
	// 开放题计入分母，自动得分只来自客观题
	assert.Equal(t, 5, result.TotalScore)
	assert.Equal(t, 15, result.TotalPoints)
	assert.True(t, result.Passed)
}

func TestScoreIdempotent(t *testing.T) {
	content := sampleContent(60)
	answers := AnswerSet{
		"q1": json.RawMessage(`true`),
		"q2": json.RawMessage(`"a"`),
		"q3": json.RawMessage(`{"l1":"r1","l2":"r2"}`),
	}

	first := Score(content, answers)
	second := Score(content, answers)
	assert.Equal(t, first, second)
}

func TestScoreIgnoresUnknownAnswerKeys(t *testing.T) {
	content := sampleContent(50)
	answers := AnswerSet{
		"q1":    json.RawMessage(`true`),
		"ghost": json.RawMessage(`"whatever"`),
	}

	result := Score(content, answers)
	assert.Len(t, result.PerQuestion, 3)
	_, ok := result.PerQuestion["ghost"]
	assert.False(t, ok)
}
