package quiz

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deliverContent() *Content {
	return &Content{
		Questions: []Question{
			{
				ID: "q1", Type: SingleChoice, Prompt: "选择", Points: 5,
				Explanation:   "因为B是对的",
				Options:       []Option{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}},
				CorrectAnswer: json.RawMessage(`"b"`),
			},
			{
				ID: "q2", Type: ImageMatching, Prompt: "看图", Points: 3,
				ImageMatchingPairs: []ImageMatchingPair{
					{ID: "p1", ImageURL: "/img/cat.png", Text: "cat"},
					{ID: "p2", ImageURL: "/img/dog.png", Text: "dog"},
				},
				CorrectAnswer: json.RawMessage(`{"p1":"cat","p2":"dog"}`),
			},
			{ID: "q3", Type: TrueFalse, Prompt: "对错", Points: 2, CorrectAnswer: json.RawMessage(`true`)},
		},
		Settings: Settings{PassingScore: 60},
	}
}

func TestStudentViewStripsAnswers(t *testing.T) {
	content := deliverContent()
	view := StudentView(content, nil)

	for _, q := range view.Questions {
		assert.Nil(t, q.CorrectAnswer)
		assert.Empty(t, q.Explanation)
	}
	// 图片匹配题的期望文本也属于答案
	require.Len(t, view.Questions[1].ImageMatchingPairs, 2)
	for _, p := range view.Questions[1].ImageMatchingPairs {
		assert.Empty(t, p.Text)
		assert.NotEmpty(t, p.ImageURL)
	}
}

func TestStudentViewDoesNotMutateSource(t *testing.T) {
	content := deliverContent()
	_ = StudentView(content, rand.New(rand.NewSource(1)))

	assert.Equal(t, json.RawMessage(`"b"`), content.Questions[0].CorrectAnswer)
	assert.Equal(t, "因为B是对的", content.Questions[0].Explanation)
	assert.Equal(t, "cat", content.Questions[1].ImageMatchingPairs[0].Text)
}

func TestStudentViewMaxQuestions(t *testing.T) {
	content := deliverContent()
	content.Settings.MaxQuestions = 2

	view := StudentView(content, nil)
	assert.Len(t, view.Questions, 2)
	// 元数据按实际下发的题目重算
	assert.Equal(t, 2, view.Metadata.QuestionCount)
	assert.Equal(t, 8, view.Metadata.TotalPoints)
}

func TestStudentViewMaxQuestionsZeroMeansAll(t *testing.T) {
	content := deliverContent()
	content.Settings.MaxQuestions = 0

	view := StudentView(content, nil)
	assert.Len(t, view.Questions, 3)
}

func TestStudentViewShuffleKeepsQuestionSet(t *testing.T) {
	content := deliverContent()
	content.Settings.RandomizeQuestions = true

	view := StudentView(content, rand.New(rand.NewSource(42)))
	require.Len(t, view.Questions, 3)

	ids := map[string]bool{}
	for _, q := range view.Questions {
		ids[q.ID] = true
	}
	assert.True(t, ids["q1"] && ids["q2"] && ids["q3"])
}

func TestStudentViewOptionShuffleKeepsOptionSet(t *testing.T) {
	content := deliverContent()
	content.Questions[0].Randomize = true

	view := StudentView(content, rand.New(rand.NewSource(7)))
	opts := view.Questions[0].Options
	require.Len(t, opts, 2)
	seen := map[string]bool{}
	for _, o := range opts {
		seen[o.ID] = true
	}
	assert.True(t, seen["a"] && seen["b"])

	// 原内容的选项顺序不受影响
	assert.Equal(t, "a", content.Questions[0].Options[0].ID)
}

func TestStudentViewNilRngSkipsShuffle(t *testing.T) {
	content := deliverContent()
	content.Settings.RandomizeQuestions = true
	content.Questions[0].Randomize = true

	view := StudentView(content, nil)
	assert.Equal(t, "q1", view.Questions[0].ID)
	assert.Equal(t, "a", view.Questions[0].Options[0].ID)
}
