package quiz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func q(typ QuestionType, points int, correct string) *Question {
	return &Question{
		ID:            "q1",
		Type:          typ,
		Prompt:        "题目",
		Points:        points,
		CorrectAnswer: json.RawMessage(correct),
	}
}

func TestGradeTrueFalse(t *testing.T) {
	question := q(TrueFalse, 5, `true`)

	r := gradeQuestion(question, json.RawMessage(`true`))
	assert.True(t, r.IsCorrect)
	assert.Equal(t, 5, r.PointsEarned)

	r = gradeQuestion(question, json.RawMessage(`false`))
	assert.False(t, r.IsCorrect)
	assert.Equal(t, 0, r.PointsEarned)

	// 形状不匹配按 0 分处理
	r = gradeQuestion(question, json.RawMessage(`"yes"`))
	assert.Equal(t, 0, r.PointsEarned)
}

func TestGradeSingleChoice(t *testing.T) {
	question := q(SingleChoice, 3, `"b"`)

	r := gradeQuestion(question, json.RawMessage(`"b"`))
	assert.True(t, r.IsCorrect)
	assert.Equal(t, 3, r.PointsEarned)

	r = gradeQuestion(question, json.RawMessage(`"a"`))
	assert.False(t, r.IsCorrect)
	assert.Equal(t, 0, r.PointsEarned)
}

func TestGradeMultipleChoice(t *testing.T) {
	question := q(MultipleChoice, 4, `["a","b"]`)

	// 顺序无关，集合相等即满分
	r := gradeQuestion(question, json.RawMessage(`["b","a"]`))
	assert.True(t, r.IsCorrect)
	assert.Equal(t, 4, r.PointsEarned)

	// 少选：无部分分
	r = gradeQuestion(question, json.RawMessage(`["a"]`))
	assert.False(t, r.IsCorrect)
	assert.Equal(t, 0, r.PointsEarned)

	// 多选：0 分
	r = gradeQuestion(question, json.RawMessage(`["a","b","c"]`))
	assert.False(t, r.IsCorrect)
	assert.Equal(t, 0, r.PointsEarned)

	// 错选
	r = gradeQuestion(question, json.RawMessage(`["a","c"]`))
	assert.Equal(t, 0, r.PointsEarned)
}

func TestGradeOpenEnded(t *testing.T) {
	question := q(OpenEnded, 10, ``)

	r := gradeQuestion(question, json.RawMessage(`"我的论述"`))
	assert.False(t, r.IsCorrect)
	assert.Equal(t, 0, r.PointsEarned)
	assert.True(t, r.PendingReview)
}

func TestGradeFillInTheBlanks(t *testing.T) {
	question := q(FillInTheBlanks, 1, `{"b1":["Paris"],"b2":["Berlin"]}`)

	// 全对满分，忽略大小写与首尾空格
	r := gradeQuestion(question, json.RawMessage(`{"b1":" paris ","b2":"BERLIN"}`))
	assert.True(t, r.IsCorrect)
	assert.Equal(t, 1, r.PointsEarned)

	// 一半对：1 × 1/2 = 0.5，四舍五入到 1，但 isCorrect 为 false
	r = gradeQuestion(question, json.RawMessage(`{"b1":"paris","b2":"Munich"}`))
	assert.False(t, r.IsCorrect)
	assert.Equal(t, 1, r.PointsEarned)

	// 全错
	r = gradeQuestion(question, json.RawMessage(`{"b1":"London","b2":"Munich"}`))
	assert.Equal(t, 0, r.PointsEarned)
}

func TestGradeFillInTheBlanksCaseSensitive(t *testing.T) {
	question := q(FillInTheBlanks, 2, `{"b1":["Paris"]}`)
	question.Blanks = []Blank{{ID: "b1", CaseSensitive: true}}

	r := gradeQuestion(question, json.RawMessage(`{"b1":"paris"}`))
	assert.False(t, r.IsCorrect)
	assert.Equal(t, 0, r.PointsEarned)

	r = gradeQuestion(question, json.RawMessage(`{"b1":"Paris"}`))
	assert.True(t, r.IsCorrect)
	assert.Equal(t, 2, r.PointsEarned)
}

func TestGradeFillInTheBlanksLegacyFlat(t *testing.T) {
	// 旧版内容：correctAnswer 和答案都是扁平字符串
	question := q(FillInTheBlanks, 3, `"gopher"`)

	r := gradeQuestion(question, json.RawMessage(`" Gopher "`))
	assert.True(t, r.IsCorrect)
	assert.Equal(t, 3, r.PointsEarned)

	r = gradeQuestion(question, json.RawMessage(`"python"`))
	assert.Equal(t, 0, r.PointsEarned)
}

func TestGradeSortAnswer(t *testing.T) {
	question := q(SortAnswer, 1, `["a","b","c"]`)

	r := gradeQuestion(question, json.RawMessage(`["a","b","c"]`))
	assert.True(t, r.IsCorrect)
	assert.Equal(t, 1, r.PointsEarned)

	// [a,c,b]：只有位置 0 对，1 × 1/3 ≈ 0.33，舍入到 0
	r = gradeQuestion(question, json.RawMessage(`["a","c","b"]`))
	assert.False(t, r.IsCorrect)
	assert.Equal(t, 0, r.PointsEarned)

	// 缺项不算满分
	r = gradeQuestion(question, json.RawMessage(`["a","b"]`))
	assert.False(t, r.IsCorrect)
}

func TestGradeSortAnswerPartialPoints(t *testing.T) {
	question := q(SortAnswer, 3, `["a","b","c"]`)

	// 两个位置对：3 × 2/3 = 2
	r := gradeQuestion(question, json.RawMessage(`["a","b","x"]`))
	assert.False(t, r.IsCorrect)
	assert.Equal(t, 2, r.PointsEarned)
}

func TestGradeMatching(t *testing.T) {
	question := q(Matching, 3, `{"l1":"r1","l2":"r2","l3":"r3"}`)

	r := gradeQuestion(question, json.RawMessage(`{"l1":"r1","l2":"r2","l3":"r3"}`))
	assert.True(t, r.IsCorrect)
	assert.Equal(t, 3, r.PointsEarned)

	// 两对正确：3 × 2/3 = 2
	r = gradeQuestion(question, json.RawMessage(`{"l1":"r1","l2":"r2","l3":"r1"}`))
	assert.False(t, r.IsCorrect)
	assert.Equal(t, 2, r.PointsEarned)

	// 未分配的左项按错处理
	r = gradeQuestion(question, json.RawMessage(`{"l1":"r1"}`))
	assert.Equal(t, 1, r.PointsEarned)
}

func TestGradeImageMatching(t *testing.T) {
	question := q(ImageMatching, 2, `{"p1":"Cat","p2":"Dog"}`)

	// 大小写与空格不敏感
	r := gradeQuestion(question, json.RawMessage(`{"p1":" cat","p2":"DOG "}`))
	assert.True(t, r.IsCorrect)
	assert.Equal(t, 2, r.PointsEarned)

	// 一半对：2 × 1/2 = 1
	r = gradeQuestion(question, json.RawMessage(`{"p1":"cat","p2":"bird"}`))
	assert.False(t, r.IsCorrect)
	assert.Equal(t, 1, r.PointsEarned)
}

func TestGradeUnknownType(t *testing.T) {
	question := q(QuestionType("essay_v2"), 5, `"x"`)

	r := gradeQuestion(question, json.RawMessage(`"x"`))
	assert.False(t, r.IsCorrect)
	assert.Equal(t, 0, r.PointsEarned)
}

func TestGradeMalformedCorrectAnswer(t *testing.T) {
	// correctAnswer 形状与题型不符时降级为 0 分，不 panic
	cases := []*Question{
		q(TrueFalse, 5, `"not-a-bool"`),
		q(SingleChoice, 5, `[1,2]`),
		q(MultipleChoice, 5, `"a"`),
		q(SortAnswer, 5, `{"a":1}`),
		q(Matching, 5, `["x"]`),
		q(ImageMatching, 5, `42`),
		q(FillInTheBlanks, 5, `12.5`),
	}
	answers := json.RawMessage(`{"any":"thing"}`)
	for _, question := range cases {
		r := gradeQuestion(question, answers)
		assert.Equal(t, 0, r.PointsEarned, "type %s", question.Type)
		assert.False(t, r.IsCorrect, "type %s", question.Type)
	}
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 0, roundHalfUp(0.4))
	assert.Equal(t, 1, roundHalfUp(0.5))
	assert.Equal(t, 1, roundHalfUp(0.99))
	assert.Equal(t, 2, roundHalfUp(1.5))
	assert.Equal(t, 0, roundHalfUp(0.33))
}
