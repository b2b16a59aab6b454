package quiz

import (
	"encoding/json"
	"math"
	"strings"
)

// gradeFunc 单题评分：给定题目与该题的原始答案，返回正误与得分。
// 所有实现都必须吸收形状不匹配的输入（按 0 分处理），绝不 panic，
// 保证一道坏题不会中断整卷评分。
type gradeFunc func(q *Question, raw json.RawMessage) QuestionResult

var graders = map[QuestionType]gradeFunc{
	TrueFalse:       gradeTrueFalse,
	SingleChoice:    gradeSingleChoice,
	MultipleChoice:  gradeMultipleChoice,
	OpenEnded:       gradeOpenEnded,
	FillInTheBlanks: gradeFillInTheBlanks,
	SortAnswer:      gradeSortAnswer,
	Matching:        gradeMatching,
	ImageMatching:   gradeImageMatching,
}

// gradeQuestion 按题目类型分发。未知类型降级为 0 分
func gradeQuestion(q *Question, raw json.RawMessage) QuestionResult {
	fn, ok := graders[q.Type]
	if !ok {
		return QuestionResult{}
	}
	return fn(q, raw)
}

// roundHalfUp 四舍五入到整数分。部分得分在每题内独立舍入，
// 总分是已舍入的单题分之和
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// partialPoints 按正确数量占比给部分分
func partialPoints(points, correct, total int) int {
	if total <= 0 {
		return 0
	}
	return roundHalfUp(float64(points) * float64(correct) / float64(total))
}

func fullCredit(q *Question) QuestionResult {
	return QuestionResult{IsCorrect: true, PointsEarned: q.Points}
}

func gradeTrueFalse(q *Question, raw json.RawMessage) QuestionResult {
	var want, got bool
	if json.Unmarshal(q.CorrectAnswer, &want) != nil {
		return QuestionResult{}
	}
	if json.Unmarshal(raw, &got) != nil {
		return QuestionResult{}
	}
	if got == want {
		return fullCredit(q)
	}
	return QuestionResult{}
}

func gradeSingleChoice(q *Question, raw json.RawMessage) QuestionResult {
	var want, got string
	if json.Unmarshal(q.CorrectAnswer, &want) != nil || want == "" {
		return QuestionResult{}
	}
	if json.Unmarshal(raw, &got) != nil {
		return QuestionResult{}
	}
	if got == want {
		return fullCredit(q)
	}
	return QuestionResult{}
}

// gradeMultipleChoice 集合相等才满分，无部分分：
// 数量一致且学生选的每一项都在正确集合内
func gradeMultipleChoice(q *Question, raw json.RawMessage) QuestionResult {
	var wantList, gotList []string
	if json.Unmarshal(q.CorrectAnswer, &wantList) != nil || len(wantList) == 0 {
		return QuestionResult{}
	}
	if json.Unmarshal(raw, &gotList) != nil {
		return QuestionResult{}
	}

	want := make(map[string]bool, len(wantList))
	for _, id := range wantList {
		want[id] = true
	}
	got := make(map[string]bool, len(gotList))
	for _, id := range gotList {
		got[id] = true
	}

	if len(got) != len(want) {
		return QuestionResult{}
	}
	for id := range got {
		if !want[id] {
			return QuestionResult{}
		}
	}
	return fullCredit(q)
}

// gradeOpenEnded 开放题不做自动评分，标记等待人工评阅
func gradeOpenEnded(q *Question, raw json.RawMessage) QuestionResult {
	return QuestionResult{PendingReview: true}
}

// gradeFillInTheBlanks 逐空比对。每个空位有自己的 caseSensitive 开关，
// 学生文本去除首尾空格后与任一可接受答案相等即算对。
// 部分分 = round(points × 对的空数 / 总空数)，全对才算 isCorrect。
// 兼容旧版内容：答案为扁平字符串时，与 correctAnswer 的扁平字符串做
// 一次忽略大小写的比对
func gradeFillInTheBlanks(q *Question, raw json.RawMessage) QuestionResult {
	var got map[string]string
	if json.Unmarshal(raw, &got) != nil {
		return gradeFlatBlank(q, raw)
	}

	var want map[string][]string
	if json.Unmarshal(q.CorrectAnswer, &want) != nil || len(want) == 0 {
		return QuestionResult{}
	}

	caseSensitive := make(map[string]bool, len(q.Blanks))
	for _, b := range q.Blanks {
		caseSensitive[b.ID] = b.CaseSensitive
	}

	correct := 0
	for blankID, acceptable := range want {
		text := strings.TrimSpace(got[blankID])
		for _, a := range acceptable {
			a = strings.TrimSpace(a)
			if caseSensitive[blankID] {
				if text == a {
					correct++
					break
				}
			} else if strings.EqualFold(text, a) {
				correct++
				break
			}
		}
	}

	total := len(want)
	if correct == total {
		return fullCredit(q)
	}
	return QuestionResult{PointsEarned: partialPoints(q.Points, correct, total)}
}

func gradeFlatBlank(q *Question, raw json.RawMessage) QuestionResult {
	var got, want string
	if json.Unmarshal(raw, &got) != nil {
		return QuestionResult{}
	}
	if json.Unmarshal(q.CorrectAnswer, &want) != nil || want == "" {
		return QuestionResult{}
	}
	if strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(want)) {
		return fullCredit(q)
	}
	return QuestionResult{}
}

// gradeSortAnswer 按位置比对。完全一致满分；否则按对的位置数给部分分，
// 但 isCorrect 一律为 false
func gradeSortAnswer(q *Question, raw json.RawMessage) QuestionResult {
	var want, got []string
	if json.Unmarshal(q.CorrectAnswer, &want) != nil || len(want) == 0 {
		return QuestionResult{}
	}
	if json.Unmarshal(raw, &got) != nil {
		return QuestionResult{}
	}

	correct := 0
	for i, id := range want {
		if i < len(got) && got[i] == id {
			correct++
		}
	}
	if correct == len(want) && len(got) == len(want) {
		return fullCredit(q)
	}
	return QuestionResult{PointsEarned: partialPoints(q.Points, correct, len(want))}
}

// gradeMatching 逐左项比对学生分配的右项。部分分按对的配对数给，
// 全对才算 isCorrect
func gradeMatching(q *Question, raw json.RawMessage) QuestionResult {
	var want, got map[string]string
	if json.Unmarshal(q.CorrectAnswer, &want) != nil || len(want) == 0 {
		return QuestionResult{}
	}
	if json.Unmarshal(raw, &got) != nil {
		return QuestionResult{}
	}

	correct := 0
	for leftID, rightID := range want {
		if got[leftID] == rightID {
			correct++
		}
	}
	if correct == len(want) {
		return fullCredit(q)
	}
	return QuestionResult{PointsEarned: partialPoints(q.Points, correct, len(want))}
}

// gradeImageMatching 学生为每张图片填写的文本，去空格并转小写后
// 与期望文本比对
func gradeImageMatching(q *Question, raw json.RawMessage) QuestionResult {
	var want, got map[string]string
	if json.Unmarshal(q.CorrectAnswer, &want) != nil || len(want) == 0 {
		return QuestionResult{}
	}
	if json.Unmarshal(raw, &got) != nil {
		return QuestionResult{}
	}

	correct := 0
	for pairID, expected := range want {
		if normalizeText(got[pairID]) == normalizeText(expected) {
			correct++
		}
	}
	if correct == len(want) {
		return fullCredit(q)
	}
	return QuestionResult{PointsEarned: partialPoints(q.Points, correct, len(want))}
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
