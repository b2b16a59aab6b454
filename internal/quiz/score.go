package quiz

import "encoding/json"

// Score 对一次提交整卷评分。纯函数：同样的输入总是产生同样的结果，
// 每题独立评分，互不影响。
// 未作答的题目记 0 分；totalPoints 统计全部题目（含未作答）；
// totalPoints 为 0 时百分比定义为 0，不报错
func Score(content *Content, answers AnswerSet) *Result {
	per := make(map[string]QuestionResult, len(content.Questions))
	totalScore := 0
	totalPoints := 0

	for i := range content.Questions {
		q := &content.Questions[i]
		totalPoints += q.Points

		var r QuestionResult
		if raw, ok := answers[q.ID]; ok && !isNullJSON(raw) {
			r = gradeQuestion(q, raw)
		}
		per[q.ID] = r
		totalScore += r.PointsEarned
	}

	percentage := 0.0
	if totalPoints > 0 {
		percentage = float64(totalScore) / float64(totalPoints) * 100
	}

	return &Result{
		PerQuestion: per,
		TotalScore:  totalScore,
		TotalPoints: totalPoints,
		Percentage:  percentage,
		Passed:      percentage >= content.Settings.PassingScore,
	}
}

func isNullJSON(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
