package quiz

import "math/rand"

// StudentView 生成发给学生答题的视图：去掉 correctAnswer 等答案字段，
// 按设置乱序、截断题目数量。rng 由调用方注入，传 nil 则不乱序。
// 返回深拷贝，不修改传入的 Content
func StudentView(c *Content, rng *rand.Rand) *Content {
	questions := make([]Question, len(c.Questions))
	copy(questions, c.Questions)

	if c.Settings.RandomizeQuestions && rng != nil {
		rng.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}

	// maxQuestions 限制实际下发的题目数，0 表示不限制
	if max := c.Settings.MaxQuestions; max > 0 && len(questions) > max {
		questions = questions[:max]
	}

	for i := range questions {
		q := &questions[i]
		q.CorrectAnswer = nil
		q.Explanation = ""

		if q.Randomize && rng != nil && len(q.Options) > 1 {
			opts := make([]Option, len(q.Options))
			copy(opts, q.Options)
			rng.Shuffle(len(opts), func(a, b int) {
				opts[a], opts[b] = opts[b], opts[a]
			})
			q.Options = opts
		}

		// 图片匹配题的期望文本也属于答案，不能下发
		if len(q.ImageMatchingPairs) > 0 {
			pairs := make([]ImageMatchingPair, len(q.ImageMatchingPairs))
			copy(pairs, q.ImageMatchingPairs)
			for j := range pairs {
				pairs[j].Text = ""
			}
			q.ImageMatchingPairs = pairs
		}

		// 匹配题下发时右项乱序由前端处理，这里只保留配对素材
	}

	return &Content{
		Questions: questions,
		Settings:  c.Settings,
		Metadata:  ComputeMetadata(questions),
	}
}
