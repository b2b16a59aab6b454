package quiz

import "encoding/json"

// QuestionType 题目类型
type QuestionType string

const (
	TrueFalse       QuestionType = "true_false"
	SingleChoice    QuestionType = "single_choice"
	MultipleChoice  QuestionType = "multiple_choice"
	OpenEnded       QuestionType = "open_ended"
	FillInTheBlanks QuestionType = "fill_in_the_blanks"
	SortAnswer      QuestionType = "sort_answer"
	Matching        QuestionType = "matching"
	ImageMatching   QuestionType = "image_matching"
)

// KnownTypes 支持的题目类型集合
var KnownTypes = map[QuestionType]bool{
	TrueFalse:       true,
	SingleChoice:    true,
	MultipleChoice:  true,
	OpenEnded:       true,
	FillInTheBlanks: true,
	SortAnswer:      true,
	Matching:        true,
	ImageMatching:   true,
}

// 反馈模式
const (
	FeedbackDefault = "default"
	FeedbackReveal  = "reveal"
	FeedbackRetry   = "retry"
)

// Option 选择题选项
type Option struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Blank 填空题的一个空位，caseSensitive 控制该空位的比对是否区分大小写
type Blank struct {
	ID            string `json:"id"`
	Label         string `json:"label,omitempty"`
	CaseSensitive bool   `json:"caseSensitive"`
}

// SortItem 排序题的一个条目
type SortItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// MatchingPair 匹配题的左右项
type MatchingPair struct {
	LeftID string `json:"leftId"`
	Left   string `json:"left"`
	Right  string `json:"right"`
}

// ImageMatchingPair 图片匹配题：学生为每张图片填写文本
type ImageMatchingPair struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
	Text     string `json:"text,omitempty"`
}

// Question 测验题目。CorrectAnswer 的 JSON 形状由 Type 决定：
//
//	true_false         -> bool
//	single_choice      -> 选项ID字符串
//	multiple_choice    -> 选项ID数组
//	open_ended         -> 无（人工评阅）
//	fill_in_the_blanks -> 空位ID到可接受答案列表的映射（兼容旧版扁平字符串）
//	sort_answer        -> 按正确顺序排列的条目ID数组
//	matching           -> 左项ID到右项ID的映射
//	image_matching     -> 图片ID到期望文本的映射
type Question struct {
	ID                 string              `json:"id"`
	Type               QuestionType        `json:"type"`
	Prompt             string              `json:"prompt"`
	Points             int                 `json:"points"`
	Required           bool                `json:"required"`
	Randomize          bool                `json:"randomize"`
	Explanation        string              `json:"explanation,omitempty"`
	Options            []Option            `json:"options,omitempty"`
	Blanks             []Blank             `json:"blanks,omitempty"`
	SortItems          []SortItem          `json:"sortItems,omitempty"`
	MatchingPairs      []MatchingPair      `json:"matchingPairs,omitempty"`
	ImageMatchingPairs []ImageMatchingPair `json:"imageMatchingPairs,omitempty"`
	CorrectAnswer      json.RawMessage     `json:"correctAnswer,omitempty"`
}

// Settings 测验级配置。PassingScore 是百分比阈值
type Settings struct {
	PassingScore         float64 `json:"passingScore"`
	FeedbackMode         string  `json:"feedbackMode"`
	MaxAttempts          int     `json:"maxAttempts"`
	RandomizeQuestions   bool    `json:"randomizeQuestions"`
	MaxQuestions         int     `json:"maxQuestions"`
	TimeLimitMinutes     int     `json:"timeLimitMinutes"`
	QuestionLayout       string  `json:"questionLayout,omitempty"`
	QuestionsOrder       string  `json:"questionsOrder,omitempty"`
	HideQuestionNumber   bool    `json:"hideQuestionNumber"`
	ShortAnswerCharLimit int     `json:"shortAnswerCharLimit,omitempty"`
	EssayCharLimit       int     `json:"essayCharLimit,omitempty"`
}

// Metadata 由题目列表派生，保存时重新计算，从不采信客户端提交的值
type Metadata struct {
	TotalPoints   int `json:"totalPoints"`
	QuestionCount int `json:"questionCount"`
}

// Content 一个测验课时的完整内容
type Content struct {
	Questions []Question `json:"questions"`
	Settings  Settings   `json:"settings"`
	Metadata  Metadata   `json:"metadata"`
}

// AnswerSet 学生提交的原始答案，按题目ID索引，值的形状由题目类型决定
type AnswerSet map[string]json.RawMessage

// QuestionResult 单题评分结果
type QuestionResult struct {
	IsCorrect     bool `json:"isCorrect"`
	PointsEarned  int  `json:"pointsEarned"`
	PendingReview bool `json:"pendingReview,omitempty"`
}

// Result 整卷评分结果
type Result struct {
	PerQuestion map[string]QuestionResult `json:"perQuestion"`
	TotalScore  int                       `json:"totalScore"`
	TotalPoints int                       `json:"totalPoints"`
	Percentage  float64                   `json:"percentage"`
	Passed      bool                      `json:"passed"`
}

// ComputeMetadata 重新计算派生元数据（总分、题目数）
func ComputeMetadata(questions []Question) Metadata {
	m := Metadata{QuestionCount: len(questions)}
	for i := range questions {
		m.TotalPoints += questions[i].Points
	}
	return m
}
