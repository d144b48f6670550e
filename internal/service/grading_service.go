package service

import (
	"strings"
	"unicode"

	"studyquiz_backend/internal/model"
)

// GradingService scores a submitted quiz against the stored reference
// answers. Matching is textual only: no partial credit, no alternative
// answers, no semantic judgment.
type GradingService struct{}

func NewGradingService() *GradingService {
	return &GradingService{}
}

// NormalizeAnswer canonicalizes free-text answers so cosmetic differences do
// not fail a grade: lower-case, all whitespace removed (including U+3000),
// and the ・ 、 。 marks stripped. Total over any input and idempotent.
func NormalizeAnswer(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		switch r {
		case '・', '、', '。':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// GradeSummary aggregates one grading pass. Wrong holds the missed items in
// quiz order for the retry feature.
type GradeSummary struct {
	Correct int              `json:"correct"`
	Total   int              `json:"total"`
	Score   int              `json:"score"`
	Wrong   []model.QuizItem `json:"-"`
}

// Grade annotates each item in place with the submitted answer and its
// correctness, then returns the aggregate. answers maps item index to the
// raw submitted text; missing indexes grade as an empty submission.
func (g *GradingService) Grade(items []model.QuizItem, answers map[int]string) GradeSummary {
	summary := GradeSummary{Total: len(items)}

	for i := range items {
		ans := answers[i]
		correct := NormalizeAnswer(ans) == NormalizeAnswer(items[i].Answer)

		items[i].UserAns = ans
		items[i].IsCorrect = &correct

		if correct {
			summary.Correct++
		} else {
			summary.Wrong = append(summary.Wrong, items[i])
		}
	}

	if summary.Total > 0 {
		summary.Score = 100 * summary.Correct / summary.Total
	}
	return summary
}
