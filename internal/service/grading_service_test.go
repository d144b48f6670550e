package service_test

import (
	"testing"

	"studyquiz_backend/internal/model"
	"studyquiz_backend/internal/service"
)

func TestNormalizeAnswer(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  猫 ", "猫"},
		{"ネコ・いぬ", "ネコいぬ"},
		{"答え。", "答え"},
		{"Tokyo Tower", "tokyotower"},
		{"とうきょう　タワー", "とうきょうタワー"},
		{"PARIS", "paris"},
		{"", ""},
	}
	for _, c := range cases {
		if got := service.NormalizeAnswer(c.in); got != c.want {
			t.Errorf("NormalizeAnswer(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeAnswerIdempotent(t *testing.T) {
	inputs := []string{"  猫 ", "ネコ・いぬ", "Tokyo Tower", "混ぜた、もの。です"}
	for _, in := range inputs {
		once := service.NormalizeAnswer(in)
		twice := service.NormalizeAnswer(once)
		if once != twice {
			t.Errorf("normalization not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestGradeScoring(t *testing.T) {
	g := service.NewGradingService()

	items := []model.QuizItem{
		{Question: "2+2は?", Answer: "4"},
		{Question: "首都は?", Answer: "Paris"},
		{Question: "色は?", Answer: "赤"},
		{Question: "動物は?", Answer: "犬"},
	}
	answers := map[int]string{
		0: " 4 ",
		1: "paris",
		2: "青",
		// index 3 not submitted
	}

	sum := g.Grade(items, answers)

	if sum.Total != 4 || sum.Correct != 2 || sum.Score != 50 {
		t.Fatalf("got correct=%d total=%d score=%d, want 2/4 score 50", sum.Correct, sum.Total, sum.Score)
	}
	if len(sum.Wrong) != 2 {
		t.Fatalf("got %d wrong items, want 2", len(sum.Wrong))
	}

	if items[0].IsCorrect == nil || !*items[0].IsCorrect {
		t.Error("item 0 should be graded correct")
	}
	if items[3].IsCorrect == nil || *items[3].IsCorrect {
		t.Error("unanswered item should be graded incorrect")
	}
	if items[1].UserAns != "paris" {
		t.Errorf("submitted answer not recorded: got %q", items[1].UserAns)
	}
}

func TestGradeScoreFloors(t *testing.T) {
	g := service.NewGradingService()

	items := []model.QuizItem{
		{Question: "a", Answer: "x"},
		{Question: "b", Answer: "x"},
		{Question: "c", Answer: "x"},
		{Question: "d", Answer: "x"},
	}
	sum := g.Grade(items, map[int]string{0: "x", 1: "x", 2: "x"})
	if sum.Score != 75 {
		t.Errorf("3/4 should floor to 75, got %d", sum.Score)
	}
}

func TestGradeEmptyQuiz(t *testing.T) {
	g := service.NewGradingService()
	sum := g.Grade(nil, nil)
	if sum.Score != 0 || sum.Total != 0 || sum.Correct != 0 {
		t.Errorf("empty quiz should grade 0/0 score 0, got %+v", sum)
	}
}
