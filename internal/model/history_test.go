package model

import (
	"testing"
	"time"
)

func TestNowDateLabelFormat(t *testing.T) {
	label := NowDateLabel()
	parsed, err := time.ParseInLocation(dateLabelLayout, label, jst)
	if err != nil {
		t.Fatalf("label %q does not match layout: %v", label, err)
	}
	if time.Since(parsed) > 2*time.Minute {
		t.Errorf("label %q is not the current minute", label)
	}
}

func TestEncodeQuizItemsNeverNull(t *testing.T) {
	if got := EncodeQuizItems(nil); got != "[]" {
		t.Errorf("nil slice encoded as %q, want []", got)
	}
}

func TestQuizItemsRoundTrip(t *testing.T) {
	correct := true
	items := []QuizItem{
		{Question: "Q1", Options: []string{"a", "b"}, Answer: "a", Explanation: "e", UserAns: "a", IsCorrect: &correct},
		{Question: "Q2", Options: []string{}, Answer: "記述式"},
	}

	decoded := DecodeQuizItems(EncodeQuizItems(items))
	if len(decoded) != 2 {
		t.Fatalf("got %d items, want 2", len(decoded))
	}
	if decoded[0].UserAns != "a" || decoded[0].IsCorrect == nil || !*decoded[0].IsCorrect {
		t.Errorf("grading annotations lost: %+v", decoded[0])
	}
	if decoded[1].IsCorrect != nil {
		t.Error("ungraded item should decode with nil IsCorrect")
	}
}

func TestDecodeQuizItemsCorrupt(t *testing.T) {
	for _, in := range []string{"", "not json", "null", `{"question":"object not array"}`} {
		items := DecodeQuizItems(in)
		if items == nil || len(items) != 0 {
			t.Errorf("DecodeQuizItems(%q) = %#v, want empty slice", in, items)
		}
	}
}

func TestIsChoice(t *testing.T) {
	if (QuizItem{Options: []string{"only"}}).IsChoice() {
		t.Error("one option is not a choice")
	}
	if !(QuizItem{Options: []string{"a", "b"}}).IsChoice() {
		t.Error("two options should render as choice")
	}
}
