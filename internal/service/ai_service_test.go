package service_test

import (
	"errors"
	"testing"

	"studyquiz_backend/internal/model"
	"studyquiz_backend/internal/service"
	"studyquiz_backend/internal/util"
)

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"title":"T"}`, `{"title":"T"}`},
		{"fenced", "```json\n{\"title\":\"T\"}\n```", `{"title":"T"}`},
		{"prose around", "Here you go:\n{\"title\":\"T\"}\nHope it helps!", `{"title":"T"}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := service.ExtractJSONObject(c.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != c.want {
				t.Errorf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestExtractJSONObjectMalformed(t *testing.T) {
	for _, in := range []string{"", "no json here", "}{", "```json```"} {
		if _, err := service.ExtractJSONObject(in); !errors.Is(err, util.ErrMalformedResponse) {
			t.Errorf("ExtractJSONObject(%q) err = %v, want ErrMalformedResponse", in, err)
		}
	}
}

func TestParseQuizResponse(t *testing.T) {
	raw := "```json\n" + `{
		"title": "歴史クイズ",
		"quizzes": [
			{"question": "Q1", "options": ["a", "b", "c"], "answer": "a", "explanation": "e1"},
			{"question": "Q2", "options": [], "answer": "記述", "explanation": "e2"}
		]
	}` + "\n```"

	title, items, err := service.ParseQuizResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title != "歴史クイズ" {
		t.Errorf("title = %q", title)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if !items[0].IsChoice() {
		t.Error("item with 3 options should render as choice")
	}
	if items[1].IsChoice() {
		t.Error("item with empty options should be free response")
	}
}

func TestParseQuizResponseDefaults(t *testing.T) {
	title, items, err := service.ParseQuizResponse(`{"title":"","quizzes":null}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title != model.DefaultTitle {
		t.Errorf("blank title should fall back to %q, got %q", model.DefaultTitle, title)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("nil quizzes should decode as empty slice, got %#v", items)
	}
}

func TestParseQuizResponseMalformed(t *testing.T) {
	title, _, err := service.ParseQuizResponse("the model refused to answer")
	if !errors.Is(err, util.ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
	if title != model.DefaultTitle {
		t.Errorf("title on failure = %q, want default", title)
	}
}
