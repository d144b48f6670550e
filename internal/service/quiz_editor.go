package service

import (
	"strings"

	"studyquiz_backend/internal/model"
)

// Quiz editing between attempts: users prune AI mistakes, fix questions and
// add their own. All helpers are pure over the item slice; persistence
// happens on the next grade.

// RemoveQuizItems drops the items at the given indexes. Out-of-range and
// duplicate indexes are ignored.
func RemoveQuizItems(items []model.QuizItem, indexes []int) []model.QuizItem {
	drop := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		if i >= 0 && i < len(items) {
			drop[i] = true
		}
	}
	if len(drop) == 0 {
		return items
	}

	out := make([]model.QuizItem, 0, len(items)-len(drop))
	for i, item := range items {
		if !drop[i] {
			out = append(out, item)
		}
	}
	return out
}

// UpdateQuizItem replaces the item at idx. Grading annotations are cleared:
// an edited question must be re-graded. Returns false when idx is out of
// range or the question/answer would become empty.
func UpdateQuizItem(items []model.QuizItem, idx int, updated model.QuizItem) bool {
	if idx < 0 || idx >= len(items) {
		return false
	}
	if strings.TrimSpace(updated.Question) == "" || strings.TrimSpace(updated.Answer) == "" {
		return false
	}

	updated = sanitizeQuizItem(updated)
	updated.ClearGrading()
	items[idx] = updated
	return true
}

// DuplicateQuizItem appends a fresh copy of the item at idx, without its
// grading annotations.
func DuplicateQuizItem(items []model.QuizItem, idx int) []model.QuizItem {
	if idx < 0 || idx >= len(items) {
		return items
	}
	copied := sanitizeQuizItem(items[idx])
	copied.ClearGrading()
	return append(items, copied)
}

// AppendQuizItem adds a manual question. Returns the unchanged slice and
// false when the question or answer is empty.
func AppendQuizItem(items []model.QuizItem, item model.QuizItem) ([]model.QuizItem, bool) {
	if strings.TrimSpace(item.Question) == "" || strings.TrimSpace(item.Answer) == "" {
		return items, false
	}
	item = sanitizeQuizItem(item)
	item.ClearGrading()
	return append(items, item), true
}

// sanitizeQuizItem trims the text fields and collapses a degenerate option
// list: fewer than two options is not a real choice, so the item becomes
// free-response.
func sanitizeQuizItem(item model.QuizItem) model.QuizItem {
	item.Question = strings.TrimSpace(item.Question)
	item.Answer = strings.TrimSpace(item.Answer)
	item.Explanation = strings.TrimSpace(item.Explanation)

	var opts []string
	for _, o := range item.Options {
		if o = strings.TrimSpace(o); o != "" {
			opts = append(opts, o)
		}
	}
	if len(opts) < 2 {
		opts = []string{}
	}
	item.Options = opts
	return item
}

// ParseOptionLines splits user-entered choices, one per line or
// comma-separated on a single line.
func ParseOptionLines(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	sep := ","
	if strings.Contains(raw, "\n") {
		sep = "\n"
	}

	var opts []string
	for _, part := range strings.Split(raw, sep) {
		if part = strings.TrimSpace(part); part != "" {
			opts = append(opts, part)
		}
	}
	return opts
}
