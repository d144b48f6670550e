package model

import (
	"encoding/json"
	"time"
)

// DefaultTitle is used whenever the AI response or a stored row carries no title.
const DefaultTitle = "無題"

// Date labels are generated at a fixed +9:00 offset and double as the row key
// together with user_id. Minute resolution, so two saves within the same minute
// collide; the original tool accepts that.
var jst = time.FixedZone("JST", 9*60*60)

const dateLabelLayout = "2006/01/02 15:04"

func NowDateLabel() string {
	return time.Now().In(jst).Format(dateLabelLayout)
}

// QuizItem is one question of a generated quiz. UserAns and IsCorrect are set
// by grading and travel with the record so past attempts can be reviewed.
type QuizItem struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
	UserAns     string   `json:"user_ans,omitempty"`
	IsCorrect   *bool    `json:"is_correct,omitempty"`
}

// IsChoice reports whether the item renders as multiple choice. A single
// option is not a real choice and degrades to free response.
func (q QuizItem) IsChoice() bool {
	return len(q.Options) >= 2
}

// ClearGrading drops the grading annotations, e.g. after the question text or
// answer was edited and the item must be re-graded.
func (q *QuizItem) ClearGrading() {
	q.UserAns = ""
	q.IsCorrect = nil
}

// HistoryRecord is one persisted quiz attempt. Score, Correct and Total are
// nil until the attempt has been graded; the store writes blank cells for them.
type HistoryRecord struct {
	UserID      string     `json:"user_id"`
	DateLabel   string     `json:"date"`
	Title       string     `json:"title"`
	Score       *int       `json:"score"`
	Correct     *int       `json:"correct"`
	Total       *int       `json:"total"`
	QuizData    []QuizItem `json:"quiz_data"`
	SummaryData string     `json:"summary_data"`
	Archived    bool       `json:"archived"`
}

// EncodeQuizItems serializes the quiz for the quiz_data column. A nil slice
// encodes as an empty JSON array so the cell never holds "null".
func EncodeQuizItems(items []QuizItem) string {
	if items == nil {
		items = []QuizItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeQuizItems parses a quiz_data cell. Corrupt JSON degrades to an empty
// quiz for that record instead of failing the whole history load.
func DecodeQuizItems(s string) []QuizItem {
	if s == "" {
		return []QuizItem{}
	}
	var items []QuizItem
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return []QuizItem{}
	}
	if items == nil {
		return []QuizItem{}
	}
	return items
}
