package model

// HistoryRow mirrors the sheet's flat 9-column layout for the mysql history
// store. Score, correct, total and archived stay strings so that "ungraded"
// and "not archived" are blank cells in both backends.
type HistoryRow struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	UserID      string `gorm:"size:191;index"`
	DateLabel   string `gorm:"size:32"`
	Title       string `gorm:"type:text"`
	Score       string `gorm:"size:8"`
	Correct     string `gorm:"size:8"`
	Total       string `gorm:"size:8"`
	QuizData    string `gorm:"type:longtext"`
	SummaryData string `gorm:"type:longtext"`
	Archived    string `gorm:"size:8"`
}

func (HistoryRow) TableName() string {
	return "study_history"
}
