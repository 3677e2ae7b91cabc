package model

import "time"

// UnansweredIndex marks a question the student left blank. Blank answers
// earn zero credit; whether they also incur the negative-marks penalty is a
// grading-policy setting.
const UnansweredIndex = -1

// TestResult is written exactly once per submission and never updated or
// deleted; there is no mutation surface for it anywhere in the API.
// Answers are selected-option indices aligned positionally with the owning
// test's question sequence.
// swagger:model TestResult
type TestResult struct {
	BaseModel
	TestID           uint      `gorm:"index;type:bigint unsigned;not null" json:"testId"`
	StudentID        uint      `gorm:"index;type:bigint unsigned;not null" json:"studentId"`
	Answers          []int     `gorm:"serializer:json;type:json;not null" json:"answers"`
	Score            float64   `gorm:"not null" json:"score"`
	TotalQuestions   int       `gorm:"not null" json:"totalQuestions"`
	CorrectAnswers   int       `gorm:"not null" json:"correctAnswers"`
	TimeTakenSeconds int       `gorm:"default:0" json:"timeTakenSeconds"`
	StartedAt        time.Time `json:"startedAt"`
	CompletedAt      time.Time `json:"completedAt"`
}

func (TestResult) TableName() string {
	return "test_results"
}
