package model

import "time"

// Test owns its question sequence: questions are created inside the same
// transaction as the test and ordered by OrderInTest.
// swagger:model Test
type Test struct {
	BaseModel
	Title           string     `gorm:"size:255;not null" json:"title"`
	Instructions    string     `gorm:"type:text" json:"instructions"`
	SubjectID       string     `gorm:"size:64;index;not null" json:"subjectId"`
	TeacherID       uint       `gorm:"index;type:bigint unsigned" json:"teacherId"`
	Questions       []Question `gorm:"foreignKey:TestID" json:"questions,omitempty"`
	DurationMinutes int        `gorm:"not null" json:"durationMinutes"`
	TotalMarks      float64    `gorm:"default:0" json:"totalMarks"`
	IsActive        bool       `gorm:"default:true;index" json:"isActive"`
	ScheduledAt     *time.Time `json:"scheduledAt,omitempty"`
	EndAt           *time.Time `json:"endAt,omitempty"`
	AllowLate       bool       `gorm:"default:false" json:"allowLate"`
	EasyCount       int        `gorm:"default:0" json:"easyCount"`
	MediumCount     int        `gorm:"default:0" json:"mediumCount"`
	HardCount       int        `gorm:"default:0" json:"hardCount"`
}

func (Test) TableName() string {
	return "tests"
}
