package model

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question is a single-choice question. CorrectAnswer is a zero-based index
// into Options; that is the only correct-answer representation the system
// accepts, enforced at the validation boundary.
//
// A question either belongs to a test (TestID set, created together with the
// test) or lives standalone in the subject question bank (TestID null).
// swagger:model Question
type Question struct {
	BaseModel
	TestID        *uint    `gorm:"index" json:"testId,omitempty"`
	Text          string   `gorm:"type:text;not null" json:"text"`
	Options       []string `gorm:"serializer:json;type:json;not null" json:"options"`
	CorrectAnswer int      `gorm:"not null" json:"correctAnswer"`
	SubjectID     string   `gorm:"size:64;index;not null" json:"subjectId"`
	TeacherID     uint     `gorm:"index;type:bigint unsigned" json:"teacherId"`
	Type          string   `gorm:"size:50;default:'single_choice'" json:"type"`
	Difficulty    string   `gorm:"size:20;default:'medium'" json:"difficulty"`
	Explanation   string   `gorm:"type:text" json:"explanation,omitempty"`
	ImageURL      string   `gorm:"size:255" json:"imageUrl,omitempty"`
	Marks         float64  `gorm:"default:1" json:"marks"`
	NegativeMarks float64  `gorm:"default:0" json:"negativeMarks"`
	OrderInTest   int      `gorm:"default:0" json:"orderInTest"`
}

func (Question) TableName() string {
	return "questions"
}
