package model

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ValidDifficulty reports whether d is one of the three supported levels.
func ValidDifficulty(d Difficulty) bool {
	return d == Easy || d == Medium || d == Hard
}

// Question is a community-submitted multiple-choice question. Exactly one of
// its options is marked correct; this is enforced on creation, downstream
// readers tolerate violations.
// swagger:model Question
type Question struct {
	UUIDBase
	Description   string           `gorm:"type:text;not null" json:"description"`
	Options       []QuestionOption `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options"`
	Solution      string           `gorm:"type:text;not null" json:"solution"`
	Difficulty    Difficulty       `gorm:"type:enum('easy','medium','hard');not null" json:"difficulty"`
	Category      string           `gorm:"size:100;not null;index" json:"category"`
	SubmittedByID uint             `gorm:"index;type:bigint unsigned" json:"submittedById"`
	SubmittedBy   *User            `gorm:"foreignKey:SubmittedByID" json:"submittedBy,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model QuestionOption
type QuestionOption struct {
	UUIDBase
	QuestionID  string `gorm:"size:36;index;not null" json:"-"`
	Description string `gorm:"type:text;not null" json:"description"`
	IsCorrect   bool   `gorm:"not null" json:"isCorrect"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
