package models

import "time"

// Breakdown counts correct answers per difficulty tier.
type Breakdown map[Difficulty]int

func NewBreakdown() Breakdown {
	b := make(Breakdown, len(Difficulties))
	for _, d := range Difficulties {
		b[d] = 0
	}
	return b
}

type Result struct {
	ID                   string       `gorm:"primaryKey;size:36" bson:"_id" json:"_id"`
	UserID               string       `gorm:"size:36;index;not null" bson:"user" json:"userId"`
	User                 *UserSummary `gorm:"-" bson:"-" json:"user,omitempty"`
	TotalScore           int          `gorm:"not null;default:0;index" bson:"totalScore" json:"totalScore"`
	QuestionsAttempted   int          `gorm:"not null" bson:"questionsAttempted" json:"questionsAttempted"`
	CorrectAnswers       int          `gorm:"not null" bson:"correctAnswers" json:"correctAnswers"`
	DifficultyBreakdown  Breakdown    `gorm:"serializer:json;type:text;not null" bson:"difficultyBreakdown" json:"difficultyBreakdown"`
	CertificatePurchased bool         `gorm:"not null;default:false" bson:"certificatePurchased" json:"certificatePurchased"`
	PaymentID            *string      `bson:"paymentId" json:"paymentId"`
	OrderID              *string      `bson:"orderId" json:"orderId"`
	CreatedAt            time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// OwnedBy reports whether the result belongs to userID.
func (r Result) OwnedBy(userID string) bool {
	return r.UserID != "" && r.UserID == userID
}

type LeaderboardEntry struct {
	UserID   string    `bson:"userId" json:"userId"`
	Username string    `bson:"username" json:"username"`
	MaxScore int       `bson:"maxScore" json:"maxScore"`
	TestDate time.Time `bson:"testDate" json:"testDate"`
}
