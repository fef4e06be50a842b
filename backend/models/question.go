package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the tiers in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

var difficultyPoints = map[Difficulty]int{
	DifficultyEasy:   1,
	DifficultyMedium: 3,
	DifficultyHard:   6,
}

func (d Difficulty) Valid() bool {
	_, ok := difficultyPoints[d]
	return ok
}

// Points is the score a correct answer earns. Unknown tiers earn nothing.
func (d Difficulty) Points() int {
	return difficultyPoints[d]
}

type Option struct {
	Text     string `bson:"text" json:"text" validate:"required"`
	ImageURL string `bson:"imageUrl,omitempty" json:"imageUrl"`
}

type Question struct {
	ID                 string     `gorm:"primaryKey;size:36" bson:"_id" json:"_id"`
	Text               string     `gorm:"not null" bson:"text" json:"text"`
	ImageURL           string     `bson:"imageUrl,omitempty" json:"imageUrl"`
	Options            []Option   `gorm:"serializer:json;type:text;not null" bson:"options" json:"options"`
	CorrectAnswerIndex int        `gorm:"not null" bson:"correctAnswerIndex" json:"correctAnswerIndex"`
	Difficulty         Difficulty `gorm:"size:16;index;not null" bson:"difficulty" json:"difficulty"`
	Category           string     `gorm:"index;not null" bson:"category" json:"category"`
	UserID             string     `gorm:"size:36;index" bson:"user" json:"user"`
	CreatedAt          time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time  `bson:"updatedAt" json:"updatedAt"`
}
