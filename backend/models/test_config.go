package models

import "time"

const DefaultTestConfigName = "Default IQ Test Configuration"

type DifficultyCount struct {
	Difficulty Difficulty `bson:"difficulty" json:"difficulty" validate:"required,oneof=easy medium hard"`
	Count      int        `bson:"count" json:"count" validate:"gte=0"`
}

// TestConfig is the singleton describing how a test is assembled.
// The distribution sum is not required to match TotalQuestions; any
// shortfall is drawn from the whole pool.
type TestConfig struct {
	ID                     string            `gorm:"primaryKey;size:36" bson:"_id" json:"_id"`
	Name                   string            `gorm:"uniqueIndex;not null" bson:"name" json:"name"`
	DurationMinutes        int               `gorm:"not null" bson:"durationMinutes" json:"durationMinutes"`
	TotalQuestions         int               `gorm:"not null" bson:"totalQuestions" json:"totalQuestions"`
	DifficultyDistribution []DifficultyCount `gorm:"serializer:json;type:text" bson:"difficultyDistribution" json:"difficultyDistribution"`
	CreatedAt              time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time         `bson:"updatedAt" json:"updatedAt"`
}

func DefaultTestConfig() TestConfig {
	return TestConfig{
		Name:            DefaultTestConfigName,
		DurationMinutes: 15,
		TotalQuestions:  15,
		DifficultyDistribution: []DifficultyCount{
			{Difficulty: DifficultyEasy, Count: 5},
			{Difficulty: DifficultyMedium, Count: 5},
			{Difficulty: DifficultyHard, Count: 5},
		},
	}
}
