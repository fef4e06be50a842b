package models

import (
	"time"
)

type User struct {
	ID                  string     `gorm:"primaryKey;size:36" bson:"_id" json:"_id"`
	Username            string     `gorm:"uniqueIndex;not null" bson:"username" json:"username"`
	Email               string     `gorm:"uniqueIndex;not null" bson:"email" json:"email"`
	PasswordHash        string     `gorm:"column:password;not null" bson:"password" json:"-"`
	IsAdmin             bool       `gorm:"not null;default:false" bson:"isAdmin" json:"isAdmin"`
	ResetPasswordToken  *string    `gorm:"index" bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpire *time.Time `bson:"resetPasswordExpire,omitempty" json:"-"`
	PasswordChangedAt   time.Time  `bson:"passwordChangedAt" json:"-"`
	CreatedAt           time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is the public projection attached to results and payments.
type UserSummary struct {
	ID       string `bson:"_id" json:"_id"`
	Username string `bson:"username" json:"username"`
	Email    string `bson:"email" json:"email"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}
