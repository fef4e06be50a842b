package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentSuccess PaymentStatus = "Success"
	PaymentFailed  PaymentStatus = "Failed"
)

// Payment logs one gateway order. Status leaves Pending exactly once.
type Payment struct {
	ID                string          `gorm:"primaryKey;size:36" bson:"_id" json:"_id"`
	UserID            string          `gorm:"size:36;index;not null" bson:"user" json:"userId"`
	User              *UserSummary    `gorm:"-" bson:"-" json:"user,omitempty"`
	ResultID          string          `gorm:"size:36;index;not null" bson:"result" json:"result"`
	RazorpayOrderID   string          `gorm:"uniqueIndex;not null" bson:"razorpayOrderId" json:"razorpayOrderId"`
	RazorpayPaymentID *string         `bson:"razorpayPaymentId" json:"razorpayPaymentId"`
	Amount            decimal.Decimal `gorm:"type:decimal(10,2);not null" bson:"amount" json:"amount"`
	Status            PaymentStatus   `gorm:"size:16;not null;default:Pending;index" bson:"status" json:"status"`
	CreatedAt         time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time       `bson:"updatedAt" json:"updatedAt"`
}
