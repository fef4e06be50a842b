// Package gateway creates payment orders and checks the signatures the
// checkout widget returns.
package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"
	razorpay "github.com/razorpay/razorpay-go"
)

type OrderRequest struct {
	// Amount is in the smallest currency unit.
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

type Order struct {
	ID       string
	Amount   int64
	Currency string
}

type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (Order, error)
}

type Razorpay struct {
	client *razorpay.Client
}

func NewRazorpay(keyID, keySecret string) *Razorpay {
	return &Razorpay{client: razorpay.NewClient(keyID, keySecret)}
}

// CreateOrder calls the Orders API. The SDK has no context support, so ctx
// is only checked before the call.
func (r *Razorpay) CreateOrder(ctx context.Context, req OrderRequest) (Order, error) {
	if err := ctx.Err(); err != nil {
		return Order{}, errors.WithStack(err)
	}
	notes := make(map[string]interface{}, len(req.Notes))
	for k, v := range req.Notes {
		notes[k] = v
	}
	body, err := r.client.Order.Create(map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes":    notes,
	}, nil)
	if err != nil {
		return Order{}, errors.Wrap(err, "razorpay create order")
	}
	id, _ := body["id"].(string)
	if id == "" {
		return Order{}, errors.Errorf("razorpay create order: response without id: %v", body)
	}
	return Order{ID: id, Amount: req.Amount, Currency: req.Currency}, nil
}

// Sign returns the hex HMAC-SHA256 of "orderID|paymentID".
func Sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifySignature(orderID, paymentID, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(orderID, paymentID, secret)), []byte(signature))
}
