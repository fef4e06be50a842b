package services

import (
	"context"
	"log"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"iqscaler/backend/apperror"
	"iqscaler/backend/config"
	"iqscaler/backend/gateway"
	"iqscaler/backend/models"
	"iqscaler/backend/store"
)

// Razorpay caps receipts at 40 characters.
const maxReceiptLen = 40

type OrderResponse struct {
	OrderID   string `json:"orderId"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	KeyID     string `json:"keyId"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

type VerifyRequest struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
	ResultID  string `json:"resultId" validate:"required"`
}

type VerifyResponse struct {
	Success       bool          `json:"success"`
	Verified      bool          `json:"verified"`
	ResultDetails models.Result `json:"resultDetails"`
}

// PaymentGate guards certificate purchases: orders are created with the
// gateway, and only a verified signature unlocks the result.
type PaymentGate struct {
	results  store.Results
	payments store.Payments
	gateway  gateway.Gateway
	cfg      *config.Config
	logger   *log.Logger
}

func NewPaymentGate(results store.Results, payments store.Payments, gw gateway.Gateway, cfg *config.Config, logger *log.Logger) *PaymentGate {
	return &PaymentGate{results: results, payments: payments, gateway: gw, cfg: cfg, logger: logger}
}

func (g *PaymentGate) Price() (int64, error) {
	if g.cfg.CertificatePrice <= 0 {
		return 0, errors.WithStack(ErrPriceNotConfigured)
	}
	return g.cfg.CertificatePrice, nil
}

func receiptFor(resultID string) string {
	r := "receipt_" + resultID
	if len(r) > maxReceiptLen {
		r = r[:maxReceiptLen]
	}
	return r
}

func (g *PaymentGate) CreateOrder(ctx context.Context, resultID string, buyer models.User) (OrderResponse, error) {
	if resultID == "" {
		return OrderResponse{}, apperror.Validation("resultId is required")
	}
	price, err := g.Price()
	if err != nil {
		return OrderResponse{}, err
	}
	if _, err := g.results.Get(ctx, resultID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return OrderResponse{}, errors.WithStack(ErrResultNotFound)
		}
		return OrderResponse{}, errors.Wrap(err, "load result")
	}

	order, err := g.gateway.CreateOrder(ctx, gateway.OrderRequest{
		Amount:   price,
		Currency: g.cfg.Currency,
		Receipt:  receiptFor(resultID),
		Notes:    map[string]string{"resultId": resultID, "userId": buyer.ID},
	})
	if err != nil {
		return OrderResponse{}, apperror.Upstream("Could not create payment order.", err)
	}

	payment := models.Payment{
		UserID:          buyer.ID,
		ResultID:        resultID,
		RazorpayOrderID: order.ID,
		Amount:          decimal.New(price, -2),
		Status:          models.PaymentPending,
	}
	if err := g.payments.Create(ctx, &payment); err != nil {
		return OrderResponse{}, errors.Wrap(err, "record payment")
	}

	return OrderResponse{
		OrderID:   order.ID,
		Amount:    price,
		Currency:  g.cfg.Currency,
		KeyID:     g.cfg.RazorpayKeyID,
		UserName:  buyer.Username,
		UserEmail: buyer.Email,
	}, nil
}

// Verify checks the checkout signature. A mismatch fails the payment and
// leaves the result untouched; a valid signature for an order opened on a
// different result is rejected without touching either.
func (g *PaymentGate) Verify(ctx context.Context, req VerifyRequest) (VerifyResponse, error) {
	if err := validateStruct(req); err != nil {
		return VerifyResponse{}, err
	}

	if !gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature, g.cfg.RazorpayKeySecret) {
		failed, err := g.payments.MarkFailed(ctx, req.OrderID)
		if err != nil {
			return VerifyResponse{}, errors.Wrap(err, "mark payment failed")
		}
		g.logger.Printf("payment signature mismatch for order %s (payment row updated: %t)", req.OrderID, failed)
		return VerifyResponse{}, errors.WithStack(ErrVerificationFailed)
	}

	// The signature only covers the order, so the order must belong to the
	// result being unlocked.
	payment, err := g.payments.FindByOrderID(ctx, req.OrderID)
	if errors.Is(err, store.ErrNotFound) {
		g.logger.Printf("verified order %s has no payment record", req.OrderID)
		return VerifyResponse{}, errors.WithStack(ErrVerificationFailed)
	}
	if err != nil {
		return VerifyResponse{}, errors.Wrap(err, "load payment")
	}
	if payment.ResultID != req.ResultID {
		g.logger.Printf("order %s was opened for result %s, not %s", req.OrderID, payment.ResultID, req.ResultID)
		return VerifyResponse{}, errors.WithStack(ErrVerificationFailed)
	}

	result, updated, err := g.results.ConfirmPurchase(ctx, req.ResultID, req.OrderID, req.PaymentID)
	if errors.Is(err, store.ErrNotFound) {
		return VerifyResponse{}, errors.WithStack(ErrResultNotFound)
	}
	if err != nil {
		return VerifyResponse{}, errors.Wrap(err, "confirm purchase")
	}
	if !updated {
		g.logger.Printf("order %s verified but no pending payment row; payment log unchanged", req.OrderID)
	}

	return VerifyResponse{Success: true, Verified: true, ResultDetails: result}, nil
}

func (g *PaymentGate) MarkFailed(ctx context.Context, orderID string) error {
	if orderID == "" {
		return apperror.Validation("orderId is required")
	}
	updated, err := g.payments.MarkFailed(ctx, orderID)
	if err != nil {
		return errors.Wrap(err, "mark payment failed")
	}
	if !updated {
		g.logger.Printf("mark failed ignored for order %s: not pending", orderID)
	}
	return nil
}

func (g *PaymentGate) History(ctx context.Context) ([]models.Payment, error) {
	out, err := g.payments.List(ctx)
	return out, errors.Wrap(err, "list payments")
}
