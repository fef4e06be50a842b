package controllers

import (
	"github.com/gofiber/fiber/v2"

	"iqscaler/backend/services"
	"iqscaler/backend/utils"
)

type PaymentController struct {
	Payments *services.PaymentGate
}

func NewPaymentController(payments *services.PaymentGate) *PaymentController {
	return &PaymentController{Payments: payments}
}

type priceResponse struct {
	Amount int64 `json:"amount"`
}

// GetPrice godoc
// @Summary Certificate price in the smallest currency unit
// @Tags payments
// @Produce json
// @Success 200 {object} priceResponse
// @Router /payments/price [get]
// @Security ApiKeyAuth
func (pc *PaymentController) GetPrice(c *fiber.Ctx) error {
	amount, err := pc.Payments.Price()
	if err != nil {
		return err
	}
	return c.JSON(priceResponse{Amount: amount})
}

// CreateOrder godoc
// @Summary Open a gateway order for a result's certificate
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} services.OrderResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /payments/create-order [post]
// @Security ApiKeyAuth
func (pc *PaymentController) CreateOrder(c *fiber.Ctx) error {
	user, err := viewer(c)
	if err != nil {
		return err
	}
	var req struct {
		ResultID string `json:"resultId"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}

	order, err := pc.Payments.CreateOrder(c.UserContext(), req.ResultID, user)
	if err != nil {
		return err
	}
	return c.JSON(order)
}

// VerifyPayment godoc
// @Summary Check the gateway signature and unlock the certificate
// @Tags payments
// @Accept json
// @Produce json
// @Param request body services.VerifyRequest true "Gateway callback fields"
// @Success 200 {object} services.VerifyResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /payments/verify [post]
// @Security ApiKeyAuth
func (pc *PaymentController) VerifyPayment(c *fiber.Ctx) error {
	var req services.VerifyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := pc.Payments.Verify(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (pc *PaymentController) MarkFailed(c *fiber.Ctx) error {
	var req struct {
		OrderID string `json:"orderId"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := pc.Payments.MarkFailed(c.UserContext(), req.OrderID); err != nil {
		return err
	}
	return utils.Message(c, "Payment marked as failed")
}

func (pc *PaymentController) History(c *fiber.Ctx) error {
	payments, err := pc.Payments.History(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(payments)
}
