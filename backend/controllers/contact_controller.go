package controllers

import (
	"github.com/gofiber/fiber/v2"

	"iqscaler/backend/services"
	"iqscaler/backend/utils"
)

type ContactController struct {
	Contact *services.ContactService
}

func NewContactController(contact *services.ContactService) *ContactController {
	return &ContactController{Contact: contact}
}

// SendMessage godoc
// @Summary Forward a contact-form message to the admin
// @Tags contact
// @Accept json
// @Produce json
// @Param request body services.ContactInput true "Message"
// @Success 200 {object} utils.MessageResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /contact [post]
func (cc *ContactController) SendMessage(c *fiber.Ctx) error {
	var input services.ContactInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	if err := cc.Contact.Send(c.UserContext(), input); err != nil {
		return err
	}
	return utils.Message(c, "Message sent successfully. We will respond shortly.")
}
