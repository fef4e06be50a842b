package controllers

import (
	"github.com/gofiber/fiber/v2"

	"iqscaler/backend/services"
)

type ConfigController struct {
	Configs *services.ConfigService
}

func NewConfigController(configs *services.ConfigService) *ConfigController {
	return &ConfigController{Configs: configs}
}

// GetTestConfig godoc
// @Summary Get the live test configuration
// @Description Creates the default configuration on first read.
// @Tags config
// @Produce json
// @Success 200 {object} models.TestConfig
// @Router /config/test [get]
func (cc *ConfigController) GetTestConfig(c *fiber.Ctx) error {
	cfg, err := cc.Configs.Get(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(cfg)
}

// UpdateTestConfig godoc
// @Summary Update the test configuration (admin)
// @Tags config
// @Accept json
// @Produce json
// @Param request body services.UpdateConfigInput true "Fields to change"
// @Success 200 {object} models.TestConfig
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /config/test [put]
// @Security ApiKeyAuth
func (cc *ConfigController) UpdateTestConfig(c *fiber.Ctx) error {
	var input services.UpdateConfigInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	cfg, err := cc.Configs.Update(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.JSON(cfg)
}
