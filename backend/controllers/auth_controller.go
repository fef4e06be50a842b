package controllers

import (
	"github.com/gofiber/fiber/v2"

	"iqscaler/backend/config"
	"iqscaler/backend/services"
	"iqscaler/backend/utils"
)

type AuthController struct {
	Users *services.UserService
	Cfg   *config.Config
}

func NewAuthController(users *services.UserService, cfg *config.Config) *AuthController {
	return &AuthController{Users: users, Cfg: cfg}
}

type resetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param user body services.RegisterInput true "Registration data"
// @Success 201 {object} services.AuthResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /users [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	resp, err := ac.Users.Register(c.UserContext(), input)
	if err != nil {
		return err
	}
	return utils.Created(c, resp)
}

// Login godoc
// @Summary Authenticate and get a token
// @Tags users
// @Accept json
// @Produce json
// @Param request body services.LoginInput true "Credentials"
// @Success 200 {object} services.AuthResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /users/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	resp, err := ac.Users.Login(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ForgotPassword godoc
// @Summary Email a password reset link
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} resetResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /users/forgotpassword [post]
func (ac *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := parseBody(c, &input); err != nil {
		return err
	}

	if err := ac.Users.ForgotPassword(c.UserContext(), input.Email, publicBaseURL(c, ac.Cfg)); err != nil {
		return err
	}
	return c.JSON(resetResponse{Success: true, Message: "Reset token sent to email."})
}

// ResetPassword godoc
// @Summary Set a new password with a reset token
// @Tags users
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body services.ResetInput true "New password"
// @Success 200 {object} resetResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /users/resetpassword/{token} [put]
func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	var input services.ResetInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	if err := ac.Users.ResetPassword(c.UserContext(), c.Params("token"), input); err != nil {
		return err
	}
	return c.JSON(resetResponse{Success: true, Message: "Password reset successfully. You can now log in."})
}
