package controllers

import (
	"github.com/gofiber/fiber/v2"

	"iqscaler/backend/services"
	"iqscaler/backend/utils"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponse
// @Router /users/profile [get]
// @Security ApiKeyAuth
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	user, err := viewer(c)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// ListUsers godoc
// @Summary List all users (admin)
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /users [get]
// @Security ApiKeyAuth
func (uc *UserController) ListUsers(c *fiber.Ctx) error {
	users, err := uc.Users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (uc *UserController) GetUser(c *fiber.Ctx) error {
	user, err := uc.Users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// UpdateUser godoc
// @Summary Update a user (admin)
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body services.UpdateUserInput true "Fields to change"
// @Success 200 {object} models.User
// @Failure 404 {object} utils.ErrorResponse
// @Router /users/{id} [put]
// @Security ApiKeyAuth
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	var input services.UpdateUserInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	user, err := uc.Users.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// DeleteUser godoc
// @Summary Delete a non-admin user (admin)
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.MessageResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /users/{id} [delete]
// @Security ApiKeyAuth
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	if err := uc.Users.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return utils.Message(c, "User removed")
}
