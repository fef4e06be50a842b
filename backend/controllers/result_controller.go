package controllers

import (
	"github.com/gofiber/fiber/v2"

	"iqscaler/backend/services"
)

type ResultController struct {
	Results *services.ResultService
}

func NewResultController(results *services.ResultService) *ResultController {
	return &ResultController{Results: results}
}

// GetResult godoc
// @Summary Get one result (owner or admin)
// @Tags results
// @Produce json
// @Param id path string true "Result ID"
// @Success 200 {object} models.Result
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /results/{id} [get]
// @Security ApiKeyAuth
func (rc *ResultController) GetResult(c *fiber.Ctx) error {
	user, err := viewer(c)
	if err != nil {
		return err
	}
	res, err := rc.Results.Get(c.UserContext(), c.Params("id"), user)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (rc *ResultController) MyResults(c *fiber.Ctx) error {
	user, err := viewer(c)
	if err != nil {
		return err
	}
	results, err := rc.Results.Mine(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(results)
}

func (rc *ResultController) AllResults(c *fiber.Ctx) error {
	results, err := rc.Results.All(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(results)
}

// Leaderboard godoc
// @Summary Top five users by best score
// @Tags results
// @Produce json
// @Success 200 {array} models.LeaderboardEntry
// @Router /results/leaderboard [get]
func (rc *ResultController) Leaderboard(c *fiber.Ctx) error {
	entries, err := rc.Results.Leaderboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(entries)
}
