package controllers

import (
	"github.com/gofiber/fiber/v2"

	"iqscaler/backend/services"
	"iqscaler/backend/utils"
)

type QuestionController struct {
	Questions *services.QuestionService
	Assembler *services.Assembler
	Scorer    *services.Scorer
}

func NewQuestionController(svc *services.Services) *QuestionController {
	return &QuestionController{Questions: svc.Questions, Assembler: svc.Assembler, Scorer: svc.Scorer}
}

type submitRequest struct {
	UserAnswers []services.Answer `json:"userAnswers"`
}

// GetTest godoc
// @Summary Assemble a randomized test
// @Description Draws questions per the live configuration. Answer keys are stripped.
// @Tags questions
// @Produce json
// @Success 200 {array} services.PublicQuestion
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /questions/test [get]
func (qc *QuestionController) GetTest(c *fiber.Ctx) error {
	questions, err := qc.Assembler.Assemble(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(questions)
}

// SubmitTest godoc
// @Summary Grade submitted answers
// @Tags questions
// @Accept json
// @Produce json
// @Param request body submitRequest true "Answers"
// @Success 201 {object} services.SubmitResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /questions/submit [post]
// @Security ApiKeyAuth
func (qc *QuestionController) SubmitTest(c *fiber.Ctx) error {
	user, err := viewer(c)
	if err != nil {
		return err
	}
	var req submitRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := qc.Scorer.Submit(c.UserContext(), user.ID, req.UserAnswers)
	if err != nil {
		return err
	}
	return utils.Created(c, resp)
}

func (qc *QuestionController) ListQuestions(c *fiber.Ctx) error {
	questions, err := qc.Questions.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(questions)
}

func (qc *QuestionController) Categories(c *fiber.Ctx) error {
	categories, err := qc.Questions.Categories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

// CreateQuestion godoc
// @Summary Add a question to the bank (admin)
// @Tags questions
// @Accept json
// @Produce json
// @Param request body services.QuestionInput true "Question"
// @Success 201 {object} models.Question
// @Failure 400 {object} utils.ErrorResponse
// @Router /questions [post]
// @Security ApiKeyAuth
func (qc *QuestionController) CreateQuestion(c *fiber.Ctx) error {
	user, err := viewer(c)
	if err != nil {
		return err
	}
	var input services.QuestionInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	q, err := qc.Questions.Create(c.UserContext(), user.ID, input)
	if err != nil {
		return err
	}
	return utils.Created(c, q)
}

// UpdateQuestion godoc
// @Summary Partially update a question (admin)
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param request body services.QuestionPatch true "Fields to change"
// @Success 200 {object} models.Question
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /questions/{id} [put]
// @Security ApiKeyAuth
func (qc *QuestionController) UpdateQuestion(c *fiber.Ctx) error {
	var patch services.QuestionPatch
	if err := parseBody(c, &patch); err != nil {
		return err
	}

	q, err := qc.Questions.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(q)
}

func (qc *QuestionController) DeleteQuestion(c *fiber.Ctx) error {
	if err := qc.Questions.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return utils.Message(c, "Question removed")
}
