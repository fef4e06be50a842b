package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"iqscaler/backend/apperror"
	"iqscaler/backend/services"
)

const uploadField = "image"

type UploadController struct {
	Uploads *services.UploadService
}

func NewUploadController(uploads *services.UploadService) *UploadController {
	return &UploadController{Uploads: uploads}
}

type uploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// UploadImage godoc
// @Summary Upload a question image (admin)
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 200 {object} uploadResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /upload [post]
// @Security ApiKeyAuth
func (uc *UploadController) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		return apperror.Validation("Image upload failed.")
	}
	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "open upload")
	}
	defer f.Close()

	url, err := uc.Uploads.SaveImage(c.UserContext(), fh.Filename, fh.Header.Get(fiber.HeaderContentType), f)
	if err != nil {
		return err
	}
	return c.JSON(uploadResponse{ImageURL: url})
}
