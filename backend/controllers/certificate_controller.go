package controllers

import (
	"github.com/gofiber/fiber/v2"

	"iqscaler/backend/config"
	"iqscaler/backend/services"
)

const certificateFilename = "IQ_Certificate.pdf"

type CertificateController struct {
	Certificates *services.CertificateService
	Cfg          *config.Config
}

func NewCertificateController(certs *services.CertificateService, cfg *config.Config) *CertificateController {
	return &CertificateController{Certificates: certs, Cfg: cfg}
}

func sendPDF(c *fiber.Ctx, pdf []byte, inline bool) error {
	disposition := `attachment; filename="` + certificateFilename + `"`
	if inline {
		disposition = `inline; filename="` + certificateFilename + `"`
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, disposition)
	return c.Send(pdf)
}

// GetCertificate godoc
// @Summary Download a purchased certificate
// @Description Owner or admin only. preview=true renders inline.
// @Tags certificates
// @Produce application/pdf
// @Param id path string true "Result ID"
// @Param preview query bool false "Render inline"
// @Success 200 {file} binary
// @Failure 402 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /certificates/{id} [get]
// @Security ApiKeyAuth
func (cc *CertificateController) GetCertificate(c *fiber.Ctx) error {
	user, err := viewer(c)
	if err != nil {
		return err
	}
	pdf, err := cc.Certificates.ForViewer(c.UserContext(), c.Params("id"), user, publicBaseURL(c, cc.Cfg))
	if err != nil {
		return err
	}
	return sendPDF(c, pdf, c.QueryBool("preview"))
}

// VerifyCertificate godoc
// @Summary Public certificate check behind the QR code
// @Tags certificates
// @Produce application/pdf
// @Param resultId path string true "Result ID"
// @Success 200 {file} binary
// @Failure 404 {object} utils.ErrorResponse
// @Router /certificates/verify/{resultId} [get]
func (cc *CertificateController) VerifyCertificate(c *fiber.Ctx) error {
	pdf, err := cc.Certificates.ForVerification(c.UserContext(), c.Params("resultId"), publicBaseURL(c, cc.Cfg))
	if err != nil {
		return err
	}
	return sendPDF(c, pdf, true)
}
