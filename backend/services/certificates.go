package services

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"iqscaler/backend/certificate"
	"iqscaler/backend/models"
	"iqscaler/backend/store"
)

type CertificateService struct {
	results store.Results
}

func NewCertificateService(results store.Results) *CertificateService {
	return &CertificateService{results: results}
}

func VerificationURL(baseURL, resultID string) string {
	return strings.TrimRight(baseURL, "/") + "/verify-certificate/" + resultID
}

// ForViewer renders the certificate for its owner or an admin once the
// result has been paid for.
func (s *CertificateService) ForViewer(ctx context.Context, resultID string, viewer models.User, baseURL string) ([]byte, error) {
	res, err := s.results.Get(ctx, resultID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.WithStack(ErrResultNotFound)
	}
	if err != nil {
		return nil, errors.Wrap(err, "load result")
	}
	if !res.OwnedBy(viewer.ID) && !viewer.IsAdmin {
		return nil, errors.WithStack(ErrNotAuthorized)
	}
	if !res.CertificatePurchased {
		return nil, errors.WithStack(ErrPaymentRequired)
	}
	return render(res, baseURL)
}

// ForVerification backs the public QR link. Unpaid and missing results are
// indistinguishable to callers.
func (s *CertificateService) ForVerification(ctx context.Context, resultID, baseURL string) ([]byte, error) {
	res, err := s.results.Get(ctx, resultID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.WithStack(ErrCertificateNotFound)
	}
	if err != nil {
		return nil, errors.Wrap(err, "load result")
	}
	if !res.CertificatePurchased {
		return nil, errors.WithStack(ErrCertificateNotFound)
	}
	return render(res, baseURL)
}

func render(res models.Result, baseURL string) ([]byte, error) {
	recipient := "IQScaler Candidate"
	if res.User != nil && res.User.Username != "" {
		recipient = res.User.Username
	}
	return certificate.Render(certificate.Data{
		ResultID:           res.ID,
		Recipient:          recipient,
		CorrectAnswers:     res.CorrectAnswers,
		QuestionsAttempted: res.QuestionsAttempted,
		IssuedAt:           res.CreatedAt,
	}, VerificationURL(baseURL, res.ID))
}
