package services

import (
	"context"
	"fmt"

	"iqscaler/backend/apperror"
	"iqscaler/backend/config"
	"iqscaler/backend/mailer"
)

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ContactService struct {
	mailer mailer.Mailer
	cfg    *config.Config
}

func NewContactService(m mailer.Mailer, cfg *config.Config) *ContactService {
	return &ContactService{mailer: m, cfg: cfg}
}

// Send forwards a contact-form message to the site admin.
func (s *ContactService) Send(ctx context.Context, in ContactInput) error {
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return apperror.Validation("Please fill out all fields.")
	}
	if err := validate.Var(in.Email, "email"); err != nil {
		return apperror.Validation("Please provide a valid email address.")
	}
	to := s.cfg.AdminEmail
	if to == "" {
		to = s.cfg.EmailFrom
	}
	err := s.mailer.Send(ctx, mailer.Message{
		To:      to,
		ReplyTo: in.Email,
		Subject: fmt.Sprintf("New Contact Message from %s", in.Name),
		Text:    fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", in.Name, in.Email, in.Message),
	})
	if err != nil {
		return apperror.Upstream("Failed to send message. Please try again later.", err)
	}
	return nil
}
