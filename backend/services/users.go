package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"iqscaler/backend/apperror"
	"iqscaler/backend/cache"
	"iqscaler/backend/config"
	"iqscaler/backend/mailer"
	"iqscaler/backend/models"
	"iqscaler/backend/store"
	"iqscaler/backend/utils"
)

const (
	resetTokenBytes = 20
	resetTokenTTL   = 10 * time.Minute
	bcryptCost      = 10
)

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetInput struct {
	Password string `json:"password" validate:"required,min=6"`
}

type UpdateUserInput struct {
	Username *string `json:"username" validate:"omitempty,min=2,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	IsAdmin  *bool   `json:"isAdmin"`
}

type AuthResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
	Token    string `json:"token"`
}

type UserService struct {
	users  store.Users
	mailer mailer.Mailer
	cache  cache.LeaderboardCache
	cfg    *config.Config
	logger *log.Logger
}

func NewUserService(users store.Users, m mailer.Mailer, lb cache.LeaderboardCache, cfg *config.Config, logger *log.Logger) *UserService {
	return &UserService{users: users, mailer: m, cache: lb, cfg: cfg, logger: logger}
}

// dropLeaderboard forgets the cached leaderboard, which carries usernames.
func (s *UserService) dropLeaderboard(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Printf("leaderboard cache invalidate: %v", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *UserService) authResponse(u models.User) (AuthResponse, error) {
	token, err := utils.GenerateJWTToken(u.ID, s.cfg)
	if err != nil {
		return AuthResponse{}, errors.Wrap(err, "sign token")
	}
	return AuthResponse{ID: u.ID, Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin, Token: token}, nil
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (AuthResponse, error) {
	in.Email = normalizeEmail(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	if err := validateStruct(in); err != nil {
		return AuthResponse{}, err
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return AuthResponse{}, errors.WithStack(ErrUserExists)
	} else if !errors.Is(err, store.ErrNotFound) {
		return AuthResponse{}, errors.Wrap(err, "lookup user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return AuthResponse{}, errors.Wrap(err, "hash password")
	}
	u := models.User{Username: in.Username, Email: in.Email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, &u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return AuthResponse{}, errors.WithStack(ErrUserExists)
		}
		return AuthResponse{}, errors.Wrap(err, "create user")
	}
	return s.authResponse(u)
}

func (s *UserService) Login(ctx context.Context, in LoginInput) (AuthResponse, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return AuthResponse{}, err
	}
	u, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, store.ErrNotFound) {
		return AuthResponse{}, errors.WithStack(ErrInvalidCredentials)
	}
	if err != nil {
		return AuthResponse{}, errors.Wrap(err, "lookup user")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return AuthResponse{}, errors.WithStack(ErrInvalidCredentials)
	}
	return s.authResponse(u)
}

// ForgotPassword mails a single-use reset link valid for ten minutes. Only
// the token's hash is stored.
func (s *UserService) ForgotPassword(ctx context.Context, email, baseURL string) error {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return errors.WithStack(ErrUserNotFound)
	}
	if err != nil {
		return errors.Wrap(err, "lookup user")
	}

	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return errors.Wrap(err, "generate reset token")
	}
	token := hex.EncodeToString(raw)
	hash := hashResetToken(token)
	expire := time.Now().Add(resetTokenTTL)
	u.ResetPasswordToken = &hash
	u.ResetPasswordExpire = &expire
	if err := s.users.Save(ctx, &u); err != nil {
		return errors.Wrap(err, "store reset token")
	}

	resetURL := strings.TrimRight(baseURL, "/") + "/resetpassword/" + token
	err = s.mailer.Send(ctx, mailer.Message{
		To:      u.Email,
		Subject: "Password Reset Token",
		Text: "You are receiving this email because you (or someone else) has requested the reset of a password.\n\n" +
			"Please open the following link to reset your password:\n\n" + resetURL +
			"\n\nThis link expires in 10 minutes.",
	})
	if err != nil {
		u.ResetPasswordToken = nil
		u.ResetPasswordExpire = nil
		if saveErr := s.users.Save(ctx, &u); saveErr != nil {
			return errors.Wrap(saveErr, "clear reset token")
		}
		return apperror.Wrap(ErrEmailNotSent, err)
	}
	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, token string, in ResetInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	u, err := s.users.FindByResetToken(ctx, hashResetToken(token), time.Now())
	if errors.Is(err, store.ErrNotFound) {
		return errors.WithStack(ErrInvalidResetToken)
	}
	if err != nil {
		return errors.Wrap(err, "lookup reset token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	u.PasswordHash = string(hash)
	u.ResetPasswordToken = nil
	u.ResetPasswordExpire = nil
	// Whole seconds so a token issued right after the reset stays valid.
	u.PasswordChangedAt = time.Now().Truncate(time.Second)
	if err := s.users.Save(ctx, &u); err != nil {
		return errors.Wrap(err, "save password")
	}
	return nil
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	u, err := s.users.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, errors.WithStack(ErrUserNotFound)
	}
	return u, errors.Wrap(err, "load user")
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	out, err := s.users.List(ctx)
	return out, errors.Wrap(err, "list users")
}

func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (models.User, error) {
	if err := validateStruct(in); err != nil {
		return models.User{}, err
	}
	u, err := s.Get(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if in.Username != nil {
		u.Username = strings.TrimSpace(*in.Username)
	}
	if in.Email != nil {
		u.Email = normalizeEmail(*in.Email)
	}
	if in.IsAdmin != nil {
		u.IsAdmin = *in.IsAdmin
	}
	if err := s.users.Save(ctx, &u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.User{}, errors.WithStack(ErrUserExists)
		}
		return models.User{}, errors.Wrap(err, "save user")
	}
	s.dropLeaderboard(ctx)
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if u.IsAdmin {
		return errors.WithStack(ErrAdminUndeletable)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "delete user")
	}
	s.dropLeaderboard(ctx)
	return nil
}
