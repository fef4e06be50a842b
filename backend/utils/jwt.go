package utils

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"iqscaler/backend/apperror"
	"iqscaler/backend/config"
	"iqscaler/backend/models"
)

const TokenTTL = 30 * 24 * time.Hour

type TokenClaims struct {
	UserID   string
	IssuedAt time.Time
}

func GenerateJWTToken(userID string, cfg *config.Config) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func ParseJWTToken(tokenString string, cfg *config.Config) (TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperror.Authentication("Not authorized, token failed")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return TokenClaims{}, apperror.Authentication("Not authorized, token failed")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return TokenClaims{}, apperror.Authentication("Not authorized, token failed")
	}

	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return TokenClaims{}, apperror.Authentication("Not authorized, token failed")
	}
	issuedAt, _ := claims["iat"].(float64)

	return TokenClaims{UserID: userID, IssuedAt: time.Unix(int64(issuedAt), 0)}, nil
}

// ExtractUserIDFromToken reads a "Bearer <token>" Authorization header.
func ExtractUserIDFromToken(c *fiber.Ctx, cfg *config.Config) (TokenClaims, error) {
	header := c.Get(fiber.HeaderAuthorization)
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
	if header == "" || !strings.HasPrefix(header, "Bearer") || tokenString == "" {
		return TokenClaims{}, apperror.Authentication("Not authorized, no token")
	}
	return ParseJWTToken(tokenString, cfg)
}

// IsTokenCurrent rejects tokens issued before the user's last password
// change.
func IsTokenCurrent(claims TokenClaims, user models.User) bool {
	if user.PasswordChangedAt.IsZero() {
		return true
	}
	return claims.IssuedAt.Unix() >= user.PasswordChangedAt.Unix()
}
