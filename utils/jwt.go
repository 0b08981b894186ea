package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/tnqbao/gau-drive/config"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the authenticated user's identity inside the access token.
type Claims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"user_id"`
	Login  string `json:"login"`
}

func GenerateToken(userID uint, login string, cfg *config.EnvConfig) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   login,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.JWT.Expire) * time.Second)),
		},
		UserID: userID,
		Login:  login,
	})

	return token.SignedString([]byte(cfg.JWT.SecretKey))
}

func ParseToken(tokenString string, cfg *config.EnvConfig) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func ExtractToken(c *gin.Context) string {
	if token, err := c.Cookie("access_token"); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.Fields(authHeader)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}

func InjectClaimsToContext(c *gin.Context, claims *Claims) error {
	if claims.UserID == 0 {
		return errors.New("invalid user_id claim")
	}
	c.Set("user_id", claims.UserID)
	c.Set("login", claims.Login)
	return nil
}

func GetUserIDFromContext(c *gin.Context) (uint, error) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, errors.New("user_id is missing from context")
	}

	userID, ok := value.(uint)
	if !ok {
		return 0, errors.New("invalid user_id type in context")
	}

	return userID, nil
}
