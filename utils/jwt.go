package utils

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tnqbao/gau-resource-registry/config"
)

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

func ParseToken(tokenString string, config *config.EnvConfig) (*jwt.Token, error) {
	secret := []byte(config.JWT.SecretKey)
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
}

func InjectClaimsToContext(c *gin.Context, claims jwt.MapClaims) error {
	accountIDStr, ok := claims["account_id"].(string)
	if !ok {
		return errors.New("invalid account_id format")
	}
	if _, err := uuid.Parse(accountIDStr); err != nil {
		return errors.New("invalid account_id format")
	}
	c.Set("account_id", accountIDStr)

	if permission, ok := claims["permission"].(string); ok {
		c.Set("permission", permission)
	} else {
		c.Set("permission", "")
	}
	return nil
}

// GetAccountIDFromContext returns the authenticated account id set by
// the auth middleware. It supports both string and uuid.UUID values.
func GetAccountIDFromContext(c *gin.Context) (uuid.UUID, error) {
	accountID := c.MustGet("account_id")
	if accountID == nil {
		return uuid.Nil, errors.New("account_id is missing from context")
	}

	switch v := accountID.(type) {
	case string:
		parsed, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, errors.New("invalid account_id format: " + err.Error())
		}
		return parsed, nil
	case uuid.UUID:
		return v, nil
	default:
		return uuid.Nil, errors.New("invalid account_id type in context")
	}
}
