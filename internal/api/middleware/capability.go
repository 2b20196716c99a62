package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"clinch-calc/internal/api/models"
	"clinch-calc/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// CapabilitiesKey is the gin context key holding the caller's model.Capabilities.
const CapabilitiesKey = "capabilities"

// ProClaims is the token payload. Only Pro is read; the registered claims
// give expiry checking for free.
type ProClaims struct {
	Pro bool `json:"pro"`
	jwt.RegisteredClaims
}

// Capabilities resolves what the caller may see from an optional bearer
// token signed with secret (HS256). Requests without a token get the free
// tier. An empty secret turns the check off and grants pro to everyone.
func Capabilities(secret string, logger *slog.Logger) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		if secret == "" {
			c.Set(CapabilitiesKey, model.Capabilities{Pro: true})
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(CapabilitiesKey, model.Capabilities{})
			c.Next()
			return
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(header, bearer) {
			abortUnauthorized(c, "Authorization header must start with Bearer")
			return
		}

		claims, err := ParseProToken(strings.TrimSpace(header[len(bearer):]), key)
		if err != nil {
			logger.Debug("capability token rejected", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			}
			abortUnauthorized(c, msg)
			return
		}

		c.Set(CapabilitiesKey, model.Capabilities{Pro: claims.Pro})
		c.Next()
	}
}

// ParseProToken verifies an HS256 token and returns its claims.
func ParseProToken(token string, key []byte) (*ProClaims, error) {
	claims := &ProClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// SignProToken issues a token for the given tier. Used by tests and local tooling.
func SignProToken(pro bool, key []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, ProClaims{Pro: pro}).SignedString(key)
}

// CapabilitiesFrom returns the capabilities stored by Capabilities, or the
// free tier if the middleware did not run.
func CapabilitiesFrom(c *gin.Context) model.Capabilities {
	if v, ok := c.Get(CapabilitiesKey); ok {
		if caps, ok := v.(model.Capabilities); ok {
			return caps
		}
	}
	return model.Capabilities{}
}

// RequirePro rejects free-tier callers with 402.
func RequirePro() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CapabilitiesFrom(c).Pro {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "PRO_REQUIRED",
					Message: "This feature requires a pro token",
				},
			})
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_TOKEN",
			Message: msg,
		},
	})
}
