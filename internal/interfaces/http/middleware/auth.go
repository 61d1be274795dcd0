package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/panel/backend/internal/interfaces/http/dto"
)

// Auth context keys
const (
	AuthSubjectKey = "auth_subject"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

var errInvalidToken = errors.New("invalid or expired token")

// TokenAuth verifies the bearer token on dashboard API requests. Webhook
// routes are registered outside the authenticated group, like payment
// callbacks: the carrier authenticates with its body signature instead.
func TokenAuth(secret, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing bearer token")
			return
		}

		subject, err := verifyToken(strings.TrimPrefix(header, BearerPrefix), secret, issuer)
		if err != nil {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid or expired token")
			return
		}

		c.Set(AuthSubjectKey, subject)
		c.Next()
	}
}

// verifyToken parses and validates an HS256 token, returning its subject
func verifyToken(tokenString, secret, issuer string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errInvalidToken
	}
	subject, err := claims.GetSubject()
	if err != nil {
		return "", errInvalidToken
	}
	return subject, nil
}

// GetAuthSubject returns the authenticated subject set by TokenAuth
func GetAuthSubject(c *gin.Context) string {
	return c.GetString(AuthSubjectKey)
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, c.GetString("request_id")))
}
