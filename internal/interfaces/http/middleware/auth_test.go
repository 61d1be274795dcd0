package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret-at-least-32-characters!!"
	testIssuer = "panel-backend"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(TokenAuth(testSecret, testIssuer))
	engine.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": GetAuthSubject(c)})
	})
	return engine
}

func getProtected(engine *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set(AuthHeaderKey, authorization)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestTokenAuth_ValidToken(t *testing.T) {
	engine := newAuthRouter()
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "admin",
		"iss": testIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := getProtected(engine, BearerPrefix+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin")
}

func TestTokenAuth_Rejections(t *testing.T) {
	engine := newAuthRouter()

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "no bearer prefix", header: "Basic abc123"},
		{name: "garbage token", header: BearerPrefix + "not-a-jwt"},
		{
			name: "wrong secret",
			header: BearerPrefix + signToken(t, "another-secret-32-characters-long!!", jwt.MapClaims{
				"sub": "admin",
				"iss": testIssuer,
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
		},
		{
			name: "wrong issuer",
			header: BearerPrefix + signToken(t, testSecret, jwt.MapClaims{
				"sub": "admin",
				"iss": "someone-else",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
		},
		{
			name: "expired",
			header: BearerPrefix + signToken(t, testSecret, jwt.MapClaims{
				"sub": "admin",
				"iss": testIssuer,
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
		},
		{
			name: "no expiry claim",
			header: BearerPrefix + signToken(t, testSecret, jwt.MapClaims{
				"sub": "admin",
				"iss": testIssuer,
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := getProtected(engine, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
