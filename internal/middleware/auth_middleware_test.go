package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placenet/portal/internal/app/authz"
	"github.com/placenet/portal/internal/app/models"
	"github.com/placenet/portal/internal/pkg/auth"
)

func newTestRouter(accessExp time.Duration) (*gin.Engine, *auth.JWTService) {
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "middleware-test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "placenet.test",
	})
	mw := NewAuthMiddleware(jwtService)

	router := gin.New()
	router.GET("/protected", mw.JWTAuth(), func(c *gin.Context) {
		userID, role, _ := Identity(c)
		c.JSON(http.StatusOK, gin.H{"userID": userID, "role": role})
	})
	router.GET("/admin-only", mw.JWTAuth(), mw.Authorize(authz.OpUserAdminAccess), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	return router, jwtService
}

func doRequest(router *gin.Engine, path, authHeader string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func errorCode(body map[string]interface{}) string {
	errObj, _ := body["error"].(map[string]interface{})
	code, _ := errObj["code"].(string)
	return code
}

func TestJWTAuth_MissingToken(t *testing.T) {
	router, _ := newTestRouter(time.Hour)

	w, body := doRequest(router, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "NO_TOKEN", errorCode(body))
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	router, jwtService := newTestRouter(-time.Minute)

	token, _, _, err := jwtService.GenerateTokenPair(&models.User{UserID: "21CS042", Role: models.RoleStudent})
	require.NoError(t, err)

	w, body := doRequest(router, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_EXPIRED", errorCode(body))

	// The response names when the token expired.
	errObj := body["error"].(map[string]interface{})
	details, ok := errObj["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "expiredAt")
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	router, _ := newTestRouter(time.Hour)

	w, body := doRequest(router, "/protected", "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_TOKEN", errorCode(body))
}

func TestJWTAuth_ValidToken(t *testing.T) {
	router, jwtService := newTestRouter(time.Hour)

	token, _, _, err := jwtService.GenerateTokenPair(&models.User{UserID: "21CS042", Role: models.RoleStudent})
	require.NoError(t, err)

	w, body := doRequest(router, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "21CS042", body["userID"])
	assert.Equal(t, "student", body["role"])
}

func TestAuthorize_RoleGate(t *testing.T) {
	router, jwtService := newTestRouter(time.Hour)

	studentToken, _, _, err := jwtService.GenerateTokenPair(&models.User{UserID: "21CS042", Role: models.RoleStudent})
	require.NoError(t, err)
	adminToken, _, _, err := jwtService.GenerateTokenPair(&models.User{UserID: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)

	w, body := doRequest(router, "/admin-only", "Bearer "+studentToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(body))

	w, _ = doRequest(router, "/admin-only", "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
