package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test_secret"

// =====================
// レスポンス確認用
// =====================

type mwFailResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type mwOKResponse struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"user_name"`
	Role   string `json:"user_role"`
}

// =====================
// helper
// =====================

func mustMakeJWT(t *testing.T, secret string, sub interface{}, name string, role string, method jwt.SigningMethod) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  sub,
		"name": name,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}

	tok := jwt.NewWithClaims(method, claims)
	signed, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

// contextへ入った値をそのまま返すハンドラ
func echoContextHandler(c echo.Context) error {
	userID, _ := c.Get(middleware.CtxUserIDKey).(int64)
	name, _ := c.Get(middleware.CtxUserNameKey).(string)
	role, _ := c.Get(middleware.CtxUserRoleKey).(string)

	return c.JSON(http.StatusOK, mwOKResponse{UserID: userID, Name: name, Role: role})
}

func doAuthRequest(t *testing.T, authz string, handler echo.HandlerFunc, extra ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	cfg := config.Config{JWTSecret: testSecret}

	h := handler
	for i := len(extra) - 1; i >= 0; i-- {
		h = extra[i](h)
	}
	h = middleware.AuthJWT(cfg)(h)

	err := h(c)
	assert.NoError(t, err)
	return rec
}

func decodeFail(t *testing.T, rec *httptest.ResponseRecorder) mwFailResponse {
	t.Helper()

	var body mwFailResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// =====================
// AuthJWT
// =====================

func TestAuthJWT_MissingToken(t *testing.T) {
	rec := doAuthRequest(t, "", echoContextHandler)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeFail(t, rec)
	assert.Equal(t, "fail", body.Status)
	assert.Equal(t, "token is missing", body.Message)
}

func TestAuthJWT_NotBearer(t *testing.T) {
	rec := doAuthRequest(t, "Basic abc", echoContextHandler)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token is missing", decodeFail(t, rec).Message)
}

func TestAuthJWT_InvalidSignature(t *testing.T) {
	token := mustMakeJWT(t, "wrong_secret", float64(1), "alice", "USER", jwt.SigningMethodHS256)
	rec := doAuthRequest(t, "Bearer "+token, echoContextHandler)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeFail(t, rec)
	assert.Equal(t, "fail", body.Status)
	assert.Equal(t, "invalid token", body.Message)
}

func TestAuthJWT_GarbageToken(t *testing.T) {
	rec := doAuthRequest(t, "Bearer not.a.jwt", echoContextHandler)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "invalid token", decodeFail(t, rec).Message)
}

func TestAuthJWT_ValidToken_SetsContext(t *testing.T) {
	token := mustMakeJWT(t, testSecret, float64(42), "alice", "USER", jwt.SigningMethodHS256)
	rec := doAuthRequest(t, "Bearer "+token, echoContextHandler)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body mwOKResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.UserID)
	assert.Equal(t, "alice", body.Name)
	assert.Equal(t, "USER", body.Role)
}

func TestAuthJWT_MissingRoleClaim(t *testing.T) {
	token := mustMakeJWT(t, testSecret, float64(1), "alice", "", jwt.SigningMethodHS256)
	rec := doAuthRequest(t, "Bearer "+token, echoContextHandler)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// =====================
// AdminRoleGuard
// =====================

func TestAdminRoleGuard_UserForbidden(t *testing.T) {
	token := mustMakeJWT(t, testSecret, float64(1), "alice", "USER", jwt.SigningMethodHS256)
	rec := doAuthRequest(t, "Bearer "+token, echoContextHandler, middleware.AdminRoleGuard())

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "admin only", decodeFail(t, rec).Message)
}

func TestAdminRoleGuard_AdminAllowed(t *testing.T) {
	token := mustMakeJWT(t, testSecret, float64(1), "root", "ADMIN", jwt.SigningMethodHS256)
	rec := doAuthRequest(t, "Bearer "+token, echoContextHandler, middleware.AdminRoleGuard())

	assert.Equal(t, http.StatusOK, rec.Code)
}
