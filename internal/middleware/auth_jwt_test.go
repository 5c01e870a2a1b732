package middleware

import (
	"app/internal/config"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// =====================
// レスポンス確認用
// =====================

type mwErrorResponse struct {
	Error string `json:"error"`
}

type mwOKResponse struct {
	Identity string `json:"identity"`
	DeviceID string `json:"device_id"`
}

// =====================
// helper
// =====================

func mustMakeJWT(t *testing.T, secret string, sub interface{}, signingMethod jwt.SigningMethod) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": sub,
		"iat": 1,
		"exp": 9999999999,
	}

	token := jwt.NewWithClaims(signingMethod, claims)

	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return s
}

func newProtectedEcho(cfg config.Config) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		identity, _ := c.Get(CtxIdentityKey).(string)
		deviceID, _ := c.Get(CtxDeviceIDKey).(string)
		return c.JSON(http.StatusOK, mwOKResponse{Identity: identity, DeviceID: deviceID})
	}, AuthJWT(cfg))
	return e
}

func runRequest(t *testing.T, e *echo.Echo, authHeader string, deviceID string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if deviceID != "" {
		req.Header.Set("X-Device-ID", deviceID)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeMWError(t *testing.T, rec *httptest.ResponseRecorder) mwErrorResponse {
	t.Helper()
	var r mwErrorResponse
	_ = json.NewDecoder(rec.Body).Decode(&r)
	return r
}

// =====================
// AuthJWT
// =====================

// Authorizationなし => 401
func TestMiddleware_AuthJWT_Unauthorized_NoHeader(t *testing.T) {
	e := newProtectedEcho(config.Config{JWTSecret: "test-secret"})

	rec := runRequest(t, e, "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	body := decodeMWError(t, rec)
	assert.Equal(t, "unauthorized", body.Error)
}

// Bearer形式じゃない => 401
func TestMiddleware_AuthJWT_Unauthorized_BadScheme(t *testing.T) {
	e := newProtectedEcho(config.Config{JWTSecret: "test-secret"})

	rec := runRequest(t, e, "Token abc.def.ghi", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// 署名違い => 401
func TestMiddleware_AuthJWT_Unauthorized_BadSignature(t *testing.T) {
	e := newProtectedEcho(config.Config{JWTSecret: "correct-secret"})

	raw := mustMakeJWT(t, "wrong-secret", "user-1", jwt.SigningMethodHS256)

	rec := runRequest(t, e, "Bearer "+raw, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// アルゴリズム違い（HS512）=> 401
func TestMiddleware_AuthJWT_Unauthorized_WrongAlg(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	e := newProtectedEcho(cfg)

	raw := mustMakeJWT(t, cfg.JWTSecret, "user-1", jwt.SigningMethodHS512)

	rec := runRequest(t, e, "Bearer "+raw, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// subが文字列じゃない => 401
func TestMiddleware_AuthJWT_Unauthorized_NonStringSub(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	e := newProtectedEcho(cfg)

	raw := mustMakeJWT(t, cfg.JWTSecret, 12345, jwt.SigningMethodHS256)

	rec := runRequest(t, e, "Bearer "+raw, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// 正常：ctxにidentityと端末IDが入る
func TestMiddleware_AuthJWT_Success_SetsContext(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	e := newProtectedEcho(cfg)

	raw := mustMakeJWT(t, cfg.JWTSecret, "user-1", jwt.SigningMethodHS256)

	rec := runRequest(t, e, "Bearer "+raw, "device-abc")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body mwOKResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "user-1", body.Identity)
	assert.Equal(t, "device-abc", body.DeviceID)
}
