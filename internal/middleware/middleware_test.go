package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

func whoAmI(c echo.Context) error {
	user := utils.ExtractTokenUser(c)
	return c.String(http.StatusOK, user.UserID+"|"+user.Role)
}

func token(t *testing.T, userID string, role string, key string, ttl time.Duration) string {
	t.Helper()
	tok, err := utils.CreateJWTToken(userID, "name", role, key, ttl)
	require.NoError(t, err)
	return "Bearer " + tok
}

func serve(e *echo.Echo, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIsLoggedIn(t *testing.T) {
	e := echo.New()
	e.GET("/", whoAmI, IsLoggedIn(secret))

	type TestCase struct {
		Name           string
		Authorization  string
		ExpectedStatus int
		ExpectedBody   string
	}

	testCases := []TestCase{
		{Name: "Valid token", Authorization: token(t, "u1", domain.RoleUser, secret, time.Hour), ExpectedStatus: http.StatusOK, ExpectedBody: "u1|user"},
		{Name: "Missing header", ExpectedStatus: http.StatusUnauthorized},
		{Name: "Wrong scheme", Authorization: "Basic abc", ExpectedStatus: http.StatusUnauthorized},
		{Name: "Wrong secret", Authorization: token(t, "u1", domain.RoleUser, "other", time.Hour), ExpectedStatus: http.StatusUnauthorized},
		{Name: "Expired", Authorization: token(t, "u1", domain.RoleUser, secret, -time.Hour), ExpectedStatus: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			rec := serve(e, tc.Authorization)
			assert.Equal(t, tc.ExpectedStatus, rec.Code)
			if tc.ExpectedBody != "" {
				assert.Equal(t, tc.ExpectedBody, rec.Body.String())
			}
		})
	}
}

func TestIsAdmin(t *testing.T) {
	e := echo.New()
	e.GET("/", whoAmI, IsLoggedIn(secret), IsAdmin)

	assert.Equal(t, http.StatusOK, serve(e, token(t, "a1", domain.RoleAdmin, secret, time.Hour)).Code)
	assert.Equal(t, http.StatusForbidden, serve(e, token(t, "u1", domain.RoleUser, secret, time.Hour)).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(e, "").Code)
}

func TestOptionalAuth(t *testing.T) {
	e := echo.New()
	e.GET("/", whoAmI, OptionalAuth(secret))

	anonymous := serve(e, "")
	assert.Equal(t, http.StatusOK, anonymous.Code)
	assert.Equal(t, "|", anonymous.Body.String())

	authenticated := serve(e, token(t, "u1", domain.RoleUser, secret, time.Hour))
	assert.Equal(t, http.StatusOK, authenticated.Code)
	assert.Equal(t, "u1|user", authenticated.Body.String())

	assert.Equal(t, http.StatusUnauthorized, serve(e, "Bearer garbage").Code)
}

func TestLoggerRequestID(t *testing.T) {
	e := echo.New()
	e.Use(Logger)
	e.GET("/", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get(HeaderRequestID))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Header().Get(HeaderRequestID), 36)
}
