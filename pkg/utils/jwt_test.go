package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := CreateJWTToken("01HXYZ", "Jo", "user", "secret", time.Hour)
	require.NoError(t, err)

	user, err := ParseJWTToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, TokenUser{UserID: "01HXYZ", Name: "Jo", Role: "user"}, user)
}

func TestParseJWTTokenRejects(t *testing.T) {
	expired, err := CreateJWTToken("u1", "Jo", "user", "secret", -time.Minute)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}).SignedString([]byte("secret"))
	require.NoError(t, err)

	valid, err := CreateJWTToken("u1", "Jo", "user", "secret", time.Hour)
	require.NoError(t, err)

	type TestCase struct {
		Name   string
		Token  string
		Secret string
	}

	testCases := []TestCase{
		{Name: "Expired", Token: expired, Secret: "secret"},
		{Name: "Wrong secret", Token: valid, Secret: "other"},
		{Name: "No subject", Token: noSubject, Secret: "secret"},
		{Name: "Garbage", Token: "not.a.token", Secret: "secret"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := ParseJWTToken(tc.Token, tc.Secret)
			assert.Error(t, err)
		})
	}
}

func TestExtractTokenUser(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Equal(t, TokenUser{}, ExtractTokenUser(c))

	c.Set(ContextKeyUserID, "u1")
	c.Set(ContextKeyRole, "admin")
	assert.Equal(t, TokenUser{UserID: "u1", Role: "admin"}, ExtractTokenUser(c))
}

func TestNowUTC(t *testing.T) {
	now := NowUTC()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Millisecond))
}
