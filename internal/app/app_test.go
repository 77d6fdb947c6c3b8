package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alimikegami/point-of-sales/storefront-service/config"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	return &config.Config{
		LogLevel:      "error",
		StorageDriver: config.StorageDriverMemory,
		CartRetries:   3,
		ShutdownGrace: time.Second,
		JWTConfig:     config.JWTConfig{JWTSecret: "app-secret", TokenTTL: time.Hour},
		AdminConfig:   config.AdminConfig{Name: "Admin", Email: "admin@shop.com", Password: "admin-password"},
	}
}

func TestSetupMemoryDriver(t *testing.T) {
	app := App{Config: memoryConfig()}
	require.NoError(t, app.Setup(context.Background()))
	defer func() {
		assert.NoError(t, app.StopServer())
	}()

	rec := httptest.NewRecorder()
	app.Server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := []byte(`{"email":"admin@shop.com","password":"admin-password"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	app.Server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	user, err := utils.ParseJWTToken(resp.Data.Token, "app-secret")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)

	rec = httptest.NewRecorder()
	app.MetricsServer.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetupUnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.StorageDriver = "cassandra"

	app := App{Config: cfg}
	assert.Error(t, app.Setup(context.Background()))
}
