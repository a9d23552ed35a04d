// File: tests/integration/helpers_test.go
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"uplio_backend/internal/app"
	"uplio_backend/internal/auth"
	"uplio_backend/internal/config"
	"uplio_backend/internal/profile"
	"uplio_backend/internal/upload"
	"uplio_backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestServer wires the full application against an in-memory database
// and returns the router ready for httptest traffic.
func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := &config.Config{
		GinMode:           gin.TestMode,
		ServerHost:        "127.0.0.1",
		ServerPort:        "0",
		JWTSecret:         "integration-test-secret",
		JWTExpiryDays:     7,
		BCryptCost:        4,
		UploadStoragePath: t.TempDir(),
		LogLevel:          "error",
		LogFormat:         "console",
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	logger := zap.NewNop()
	tokenService := auth.NewJWTService(cfg, logger)

	userRepo := user.NewGORMRepository(db)
	userService := user.NewService(userRepo, tokenService, cfg, logger)
	userHandler := user.NewHandler(userService, logger)

	profileRepo := profile.NewGORMRepository(db)
	profileService := profile.NewService(profileRepo, userRepo, logger)
	profileHandler := profile.NewHandler(profileService, logger)

	storage, err := upload.NewFileStorageService(cfg.UploadStoragePath, logger)
	require.NoError(t, err)
	uploadHandler := upload.NewHandler(storage, logger)

	server, err := app.NewServer(cfg, logger, tokenService, userHandler, profileHandler, uploadHandler, db)
	require.NoError(t, err)
	return server.Router()
}

func performJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// registerUser registers a password account and returns its id and token.
func registerUser(t *testing.T, router *gin.Engine, email, password string) (string, string) {
	t.Helper()
	rec := performJSON(t, router, http.MethodPost, "/register", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, "register failed: %s", rec.Body.String())
	body := decodeBody(t, rec)
	usr, ok := body["user"].(map[string]any)
	require.True(t, ok)
	return usr["id"].(string), body["token"].(string)
}
