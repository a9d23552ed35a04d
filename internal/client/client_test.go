// File: internal/client/client_test.go
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"uplio_backend/internal/app"
	"uplio_backend/internal/auth"
	"uplio_backend/internal/common"
	"uplio_backend/internal/config"
	"uplio_backend/internal/profile"
	"uplio_backend/internal/upload"
	"uplio_backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestBackend boots the real application stack on an in-memory database
// and serves it over httptest, so the client is exercised end to end.
func newTestBackend(t *testing.T) *Client {
	t.Helper()

	cfg := &config.Config{
		GinMode:           gin.TestMode,
		JWTSecret:         "client-test-secret",
		JWTExpiryDays:     7,
		BCryptCost:        4,
		UploadStoragePath: t.TempDir(),
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
	profileRepo := profile.NewGORMRepository(db)
	profileService := profile.NewService(profileRepo, userRepo, logger)
	storage, err := upload.NewFileStorageService(cfg.UploadStoragePath, logger)
	require.NoError(t, err)

	server, err := app.NewServer(cfg, logger, tokenService,
		user.NewHandler(userService, logger),
		profile.NewHandler(profileService, logger),
		upload.NewHandler(storage, logger),
		db,
	)
	require.NoError(t, err)

	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return New(ts.URL)
}

func TestClient_RegisterAndLogin(t *testing.T) {
	api := newTestBackend(t)
	ctx := context.Background()

	first, err := api.Register(ctx, "a@b.com", "password1")
	require.NoError(t, err)
	assert.Empty(t, first.Note)
	assert.NotEmpty(t, first.Token)
	assert.Equal(t, "a@b.com", first.User.Email)

	second, err := api.Register(ctx, "a@b.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "existing", second.Note)
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestClient_RegisterWrongPassword(t *testing.T) {
	api := newTestBackend(t)
	ctx := context.Background()

	_, err := api.Register(ctx, "a@b.com", "password1")
	require.NoError(t, err)

	_, err = api.Register(ctx, "a@b.com", "different9")
	require.Error(t, err)

	var apiErr *common.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "User already exists. Wrong password.", apiErr.Message)
}

func TestClient_ProfileRoundTrip(t *testing.T) {
	api := newTestBackend(t)
	ctx := context.Background()

	reg, err := api.Register(ctx, "a@b.com", "password1")
	require.NoError(t, err)

	// Default before any save.
	prof, err := api.GetProfile(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", prof.Name)
	assert.Empty(t, prof.Offers)

	saved, err := api.SaveProfile(ctx, reg.Token, profile.UpdateRequest{
		Name:  "Ada",
		Roles: []string{"maker"},
		Stats: &profile.Stats{Collaborations: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", saved.Name)
	assert.Equal(t, []string{"maker"}, saved.Roles)
	assert.Equal(t, 1, saved.Stats.Collaborations)

	// Unauthorized reads surface the 401 as an APIError.
	_, err = api.GetProfile(ctx, "bad-token")
	var apiErr *common.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestClient_ListUsers(t *testing.T) {
	api := newTestBackend(t)
	ctx := context.Background()

	users, err := api.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	_, err = api.Register(ctx, "one@b.com", "password1")
	require.NoError(t, err)
	_, err = api.Register(ctx, "two@b.com", "password1")
	require.NoError(t, err)

	users, err = api.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
