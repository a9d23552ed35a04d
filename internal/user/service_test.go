// File: internal/user/service_test.go
package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"uplio_backend/internal/auth"
	"uplio_backend/internal/common"
	"uplio_backend/internal/config"
	"uplio_backend/internal/shared"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique shared-cache DSN per test so tests do not share state and the
	// connection pool sees the same in-memory database on every connection.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))
	return db
}

func newTestUserService(t *testing.T) (*Service, Repository, shared.TokenService) {
	t.Helper()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryDays: 7, BCryptCost: 4}
	repo := NewGORMRepository(newTestDB(t))
	tokens := auth.NewJWTService(cfg, zap.NewNop())
	return NewService(repo, tokens, cfg, zap.NewNop()), repo, tokens
}

func TestRegisterOrLogin_NewPasswordUser(t *testing.T) {
	svc, repo, tokens := newTestUserService(t)
	ctx := context.Background()

	result, err := svc.RegisterOrLogin(ctx, RegisterRequest{Email: "A@B.com", Password: "password1"})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.Note)
	assert.True(t, strings.HasPrefix(result.User.ID, "u_"))
	assert.Equal(t, "a@b.com", result.User.Email)
	assert.Equal(t, shared.ProviderLocal, result.User.Provider)
	require.NotNil(t, result.User.PasswordHash)
	assert.NotEqual(t, "password1", *result.User.PasswordHash)

	// The token it issued verifies and names this user.
	claims, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)

	stored, err := repo.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, stored.ID)
}

func TestRegisterOrLogin_ExistingUserCorrectPassword(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	ctx := context.Background()

	first, err := svc.RegisterOrLogin(ctx, RegisterRequest{Email: "a@b.com", Password: "password1"})
	require.NoError(t, err)

	second, err := svc.RegisterOrLogin(ctx, RegisterRequest{Email: "a@b.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "existing", second.Note)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.NotEmpty(t, second.Token)

	// Still exactly one row.
	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRegisterOrLogin_ExistingUserWrongPassword(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	ctx := context.Background()

	first, err := svc.RegisterOrLogin(ctx, RegisterRequest{Email: "a@b.com", Password: "password1"})
	require.NoError(t, err)
	originalHash := *first.User.PasswordHash

	_, err = svc.RegisterOrLogin(ctx, RegisterRequest{Email: "a@b.com", Password: "different9"})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "User already exists. Wrong password.", apiErr.Message)

	// Failed attempt leaves the stored hash untouched.
	stored, err := repo.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordHash)
	assert.Equal(t, originalHash, *stored.PasswordHash)
}

func TestRegisterOrLogin_Validation(t *testing.T) {
	svc, _, _ := newTestUserService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     RegisterRequest
		message string
	}{
		{"empty request", RegisterRequest{}, "Missing email/password or credential"},
		{"bad email", RegisterRequest{Email: "not-an-email", Password: "password1"}, "Invalid email"},
		{"short password", RegisterRequest{Email: "a@b.com", Password: "short"}, "Password must be at least 8 characters"},
		{"garbage credential", RegisterRequest{Credential: "garbage"}, "Invalid credential token"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RegisterOrLogin(ctx, tc.req)
			require.Error(t, err)
			apiErr, ok := common.IsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			assert.Equal(t, tc.message, apiErr.Message)
		})
	}
}

func googleCredential(t *testing.T, sub, email, name, picture string) string {
	t.Helper()
	claims := jwt.MapClaims{"email": email, "name": name, "picture": picture}
	if sub != "" {
		claims["sub"] = sub
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-google"))
	require.NoError(t, err)
	return signed
}

func TestRegisterOrLogin_GoogleCredential(t *testing.T) {
	svc, repo, tokens := newTestUserService(t)
	ctx := context.Background()

	credential := googleCredential(t, "109876543210", "g.user@gmail.com", "G User", "https://example.com/p.jpg")

	result, err := svc.RegisterOrLogin(ctx, RegisterRequest{Credential: credential})
	require.NoError(t, err)
	assert.Equal(t, "109876543210", result.User.ID)
	assert.Equal(t, "g.user@gmail.com", result.User.Email)
	assert.Equal(t, "G User", result.User.Name)
	assert.Equal(t, shared.ProviderGoogle, result.User.Provider)
	assert.Nil(t, result.User.PasswordHash)

	claims, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, shared.ProviderGoogle, claims.Provider)

	// Same credential again: sign-in, not a second row.
	again, err := svc.RegisterOrLogin(ctx, RegisterRequest{Credential: credential})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, again.User.ID)
	require.NotNil(t, again.User.LastSeenAt)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRegisterOrLogin_GoogleCredentialWithoutSubject(t *testing.T) {
	svc, _, _ := newTestUserService(t)

	credential := googleCredential(t, "", "nosub@gmail.com", "No Sub", "")
	result, err := svc.RegisterOrLogin(context.Background(), RegisterRequest{Credential: credential})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.User.ID, "g_"))
}

func TestGetUserByID_NotFound(t *testing.T) {
	svc, _, _ := newTestUserService(t)

	_, err := svc.GetUserByID(context.Background(), "u_missing1")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestListUsers_EmptyAndPopulated(t *testing.T) {
	svc, _, _ := newTestUserService(t)
	ctx := context.Background()

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	_, err = svc.RegisterOrLogin(ctx, RegisterRequest{Email: "one@b.com", Password: "password1"})
	require.NoError(t, err)
	_, err = svc.RegisterOrLogin(ctx, RegisterRequest{Email: "two@b.com", Password: "password1"})
	require.NoError(t, err)

	users, err = svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.NotEmpty(t, u.ID)
		assert.NotEmpty(t, u.Email)
	}
}
