// File: tests/integration/profile_api_test.go
package integration

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileAPI_RequiresAuth(t *testing.T) {
	router := setupTestServer(t)

	for _, tc := range []struct {
		method, path, token string
	}{
		{http.MethodGet, "/profile", ""},
		{http.MethodPost, "/profile", ""},
		{http.MethodGet, "/profile", "not-a-valid-token"},
	} {
		rec := performJSON(t, router, tc.method, tc.path, tc.token, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
		body := decodeBody(t, rec)
		assert.Equal(t, false, body["ok"])
		assert.NotEmpty(t, body["error"])
	}
}

func TestProfileAPI_DefaultThenSave(t *testing.T) {
	router := setupTestServer(t)
	id, token := registerUser(t, router, "a@b.com", "password1")

	// First read synthesizes a default from the user record.
	rec := performJSON(t, router, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	prof := decodeBody(t, rec)["profile"].(map[string]any)
	assert.Equal(t, id, prof["user_id"])
	assert.Equal(t, "a@b.com", prof["name"])
	assert.Equal(t, []any{}, prof["roles"])
	assert.Equal(t, []any{}, prof["offers"])
	assert.Nil(t, prof["avatar"])

	// Save a real profile.
	rec = performJSON(t, router, http.MethodPost, "/profile", token, map[string]any{
		"name":     "Ada",
		"location": "Berlin",
		"roles":    []string{"maker"},
		"about":    "Building things.",
		"offers":   []map[string]any{{"title": "Go mentoring", "tags": []string{"go"}}},
		"stats":    map[string]int{"collaborations": 2, "skillsConfirmed": 1, "projects": 3},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	prof = decodeBody(t, rec)["profile"].(map[string]any)
	assert.Equal(t, "Ada", prof["name"])
	assert.Equal(t, "Berlin", prof["location"])

	// Subsequent reads return the stored document.
	rec = performJSON(t, router, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	prof = decodeBody(t, rec)["profile"].(map[string]any)
	assert.Equal(t, "Ada", prof["name"])
	offers := prof["offers"].([]any)
	require.Len(t, offers, 1)
	assert.Equal(t, "Go mentoring", offers[0].(map[string]any)["title"])
	stats := prof["stats"].(map[string]any)
	assert.Equal(t, float64(2), stats["collaborations"])
}

func TestProfileAPI_AvatarTriState(t *testing.T) {
	router := setupTestServer(t)
	_, token := registerUser(t, router, "a@b.com", "password1")

	// Set an avatar.
	rec := performJSON(t, router, http.MethodPost, "/profile", token, map[string]any{
		"name":   "Ada",
		"avatar": "/uploads/avatars/x.png",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Omitting the field keeps the stored value.
	rec = performJSON(t, router, http.MethodPost, "/profile", token, map[string]any{"name": "Ada"})
	require.Equal(t, http.StatusOK, rec.Code)
	prof := decodeBody(t, rec)["profile"].(map[string]any)
	assert.Equal(t, "/uploads/avatars/x.png", prof["avatar"])

	// Empty string intentionally clears it.
	rec = performJSON(t, router, http.MethodPost, "/profile", token, map[string]any{"name": "Ada", "avatar": ""})
	require.Equal(t, http.StatusOK, rec.Code)
	prof = decodeBody(t, rec)["profile"].(map[string]any)
	assert.Nil(t, prof["avatar"])
}

func TestProfileAPI_IsolatedPerUser(t *testing.T) {
	router := setupTestServer(t)
	_, tokenA := registerUser(t, router, "a@b.com", "password1")
	_, tokenB := registerUser(t, router, "b@b.com", "password1")

	rec := performJSON(t, router, http.MethodPost, "/profile", tokenA, map[string]any{"name": "User A"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = performJSON(t, router, http.MethodGet, "/profile", tokenB, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	prof := decodeBody(t, rec)["profile"].(map[string]any)
	assert.Equal(t, "b@b.com", prof["name"])
}

func TestUploadAPI_AvatarAndHeader(t *testing.T) {
	router := setupTestServer(t)

	for _, tc := range []struct {
		path, field, prefix string
	}{
		{"/upload-avatar", "avatar", "/uploads/avatars/"},
		{"/upload-header", "header", "/uploads/headers/"},
	} {
		body := new(bytes.Buffer)
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile(tc.field, "image.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake png bytes"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, tc.path, body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, "%s: %s", tc.path, rec.Body.String())
		respBody := decodeBody(t, rec)
		path, ok := respBody["path"].(string)
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(path, tc.prefix), "path %q should start with %q", path, tc.prefix)
	}
}

func TestUploadAPI_MissingFile(t *testing.T) {
	router := setupTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/upload-avatar", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "No file", body["error"])
}
