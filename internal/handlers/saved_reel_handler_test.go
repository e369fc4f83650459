package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toggleSave(t *testing.T, e *echo.Echo, h *SavedReelHandler, reelID string, userID uint) (map[string]any, error) {
	t.Helper()
	body := fmt.Sprintf(`{"reelId":%q}`, reelID)
	c, rec := newJSONContext(t, e, http.MethodPost, "/api/v1/saved-reels", body, userID)
	if err := h.ToggleSave(c); err != nil {
		return nil, err
	}
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp, nil
}

func TestToggleSave_Involution(t *testing.T) {
	e := newTestEcho(t)
	reels := newMemReelRepo()
	users := newMemUserRepo()
	saved := newMemSavedReelRepo()
	h := NewSavedReelHandler(saved, reels, users)

	owner := users.seed("Alice", "alice@x.com")
	viewer := users.seed("Bob", "bob@x.com")
	reelID := reels.seed(owner.ID, time.Now())

	resp, err := toggleSave(t, e, h, reelID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, true, resp["saved"])
	assert.Equal(t, float64(1), resp["totalSaved"])

	// toggling twice restores the original state
	resp, err = toggleSave(t, e, h, reelID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, false, resp["saved"])
	assert.Equal(t, float64(0), resp["totalSaved"])

	isSaved, err := saved.IsReelSaved(viewer.ID, reelID)
	require.NoError(t, err)
	assert.False(t, isSaved)
}

func TestToggleSave_CountsPerUser(t *testing.T) {
	e := newTestEcho(t)
	reels := newMemReelRepo()
	users := newMemUserRepo()
	saved := newMemSavedReelRepo()
	h := NewSavedReelHandler(saved, reels, users)

	owner := users.seed("Alice", "alice@x.com")
	viewer := users.seed("Bob", "bob@x.com")
	first := reels.seed(owner.ID, time.Now())
	second := reels.seed(owner.ID, time.Now())

	_, err := toggleSave(t, e, h, first, viewer.ID)
	require.NoError(t, err)
	resp, err := toggleSave(t, e, h, second, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(2), resp["totalSaved"])

	// another user's set is independent
	resp, err = toggleSave(t, e, h, first, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(1), resp["totalSaved"])
}

func TestToggleSave_Errors(t *testing.T) {
	e := newTestEcho(t)
	reels := newMemReelRepo()
	users := newMemUserRepo()
	h := NewSavedReelHandler(newMemSavedReelRepo(), reels, users)

	owner := users.seed("Alice", "alice@x.com")
	reelID := reels.seed(owner.ID, time.Now())

	tests := []struct {
		name     string
		reelID   string
		userID   uint
		wantCode int
	}{
		{"unauthenticated", reelID, 0, http.StatusUnauthorized},
		{"malformed reel id", "nope", 2, http.StatusBadRequest},
		{"unknown reel", "64b8f0f0f0f0f0f0f0f0f0f0", 2, http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := toggleSave(t, e, h, tc.reelID, tc.userID)
			require.Error(t, err)
			httpErr, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, tc.wantCode, httpErr.Code)
		})
	}
}

func TestGetSavedReels_ResolvesOwners(t *testing.T) {
	e := newTestEcho(t)
	reels := newMemReelRepo()
	users := newMemUserRepo()
	saved := newMemSavedReelRepo()
	h := NewSavedReelHandler(saved, reels, users)

	owner := users.seed("Alice", "alice@x.com")
	viewer := users.seed("Bob", "bob@x.com")
	reelID := reels.seed(owner.ID, time.Now())

	_, err := toggleSave(t, e, h, reelID, viewer.ID)
	require.NoError(t, err)

	c, rec := newJSONContext(t, e, http.MethodGet, "/api/v1/saved-reels", "", viewer.ID)
	require.NoError(t, h.GetSavedReels(c))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["totalSaved"])

	entries := resp["savedReels"].([]any)
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]any)
	author := entry["author"].(map[string]any)
	assert.Equal(t, "Alice", author["name"])
}
