package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/reelspro/backend/internal/models"
	"github.com/reelspro/backend/internal/repositories"
)

// SavedReelHandler handles the save toggle and the saved-reels listing
type SavedReelHandler struct {
	savedReelRepository repositories.SavedReelRepository
	reelRepository      repositories.ReelRepository
	userRepository      repositories.UserRepository
}

// NewSavedReelHandler creates a new SavedReelHandler
func NewSavedReelHandler(savedReelRepo repositories.SavedReelRepository, reelRepo repositories.ReelRepository, userRepo repositories.UserRepository) *SavedReelHandler {
	return &SavedReelHandler{
		savedReelRepository: savedReelRepo,
		reelRepository:      reelRepo,
		userRepository:      userRepo,
	}
}

// RegisterSavedReelRoutes registers saved-reel routes
func (h *SavedReelHandler) RegisterSavedReelRoutes(g *echo.Group) {
	g.POST("/saved-reels", h.ToggleSave)
	g.GET("/saved-reels", h.GetSavedReels)
}

// SavedReelEntry is one saved reel with its owner resolved for rendering
type SavedReelEntry struct {
	Reel   models.Reel        `json:"reel"`
	Author models.UserCompact `json:"author"`
}

// ToggleSave flips the reel's membership in the caller's saved set. Each
// call changes state exactly once; a retried request toggles back.
func (h *SavedReelHandler) ToggleSave(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SaveReelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Verify the reel exists (and the ID parses) before touching the set.
	if _, err := h.reelRepository.GetReelByID(c.Request().Context(), req.ReelID); err != nil {
		if errors.Is(err, repositories.ErrInvalidReelID) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid reel ID")
		}
		if errors.Is(err, repositories.ErrReelNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Reel not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	isSaved, err := h.savedReelRepository.IsReelSaved(currentUserID, req.ReelID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if isSaved {
		if err := h.savedReelRepository.UnsaveReel(currentUserID, req.ReelID); err != nil && !errors.Is(err, repositories.ErrNotSaved) {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	} else {
		savedReel := &models.SavedReel{
			UserID: currentUserID,
			ReelID: req.ReelID,
		}
		// The unique index swallows a racing duplicate save; the state the
		// caller asked for holds either way.
		if err := h.savedReelRepository.SaveReel(savedReel); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	total, err := h.savedReelRepository.CountSavedByUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"saved":      !isSaved,
		"totalSaved": total,
	})
}

// GetSavedReels lists the caller's saved reels, newest-saved first, with
// owner projections resolved. Saved entries whose reel has since vanished
// are skipped.
func (h *SavedReelHandler) GetSavedReels(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	saved, err := h.savedReelRepository.GetSavedReelsByUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ctx := c.Request().Context()
	userCache := make(map[uint]models.UserCompact)
	entries := []SavedReelEntry{}
	for _, s := range saved {
		reel, err := h.reelRepository.GetReelByID(ctx, s.ReelID)
		if err != nil {
			continue
		}
		author, ok := userCache[reel.UserID]
		if !ok {
			if user, err := h.userRepository.GetUserByID(reel.UserID); err == nil {
				author = user.ToCompact()
				userCache[reel.UserID] = author
			}
		}
		entries = append(entries, SavedReelEntry{Reel: *reel, Author: author})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"savedReels": entries,
		"totalSaved": len(entries),
	})
}
