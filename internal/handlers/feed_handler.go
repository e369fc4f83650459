package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/reelspro/backend/internal/models"
	"github.com/reelspro/backend/internal/repositories"
)

// FeedHandler assembles the reel feed: reels newest first, joined with the
// owner's display projection and the caller's like/save state.
type FeedHandler struct {
	reelRepository      repositories.ReelRepository
	userRepository      repositories.UserRepository
	savedReelRepository repositories.SavedReelRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(reelRepo repositories.ReelRepository, userRepo repositories.UserRepository, savedReelRepo repositories.SavedReelRepository) *FeedHandler {
	return &FeedHandler{
		reelRepository:      reelRepo,
		userRepository:      userRepo,
		savedReelRepository: savedReelRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/reels", h.GetFeed)
}

// EnrichedReel is a reel with author info and caller-specific flags
type EnrichedReel struct {
	models.Reel
	Author        models.UserCompact `json:"author"`
	LikesCount    int                `json:"likes_count"`
	CommentsCount int                `json:"comments_count"`
	IsLiked       bool               `json:"is_liked"`
	IsSaved       bool               `json:"is_saved"`
}

// GetFeed returns reels ordered by creation time descending, optionally
// filtered to one owner via ?userId=. The result set is unbounded, matching
// the product's observed behavior.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	ctx := c.Request().Context()

	var reels []models.Reel
	var err error
	if ownerParam := c.QueryParam("userId"); ownerParam != "" {
		ownerID, parseErr := strconv.ParseUint(ownerParam, 10, 32)
		if parseErr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid userId filter")
		}
		reels, err = h.reelRepository.GetReelsByUserID(ctx, uint(ownerID))
	} else {
		reels, err = h.reelRepository.GetAllReels(ctx)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Resolve each distinct owner once.
	userMap := make(map[uint]models.UserCompact)
	reelIDs := make([]string, len(reels))
	for i, r := range reels {
		reelIDs[i] = r.ID.Hex()
		if _, ok := userMap[r.UserID]; ok {
			continue
		}
		if user, err := h.userRepository.GetUserByID(r.UserID); err == nil {
			userMap[r.UserID] = user.ToCompact()
		}
	}

	savedMap := map[string]bool{}
	if currentUserID > 0 {
		savedMap, err = h.savedReelRepository.GetSavedReelIDs(currentUserID, reelIDs)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	enriched := make([]EnrichedReel, len(reels))
	for i, r := range reels {
		enriched[i] = EnrichedReel{
			Reel:          r,
			Author:        userMap[r.UserID],
			LikesCount:    len(r.Likes),
			CommentsCount: len(r.Comments),
			IsLiked:       currentUserID > 0 && r.HasLiked(currentUserID),
			IsSaved:       savedMap[r.ID.Hex()],
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"reels":   enriched,
	})
}
