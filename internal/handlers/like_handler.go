package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/reelspro/backend/internal/models"
	"github.com/reelspro/backend/internal/repositories"
)

// LikeHandler handles the like toggle on reels
type LikeHandler struct {
	reelRepository         repositories.ReelRepository
	notificationRepository repositories.NotificationRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(reelRepo repositories.ReelRepository, notifRepo repositories.NotificationRepository) *LikeHandler {
	return &LikeHandler{
		reelRepository:         reelRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/reels/likes", h.ToggleLike)
}

// ToggleLike flips the caller's membership in the reel's liker set. The add
// is issued as $addToSet, so a retried request that raced an identical one
// observes "already present" instead of inserting a duplicate. A transition
// to liked on someone else's reel appends a like notification; unliking
// never does.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.LikeReelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	reel, err := h.reelRepository.GetReelByID(ctx, req.ReelID)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidReelID) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid reel ID")
		}
		if errors.Is(err, repositories.ErrReelNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Reel not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	added, err := h.reelRepository.AddLike(ctx, req.ReelID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	isLiked := true
	if !added {
		// Already in the set: this call is an unlike.
		if _, err := h.reelRepository.RemoveLike(ctx, req.ReelID, currentUserID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		isLiked = false
	} else if reel.UserID != currentUserID {
		// Best effort: a failed notification insert does not undo the like.
		notification := &models.Notification{
			Type:        models.NotificationTypeLike,
			ActorID:     currentUserID,
			RecipientID: reel.UserID,
			ReelID:      req.ReelID,
		}
		if err := h.notificationRepository.CreateNotification(notification); err != nil {
			log.Printf("failed to create like notification: %v", err)
		}
	}

	updated, err := h.reelRepository.GetReelByID(ctx, req.ReelID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"likes":   len(updated.Likes),
		"isLiked": isLiked,
	})
}
