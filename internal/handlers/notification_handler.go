package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/reelspro/backend/internal/models"
	"github.com/reelspro/backend/internal/repositories"
)

// NotificationHandler handles notification listing for the recipient
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
	reelRepository         repositories.ReelRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository, reelRepo repositories.ReelRepository) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
		reelRepository:         reelRepo,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
}

// EnrichedNotification is a notification with actor and reel resolved to
// display projections
type EnrichedNotification struct {
	ID        uint               `json:"id"`
	Type      string             `json:"type"`
	Comment   string             `json:"comment,omitempty"`
	IsRead    bool               `json:"isRead"`
	CreatedAt time.Time          `json:"created_at"`
	From      models.UserCompact `json:"from"`
	Reel      models.ReelCompact `json:"reel"`
}

// GetNotifications returns the caller's notifications, newest first.
// Listing has no side effect: the read flag is never flipped.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	notifications, err := h.notificationRepository.GetByRecipientID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"notifications": h.enrichNotifications(c, notifications),
	})
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	count, err := h.notificationRepository.GetUnreadCount(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

func (h *NotificationHandler) enrichNotifications(c echo.Context, notifications []models.Notification) []EnrichedNotification {
	ctx := c.Request().Context()
	userCache := make(map[uint]models.UserCompact)
	reelCache := make(map[string]models.ReelCompact)

	enriched := make([]EnrichedNotification, len(notifications))
	for i, n := range notifications {
		enriched[i] = EnrichedNotification{
			ID:        n.ID,
			Type:      n.Type,
			Comment:   n.Comment,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}

		if actor, ok := userCache[n.ActorID]; ok {
			enriched[i].From = actor
		} else if user, err := h.userRepository.GetUserByID(n.ActorID); err == nil {
			compact := user.ToCompact()
			userCache[n.ActorID] = compact
			enriched[i].From = compact
		}

		if reel, ok := reelCache[n.ReelID]; ok {
			enriched[i].Reel = reel
		} else if r, err := h.reelRepository.GetReelByID(ctx, n.ReelID); err == nil {
			compact := r.ToCompact()
			reelCache[n.ReelID] = compact
			enriched[i].Reel = compact
		}
	}
	return enriched
}
