package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/reelspro/backend/internal/models"
	"github.com/reelspro/backend/internal/repositories"
)

// CommentHandler handles comment appends on reels
type CommentHandler struct {
	reelRepository         repositories.ReelRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(reelRepo repositories.ReelRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository) *CommentHandler {
	return &CommentHandler{
		reelRepository:         reelRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/reels/comment", h.AppendComment)
}

// EnrichedComment is a comment with its author resolved for rendering
type EnrichedComment struct {
	ID        string             `json:"id"`
	Text      string             `json:"text"`
	CreatedAt time.Time          `json:"created_at"`
	User      models.UserCompact `json:"user"`
}

// AppendComment pushes a comment onto the reel's comment sequence and, when
// the commenter is not the owner, records a comment notification carrying a
// copy of the text. Responds with the full updated comment list.
func (h *CommentHandler) AppendComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CommentReelRequest
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

	comment := models.Comment{
		ID:        uuid.NewString(),
		UserID:    currentUserID,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}

	if err := h.reelRepository.AppendComment(ctx, req.ReelID, comment); err != nil {
		if errors.Is(err, repositories.ErrReelNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Reel not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if reel.UserID != currentUserID {
		notification := &models.Notification{
			Type:        models.NotificationTypeComment,
			ActorID:     currentUserID,
			RecipientID: reel.UserID,
			ReelID:      req.ReelID,
			Comment:     req.Text,
		}
		if err := h.notificationRepository.CreateNotification(notification); err != nil {
			log.Printf("failed to create comment notification: %v", err)
		}
	}

	updated, err := h.reelRepository.GetReelByID(ctx, req.ReelID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"comments": h.enrichComments(updated.Comments),
	})
}

func (h *CommentHandler) enrichComments(comments []models.Comment) []EnrichedComment {
	enriched := make([]EnrichedComment, len(comments))
	userCache := make(map[uint]models.UserCompact)

	for i, cm := range comments {
		enriched[i] = EnrichedComment{
			ID:        cm.ID,
			Text:      cm.Text,
			CreatedAt: cm.CreatedAt,
		}
		author, ok := userCache[cm.UserID]
		if !ok {
			if user, err := h.userRepository.GetUserByID(cm.UserID); err == nil {
				author = user.ToCompact()
			} else {
				log.Printf("failed to resolve comment author %d: %v", cm.UserID, err)
			}
			// misses are cached too so a vanished author is looked up once
			userCache[cm.UserID] = author
		}
		enriched[i].User = author
	}
	return enriched
}
