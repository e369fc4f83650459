package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/reelspro/backend/internal/models"
	"github.com/reelspro/backend/internal/repositories"
)

// ReelHandler handles reel creation, lookup and the share counter
type ReelHandler struct {
	reelRepository repositories.ReelRepository
}

// NewReelHandler creates a new ReelHandler
func NewReelHandler(reelRepo repositories.ReelRepository) *ReelHandler {
	return &ReelHandler{reelRepository: reelRepo}
}

// RegisterReelRoutes registers the protected reel routes
func (h *ReelHandler) RegisterReelRoutes(g *echo.Group) {
	g.POST("/reels", h.CreateReel)
	g.POST("/reels/share", h.ShareReel)
}

// RegisterPublicReelRoutes registers reel routes that need no session
func (h *ReelHandler) RegisterPublicReelRoutes(g *echo.Group) {
	g.GET("/reels/:id", h.GetReel)
}

// CreateReel stores the metadata of an uploaded reel. The video itself is
// already on the CDN by the time this is called.
func (h *ReelHandler) CreateReel(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateReelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reel := &models.Reel{
		UserID:       currentUserID,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Caption:      req.Caption,
		Tags:         req.Tags,
		IsPrivate:    req.IsPrivate,
	}

	if err := h.reelRepository.CreateReel(c.Request().Context(), reel); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Reel created successfully",
		"reel":    reel,
	})
}

// GetReel fetches a single reel by ID
func (h *ReelHandler) GetReel(c echo.Context) error {
	reel, err := h.reelRepository.GetReelByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidReelID) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid reel ID")
		}
		if errors.Is(err, repositories.ErrReelNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Reel not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"reel": reel})
}

// ShareReel bumps the share counter. The counter is informational only and
// never decremented.
func (h *ReelHandler) ShareReel(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.ShareReelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	shares, err := h.reelRepository.IncrementShares(c.Request().Context(), req.ReelID)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidReelID) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid reel ID")
		}
		if errors.Is(err, repositories.ErrReelNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Reel not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"shares": shares})
}
