package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/reelspro/backend/internal/imagekit"
)

// UploadHandler issues media CDN upload authentication parameters
type UploadHandler struct {
	signer *imagekit.Signer
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(signer *imagekit.Signer) *UploadHandler {
	return &UploadHandler{signer: signer}
}

// RegisterUploadRoutes registers upload-related routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.GET("/upload-auth", h.GetUploadAuth)
}

// GetUploadAuth returns signed parameters the client hands to the CDN
// upload widget. The video bytes never pass through this server.
func (h *UploadHandler) GetUploadAuth(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	return c.JSON(http.StatusOK, h.signer.AuthenticationParameters())
}
