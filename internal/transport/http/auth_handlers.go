package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sketchwire/sketchwire-server/internal/auth"
)

// AuthHandlers provides the guest token endpoint.
type AuthHandlers struct {
	auth *auth.Service
	log  *zerolog.Logger
}

// NewAuthHandlers creates a new auth handlers instance.
func NewAuthHandlers(authService *auth.Service, logger *zerolog.Logger) *AuthHandlers {
	return &AuthHandlers{auth: authService, log: logger}
}

// GuestResponse carries the minted token and identity.
type GuestResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// GuestLogin mints a guest token for an anonymous drawing session.
// POST /api/auth/guest
func (h *AuthHandlers) GuestLogin(c *gin.Context) {
	token, userID, err := h.auth.GuestToken()
	if err != nil {
		h.log.Error().Err(err).Msg("failed to mint guest token")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Info().Str("user_id", userID).Msg("guest session created")
	c.JSON(http.StatusCreated, GuestResponse{Token: token, UserID: userID})
}
