package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/infrastructure/realtime"
	"careconnect.backend/internal/interfaces/http/middleware"
	"careconnect.backend/internal/interfaces/http/response"
	"careconnect.backend/pkg/logger"
)

type socketHub interface {
	Serve(userID uuid.UUID, conn *websocket.Conn)
}

// RealtimeHandler upgrades providers to a websocket receiving verification updates
type RealtimeHandler struct {
	auth middleware.Authenticator
	hub  socketHub
}

func NewRealtimeHandler(auth middleware.Authenticator, hub socketHub) *RealtimeHandler {
	return &RealtimeHandler{auth: auth, hub: hub}
}

// VerificationSocket authenticates the access token from the query string
// GET /ws/verification?token=
func (h *RealtimeHandler) VerificationSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, domainerrors.Unauthorized("token query parameter is required"))
		return
	}
	identity, err := h.auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	if identity.Role != entities.UserRoleProvider {
		response.Error(c, domainerrors.Forbidden("Insufficient permissions"))
		return
	}

	conn, err := realtime.Upgrade(c.Writer, c.Request)
	if err != nil {
		logger.Warn(c.Request.Context(), "Websocket upgrade failed", zap.Error(err))
		return
	}
	h.hub.Serve(identity.UserID, conn)
}
