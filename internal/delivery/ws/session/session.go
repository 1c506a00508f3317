package ws_session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	http_common "github.com/krishkpatil/getflix/internal/delivery/http/common"
	"github.com/krishkpatil/getflix/internal/model"
	usecase_session "github.com/krishkpatil/getflix/internal/usecase/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type SessionReader interface {
	Get(ctx context.Context, id model.SessionID) (model.MatchSession, error)
}

type Controller struct {
	sessions SessionReader
	hub      *Hub
	logger   *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func NewController(sessions SessionReader, hub *Hub, opts ...ControllerOption) *Controller {
	c := &Controller{
		sessions: sessions,
		hub:      hub,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/sessions/:session_id/ws", c.sessionWS)
}

// @Summary Session events
// @Description Streams PARTICIPANT_JOINED, PARTICIPANT_COMPLETED and RESULTS_READY events
// @Tags Sessions
// @Param session_id path string true "Session id"
// @Param user_id query string false "Participant id"
// @Failure 403 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Router /sessions/{session_id}/ws [get]
func (c *Controller) sessionWS(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")
	participantID := http_common.ParticipantID(ctx)

	session, err := c.sessions.Get(ctx.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, usecase_session.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
			return
		}
		c.logger.Error("failed to load session", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}
	if participantID != "" && !session.HasParticipant(participantID) {
		ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{Message: usecase_session.ErrNotParticipant.Error()})
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("failed to upgrade to websocket", slog.String("error", err.Error()))
		return
	}

	client := &Client{
		hub:           c.hub,
		conn:          conn,
		send:          make(chan []byte, sendBuffer),
		sessionID:     sessionID,
		participantID: participantID,
	}

	select {
	case c.hub.register <- client:
	case <-c.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
