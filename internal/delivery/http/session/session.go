package http_session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	http_common "github.com/krishkpatil/getflix/internal/delivery/http/common"
	"github.com/krishkpatil/getflix/internal/model"
	usecase_movie "github.com/krishkpatil/getflix/internal/usecase/movie"
	usecase_session "github.com/krishkpatil/getflix/internal/usecase/session"
)

const defaultMovieCount = 20

//go:generate mockery --name=Usecase --output=./mocks/session/usecase --filename=usecase.go
type Usecase interface {
	Create(ctx context.Context, req usecase_session.CreateRequest) (usecase_session.CreateResult, error)
	Get(ctx context.Context, id model.SessionID) (model.MatchSession, error)
	Join(ctx context.Context, id model.SessionID, participantID model.ParticipantID) (usecase_session.JoinResult, error)
	Swipe(ctx context.Context, id model.SessionID, participantID model.ParticipantID, movieID model.MovieID, action model.SwipeAction) (usecase_session.SwipeResult, error)
	Results(ctx context.Context, id model.SessionID, participantID model.ParticipantID) (usecase_session.Results, error)
	ShareURL(id model.SessionID) string
}

// CardRenderer turns deck movies into client-ready cards.
type CardRenderer interface {
	Card(m model.Movie) usecase_movie.Card
}

type Controller struct {
	uc     Usecase
	cards  CardRenderer
	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc Usecase, cards CardRenderer, opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		cards:  cards,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/sessions")
	{
		sessions.POST("", c.create)
		sessions.GET("/:session_id", c.get)
		sessions.POST("/:session_id/participants", c.join)
		sessions.POST("/:session_id/swipes", c.swipe)
		sessions.GET("/:session_id/results", c.results)
		sessions.GET("/:session_id/share", c.share)
	}
}

type SessionDTO struct {
	ID           string               `json:"id"`
	CreatedBy    string               `json:"created_by"`
	CreatedAt    time.Time            `json:"created_at"`
	Status       model.SessionStatus  `json:"status"`
	Participants []string             `json:"participants"`
	Filters      model.SessionFilters `json:"filters"`
	Movies       []usecase_movie.Card `json:"movies"`
}

func (c *Controller) sessionDTO(s model.MatchSession) SessionDTO {
	movies := make([]usecase_movie.Card, 0, len(s.Movies))
	for _, m := range s.Movies {
		movies = append(movies, c.cards.Card(m))
	}
	return SessionDTO{
		ID:           s.ID,
		CreatedBy:    s.CreatedBy,
		CreatedAt:    s.CreatedAt,
		Status:       s.Status,
		Participants: s.Participants,
		Filters:      s.Filters,
		Movies:       movies,
	}
}

type CreateRequestDTO struct {
	Genres     []int  `json:"genres"`
	Timeframe  string `json:"timeframe" binding:"required" example:"5"`
	Region     string `json:"region" binding:"required" example:"hollywood"`
	MovieCount int    `json:"movie_count" binding:"omitempty,min=1,max=100" example:"20"`
}

type CreateResponseDTO struct {
	SessionID     string     `json:"session_id"`
	ParticipantID string     `json:"participant_id"`
	ShareURL      string     `json:"share_url"`
	Session       SessionDTO `json:"session"`
}

// @Summary Create a matching session
// @Description Builds a movie deck from the filters and registers the caller as the first participant
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body CreateRequestDTO true "Session filters"
// @Success 201 {object} CreateResponseDTO
// @Header 201 {string} X-user-token "Participant token of the creator"
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 422 {object} http_common.ErrorResponse "No movies match the filters"
// @Failure 502 {object} http_common.ErrorResponse "Catalog unavailable"
// @Router /sessions [post]
func (c *Controller) create(ctx *gin.Context) {
	var req CreateRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}
	if req.MovieCount == 0 {
		req.MovieCount = defaultMovieCount
	}

	res, err := c.uc.Create(ctx.Request.Context(), usecase_session.CreateRequest{
		Genres:     req.Genres,
		Timeframe:  model.Timeframe(req.Timeframe),
		Region:     model.Region(req.Region),
		MovieCount: req.MovieCount,
		CreatorID:  http_common.ParticipantID(ctx),
	})
	if err != nil {
		c.fail(ctx, "failed to create session", err)
		return
	}

	ctx.Header(http_common.UserTokenHeader, res.CreatorID)
	ctx.JSON(http.StatusCreated, CreateResponseDTO{
		SessionID:     res.Session.ID,
		ParticipantID: res.CreatorID,
		ShareURL:      res.ShareURL,
		Session:       c.sessionDTO(res.Session),
	})
}

// @Summary Get a session
// @Tags Sessions
// @Produce json
// @Param session_id path string true "Session id"
// @Success 200 {object} SessionDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Router /sessions/{session_id} [get]
func (c *Controller) get(ctx *gin.Context) {
	session, err := c.uc.Get(ctx.Request.Context(), ctx.Param("session_id"))
	if err != nil {
		c.fail(ctx, "failed to get session", err)
		return
	}
	ctx.JSON(http.StatusOK, c.sessionDTO(session))
}

type JoinResponseDTO struct {
	ParticipantID string                           `json:"participant_id"`
	State         usecase_session.ParticipantState `json:"state"`
	Cursor        int                              `json:"cursor"`
	Session       SessionDTO                       `json:"session"`
}

// @Summary Join a session
// @Description Idempotent: a returning participant resumes at their cursor
// @Tags Sessions
// @Produce json
// @Param session_id path string true "Session id"
// @Param user_id query string false "Participant id"
// @Success 200 {object} JoinResponseDTO
// @Header 200 {string} X-user-token "Participant token"
// @Failure 404 {object} http_common.ErrorResponse
// @Failure 409 {object} http_common.ErrorResponse "Session is full"
// @Router /sessions/{session_id}/participants [post]
func (c *Controller) join(ctx *gin.Context) {
	res, err := c.uc.Join(ctx.Request.Context(), ctx.Param("session_id"), http_common.ParticipantID(ctx))
	if err != nil {
		c.fail(ctx, "failed to join session", err)
		return
	}

	ctx.Header(http_common.UserTokenHeader, res.ParticipantID)
	ctx.JSON(http.StatusOK, JoinResponseDTO{
		ParticipantID: res.ParticipantID,
		State:         res.State,
		Cursor:        res.Cursor,
		Session:       c.sessionDTO(res.Session),
	})
}

type SwipeRequestDTO struct {
	MovieID int64  `json:"movie_id" binding:"required" example:"550"`
	Action  string `json:"action" binding:"required" example:"like"`
}

type SwipeResponseDTO struct {
	Cursor       int  `json:"cursor"`
	Completed    bool `json:"completed"`
	ResultsReady bool `json:"results_ready"`
}

// @Summary Swipe the current movie
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session id"
// @Param user_id query string false "Participant id, or X-user-token header"
// @Param request body SwipeRequestDTO true "Swipe"
// @Success 200 {object} SwipeResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 401 {object} http_common.ErrorResponse
// @Failure 403 {object} http_common.ErrorResponse
// @Failure 409 {object} http_common.ErrorResponse
// @Router /sessions/{session_id}/swipes [post]
func (c *Controller) swipe(ctx *gin.Context) {
	participantID := http_common.ParticipantID(ctx)
	if participantID == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "participant id not found",
		})
		return
	}

	var req SwipeRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	res, err := c.uc.Swipe(ctx.Request.Context(),
		ctx.Param("session_id"),
		participantID,
		req.MovieID,
		model.SwipeAction(req.Action),
	)
	if err != nil {
		c.fail(ctx, "failed to record swipe", err)
		return
	}

	ctx.JSON(http.StatusOK, SwipeResponseDTO{
		Cursor:       res.Cursor,
		Completed:    res.Completed,
		ResultsReady: res.ResultsReady,
	})
}

type MatchDTO struct {
	Movie       usecase_movie.Card `json:"movie"`
	User1Action model.SwipeAction  `json:"user1_action"`
	User2Action model.SwipeAction  `json:"user2_action"`
	MatchType   model.MatchType    `json:"match_type"`
}

type ResultsResponseDTO struct {
	Status       usecase_session.ResultsStatus `json:"status"`
	ShareURL     string                        `json:"share_url"`
	Participants []string                      `json:"participants"`
	Stats        *model.SessionStats           `json:"stats,omitempty"`
	Matches      []MatchDTO                    `json:"matches,omitempty"`
}

// @Summary Session results
// @Description 202 while the partner is still swiping
// @Tags Sessions
// @Produce json
// @Param session_id path string true "Session id"
// @Param user_id query string false "Participant id"
// @Success 200 {object} ResultsResponseDTO
// @Success 202 {object} ResultsResponseDTO "Waiting for partner"
// @Failure 403 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Router /sessions/{session_id}/results [get]
func (c *Controller) results(ctx *gin.Context) {
	res, err := c.uc.Results(ctx.Request.Context(), ctx.Param("session_id"), http_common.ParticipantID(ctx))
	if err != nil {
		c.fail(ctx, "failed to compute results", err)
		return
	}

	dto := ResultsResponseDTO{
		Status:       res.Status,
		ShareURL:     res.ShareURL,
		Participants: res.Participants,
	}
	if res.Status == usecase_session.ResultsWaitingForPartner {
		ctx.JSON(http.StatusAccepted, dto)
		return
	}

	stats := res.Stats
	dto.Stats = &stats
	dto.Matches = make([]MatchDTO, 0, len(res.Matches))
	for _, m := range res.Matches {
		dto.Matches = append(dto.Matches, MatchDTO{
			Movie:       c.cards.Card(m.Movie),
			User1Action: m.User1Action,
			User2Action: m.User2Action,
			MatchType:   m.MatchType,
		})
	}
	ctx.JSON(http.StatusOK, dto)
}

type ShareResponseDTO struct {
	ShareURL string `json:"share_url"`
}

// @Summary Share link of a session
// @Tags Sessions
// @Produce json
// @Param session_id path string true "Session id"
// @Success 200 {object} ShareResponseDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Router /sessions/{session_id}/share [get]
func (c *Controller) share(ctx *gin.Context) {
	id := ctx.Param("session_id")
	if _, err := c.uc.Get(ctx.Request.Context(), id); err != nil {
		c.fail(ctx, "failed to share session", err)
		return
	}
	ctx.JSON(http.StatusOK, ShareResponseDTO{ShareURL: c.uc.ShareURL(id)})
}

func (c *Controller) fail(ctx *gin.Context, msg string, err error) {
	status, message := statusOf(err)
	if status >= http.StatusInternalServerError {
		c.logger.Error(msg, slog.String("error", err.Error()))
	} else {
		c.logger.Warn(msg, slog.String("error", err.Error()))
	}
	ctx.JSON(status, http_common.ErrorResponse{Message: message})
}

func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, usecase_session.ErrResourceNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, usecase_session.ErrEmptyResult):
		return http.StatusUnprocessableEntity, usecase_session.ErrEmptyResult.Error()
	case errors.Is(err, usecase_session.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, usecase_session.ErrMovieNotInDeck):
		return http.StatusBadRequest, usecase_session.ErrMovieNotInDeck.Error()
	case errors.Is(err, usecase_session.ErrNotParticipant):
		return http.StatusForbidden, usecase_session.ErrNotParticipant.Error()
	case errors.Is(err, usecase_session.ErrSessionFull):
		return http.StatusConflict, usecase_session.ErrSessionFull.Error()
	case errors.Is(err, usecase_session.ErrAlreadyCompleted):
		return http.StatusConflict, usecase_session.ErrAlreadyCompleted.Error()
	case errors.Is(err, usecase_session.ErrOutOfOrder):
		return http.StatusConflict, usecase_session.ErrOutOfOrder.Error()
	case errors.Is(err, usecase_session.ErrUpstream):
		return http.StatusBadGateway, usecase_session.ErrUpstream.Error()
	case errors.Is(err, usecase_session.ErrSessionsUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	}
	return http.StatusInternalServerError, "internal error"
}
