package http_movie

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	http_common "github.com/krishkpatil/getflix/internal/delivery/http/common"
	"github.com/krishkpatil/getflix/internal/model"
	usecase_movie "github.com/krishkpatil/getflix/internal/usecase/movie"
)

type Controller struct {
	uc     *usecase_movie.Usecase
	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_movie.Usecase, opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	movies := router.Group("/movies")
	movies.GET("", c.popular)
	movies.GET("/search", c.search)
	movies.GET("/discover", c.discover)
	movies.GET("/:movie_id", c.details)

	router.GET("/genres", c.genres)
}

type PageResponseDTO = model.Page[usecase_movie.Card]

type GenresResponseDTO struct {
	Genres []model.Genre `json:"genres"`
}

// @Summary Popular movies
// @Tags Movies
// @Produce json
// @Param page query int false "Page" default(1)
// @Param size query string false "Poster size: w500, w780 or original"
// @Success 200 {object} PageResponseDTO
// @Failure 502 {object} http_common.ErrorResponse
// @Router /movies [get]
func (c *Controller) popular(ctx *gin.Context) {
	page, ok := http_common.QueryInt(ctx, "page", 1)
	if !ok {
		c.badRequest(ctx, "page must be a number")
		return
	}
	uc, ok := c.sized(ctx)
	if !ok {
		return
	}
	res, err := uc.Popular(ctx.Request.Context(), page)
	if err != nil {
		c.fail(ctx, "failed to load popular movies", err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// @Summary Search movies
// @Description A blank query returns popular movies
// @Tags Movies
// @Produce json
// @Param query query string false "Title"
// @Param page query int false "Page" default(1)
// @Param size query string false "Poster size: w500, w780 or original"
// @Success 200 {object} PageResponseDTO
// @Failure 502 {object} http_common.ErrorResponse
// @Router /movies/search [get]
func (c *Controller) search(ctx *gin.Context) {
	page, ok := http_common.QueryInt(ctx, "page", 1)
	if !ok {
		c.badRequest(ctx, "page must be a number")
		return
	}
	uc, ok := c.sized(ctx)
	if !ok {
		return
	}
	res, err := uc.Search(ctx.Request.Context(), ctx.Query("query"), page)
	if err != nil {
		c.fail(ctx, "failed to search movies", err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// @Summary Discover movies
// @Tags Movies
// @Produce json
// @Param genres query string false "Comma separated genre ids"
// @Param timeframe query string false "5, 10 or all"
// @Param region query string false "hollywood, bollywood or all"
// @Param min_rating query number false "Minimum vote average"
// @Param page query int false "Page" default(1)
// @Param size query string false "Poster size: w500, w780 or original"
// @Success 200 {object} PageResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 502 {object} http_common.ErrorResponse
// @Router /movies/discover [get]
func (c *Controller) discover(ctx *gin.Context) {
	page, ok := http_common.QueryInt(ctx, "page", 1)
	if !ok {
		c.badRequest(ctx, "page must be a number")
		return
	}
	genres, err := parseGenres(ctx.Query("genres"))
	if err != nil {
		c.badRequest(ctx, "genres must be comma separated ids")
		return
	}
	var minRating float64
	if raw := ctx.Query("min_rating"); raw != "" {
		if minRating, err = strconv.ParseFloat(raw, 64); err != nil {
			c.badRequest(ctx, "min_rating must be a number")
			return
		}
	}

	uc, ok := c.sized(ctx)
	if !ok {
		return
	}
	res, err := uc.Discover(ctx.Request.Context(), usecase_movie.DiscoverFilter{
		GenreIDs:  genres,
		Timeframe: model.Timeframe(ctx.Query("timeframe")),
		Region:    model.Region(ctx.Query("region")),
		MinRating: minRating,
		Page:      page,
	})
	if err != nil {
		c.fail(ctx, "failed to discover movies", err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// @Summary Movie details
// @Tags Movies
// @Produce json
// @Param movie_id path int true "Movie id"
// @Success 200 {object} usecase_movie.DetailsCard
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Router /movies/{movie_id} [get]
func (c *Controller) details(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("movie_id"), 10, 64)
	if err != nil {
		c.badRequest(ctx, "invalid movie id")
		return
	}
	res, err := c.uc.Details(ctx.Request.Context(), id)
	if err != nil {
		c.fail(ctx, "failed to load movie details", err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// @Summary Movie genres
// @Tags Movies
// @Produce json
// @Success 200 {object} GenresResponseDTO
// @Failure 502 {object} http_common.ErrorResponse
// @Router /genres [get]
func (c *Controller) genres(ctx *gin.Context) {
	genres, err := c.uc.Genres(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, "failed to load genres", err)
		return
	}
	ctx.JSON(http.StatusOK, GenresResponseDTO{Genres: genres})
}

// sized honours the optional size query, writing 400 on an unknown size.
func (c *Controller) sized(ctx *gin.Context) (*usecase_movie.Usecase, bool) {
	raw := ctx.Query("size")
	if raw == "" {
		return c.uc, true
	}
	size, err := model.ParsePosterSize(raw)
	if err != nil {
		c.badRequest(ctx, err.Error())
		return nil, false
	}
	return c.uc.WithPosterSize(size), true
}

func (c *Controller) badRequest(ctx *gin.Context, msg string) {
	ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: msg})
}

func (c *Controller) fail(ctx *gin.Context, msg string, err error) {
	c.logger.Error(msg, slog.String("error", err.Error()))
	switch {
	case errors.Is(err, usecase_movie.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: err.Error()})
	case errors.Is(err, usecase_movie.ErrResourceNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
	case errors.Is(err, usecase_movie.ErrUpstream):
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{Message: usecase_movie.ErrUpstream.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
	}
}

func parseGenres(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
