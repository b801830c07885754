package handlers

import (
	"context"
	"net/http"

	"github.com/upb/casting-agency/internal/auth"
	"github.com/upb/casting-agency/internal/observability"
	"github.com/upb/casting-agency/models"
	"github.com/upb/casting-agency/services"
	"github.com/upb/casting-agency/utils"
	"go.uber.org/zap"
)

// MovieService is the subset of services.MovieService used by MovieHandler
type MovieService interface {
	List(ctx context.Context) ([]*models.Movie, error)
	Create(ctx context.Context, req *services.CreateMovieRequest) (*models.Movie, error)
	Update(ctx context.Context, id int64, req *services.UpdateMovieRequest) (*models.Movie, error)
	Delete(ctx context.Context, id int64) error
}

// MovieHandler serves the /movies resource
type MovieHandler struct {
	service MovieService
	logger  *zap.Logger
}

// NewMovieHandler creates a new MovieHandler
func NewMovieHandler(service MovieService, logger *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		logger:  logger,
	}
}

// List handles GET /movies
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request, _ *auth.Claims) {
	movies, err := h.service.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, observability.LoggerFromContext(r.Context(), h.logger))
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, "movies", movies)
}

// Create handles POST /movies
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request, claims *auth.Claims) {
	logger := observability.LoggerFromContext(r.Context(), h.logger)

	var req services.CreateMovieRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleDecodeError(w, err, logger)
		return
	}

	movie, err := h.service.Create(r.Context(), &req)
	if err != nil {
		HandleServiceError(w, err, logger)
		return
	}

	logger.Info("movie created by subject",
		zap.Int64("movie_id", movie.ID),
		zap.String("sub", claims.Subject))
	_ = utils.WriteSuccess(w, http.StatusOK, "movies", []*models.Movie{movie})
}

// Update handles PATCH /movies/{id}
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request, _ *auth.Claims) {
	logger := observability.LoggerFromContext(r.Context(), h.logger)

	id, err := pathID(r)
	if err != nil {
		_ = utils.WriteNotFound(w)
		return
	}

	var req services.UpdateMovieRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleDecodeError(w, err, logger)
		return
	}

	movie, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		HandleServiceError(w, err, logger)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, "movies", []*models.Movie{movie})
}

// Delete handles DELETE /movies/{id}
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request, claims *auth.Claims) {
	logger := observability.LoggerFromContext(r.Context(), h.logger)

	id, err := pathID(r)
	if err != nil {
		_ = utils.WriteNotFound(w)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, err, logger)
		return
	}

	logger.Info("movie deleted by subject",
		zap.Int64("movie_id", id),
		zap.String("sub", claims.Subject))
	_ = utils.WriteSuccess(w, http.StatusOK, "delete", id)
}
