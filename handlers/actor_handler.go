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

// ActorService is the subset of services.ActorService used by ActorHandler
type ActorService interface {
	List(ctx context.Context) ([]*models.Actor, error)
	Create(ctx context.Context, req *services.CreateActorRequest) (*models.Actor, error)
	Update(ctx context.Context, id int64, req *services.UpdateActorRequest) (*models.Actor, error)
	Delete(ctx context.Context, id int64) error
}

// ActorHandler serves the /actors resource. Every method has the guarded
// operation signature and is registered behind exactly one permission.
type ActorHandler struct {
	service ActorService
	logger  *zap.Logger
}

// NewActorHandler creates a new ActorHandler
func NewActorHandler(service ActorService, logger *zap.Logger) *ActorHandler {
	return &ActorHandler{
		service: service,
		logger:  logger,
	}
}

// List handles GET /actors
func (h *ActorHandler) List(w http.ResponseWriter, r *http.Request, _ *auth.Claims) {
	logger := observability.LoggerFromContext(r.Context(), h.logger)

	actors, err := h.service.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, logger)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, "actors", actors)
}

// Create handles POST /actors
func (h *ActorHandler) Create(w http.ResponseWriter, r *http.Request, claims *auth.Claims) {
	logger := observability.LoggerFromContext(r.Context(), h.logger)

	var req services.CreateActorRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleDecodeError(w, err, logger)
		return
	}

	actor, err := h.service.Create(r.Context(), &req)
	if err != nil {
		HandleServiceError(w, err, logger)
		return
	}

	logger.Info("actor created by subject",
		zap.Int64("actor_id", actor.ID),
		zap.String("sub", claims.Subject))
	_ = utils.WriteSuccess(w, http.StatusOK, "actors", []*models.Actor{actor})
}

// Update handles PATCH /actors/{id}
func (h *ActorHandler) Update(w http.ResponseWriter, r *http.Request, _ *auth.Claims) {
	logger := observability.LoggerFromContext(r.Context(), h.logger)

	id, err := pathID(r)
	if err != nil {
		_ = utils.WriteNotFound(w)
		return
	}

	var req services.UpdateActorRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleDecodeError(w, err, logger)
		return
	}

	actor, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		HandleServiceError(w, err, logger)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, "actors", []*models.Actor{actor})
}

// Delete handles DELETE /actors/{id}
func (h *ActorHandler) Delete(w http.ResponseWriter, r *http.Request, claims *auth.Claims) {
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

	logger.Info("actor deleted by subject",
		zap.Int64("actor_id", id),
		zap.String("sub", claims.Subject))
	_ = utils.WriteSuccess(w, http.StatusOK, "delete", id)
}
