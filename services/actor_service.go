package services

import (
	"context"

	"github.com/upb/casting-agency/models"
	"github.com/upb/casting-agency/repositories"
	"go.uber.org/zap"
)

// CreateActorRequest is the body of POST /actors
type CreateActorRequest struct {
	Name   *string `json:"name" validate:"required,min=1"`
	Age    *int    `json:"age" validate:"required,gte=0"`
	Gender *string `json:"gender" validate:"required,oneof=female male other"`
}

// UpdateActorRequest is the body of PATCH /actors/{id}. Absent fields are left unchanged.
type UpdateActorRequest struct {
	Name   *string `json:"name" validate:"omitnil,min=1"`
	Age    *int    `json:"age" validate:"omitnil,gte=0"`
	Gender *string `json:"gender" validate:"omitnil,oneof=female male other"`
}

// ActorService implements actor use cases
type ActorService struct {
	actors repositories.ActorRepository
	txMgr  repositories.TransactionManager
	logger *zap.Logger
}

// NewActorService creates a new ActorService
func NewActorService(actors repositories.ActorRepository, txMgr repositories.TransactionManager, logger *zap.Logger) *ActorService {
	return &ActorService{
		actors: actors,
		txMgr:  txMgr,
		logger: logger,
	}
}

// List returns all actors
func (s *ActorService) List(ctx context.Context) ([]*models.Actor, error) {
	actors, err := s.actors.List(ctx)
	if err != nil {
		return nil, WrapInternal("failed to list actors", err)
	}
	return actors, nil
}

// Create validates req and stores a new actor
func (s *ActorService) Create(ctx context.Context, req *CreateActorRequest) (*models.Actor, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	actor := models.NewActor(*req.Name, *req.Age, models.Gender(*req.Gender))
	if err := s.actors.Create(ctx, actor); err != nil {
		return nil, fromRepository(err, ErrActorNotFound, ErrDuplicateActorName, "failed to create actor")
	}

	s.logger.Info("actor created", zap.Int64("actor_id", actor.ID))
	return actor, nil
}

// Update applies the fields present in req to actor id
func (s *ActorService) Update(ctx context.Context, id int64, req *UpdateActorRequest) (*models.Actor, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	return WithTransactionResult(ctx, s.txMgr, func(ctx context.Context, _ repositories.Transaction) (*models.Actor, error) {
		actor, err := s.actors.GetByID(ctx, id)
		if err != nil {
			return nil, fromRepository(err, ErrActorNotFound, ErrDuplicateActorName, "failed to load actor")
		}

		if req.Name != nil {
			actor.Name = *req.Name
		}
		if req.Age != nil {
			age := *req.Age
			actor.Age = &age
		}
		if req.Gender != nil {
			actor.Gender = models.Gender(*req.Gender)
		}

		if err := s.actors.Update(ctx, actor); err != nil {
			return nil, fromRepository(err, ErrActorNotFound, ErrDuplicateActorName, "failed to update actor")
		}

		s.logger.Info("actor updated", zap.Int64("actor_id", id))
		return actor, nil
	})
}

// Delete removes actor id
func (s *ActorService) Delete(ctx context.Context, id int64) error {
	if err := s.actors.Delete(ctx, id); err != nil {
		return fromRepository(err, ErrActorNotFound, ErrDuplicateActorName, "failed to delete actor")
	}

	s.logger.Info("actor deleted", zap.Int64("actor_id", id))
	return nil
}
