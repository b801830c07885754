package services

import (
	"context"

	"github.com/upb/casting-agency/models"
	"github.com/upb/casting-agency/repositories"
	"go.uber.org/zap"
)

// CreateMovieRequest is the body of POST /movies
type CreateMovieRequest struct {
	Title       *string `json:"title" validate:"required,min=1"`
	ReleaseDate *string `json:"release_date" validate:"required,datetime=2006-01-02"`
}

// UpdateMovieRequest is the body of PATCH /movies/{id}. Absent fields are left unchanged.
type UpdateMovieRequest struct {
	Title       *string `json:"title" validate:"omitnil,min=1"`
	ReleaseDate *string `json:"release_date" validate:"omitnil,datetime=2006-01-02"`
}

// MovieService implements movie use cases
type MovieService struct {
	movies repositories.MovieRepository
	txMgr  repositories.TransactionManager
	logger *zap.Logger
}

// NewMovieService creates a new MovieService
func NewMovieService(movies repositories.MovieRepository, txMgr repositories.TransactionManager, logger *zap.Logger) *MovieService {
	return &MovieService{
		movies: movies,
		txMgr:  txMgr,
		logger: logger,
	}
}

// List returns all movies
func (s *MovieService) List(ctx context.Context) ([]*models.Movie, error) {
	movies, err := s.movies.List(ctx)
	if err != nil {
		return nil, WrapInternal("failed to list movies", err)
	}
	return movies, nil
}

// Create validates req and stores a new movie
func (s *MovieService) Create(ctx context.Context, req *CreateMovieRequest) (*models.Movie, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	releaseDate, err := models.ParseDate(*req.ReleaseDate)
	if err != nil {
		return nil, NewDomainError(ErrInvalidInput.Type, ErrInvalidInput.Message, err).
			WithDetail("release_date", err.Error())
	}

	movie := models.NewMovie(*req.Title, releaseDate)
	if err := s.movies.Create(ctx, movie); err != nil {
		return nil, fromRepository(err, ErrMovieNotFound, ErrDuplicateMovieTitle, "failed to create movie")
	}

	s.logger.Info("movie created", zap.Int64("movie_id", movie.ID))
	return movie, nil
}

// Update applies the fields present in req to movie id
func (s *MovieService) Update(ctx context.Context, id int64, req *UpdateMovieRequest) (*models.Movie, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var releaseDate *models.Date
	if req.ReleaseDate != nil {
		d, err := models.ParseDate(*req.ReleaseDate)
		if err != nil {
			return nil, NewDomainError(ErrInvalidInput.Type, ErrInvalidInput.Message, err).
				WithDetail("release_date", err.Error())
		}
		releaseDate = &d
	}

	return WithTransactionResult(ctx, s.txMgr, func(ctx context.Context, _ repositories.Transaction) (*models.Movie, error) {
		movie, err := s.movies.GetByID(ctx, id)
		if err != nil {
			return nil, fromRepository(err, ErrMovieNotFound, ErrDuplicateMovieTitle, "failed to load movie")
		}

		if req.Title != nil {
			movie.Title = *req.Title
		}
		if releaseDate != nil {
			movie.ReleaseDate = *releaseDate
		}

		if err := s.movies.Update(ctx, movie); err != nil {
			return nil, fromRepository(err, ErrMovieNotFound, ErrDuplicateMovieTitle, "failed to update movie")
		}

		s.logger.Info("movie updated", zap.Int64("movie_id", id))
		return movie, nil
	})
}

// Delete removes movie id
func (s *MovieService) Delete(ctx context.Context, id int64) error {
	if err := s.movies.Delete(ctx, id); err != nil {
		return fromRepository(err, ErrMovieNotFound, ErrDuplicateMovieTitle, "failed to delete movie")
	}

	s.logger.Info("movie deleted", zap.Int64("movie_id", id))
	return nil
}
