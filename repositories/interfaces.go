package repositories

import (
	"context"
	"errors"

	"github.com/upb/casting-agency/models"
)

var (
	// ErrNotFound is returned when no row matches the requested ID
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique column would be duplicated
	ErrDuplicate = errors.New("duplicate record")
)

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)

	// InTransaction executes a function within a transaction
	// Automatically commits if function succeeds, rolls back on error
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns the transaction context
	Context() context.Context
}

// ActorRepository handles actor data operations
type ActorRepository interface {
	// Create inserts actor and sets its ID
	Create(ctx context.Context, actor *models.Actor) error

	// GetByID retrieves an actor by ID
	GetByID(ctx context.Context, id int64) (*models.Actor, error)

	// List retrieves all actors ordered by ID
	List(ctx context.Context) ([]*models.Actor, error)

	// Update overwrites all columns of actor
	Update(ctx context.Context, actor *models.Actor) error

	// Delete deletes an actor
	Delete(ctx context.Context, id int64) error
}

// MovieRepository handles movie data operations
type MovieRepository interface {
	// Create inserts movie and sets its ID
	Create(ctx context.Context, movie *models.Movie) error

	// GetByID retrieves a movie by ID
	GetByID(ctx context.Context, id int64) (*models.Movie, error)

	// List retrieves all movies ordered by ID
	List(ctx context.Context) ([]*models.Movie, error)

	// Update overwrites all columns of movie
	Update(ctx context.Context, movie *models.Movie) error

	// Delete deletes a movie
	Delete(ctx context.Context, id int64) error
}

// Repositories groups all repositories
type Repositories struct {
	Actors ActorRepository
	Movies MovieRepository
}
