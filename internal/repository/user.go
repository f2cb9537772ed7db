package repository

import (
	"context"
	"errors"

	"user-service/internal/domain"
)

var (
	// ErrNotFound is the normal empty result for id/email lookups, not an
	// infrastructure failure.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail reports a violation of the unique email constraint.
	ErrDuplicateEmail = errors.New("email already in use")
)

// ListFilter narrows and pages a List query. Zero-value fields are inactive;
// results come back in ascending id order.
type ListFilter struct {
	ActiveOnly bool
	Role       string
	Offset     int
	Limit      int
}

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter ListFilter) ([]domain.User, error)
	Insert(ctx context.Context, user *domain.User) (int64, error)
	Save(ctx context.Context, user *domain.User) error
}
