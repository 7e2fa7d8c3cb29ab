package port

import (
	"context"

	"github.com/google/uuid"

	"taxmitra/internal/domain"
)

// UserRepository defines the contract for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
