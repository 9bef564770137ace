package repository

import (
	"context"

	"github.com/oteixeira-dev/cadastro-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Uniqueness of email and cpf is enforced at the storage layer; implementations
// translate constraint violations into the apperr taxonomy.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, u *entity.User) (*entity.User, error)
	Delete(ctx context.Context, id int64) error
}
