package repository

import (
	"context"

	"github.com/tuskioscos/tuskioscos-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (Credential Store).
// Las búsquedas devuelven (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	// Create persiste el usuario y completa ID/CreatedAt. Devuelve domain.ErrEmailAlreadyExists si el email ya existe.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
