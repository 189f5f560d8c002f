package repository

import (
	"context"

	"github.com/tuskioscos/tuskioscos-api/internal/domain/entity"
)

// KioscoRepository define el puerto de persistencia para Kiosco.
type KioscoRepository interface {
	Create(ctx context.Context, kiosco *entity.Kiosco) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Kiosco, error)
	ListByUser(ctx context.Context, userID int64) ([]*entity.Kiosco, error)
	Update(ctx context.Context, kiosco *entity.Kiosco) error
	// Delete elimina solo la fila del kiosco; los cierres deben borrarse antes en la misma transacción.
	Delete(ctx context.Context, id int64) error
}
