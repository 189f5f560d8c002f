package repository

import (
	"context"
	"time"

	"github.com/tuskioscos/tuskioscos-api/internal/domain/entity"
)

// CierreCajaRepository define el puerto de persistencia para CierreCaja.
// Las búsquedas por clave devuelven (nil, nil) cuando no hay fila.
type CierreCajaRepository interface {
	Create(ctx context.Context, cierre *entity.CierreCaja) error
	GetByID(ctx context.Context, id int64) (*entity.CierreCaja, error)
	// GetWithOwner devuelve el cierre junto con el dueño de su kiosco (join kioscos).
	GetWithOwner(ctx context.Context, id int64) (*entity.CierreCaja, int64, error)
	// FindByKioscoAndFecha devuelve el cierre más reciente del kiosco para ese día.
	FindByKioscoAndFecha(ctx context.Context, kioscoID int64, fecha time.Time) (*entity.CierreCaja, error)
	// ListByKiosco ordena por fecha descendente y luego id descendente.
	ListByKiosco(ctx context.Context, kioscoID int64) ([]*entity.CierreCaja, error)
	// ListByKioscoBetween filtra por fecha en [from, to], ambos días incluidos.
	ListByKioscoBetween(ctx context.Context, kioscoID int64, from, to time.Time) ([]*entity.CierreCaja, error)
	Update(ctx context.Context, cierre *entity.CierreCaja) error
	Delete(ctx context.Context, id int64) error
	DeleteByKiosco(ctx context.Context, kioscoID int64) (int64, error)
}
