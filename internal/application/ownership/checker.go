// Package ownership verifica la cadena de pertenencia User → Kiosco → CierreCaja
// antes de leer o modificar un recurso. Cada verificación vuelve a consultar el store.
package ownership

import (
	"context"
	"errors"
	"fmt"

	"github.com/tuskioscos/tuskioscos-api/internal/domain"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/entity"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/repository"
)

// Checker autoriza un usuario contra un kiosco o un cierre de caja.
type Checker struct {
	kioscoRepo repository.KioscoRepository
	cierreRepo repository.CierreCajaRepository
}

// NewChecker construye el verificador.
func NewChecker(kioscoRepo repository.KioscoRepository, cierreRepo repository.CierreCajaRepository) *Checker {
	return &Checker{kioscoRepo: kioscoRepo, cierreRepo: cierreRepo}
}

// CheckKiosco devuelve el kiosco si pertenece a userID.
//   - domain.ErrKioscoNotFound si el id no existe (404).
//   - domain.ErrNotOwned si existe pero es de otro usuario (403).
func (c *Checker) CheckKiosco(ctx context.Context, userID, kioscoID int64) (*entity.Kiosco, error) {
	kiosco, err := c.kioscoRepo.GetByID(ctx, kioscoID)
	if err != nil {
		return nil, fmt.Errorf("ownership: buscar kiosco %d: %w", kioscoID, err)
	}
	if kiosco == nil {
		return nil, domain.ErrKioscoNotFound
	}
	if !kiosco.OwnedBy(userID) {
		return nil, domain.ErrNotOwned
	}
	return kiosco, nil
}

// CheckCierre verifica primero el kiosco (404/403) y luego el cierre unido a su kiosco.
// Un cierre inexistente, de otro kiosco o de otro dueño es domain.ErrNotOwned.
func (c *Checker) CheckCierre(ctx context.Context, userID, kioscoID, cierreID int64) (*entity.CierreCaja, error) {
	if _, err := c.CheckKiosco(ctx, userID, kioscoID); err != nil {
		return nil, err
	}
	cierre, ownerID, err := c.cierreRepo.GetWithOwner(ctx, cierreID)
	if err != nil {
		return nil, fmt.Errorf("ownership: buscar cierre %d: %w", cierreID, err)
	}
	if cierre == nil || cierre.KioscoID != kioscoID || ownerID != userID {
		return nil, domain.ErrNotOwned
	}
	return cierre, nil
}

// IsKioscoOwner indica si el kiosco existe y pertenece a userID.
func (c *Checker) IsKioscoOwner(ctx context.Context, userID, kioscoID int64) (bool, error) {
	return asBool(c.CheckKiosco(ctx, userID, kioscoID))
}

// IsCierreOwner indica si el cierre existe, pertenece a kioscoID y ese kiosco a userID.
func (c *Checker) IsCierreOwner(ctx context.Context, userID, kioscoID, cierreID int64) (bool, error) {
	return asBool(c.CheckCierre(ctx, userID, kioscoID, cierreID))
}

func asBool[T any](v *T, err error) (bool, error) {
	switch {
	case err == nil:
		return v != nil, nil
	case isAuthorizationError(err):
		return false, nil
	default:
		return false, err
	}
}

func isAuthorizationError(err error) bool {
	return errors.Is(err, domain.ErrNotOwned) || errors.Is(err, domain.ErrKioscoNotFound)
}
