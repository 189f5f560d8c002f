package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tuskioscos/tuskioscos-api/internal/domain"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/entity"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/repository"
)

var _ repository.CierreCajaRepository = (*CierreCajaRepo)(nil)

const cierreColumns = `c.id, c.kiosco_id, c.fecha, c.monto, c.created_at, c.updated_at`

// CierreCajaRepo implementación del puerto CierreCajaRepository sobre PostgreSQL.
type CierreCajaRepo struct {
	db Querier
}

// NewCierreCajaRepository construye el adaptador de persistencia para cierres de caja.
func NewCierreCajaRepository(db Querier) *CierreCajaRepo {
	return &CierreCajaRepo{db: db}
}

// Create persiste un nuevo cierre y completa su ID.
func (r *CierreCajaRepo) Create(ctx context.Context, c *entity.CierreCaja) error {
	query := `
		INSERT INTO cierres_caja (kiosco_id, fecha, monto, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		c.KioscoID, c.Fecha, c.Monto, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return mapCierreWriteError("insert cierre", err)
	}
	return nil
}

// GetByID obtiene un cierre por ID.
func (r *CierreCajaRepo) GetByID(ctx context.Context, id int64) (*entity.CierreCaja, error) {
	query := `SELECT ` + cierreColumns + ` FROM cierres_caja c WHERE c.id = $1`
	var c entity.CierreCaja
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.KioscoID, &c.Fecha, &c.Monto, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cierre: %w", err)
	}
	return &c, nil
}

// GetWithOwner obtiene el cierre y el user_id del kiosco al que pertenece.
func (r *CierreCajaRepo) GetWithOwner(ctx context.Context, id int64) (*entity.CierreCaja, int64, error) {
	query := `
		SELECT ` + cierreColumns + `, k.user_id
		FROM cierres_caja c
		JOIN kioscos k ON k.id = c.kiosco_id
		WHERE c.id = $1`
	var c entity.CierreCaja
	var ownerID int64
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.KioscoID, &c.Fecha, &c.Monto, &c.CreatedAt, &c.UpdatedAt, &ownerID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("get cierre with owner: %w", err)
	}
	return &c, ownerID, nil
}

// FindByKioscoAndFecha obtiene el cierre más reciente del kiosco para un día.
func (r *CierreCajaRepo) FindByKioscoAndFecha(ctx context.Context, kioscoID int64, fecha time.Time) (*entity.CierreCaja, error) {
	query := `
		SELECT ` + cierreColumns + `
		FROM cierres_caja c
		WHERE c.kiosco_id = $1 AND c.fecha = $2
		ORDER BY c.id DESC LIMIT 1
		FOR UPDATE`
	var c entity.CierreCaja
	err := r.db.QueryRow(ctx, query, kioscoID, entity.TruncateDay(fecha)).Scan(
		&c.ID, &c.KioscoID, &c.Fecha, &c.Monto, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find cierre by fecha: %w", err)
	}
	return &c, nil
}

// ListByKiosco lista los cierres de un kiosco, más reciente primero.
func (r *CierreCajaRepo) ListByKiosco(ctx context.Context, kioscoID int64) ([]*entity.CierreCaja, error) {
	query := `
		SELECT ` + cierreColumns + `
		FROM cierres_caja c
		WHERE c.kiosco_id = $1
		ORDER BY c.fecha DESC, c.id DESC`
	return r.list(ctx, query, kioscoID)
}

// ListByKioscoBetween lista los cierres del kiosco con fecha en [from, to].
func (r *CierreCajaRepo) ListByKioscoBetween(ctx context.Context, kioscoID int64, from, to time.Time) ([]*entity.CierreCaja, error) {
	query := `
		SELECT ` + cierreColumns + `
		FROM cierres_caja c
		WHERE c.kiosco_id = $1 AND c.fecha BETWEEN $2 AND $3
		ORDER BY c.fecha DESC, c.id DESC`
	return r.list(ctx, query, kioscoID, entity.TruncateDay(from), entity.TruncateDay(to))
}

func (r *CierreCajaRepo) list(ctx context.Context, query string, args ...any) ([]*entity.CierreCaja, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cierres: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.CierreCaja, 0)
	for rows.Next() {
		var c entity.CierreCaja
		if err := rows.Scan(&c.ID, &c.KioscoID, &c.Fecha, &c.Monto, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cierre: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza el monto de un cierre. La fecha y el kiosco no cambian.
func (r *CierreCajaRepo) Update(ctx context.Context, c *entity.CierreCaja) error {
	cmd, err := r.db.Exec(ctx, `UPDATE cierres_caja SET monto = $2, updated_at = $3 WHERE id = $1`,
		c.ID, c.Monto, c.UpdatedAt,
	)
	if err != nil {
		return mapCierreWriteError("update cierre", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cierre por ID.
func (r *CierreCajaRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM cierres_caja WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cierre: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByKiosco elimina todos los cierres del kiosco y devuelve cuántos borró.
func (r *CierreCajaRepo) DeleteByKiosco(ctx context.Context, kioscoID int64) (int64, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM cierres_caja WHERE kiosco_id = $1`, kioscoID)
	if err != nil {
		return 0, fmt.Errorf("delete cierres by kiosco: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func mapCierreWriteError(op string, err error) error {
	switch {
	case isCheckViolation(err):
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrNegativeMonto)
	case isNumericOutOfRange(err):
		return fmt.Errorf("%w: monto fuera de rango", domain.ErrInvalidInput)
	case isForeignKeyViolation(err):
		return domain.ErrKioscoNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
