package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tuskioscos/tuskioscos-api/internal/domain"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/entity"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/repository"
)

var _ repository.KioscoRepository = (*KioscoRepo)(nil)

// KioscoRepo implementación del puerto KioscoRepository sobre PostgreSQL.
type KioscoRepo struct {
	db Querier
}

// NewKioscoRepository construye el adaptador de persistencia para kioscos.
func NewKioscoRepository(db Querier) *KioscoRepo {
	return &KioscoRepo{db: db}
}

// Create persiste un nuevo kiosco y completa su ID.
func (r *KioscoRepo) Create(ctx context.Context, k *entity.Kiosco) error {
	query := `
		INSERT INTO kioscos (user_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.db.QueryRow(ctx, query, k.UserID, k.Name, k.CreatedAt, k.UpdatedAt).Scan(&k.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: usuario %d inexistente", domain.ErrInvalidInput, k.UserID)
		}
		return fmt.Errorf("insert kiosco: %w", err)
	}
	return nil
}

// GetByID obtiene un kiosco por ID.
func (r *KioscoRepo) GetByID(ctx context.Context, id int64) (*entity.Kiosco, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM kioscos WHERE id = $1`
	var k entity.Kiosco
	err := r.db.QueryRow(ctx, query, id).Scan(&k.ID, &k.UserID, &k.Name, &k.CreatedAt, &k.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get kiosco: %w", err)
	}
	return &k, nil
}

// ListByUser lista los kioscos de un usuario por orden de creación.
func (r *KioscoRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.Kiosco, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM kioscos WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list kioscos: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Kiosco, 0)
	for rows.Next() {
		var k entity.Kiosco
		if err := rows.Scan(&k.ID, &k.UserID, &k.Name, &k.CreatedAt, &k.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan kiosco: %w", err)
		}
		list = append(list, &k)
	}
	return list, rows.Err()
}

// Update actualiza el nombre de un kiosco.
func (r *KioscoRepo) Update(ctx context.Context, k *entity.Kiosco) error {
	cmd, err := r.db.Exec(ctx, `UPDATE kioscos SET name = $2, updated_at = $3 WHERE id = $1`,
		k.ID, k.Name, k.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update kiosco: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrKioscoNotFound
	}
	return nil
}

// Delete elimina un kiosco por ID.
func (r *KioscoRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM kioscos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete kiosco: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrKioscoNotFound
	}
	return nil
}
