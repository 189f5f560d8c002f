package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/tuskioscos/tuskioscos-api/internal/domain"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/entity"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/repository"
)

var _ repository.KioscoRepository = (*KioscoRepo)(nil)

// KioscoRepo implementación en memoria de KioscoRepository.
type KioscoRepo struct {
	acc access
}

func (r *KioscoRepo) Create(_ context.Context, k *entity.Kiosco) error {
	return r.acc.do(func(d *data) error {
		if _, ok := d.users[k.UserID]; !ok {
			return fmt.Errorf("%w: usuario %d inexistente", domain.ErrInvalidInput, k.UserID)
		}
		d.nextKiosco++
		k.ID = d.nextKiosco
		d.kioscos[k.ID] = *k
		return nil
	})
}

func (r *KioscoRepo) GetByID(_ context.Context, id int64) (*entity.Kiosco, error) {
	var out *entity.Kiosco
	err := r.acc.do(func(d *data) error {
		if k, ok := d.kioscos[id]; ok {
			out = &k
		}
		return nil
	})
	return out, err
}

func (r *KioscoRepo) ListByUser(_ context.Context, userID int64) ([]*entity.Kiosco, error) {
	list := make([]*entity.Kiosco, 0)
	err := r.acc.do(func(d *data) error {
		for _, k := range d.kioscos {
			if k.UserID == userID {
				k := k
				list = append(list, &k)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, err
}

func (r *KioscoRepo) Update(_ context.Context, k *entity.Kiosco) error {
	return r.acc.do(func(d *data) error {
		cur, ok := d.kioscos[k.ID]
		if !ok {
			return domain.ErrKioscoNotFound
		}
		cur.Name = k.Name
		cur.UpdatedAt = k.UpdatedAt
		d.kioscos[k.ID] = cur
		return nil
	})
}

func (r *KioscoRepo) Delete(_ context.Context, id int64) error {
	return r.acc.do(func(d *data) error {
		if _, ok := d.kioscos[id]; !ok {
			return domain.ErrKioscoNotFound
		}
		for _, c := range d.cierres {
			if c.KioscoID == id {
				// mismo comportamiento que la FK de PostgreSQL
				return fmt.Errorf("%w: el kiosco %d tiene cierres de caja", domain.ErrInvalidInput, id)
			}
		}
		delete(d.kioscos, id)
		return nil
	})
}
