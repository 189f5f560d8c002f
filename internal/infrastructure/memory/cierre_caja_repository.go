package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tuskioscos/tuskioscos-api/internal/domain"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/entity"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/repository"
)

var _ repository.CierreCajaRepository = (*CierreCajaRepo)(nil)

// CierreCajaRepo implementación en memoria de CierreCajaRepository.
type CierreCajaRepo struct {
	acc access
}

func (r *CierreCajaRepo) Create(_ context.Context, c *entity.CierreCaja) error {
	if c.Monto.IsNegative() {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrNegativeMonto)
	}
	return r.acc.do(func(d *data) error {
		if _, ok := d.kioscos[c.KioscoID]; !ok {
			return domain.ErrKioscoNotFound
		}
		d.nextCierre++
		c.ID = d.nextCierre
		c.Fecha = entity.TruncateDay(c.Fecha)
		d.cierres[c.ID] = *c
		return nil
	})
}

func (r *CierreCajaRepo) GetByID(_ context.Context, id int64) (*entity.CierreCaja, error) {
	var out *entity.CierreCaja
	err := r.acc.do(func(d *data) error {
		if c, ok := d.cierres[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CierreCajaRepo) GetWithOwner(_ context.Context, id int64) (*entity.CierreCaja, int64, error) {
	var out *entity.CierreCaja
	var owner int64
	err := r.acc.do(func(d *data) error {
		c, ok := d.cierres[id]
		if !ok {
			return nil
		}
		k, ok := d.kioscos[c.KioscoID]
		if !ok {
			return nil
		}
		out, owner = &c, k.UserID
		return nil
	})
	return out, owner, err
}

func (r *CierreCajaRepo) FindByKioscoAndFecha(_ context.Context, kioscoID int64, fecha time.Time) (*entity.CierreCaja, error) {
	day := entity.TruncateDay(fecha)
	var out *entity.CierreCaja
	err := r.acc.do(func(d *data) error {
		for _, c := range d.cierres {
			if c.KioscoID == kioscoID && c.Fecha.Equal(day) && (out == nil || c.ID > out.ID) {
				c := c
				out = &c
			}
		}
		return nil
	})
	return out, err
}

func (r *CierreCajaRepo) ListByKiosco(_ context.Context, kioscoID int64) ([]*entity.CierreCaja, error) {
	return r.list(func(c entity.CierreCaja) bool { return c.KioscoID == kioscoID })
}

func (r *CierreCajaRepo) ListByKioscoBetween(_ context.Context, kioscoID int64, from, to time.Time) ([]*entity.CierreCaja, error) {
	from, to = entity.TruncateDay(from), entity.TruncateDay(to)
	return r.list(func(c entity.CierreCaja) bool {
		return c.KioscoID == kioscoID && !c.Fecha.Before(from) && !c.Fecha.After(to)
	})
}

func (r *CierreCajaRepo) list(match func(entity.CierreCaja) bool) ([]*entity.CierreCaja, error) {
	list := make([]*entity.CierreCaja, 0)
	err := r.acc.do(func(d *data) error {
		for _, c := range d.cierres {
			if match(c) {
				c := c
				list = append(list, &c)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Fecha.Equal(list[j].Fecha) {
			return list[i].ID > list[j].ID
		}
		return list[i].Fecha.After(list[j].Fecha)
	})
	return list, err
}

func (r *CierreCajaRepo) Update(_ context.Context, c *entity.CierreCaja) error {
	if c.Monto.IsNegative() {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrNegativeMonto)
	}
	return r.acc.do(func(d *data) error {
		cur, ok := d.cierres[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Monto = c.Monto
		cur.UpdatedAt = c.UpdatedAt
		d.cierres[c.ID] = cur
		return nil
	})
}

func (r *CierreCajaRepo) Delete(_ context.Context, id int64) error {
	return r.acc.do(func(d *data) error {
		if _, ok := d.cierres[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.cierres, id)
		return nil
	})
}

func (r *CierreCajaRepo) DeleteByKiosco(_ context.Context, kioscoID int64) (int64, error) {
	var n int64
	err := r.acc.do(func(d *data) error {
		for id, c := range d.cierres {
			if c.KioscoID == kioscoID {
				delete(d.cierres, id)
				n++
			}
		}
		return nil
	})
	return n, err
}
