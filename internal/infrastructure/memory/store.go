// Package memory implementa los puertos de persistencia en memoria (STORAGE_DRIVER=memory).
// Se usa en desarrollo local y en los tests HTTP; los datos se pierden al reiniciar.
package memory

import (
	"context"
	"sync"

	"github.com/tuskioscos/tuskioscos-api/internal/application/usecase"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/entity"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/repository"
)

var _ usecase.TxRunner = (*Store)(nil)

type data struct {
	users   map[int64]entity.User
	kioscos map[int64]entity.Kiosco
	cierres map[int64]entity.CierreCaja

	nextUser   int64
	nextKiosco int64
	nextCierre int64
}

func newData() *data {
	return &data{
		users:   make(map[int64]entity.User),
		kioscos: make(map[int64]entity.Kiosco),
		cierres: make(map[int64]entity.CierreCaja),
	}
}

func (d *data) clone() *data {
	c := &data{
		users:      make(map[int64]entity.User, len(d.users)),
		kioscos:    make(map[int64]entity.Kiosco, len(d.kioscos)),
		cierres:    make(map[int64]entity.CierreCaja, len(d.cierres)),
		nextUser:   d.nextUser,
		nextKiosco: d.nextKiosco,
		nextCierre: d.nextCierre,
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.kioscos {
		c.kioscos[k] = v
	}
	for k, v := range d.cierres {
		c.cierres[k] = v
	}
	return c
}

// access ejecuta fn con acceso exclusivo a los datos.
type access interface {
	do(fn func(d *data) error) error
}

// Store guarda usuarios, kioscos y cierres en mapas protegidos por un mutex.
type Store struct {
	mu sync.Mutex
	d  *data
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{d: newData()}
}

func (s *Store) do(fn func(d *data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.d)
}

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{acc: s} }

// Kioscos devuelve el repositorio de kioscos.
func (s *Store) Kioscos() *KioscoRepo { return &KioscoRepo{acc: s} }

// Cierres devuelve el repositorio de cierres de caja.
func (s *Store) Cierres() *CierreCajaRepo { return &CierreCajaRepo{acc: s} }

// Ping siempre responde; existe para el health check.
func (s *Store) Ping(context.Context) error { return nil }

// Run ejecuta fn sobre una copia de los datos y la publica solo si fn no falla.
// Las transacciones se serializan entre sí y con el resto de operaciones.
func (s *Store) Run(ctx context.Context, fn func(
	kioscoRepo repository.KioscoRepository,
	cierreRepo repository.CierreCajaRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &txAccess{d: s.d.clone()}
	if err := fn(&KioscoRepo{acc: tx}, &CierreCajaRepo{acc: tx}); err != nil {
		return err
	}
	s.d = tx.d
	return nil
}

// txAccess opera sobre la copia de una transacción; el lock ya lo tiene Run.
type txAccess struct {
	d *data
}

func (t *txAccess) do(fn func(d *data) error) error {
	return fn(t.d)
}
