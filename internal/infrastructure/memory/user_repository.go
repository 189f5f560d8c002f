package memory

import (
	"context"

	"github.com/tuskioscos/tuskioscos-api/internal/domain"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/entity"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	acc access
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.acc.do(func(d *data) error {
		for _, u := range d.users {
			if u.Email == user.Email {
				return domain.ErrEmailAlreadyExists
			}
		}
		d.nextUser++
		user.ID = d.nextUser
		d.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	err := r.acc.do(func(d *data) error {
		if u, ok := d.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.acc.do(func(d *data) error {
		for _, u := range d.users {
			if u.Email == email {
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}
