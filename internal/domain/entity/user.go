package entity

import "time"

// User representa al dueño de uno o más kioscos.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string // bcrypt hash, nunca la contraseña plana
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
