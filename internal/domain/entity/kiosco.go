package entity

import "time"

// Kiosco es el local comercial contra el que se registran los cierres de caja.
type Kiosco struct {
	ID        int64
	UserID    int64 // dueño
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy indica si el kiosco pertenece al usuario.
func (k *Kiosco) OwnedBy(userID int64) bool {
	return k != nil && k.UserID == userID
}
