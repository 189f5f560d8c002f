package dto

import "time"

// KioscoRequest entrada para crear o renombrar un kiosco.
type KioscoRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// KioscoResponse salida de un kiosco.
type KioscoResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
