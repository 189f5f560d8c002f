package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrMissingToken       = errors.New("token no proporcionado")
	ErrInvalidToken       = errors.New("token inválido")
	ErrNotOwned           = errors.New("acceso denegado")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrKioscoNotFound     = errors.New("kiosco no encontrado")
	ErrDuplicateCierre    = errors.New("ya existe un cierre de caja para esa fecha")
	ErrNegativeMonto      = errors.New("el monto no puede ser negativo")
)
