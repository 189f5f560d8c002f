package dto

import "github.com/shopspring/decimal"

func init() {
	// Montos como número JSON (100.5) en lugar de string ("100.5").
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple para operaciones sin cuerpo (logout, delete).
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
