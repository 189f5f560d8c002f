package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCierreCajaRequest entrada para registrar un cierre. Monto acepta número JSON o string numérico.
type CreateCierreCajaRequest struct {
	Monto *decimal.Decimal `json:"monto" validate:"required"`
	Fecha string           `json:"fecha" validate:"required"`
}

// UpdateCierreCajaRequest entrada para corregir el monto de un cierre.
type UpdateCierreCajaRequest struct {
	Monto *decimal.Decimal `json:"monto" validate:"required"`
}

// CierreCajaResponse salida de un cierre; fecha en formato YYYY-MM-DD.
type CierreCajaResponse struct {
	ID        int64           `json:"id"`
	Fecha     string          `json:"fecha"`
	Monto     decimal.Decimal `json:"monto"`
	KioscoID  int64           `json:"kiosco_id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateCierreCajaResult resultado de crear: Created=false cuando la política sobrescribió un cierre existente.
type CreateCierreCajaResult struct {
	Cierre  *CierreCajaResponse
	Created bool
}
