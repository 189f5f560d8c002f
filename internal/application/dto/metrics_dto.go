package dto

import "github.com/shopspring/decimal"

// MetricsRequest parámetros del período (YYYY-MM-DD). Vacíos = último mes hasta hoy.
type MetricsRequest struct {
	Desde string `query:"desde"`
	Hasta string `query:"hasta"`
}

// MetricsResponse agregados de cierres de un kiosco en un período.
type MetricsResponse struct {
	KioscoID       int64                `json:"kiosco_id"`
	KioscoName     string               `json:"kiosco_name"`
	Desde          string               `json:"desde"`
	Hasta          string               `json:"hasta"`
	Total          decimal.Decimal      `json:"total"`
	DiasLaborales  int                  `json:"dias_laborales"`
	PromedioDiario decimal.Decimal      `json:"promedio_diario"`
	MontoMaximo    decimal.Decimal      `json:"monto_maximo"`
	MontoMinimo    decimal.Decimal      `json:"monto_minimo"`
	Cierres        []CierreCajaResponse `json:"cierres"`
}
