package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FechaLayout formato de la fecha de un cierre (día calendario, sin hora).
const FechaLayout = "2006-01-02"

// CierreCaja es el total de caja registrado al cerrar un día en un kiosco.
// Fecha se guarda truncada al día en UTC; Monto nunca es negativo.
type CierreCaja struct {
	ID        int64
	KioscoID  int64
	Fecha     time.Time
	Monto     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TruncateDay normaliza un instante al día calendario UTC que representa.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
