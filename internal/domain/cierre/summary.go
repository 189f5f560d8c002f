package cierre

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/entity"
)

// Summary agregados de los cierres de un kiosco dentro de un período (servicio de dominio).
type Summary struct {
	Total         decimal.Decimal
	DiasLaborales int // días con cierre registrado = cantidad de cierres del período
	Promedio      decimal.Decimal
	Maximo        decimal.Decimal
	Minimo        decimal.Decimal
	Cierres       []*entity.CierreCaja // más reciente primero
}

// Summarize filtra los cierres con fecha en [desde, hasta] (días completos, ambos incluidos),
// los ordena del más reciente al más antiguo y calcula total, días laborales y promedio diario.
// Promedio = Total / DiasLaborales, redondeado a 2 decimales; 0 si no hay cierres.
func Summarize(cierres []*entity.CierreCaja, desde, hasta time.Time) Summary {
	from := entity.TruncateDay(desde)
	to := entity.TruncateDay(hasta)

	in := make([]*entity.CierreCaja, 0, len(cierres))
	for _, c := range cierres {
		f := entity.TruncateDay(c.Fecha)
		if f.Before(from) || f.After(to) {
			continue
		}
		in = append(in, c)
	}
	sort.SliceStable(in, func(i, j int) bool {
		if in[i].Fecha.Equal(in[j].Fecha) {
			return in[i].ID > in[j].ID
		}
		return in[i].Fecha.After(in[j].Fecha)
	})

	s := Summary{
		Total:    decimal.Zero,
		Promedio: decimal.Zero,
		Maximo:   decimal.Zero,
		Minimo:   decimal.Zero,
		Cierres:  in,
	}
	for i, c := range in {
		s.Total = s.Total.Add(c.Monto)
		if i == 0 || c.Monto.GreaterThan(s.Maximo) {
			s.Maximo = c.Monto
		}
		if i == 0 || c.Monto.LessThan(s.Minimo) {
			s.Minimo = c.Monto
		}
	}
	s.DiasLaborales = len(in)
	if s.DiasLaborales > 0 {
		s.Promedio = s.Total.Div(decimal.NewFromInt(int64(s.DiasLaborales))).Round(2)
	}
	return s
}

// DefaultPeriod devuelve el período por defecto de las métricas: el último mes hasta hoy.
func DefaultPeriod(now time.Time) (desde, hasta time.Time) {
	hasta = entity.TruncateDay(now)
	desde = hasta.AddDate(0, -1, 0)
	return desde, hasta
}
