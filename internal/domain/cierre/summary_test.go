package cierre_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuskioscos/tuskioscos-api/internal/domain/cierre"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/entity"
)

func day(s string) time.Time {
	t, err := time.Parse(entity.FechaLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func nuevoCierre(id int64, fecha, monto string) *entity.CierreCaja {
	return &entity.CierreCaja{ID: id, KioscoID: 1, Fecha: day(fecha), Monto: decimal.RequireFromString(monto)}
}

func TestSummarize_TotalesYPromedio(t *testing.T) {
	cierres := []*entity.CierreCaja{
		nuevoCierre(1, "2024-01-10", "200"),
		nuevoCierre(2, "2024-01-11", "100.50"),
		nuevoCierre(3, "2024-01-12", "0"),
		nuevoCierre(4, "2023-12-31", "999"), // fuera del período
	}

	s := cierre.Summarize(cierres, day("2024-01-01"), day("2024-01-31"))

	assert.True(t, s.Total.Equal(decimal.RequireFromString("300.50")), "total = %s", s.Total)
	assert.Equal(t, 3, s.DiasLaborales)
	assert.True(t, s.Promedio.Equal(decimal.RequireFromString("100.17")), "promedio = %s", s.Promedio)
	assert.True(t, s.Maximo.Equal(decimal.NewFromInt(200)))
	assert.True(t, s.Minimo.Equal(decimal.Zero))

	require.Len(t, s.Cierres, 3)
	assert.Equal(t, int64(3), s.Cierres[0].ID, "el más reciente va primero")
	assert.Equal(t, int64(1), s.Cierres[2].ID)
}

func TestSummarize_LimitesInclusivos(t *testing.T) {
	cierres := []*entity.CierreCaja{
		nuevoCierre(1, "2024-03-01", "10"),
		nuevoCierre(2, "2024-03-31", "20"),
	}
	// hasta con hora: el día completo queda incluido
	hasta := time.Date(2024, 3, 31, 15, 30, 0, 0, time.UTC)

	s := cierre.Summarize(cierres, day("2024-03-01"), hasta)
	assert.Equal(t, 2, s.DiasLaborales)
	assert.True(t, s.Total.Equal(decimal.NewFromInt(30)))
}

func TestSummarize_SinCierres(t *testing.T) {
	s := cierre.Summarize(nil, day("2024-01-01"), day("2024-01-31"))

	assert.True(t, s.Total.IsZero())
	assert.True(t, s.Promedio.IsZero())
	assert.Equal(t, 0, s.DiasLaborales)
	assert.Empty(t, s.Cierres)
}

func TestSummarize_MismaFechaOrdenaPorID(t *testing.T) {
	cierres := []*entity.CierreCaja{
		nuevoCierre(5, "2024-01-10", "1"),
		nuevoCierre(9, "2024-01-10", "2"),
	}
	s := cierre.Summarize(cierres, day("2024-01-01"), day("2024-01-31"))
	require.Len(t, s.Cierres, 2)
	assert.Equal(t, int64(9), s.Cierres[0].ID)
}

func TestDefaultPeriod_UltimoMes(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	desde, hasta := cierre.DefaultPeriod(now)

	assert.Equal(t, day("2024-02-15"), desde)
	assert.Equal(t, day("2024-03-15"), hasta)
}
