package usecase

import (
	"context"
	"time"

	"github.com/tuskioscos/tuskioscos-api/internal/domain/cierre"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/entity"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ningún efecto parcial.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		kioscoRepo repository.KioscoRepository,
		cierreRepo repository.CierreCajaRepository,
	) error) error
}

// MetricsReportGenerator renderiza el reporte de métricas de un kiosco (PDF).
type MetricsReportGenerator interface {
	GenerateMetricsPDF(ctx context.Context, kiosco *entity.Kiosco, desde, hasta time.Time, summary cierre.Summary) ([]byte, error)
}
