package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tuskioscos/tuskioscos-api/internal/application/dto"
	"github.com/tuskioscos/tuskioscos-api/internal/application/ownership"
	"github.com/tuskioscos/tuskioscos-api/internal/domain"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/cierre"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/entity"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/repository"
)

// MetricsUseCase agregados de cierres de un kiosco en un período y su reporte PDF.
type MetricsUseCase struct {
	cierreRepo repository.CierreCajaRepository
	checker    *ownership.Checker
	report     MetricsReportGenerator
	now        func() time.Time
}

// NewMetricsUseCase construye el caso de uso. report puede ser nil si no se expone el PDF.
func NewMetricsUseCase(cierreRepo repository.CierreCajaRepository, checker *ownership.Checker, report MetricsReportGenerator) *MetricsUseCase {
	return &MetricsUseCase{
		cierreRepo: cierreRepo,
		checker:    checker,
		report:     report,
		now:        time.Now,
	}
}

// WithClock fija el reloj usado para el período por defecto.
func (uc *MetricsUseCase) WithClock(now func() time.Time) *MetricsUseCase {
	uc.now = now
	return uc
}

// Metrics calcula total, días laborales y promedio diario del kiosco en [desde, hasta].
func (uc *MetricsUseCase) Metrics(ctx context.Context, userID, kioscoID int64, in dto.MetricsRequest) (*dto.MetricsResponse, error) {
	kiosco, desde, hasta, summary, err := uc.summarize(ctx, userID, kioscoID, in)
	if err != nil {
		return nil, err
	}
	return &dto.MetricsResponse{
		KioscoID:       kiosco.ID,
		KioscoName:     kiosco.Name,
		Desde:          desde.Format(entity.FechaLayout),
		Hasta:          hasta.Format(entity.FechaLayout),
		Total:          summary.Total,
		DiasLaborales:  summary.DiasLaborales,
		PromedioDiario: summary.Promedio,
		MontoMaximo:    summary.Maximo,
		MontoMinimo:    summary.Minimo,
		Cierres:        toCierreResponses(summary.Cierres),
	}, nil
}

// ReportPDF genera el reporte del período.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrKioscoNotFound / domain.ErrNotOwned si falla la pertenencia.
//   - domain.ErrInvalidInput si el período es inválido.
func (uc *MetricsUseCase) ReportPDF(ctx context.Context, userID, kioscoID int64, in dto.MetricsRequest) (pdfBytes []byte, filename string, err error) {
	if uc.report == nil {
		return nil, "", fmt.Errorf("metrics: generador de reportes no configurado")
	}
	kiosco, desde, hasta, summary, err := uc.summarize(ctx, userID, kioscoID, in)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.report.GenerateMetricsPDF(ctx, kiosco, desde, hasta, summary)
	if err != nil {
		return nil, "", fmt.Errorf("metrics: generar pdf: %w", err)
	}
	filename = fmt.Sprintf("cierres-%d-%s-%s.pdf", kiosco.ID, desde.Format(entity.FechaLayout), hasta.Format(entity.FechaLayout))
	return pdfBytes, filename, nil
}

func (uc *MetricsUseCase) summarize(ctx context.Context, userID, kioscoID int64, in dto.MetricsRequest) (*entity.Kiosco, time.Time, time.Time, cierre.Summary, error) {
	desde, hasta, err := parsePeriod(in.Desde, in.Hasta, uc.now())
	if err != nil {
		return nil, time.Time{}, time.Time{}, cierre.Summary{}, err
	}
	kiosco, err := uc.checker.CheckKiosco(ctx, userID, kioscoID)
	if err != nil {
		return nil, time.Time{}, time.Time{}, cierre.Summary{}, err
	}
	list, err := uc.cierreRepo.ListByKioscoBetween(ctx, kioscoID, desde, hasta)
	if err != nil {
		return nil, time.Time{}, time.Time{}, cierre.Summary{}, fmt.Errorf("metrics: listar cierres: %w", err)
	}
	return kiosco, desde, hasta, cierre.Summarize(list, desde, hasta), nil
}

// parsePeriod interpreta desde/hasta (YYYY-MM-DD). Un extremo vacío toma el valor por defecto.
func parsePeriod(desdeStr, hastaStr string, now time.Time) (time.Time, time.Time, error) {
	defDesde, defHasta := cierre.DefaultPeriod(now)
	hasta := defHasta
	if s := strings.TrimSpace(hastaStr); s != "" {
		t, err := time.Parse(entity.FechaLayout, s)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: hasta inválida (formato YYYY-MM-DD)", domain.ErrInvalidInput)
		}
		hasta = t
	}
	desde := defDesde
	if s := strings.TrimSpace(desdeStr); s != "" {
		t, err := time.Parse(entity.FechaLayout, s)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: desde inválida (formato YYYY-MM-DD)", domain.ErrInvalidInput)
		}
		desde = t
	} else if strings.TrimSpace(hastaStr) != "" {
		desde = hasta.AddDate(0, -1, 0)
	}
	if desde.After(hasta) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: desde no puede ser posterior a hasta", domain.ErrInvalidInput)
	}
	return desde, hasta, nil
}
