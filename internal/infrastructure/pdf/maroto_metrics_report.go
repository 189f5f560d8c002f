// Package pdf implementa el reporte de cierres de caja de un kiosco con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del kiosco     │  Período desde / hasta     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Total | Días laborales | Promedio diario             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Monto                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DEL PERÍODO                                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tuskioscos/tuskioscos-api/internal/application/usecase"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/cierre"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/entity"
)

var _ usecase.MetricsReportGenerator = (*MarotoMetricsReport)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLight   = &props.Color{Red: 235, Green: 245, Blue: 238}
)

const fechaReporte = "02/01/2006"

// printer formatea montos en es-AR: punto de miles, coma decimal.
var printer = message.NewPrinter(language.MustParse("es-AR"))

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoMetricsReport implementa usecase.MetricsReportGenerator usando Maroto v2.
type MarotoMetricsReport struct {
	appName string
}

// NewMarotoMetricsReport construye el generador. appName firma el documento.
func NewMarotoMetricsReport(appName string) *MarotoMetricsReport {
	return &MarotoMetricsReport{appName: appName}
}

// GenerateMetricsPDF genera el PDF y devuelve sus bytes.
func (g *MarotoMetricsReport) GenerateMetricsPDF(
	_ context.Context,
	kiosco *entity.Kiosco,
	desde, hasta time.Time,
	summary cierre.Summary,
) ([]byte, error) {
	if kiosco == nil {
		return nil, fmt.Errorf("pdf: kiosco requerido")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cierres de caja - "+kiosco.Name, true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(kiosco, desde, hasta))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(summary))
	m.AddRows(line.NewRow(4))

	m.AddRows(tableHeaderRow())
	if len(summary.Cierres) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin cierres registrados en el período.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	for _, r := range tableDetailRows(summary.Cierres) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(summary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(kiosco *entity.Kiosco, desde, hasta time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(kiosco.Name, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de cierres de caja", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(desde.Format(fechaReporte)+" al "+hasta.Format(fechaReporte), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
		),
	)
}

// kpiRow: tres recuadros con total, días laborales y promedio diario.
func kpiRow(s cierre.Summary) core.Row {
	box := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: colorGray, Top: 3,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 13, Align: align.Center, Color: colorPrimary, Top: 9,
			}),
		).WithStyle(&props.Cell{BackgroundColor: colorLight})
	}
	return row.New(20).Add(
		box("TOTAL", FormatMonto(s.Total)),
		box("DÍAS LABORALES", printer.Sprintf("%d", s.DiasLaborales)),
		box("PROMEDIO DIARIO", FormatMonto(s.Promedio)),
	)
}

func tableHeaderRow() core.Row {
	return row.New(8).Add(
		col.New(6).Add(text.New("Fecha", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Left, Top: 2, Left: 2,
		})),
		col.New(6).Add(text.New("Monto", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 2,
		})),
	).WithStyle(&props.Cell{BackgroundColor: colorLight})
}

func tableDetailRows(cierres []*entity.CierreCaja) []core.Row {
	result := make([]core.Row, 0, len(cierres))
	for _, c := range cierres {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(c.Fecha.Format(fechaReporte), props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 2,
			})),
			col.New(6).Add(text.New(FormatMonto(c.Monto), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 2,
			})),
		))
	}
	return result
}

func totalRow(s cierre.Summary) core.Row {
	return row.New(10).Add(
		col.New(6).Add(text.New("TOTAL DEL PERÍODO", props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2, Left: 2,
		})),
		col.New(6).Add(text.New(FormatMonto(s.Total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// FormatMonto formatea un monto en pesos con dos decimales.
// Ej: 1234567.5 → "$ 1.234.567,50"
func FormatMonto(d decimal.Decimal) string {
	return printer.Sprintf("$ %.2f", d.Round(2).InexactFloat64())
}
