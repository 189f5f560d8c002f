package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tuskioscos/tuskioscos-api/internal/application/dto"
	"github.com/tuskioscos/tuskioscos-api/internal/application/usecase"
)

// MetricsHandler expone los agregados de cierres de un kiosco (JSON y PDF).
type MetricsHandler struct {
	uc *usecase.MetricsUseCase
}

// NewMetricsHandler construye el handler.
func NewMetricsHandler(uc *usecase.MetricsUseCase) *MetricsHandler {
	return &MetricsHandler{uc: uc}
}

// Get godoc
// @Summary      Métricas de cierres
// @Description  Total, días laborales y promedio diario en [desde, hasta]. Por defecto el último mes.
// @Tags         metricas
// @Security     Bearer
// @Produce      json
// @Param        kioscoId  path   int     true   "ID del kiosco"
// @Param        desde     query  string  false  "YYYY-MM-DD"
// @Param        hasta     query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.MetricsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /kioscos/{kioscoId}/metricas [get]
func (h *MetricsHandler) Get(c *fiber.Ctx) error {
	kioscoID, in, err := metricsParams(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Metrics(c.UserContext(), GetUserID(c), kioscoID, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Reporte PDF de cierres
// @Tags         metricas
// @Security     Bearer
// @Produce      application/pdf
// @Param        kioscoId  path   int     true   "ID del kiosco"
// @Param        desde     query  string  false  "YYYY-MM-DD"
// @Param        hasta     query  string  false  "YYYY-MM-DD"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /kioscos/{kioscoId}/metricas/pdf [get]
func (h *MetricsHandler) PDF(c *fiber.Ctx) error {
	kioscoID, in, err := metricsParams(c)
	if err != nil {
		return err
	}
	pdfBytes, filename, err := h.uc.ReportPDF(c.UserContext(), GetUserID(c), kioscoID, in)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}

func metricsParams(c *fiber.Ctx) (int64, dto.MetricsRequest, error) {
	var in dto.MetricsRequest
	kioscoID, err := paramID(c, "kioscoId")
	if err != nil {
		return 0, in, err
	}
	if err := c.QueryParser(&in); err != nil {
		return 0, in, badRequest(CodeValidation, "parámetros de consulta inválidos")
	}
	return kioscoID, in, nil
}
