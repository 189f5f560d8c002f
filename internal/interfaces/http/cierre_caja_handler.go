package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tuskioscos/tuskioscos-api/internal/application/dto"
	"github.com/tuskioscos/tuskioscos-api/internal/application/usecase"
)

// CierreCajaHandler maneja los cierres de caja de un kiosco.
type CierreCajaHandler struct {
	uc *usecase.CierreCajaUseCase
}

// NewCierreCajaHandler construye el handler.
func NewCierreCajaHandler(uc *usecase.CierreCajaUseCase) *CierreCajaHandler {
	return &CierreCajaHandler{uc: uc}
}

// List godoc
// @Summary      Listar cierres de un kiosco
// @Tags         cierreCaja
// @Security     Bearer
// @Produce      json
// @Param        kioscoId  path  int  true  "ID del kiosco"
// @Success      200  {array}   dto.CierreCajaResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /cierreCaja/{kioscoId} [get]
func (h *CierreCajaHandler) List(c *fiber.Ctx) error {
	kioscoID, err := paramID(c, "kioscoId")
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetUserID(c), kioscoID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar cierre de caja
// @Description  Con CIERRE_DUPLICATE_POLICY=overwrite un cierre existente para la fecha se actualiza (200).
// @Tags         cierreCaja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kioscoId  path  int  true  "ID del kiosco"
// @Param        body  body  dto.CreateCierreCajaRequest  true  "monto y fecha (YYYY-MM-DD)"
// @Success      201  {object}  dto.CierreCajaResponse
// @Success      200  {object}  dto.CierreCajaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /cierreCaja/{kioscoId} [post]
func (h *CierreCajaHandler) Create(c *fiber.Ctx) error {
	kioscoID, err := paramID(c, "kioscoId")
	if err != nil {
		return err
	}
	var in dto.CreateCierreCajaRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	res, err := h.uc.Create(c.UserContext(), GetUserID(c), kioscoID, in)
	if err != nil {
		return err
	}
	status := fiber.StatusOK
	if res.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(res.Cierre)
}

// GetByID godoc
// @Summary      Obtener cierre de caja
// @Tags         cierreCaja
// @Security     Bearer
// @Produce      json
// @Param        kioscoId      path  int  true  "ID del kiosco"
// @Param        cierreCajaId  path  int  true  "ID del cierre"
// @Success      200  {object}  dto.CierreCajaResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /cierreCaja/{kioscoId}/{cierreCajaId} [get]
func (h *CierreCajaHandler) GetByID(c *fiber.Ctx) error {
	kioscoID, cierreID, err := cierreParams(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), kioscoID, cierreID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Corregir monto de un cierre
// @Tags         cierreCaja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kioscoId      path  int  true  "ID del kiosco"
// @Param        cierreCajaId  path  int  true  "ID del cierre"
// @Param        body  body  dto.UpdateCierreCajaRequest  true  "Nuevo monto"
// @Success      200  {object}  dto.CierreCajaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /cierreCaja/{kioscoId}/{cierreCajaId} [put]
func (h *CierreCajaHandler) Update(c *fiber.Ctx) error {
	kioscoID, cierreID, err := cierreParams(c)
	if err != nil {
		return err
	}
	var in dto.UpdateCierreCajaRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), kioscoID, cierreID, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cierre de caja
// @Tags         cierreCaja
// @Security     Bearer
// @Produce      json
// @Param        kioscoId      path  int  true  "ID del kiosco"
// @Param        cierreCajaId  path  int  true  "ID del cierre"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /cierreCaja/{kioscoId}/{cierreCajaId} [delete]
func (h *CierreCajaHandler) Delete(c *fiber.Ctx) error {
	kioscoID, cierreID, err := cierreParams(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), kioscoID, cierreID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Cierre de caja eliminado"})
}

func cierreParams(c *fiber.Ctx) (kioscoID, cierreID int64, err error) {
	if kioscoID, err = paramID(c, "kioscoId"); err != nil {
		return 0, 0, err
	}
	if cierreID, err = paramID(c, "cierreCajaId"); err != nil {
		return 0, 0, err
	}
	return kioscoID, cierreID, nil
}
