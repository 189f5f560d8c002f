package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tuskioscos/tuskioscos-api/internal/application/dto"
	"github.com/tuskioscos/tuskioscos-api/internal/application/usecase"
)

// KioscoHandler maneja el CRUD de kioscos del usuario autenticado.
type KioscoHandler struct {
	uc *usecase.KioscoUseCase
}

// NewKioscoHandler construye el handler.
func NewKioscoHandler(uc *usecase.KioscoUseCase) *KioscoHandler {
	return &KioscoHandler{uc: uc}
}

// List godoc
// @Summary      Listar kioscos
// @Tags         kioscos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.KioscoResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /kioscos [get]
func (h *KioscoHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear kiosco
// @Tags         kioscos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.KioscoRequest  true  "Nombre del kiosco"
// @Success      201   {object}  dto.KioscoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /kioscos [post]
func (h *KioscoHandler) Create(c *fiber.Ctx) error {
	var in dto.KioscoRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener kiosco
// @Tags         kioscos
// @Security     Bearer
// @Produce      json
// @Param        kioscoId  path  int  true  "ID del kiosco"
// @Success      200  {object}  dto.KioscoResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /kioscos/{kioscoId} [get]
func (h *KioscoHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "kioscoId")
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar kiosco
// @Tags         kioscos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kioscoId  path  int  true  "ID del kiosco"
// @Param        body  body  dto.KioscoRequest  true  "Nuevo nombre"
// @Success      200  {object}  dto.KioscoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /kioscos/{kioscoId} [put]
func (h *KioscoHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "kioscoId")
	if err != nil {
		return err
	}
	var in dto.KioscoRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar kiosco
// @Description  Elimina el kiosco y todos sus cierres de caja en una transacción.
// @Tags         kioscos
// @Security     Bearer
// @Produce      json
// @Param        kioscoId  path  int  true  "ID del kiosco"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /kioscos/{kioscoId} [delete]
func (h *KioscoHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "kioscoId")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Kiosco eliminado"})
}
