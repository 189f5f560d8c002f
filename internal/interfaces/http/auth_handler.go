package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tuskioscos/tuskioscos-api/internal/application/auth"
	"github.com/tuskioscos/tuskioscos-api/internal/application/dto"
)

// CookieConfig atributos de la cookie de sesión.
type CookieConfig struct {
	Secure     bool
	ExpMinutes int // <= 0: cookie de sesión
}

// AuthHandler maneja registro, login y logout.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	cookie CookieConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, name, password"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /user/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Devuelve el JWT en el cuerpo y además lo guarda en la cookie HttpOnly "token".
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /user/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	cookie := &fiber.Cookie{
		Name:     TokenCookie,
		Value:    out.Token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if h.cookie.ExpMinutes > 0 {
		cookie.Expires = time.Now().Add(time.Duration(h.cookie.ExpMinutes) * time.Minute)
	}
	c.Cookie(cookie)
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Borra la cookie "token". Los JWT no se revocan del lado del servidor.
// @Tags         user
// @Produce      json
// @Success      200   {object}  dto.MessageResponse
// @Router       /user/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})
	return c.JSON(dto.MessageResponse{Success: true, Message: "Sesión cerrada"})
}

// Profile godoc
// @Summary      Usuario autenticado
// @Tags         user
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.UserResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /user [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(c.UserContext(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
