package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tuskioscos/tuskioscos-api/internal/domain"
)

// Locals keys en Fiber.
const (
	LocalAuth      = "auth"
	LocalRequestID = "request_id"
)

// AuthContext identidad autenticada de la petición; AuthMiddleware la guarda una sola vez.
type AuthContext struct {
	UserID int64
}

// TokenCookie nombre de la cookie HttpOnly que emite el login.
const TokenCookie = "token"

// TokenVerifier valida un JWT y devuelve el id del usuario. Lo implementa *auth.AuthUseCase.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// AuthMiddleware exige un JWT válido y deja un AuthContext en c.Locals.
// El token se toma del header "Authorization: Bearer <token>" o, si no hay header, de la cookie "token".
// Un header mal formado es INVALID_TOKEN aunque exista la cookie.
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := extractToken(c)
		if err != nil {
			return err
		}
		userID, err := verifier.Verify(token)
		if err != nil {
			return err
		}
		c.Locals(LocalAuth, AuthContext{UserID: userID})
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) (string, error) {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", &APIError{Status: fiber.StatusUnauthorized, Code: CodeInvalidToken, Message: "formato: Bearer <token>"}
		}
		token := strings.TrimSpace(parts[1])
		if token == "" {
			return "", domain.ErrMissingToken
		}
		return token, nil
	}
	if token := c.Cookies(TokenCookie); token != "" {
		return token, nil
	}
	return "", domain.ErrMissingToken
}

// GetAuth devuelve la identidad cargada por AuthMiddleware; ok=false en rutas públicas.
func GetAuth(c *fiber.Ctx) (AuthContext, bool) {
	a, ok := c.Locals(LocalAuth).(AuthContext)
	return a, ok
}

// GetUserID devuelve el UserID del contexto (después de AuthMiddleware); 0 si no hay.
func GetUserID(c *fiber.Ctx) int64 {
	a, _ := GetAuth(c)
	return a.UserID
}

// RequestID devuelve el id de la petición asignado por el middleware requestid.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalRequestID).(string)
	return id
}
