package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/validador-cpe/internal/application/dto"
	"github.com/jhoicas/validador-cpe/pkg/jwt"
)

// Locals keys para el subject y el alcance del token en Fiber.
const (
	LocalSubject = "subject"
	LocalScope   = "scope"
)

// bearerToken extrae el token de "Authorization: Bearer <token>". Si falla
// devuelve el código de error para la respuesta.
func bearerToken(header string) (string, *dto.ErrorResponse) {
	if header == "" {
		return "", &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"}
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", &dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"}
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"}
	}
	return token, nil
}

// AuthMiddleware exige un JWT emitido con JWT_SECRET (comando "token") y deja
// subject y scope en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, failure := bearerToken(c.Get(fiber.HeaderAuthorization))
		if failure != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(failure)
		}
		subject, scope, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalSubject, subject)
		c.Locals(LocalScope, scope)
		return c.Next()
	}
}

// RequireScope exige que el token tenga el alcance indicado.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got := GetScope(c)
		if got == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_SCOPE", Message: "token sin alcance"})
		}
		if got != scope {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "alcance insuficiente"})
		}
		return c.Next()
	}
}

// GetSubject devuelve el cliente que llama a la API; vacío si la API no exige JWT.
func GetSubject(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSubject).(string)
	return s
}

// GetScope devuelve el alcance del contexto.
func GetScope(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalScope).(string)
	return s
}
