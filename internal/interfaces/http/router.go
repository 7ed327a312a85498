package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/validador-cpe/internal/application/validation"
	"github.com/jhoicas/validador-cpe/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName    string
	ValidateUC *validation.SingleUseCase
	// JWTSecret vacío deja la API sin autenticación (solo para uso local).
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")
	if deps.JWTSecret != "" {
		api.Use(AuthMiddleware(deps.JWTSecret), RequireScope(jwt.ScopeValidate))
	}

	comprobantes := api.Group("/comprobantes")
	validationHandler := NewValidationHandler(deps.ValidateUC)
	comprobantes.Post("/validar", validationHandler.Validate)
}
