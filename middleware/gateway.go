// middleware/gateway.go
package middleware

import (
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ServiceAuthMiddleware validates the Bearer token when the service
// runs behind a gateway. With CLUTCH_SERVICE_TOKEN unset (local dev,
// tests) every request passes through.
func ServiceAuthMiddleware() fiber.Handler {
	expectedToken := os.Getenv("CLUTCH_SERVICE_TOKEN")

	return func(c *fiber.Ctx) error {
		if expectedToken == "" {
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token != expectedToken {
			log.Printf("🚫 [SERVICE_AUTH] Invalid token for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "token de serviço inválido",
			})
		}

		return c.Next()
	}
}
