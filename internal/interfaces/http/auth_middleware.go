package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/pkg/jwt"
)

// Locals keys de la identidad del llamador en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
	LocalEmail  = "email"
	LocalName   = "name"
	LocalExpiry = "token_expires_at"
)

// AuthMiddleware valida el Bearer Token JWT y carga la identidad del llamador en c.Locals.
// No consulta la base de datos: rol y datos de contacto viajan en el token.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fail(c, fiber.StatusUnauthorized, CodeMissingToken, "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fail(c, fiber.StatusUnauthorized, CodeInvalidToken, "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return fail(c, fiber.StatusUnauthorized, CodeMissingToken, "token vacío")
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, CodeInvalidToken, "token inválido o expirado")
		}
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalRole, access.NormalizeRole(id.Role))
		c.Locals(LocalEmail, id.Email)
		c.Locals(LocalName, id.Name)
		c.Locals(LocalExpiry, id.ExpiresAt)
		return c.Next()
	}
}

// RequireRole exige que el rol del llamador alcance al menos uno de los indicados.
// Va siempre después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		for _, r := range roles {
			if access.HasAtLeast(role, r) {
				return c.Next()
			}
		}
		return fail(c, fiber.StatusForbidden, CodeForbidden, "permisos insuficientes")
	}
}

// GetUserID devuelve el id del llamador (0 si la ruta no pasó por AuthMiddleware).
func GetUserID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalUserID).(int64)
	return v
}

// GetRole devuelve el rol canónico del llamador.
func GetRole(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalRole).(string)
	return v
}

// GetEmail devuelve el email del llamador.
func GetEmail(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalEmail).(string)
	return v
}

// GetName devuelve el nombre del llamador.
func GetName(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalName).(string)
	return v
}

// GetCaller arma el Subject que consumen los casos de uso.
func GetCaller(c *fiber.Ctx) access.Subject {
	return access.Subject{UserID: GetUserID(c), Role: GetRole(c)}
}

// GetIdentity devuelve la identidad completa del token (GET /api/auth/verify).
func GetIdentity(c *fiber.Ctx) dto.IdentityResponse {
	exp, _ := c.Locals(LocalExpiry).(time.Time)
	return dto.IdentityResponse{
		ID:        GetUserID(c),
		Email:     GetEmail(c),
		Name:      GetName(c),
		Role:      GetRole(c),
		ExpiresAt: exp,
	}
}
