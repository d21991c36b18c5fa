package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/pkg/jwt"
)

// Locals keys para UserID y Email en Fiber.
const (
	LocalUserID    = "user_id"
	LocalUserEmail = "user_email"
)

// AuthGuard valida el Bearer Token de cada petición entrante, salvo en las
// rutas marcadas explícitamente como públicas. El marcado es declarativo:
// el router registra método+path públicos y el guard los consulta ANTES de
// verificar el token.
type AuthGuard struct {
	secret         string
	public         map[string]struct{}
	publicPrefixes []string
}

// NewAuthGuard construye el guard con el secret HMAC compartido.
func NewAuthGuard(secret string) *AuthGuard {
	return &AuthGuard{secret: secret, public: make(map[string]struct{})}
}

// Public marca una ruta exacta (método + path) como pública. Encadenable.
func (g *AuthGuard) Public(method, path string) *AuthGuard {
	g.public[method+" "+path] = struct{}{}
	return g
}

// PublicPrefix marca como público todo path bajo un prefijo (ej. /docs).
func (g *AuthGuard) PublicPrefix(prefix string) *AuthGuard {
	g.publicPrefixes = append(g.publicPrefixes, prefix)
	return g
}

func (g *AuthGuard) isPublic(method, path string) bool {
	if _, ok := g.public[method+" "+path]; ok {
		return true
	}
	for _, p := range g.publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Middleware devuelve el handler Fiber del guard. En rutas públicas pasa sin
// mirar el header; en el resto exige un Bearer Token válido y deja user_id y
// user_email en c.Locals.
func (g *AuthGuard) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if g.isPublic(c.Method(), c.Path()) {
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, email, err := jwt.Parse(g.secret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalUserEmail, email)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del guard).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetUserEmail devuelve el email del contexto (después del guard).
func GetUserEmail(c *fiber.Ctx) string {
	v := c.Locals(LocalUserEmail)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
