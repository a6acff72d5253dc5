package auth

import (
	"fmt"
	"strings"

	"terreiro-backend/internal/config"
	"terreiro-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey    = "user_id"
	CtxUserRoleKey  = "user_role"
	CtxUserEmailKey = "user_email"
)

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := ""

		authHeader := c.Get("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return fiber.NewError(fiber.StatusUnauthorized, "Authorization precisa ser 'Bearer <token>'")
			}
			tokenStr = parts[1]
		} else {
			// websocket do dashboard não consegue mandar header, aceita ?token=
			tokenStr = c.Query("token")
		}

		if tokenStr == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Token de acesso ausente")
		}

		token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de assinatura inválido")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Token inválido ou expirado")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Não foi possível ler o token")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUserRoleKey, claims.Role)
		c.Locals(CtxUserEmailKey, claims.Email)

		return c.Next()
	}
}

func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(CtxUserRoleKey)
		role, ok := roleVal.(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Não foi possível identificar o papel do usuário")
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Você não tem permissão para esta operação")
	}
}

// CurrentEmail: email do usuário autenticado, para a trilha de auditoria
func CurrentEmail(c *fiber.Ctx) string {
	if email, ok := c.Locals(CtxUserEmailKey).(string); ok {
		return email
	}
	return ""
}

// CurrentUserID: id do usuário autenticado (0 se não houver)
func CurrentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(CtxUserIDKey).(uint); ok {
		return id
	}
	return 0
}

// IsMaster: papel MASTER no token
func IsMaster(c *fiber.Ctx) bool {
	role, ok := c.Locals(CtxUserRoleKey).(models.UserRole)
	return ok && role == models.RoleMaster
}
