package auth

import (
	"strings"

	"terreiro-backend/internal/audit"
	"terreiro-backend/internal/config"
	"terreiro-backend/internal/database"
	"terreiro-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
// Primeiro usuário vira MASTER aprovado (bootstrap); os demais entram
// como MEMBER pendente até aprovação.
func RegisterHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.Name = strings.TrimSpace(body.Name)

		if body.Email == "" || body.Password == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome, email e senha são obrigatórios")
		}

		var existing models.User
		if err := database.DB.Where("email = ?", body.Email).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Este email já está cadastrado")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o hash da senha")
		}

		role := models.RoleMember
		status := models.UserStatusPendente

		var count int64
		database.DB.Model(&models.User{}).Count(&count)
		if count == 0 {
			role = models.RoleMaster
			status = models.UserStatusAprovado
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         role,
			Status:       status,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o usuário")
		}

		audit.Record(user.Email, "Cadastro solicitado")

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":     user.ID,
			"email":  user.Email,
			"role":   user.Role,
			"status": user.Status,
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email ou senha incorretos")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email ou senha incorretos")
		}

		if user.Status != models.UserStatusAprovado {
			return fiber.NewError(fiber.StatusForbidden, "Cadastro aguardando aprovação de um MASTER")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o token")
		}

		audit.Record(user.Email, "Login realizado")

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":     user.ID,
				"name":   user.Name,
				"email":  user.Email,
				"role":   user.Role,
				"status": user.Status,
			},
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := CurrentUserID(c)

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuário não encontrado")
		}

		return c.JSON(fiber.Map{
			"user_id": user.ID,
			"name":    user.Name,
			"email":   user.Email,
			"role":    user.Role,
			"status":  user.Status,
		})
	}
}
