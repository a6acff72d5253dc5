package auth

import (
	"fmt"

	"terreiro-backend/internal/audit"
	"terreiro-backend/internal/database"
	"terreiro-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type UserResponse struct {
	ID        uint              `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Role      models.UserRole   `json:"role"`
	Status    models.UserStatus `json:"status"`
	CreatedAt string            `json:"created_at"`
}

type UpdateRoleRequest struct {
	Role models.UserRole `json:"role"`
}

// GET /api/users (somente MASTER)
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("created_at asc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os usuários")
		}

		resp := make([]UserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, UserResponse{
				ID:        u.ID,
				Name:      u.Name,
				Email:     u.Email,
				Role:      u.Role,
				Status:    u.Status,
				CreatedAt: u.CreatedAt.Format("2006-01-02 15:04"),
			})
		}
		return c.JSON(resp)
	}
}

// PUT /api/users/:id/approve (somente MASTER)
func ApproveUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuário não encontrado")
		}

		if user.Status == models.UserStatusAprovado {
			return c.JSON(fiber.Map{"id": user.ID, "status": user.Status})
		}

		user.Status = models.UserStatusAprovado
		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível aprovar o usuário")
		}

		audit.Record(CurrentEmail(c), fmt.Sprintf("Usuário aprovado: %s", user.Email))

		return c.JSON(fiber.Map{"id": user.ID, "status": user.Status})
	}
}

// PUT /api/users/:id/role (somente MASTER)
func UpdateRoleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UpdateRoleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		switch body.Role {
		case models.RoleMaster, models.RoleMember:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Papel inválido (MASTER|MEMBER)")
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuário não encontrado")
		}

		// não deixa o último MASTER se rebaixar sozinho
		if user.Role == models.RoleMaster && body.Role == models.RoleMember {
			var masters int64
			database.DB.Model(&models.User{}).Where("role = ?", models.RoleMaster).Count(&masters)
			if masters <= 1 {
				return fiber.NewError(fiber.StatusBadRequest, "Precisa existir pelo menos um MASTER")
			}
		}

		user.Role = body.Role
		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível alterar o papel")
		}

		audit.Record(CurrentEmail(c), fmt.Sprintf("Papel alterado: %s agora é %s", user.Email, user.Role))

		return c.JSON(fiber.Map{"id": user.ID, "role": user.Role})
	}
}
