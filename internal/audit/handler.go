package audit

import (
	"fmt"

	"terreiro-backend/internal/database"
	"terreiro-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?limit=100
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 100
		if limitStr := c.Query("limit"); limitStr != "" {
			var parsed int
			if _, err := fmt.Sscan(limitStr, &parsed); err != nil || parsed <= 0 || parsed > 1000 {
				return fiber.NewError(fiber.StatusBadRequest, "limit inválido")
			}
			limit = parsed
		}

		var logs []models.AuditLog
		if err := database.DB.Order("created_at desc, id desc").Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os logs")
		}

		return c.JSON(logs)
	}
}
