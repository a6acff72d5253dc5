package mural

import (
	"fmt"
	"strings"

	"terreiro-backend/internal/audit"
	"terreiro-backend/internal/auth"
	"terreiro-backend/internal/database"
	"terreiro-backend/internal/live"
	"terreiro-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateFocusRequest struct {
	Message string `json:"message"`
}

// POST /api/focus-notes: recado do mural, somente acrescenta
func CreateFocusNoteHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateFocusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Message = strings.TrimSpace(body.Message)
		if body.Message == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Mensagem é obrigatória")
		}

		note := models.FocusNote{Message: body.Message}
		if err := database.DB.Create(&note).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível salvar o recado")
		}

		audit.Record(auth.CurrentEmail(c), "Recado do mural publicado")
		bus.Notify(live.ColFocusNotes)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": note.ID, "message": note.Message})
	}
}

// GET /api/focus-notes?limit=5: mais recentes primeiro
func ListFocusNotesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 5
		if limitStr := c.Query("limit"); limitStr != "" {
			var parsed int
			if _, err := fmt.Sscan(limitStr, &parsed); err != nil || parsed <= 0 || parsed > 100 {
				return fiber.NewError(fiber.StatusBadRequest, "limit inválido")
			}
			limit = parsed
		}

		var notes []models.FocusNote
		if err := database.DB.Order("created_at desc, id desc").Limit(limit).Find(&notes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os recados")
		}

		return c.JSON(live.AggregateFocus(notes))
	}
}
