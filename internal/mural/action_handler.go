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

type CreateActionRequest struct {
	Title string `json:"title"`
}

type UpdateActionStatusRequest struct {
	Status models.ActionStatus `json:"status"`
}

// POST /api/action-items: qualquer membro aprovado pode criar
func CreateActionItemHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateActionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Title = strings.TrimSpace(body.Title)
		if body.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Título da tarefa é obrigatório")
		}

		userID := auth.CurrentUserID(c)

		var user models.User
		owner := "Membro"
		if err := database.DB.First(&user, userID).Error; err == nil && user.Name != "" {
			owner = user.Name
		}

		item := models.ActionItem{
			Title:     body.Title,
			Status:    models.ActionPendente,
			Owner:     owner,
			CreatedBy: userID,
		}

		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível salvar a tarefa")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Tarefa criada: %s", item.Title))
		bus.Notify(live.ColActionItems)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":     item.ID,
			"title":  item.Title,
			"status": item.Status,
			"owner":  item.Owner,
		})
	}
}

// GET /api/action-items?limit=10: mais recentes primeiro
func ListActionItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 10
		if limitStr := c.Query("limit"); limitStr != "" {
			var parsed int
			if _, err := fmt.Sscan(limitStr, &parsed); err != nil || parsed <= 0 || parsed > 100 {
				return fiber.NewError(fiber.StatusBadRequest, "limit inválido")
			}
			limit = parsed
		}

		var items []models.ActionItem
		if err := database.DB.Order("created_at desc, id desc").Limit(limit).Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as tarefas")
		}

		return c.JSON(live.AggregateActions(items))
	}
}

// PUT /api/action-items/:id/status: MASTER ou o criador da tarefa
func UpdateActionStatusHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.ActionItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tarefa não encontrada")
		}

		if !auth.IsMaster(c) && item.CreatedBy != auth.CurrentUserID(c) {
			return fiber.NewError(fiber.StatusForbidden, "Só o criador da tarefa ou um MASTER pode alterá-la")
		}

		var body UpdateActionStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		switch body.Status {
		case models.ActionPendente, models.ActionEmAndamento, models.ActionConcluido:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Status inválido (pendente|em_andamento|concluido)")
		}

		item.Status = body.Status
		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar a tarefa")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Tarefa '%s' marcada como %s", item.Title, item.Status))
		bus.Notify(live.ColActionItems)

		return c.JSON(fiber.Map{"id": item.ID, "status": item.Status})
	}
}

// DELETE /api/action-items/:id (somente MASTER)
func DeleteActionItemHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.ActionItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tarefa não encontrada")
		}

		if err := database.DB.Delete(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover a tarefa")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Tarefa removida: %s", item.Title))
		bus.Notify(live.ColActionItems)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
