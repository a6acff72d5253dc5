package cantigas

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"terreiro-backend/internal/audit"
	"terreiro-backend/internal/auth"
	"terreiro-backend/internal/database"
	"terreiro-backend/internal/live"
	"terreiro-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateCantigaRequest struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Lyrics   string `json:"lyrics"`
}

type UpdateCantigaRequest struct {
	Category *string `json:"category"`
	Title    *string `json:"title"`
	Lyrics   *string `json:"lyrics"`
}

type CantigaResponse struct {
	ID        uint   `json:"id"`
	Category  string `json:"category"`
	Title     string `json:"title"`
	Lyrics    string `json:"lyrics"`
	CreatedAt string `json:"created_at"`
}

type CantigaGroup struct {
	Category string            `json:"category"`
	Items    []CantigaResponse `json:"items"`
}

func toResponse(item models.Cantiga) CantigaResponse {
	return CantigaResponse{
		ID:        item.ID,
		Category:  item.Category,
		Title:     item.Title,
		Lyrics:    item.Lyrics,
		CreatedAt: item.CreatedAt.Format(time.RFC3339),
	}
}

// POST /api/cantigas (somente MASTER)
func CreateCantigaHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCantigaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Category = strings.TrimSpace(body.Category)
		body.Lyrics = strings.TrimSpace(body.Lyrics)
		if body.Category == "" || body.Lyrics == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Categoria e letra são obrigatórias")
		}

		item := models.Cantiga{
			Category: body.Category,
			Title:    strings.TrimSpace(body.Title),
			Lyrics:   body.Lyrics,
		}

		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível salvar a cantiga")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Cantiga adicionada em %s", item.Category))
		bus.Notify(live.ColCantigas)

		return c.Status(fiber.StatusCreated).JSON(toResponse(item))
	}
}

// GET /api/cantigas: agrupado por categoria, em ordem alfabética
func ListCantigasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []models.Cantiga
		if err := database.DB.Order("created_at asc").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as cantigas")
		}

		grouped := make(map[string][]CantigaResponse)
		for _, item := range items {
			category := item.Category
			if category == "" {
				category = "Sem categoria"
			}
			grouped[category] = append(grouped[category], toResponse(item))
		}

		categories := make([]string, 0, len(grouped))
		for category := range grouped {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		resp := make([]CantigaGroup, 0, len(categories))
		for _, category := range categories {
			resp = append(resp, CantigaGroup{Category: category, Items: grouped[category]})
		}
		return c.JSON(resp)
	}
}

// PUT /api/cantigas/:id (somente MASTER)
func UpdateCantigaHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.Cantiga
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cantiga não encontrada")
		}

		var body UpdateCantigaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Category != nil {
			item.Category = strings.TrimSpace(*body.Category)
		}
		if body.Title != nil {
			item.Title = strings.TrimSpace(*body.Title)
		}
		if body.Lyrics != nil {
			item.Lyrics = strings.TrimSpace(*body.Lyrics)
		}

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar a cantiga")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Cantiga atualizada: #%d", item.ID))
		bus.Notify(live.ColCantigas)

		return c.JSON(toResponse(item))
	}
}

// DELETE /api/cantigas/:id (somente MASTER)
func DeleteCantigaHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.Cantiga
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cantiga não encontrada")
		}

		if err := database.DB.Delete(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover a cantiga")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Cantiga removida de %s", item.Category))
		bus.Notify(live.ColCantigas)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
