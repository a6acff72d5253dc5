package estoque

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

type CreateItemRequest struct {
	Name     string        `json:"name"`
	Category string        `json:"category"`
	Quantity int           `json:"quantity"`
	Unit     string        `json:"unit"`
	Supplier string        `json:"supplier"`
	Color    string        `json:"color"`
	Price    models.Amount `json:"price"`
}

type UpdateItemRequest struct {
	Name     *string        `json:"name"`
	Category *string        `json:"category"`
	Quantity *int           `json:"quantity"`
	Unit     *string        `json:"unit"`
	Supplier *string        `json:"supplier"`
	Color    *string        `json:"color"`
	Price    *models.Amount `json:"price"`
}

type AdjustQuantityRequest struct {
	Delta int `json:"delta"` // positivo repõe, negativo consome
}

type ItemResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Unit     string  `json:"unit"`
	Supplier string  `json:"supplier"`
	Color    string  `json:"color"`
	Price    float64 `json:"price"`
}

func toResponse(item models.StockItem) ItemResponse {
	return ItemResponse{
		ID:       item.ID,
		Name:     item.Name,
		Category: item.Category,
		Quantity: item.Quantity,
		Unit:     item.Unit,
		Supplier: item.Supplier,
		Color:    item.Color,
		Price:    item.Price,
	}
}

// POST /api/stock-items (somente MASTER)
func CreateItemHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome do item é obrigatório")
		}
		if body.Quantity < 0 {
			body.Quantity = 0
		}

		item := models.StockItem{
			Name:     body.Name,
			Category: strings.TrimSpace(body.Category),
			Quantity: body.Quantity,
			Unit:     strings.TrimSpace(body.Unit),
			Supplier: strings.TrimSpace(body.Supplier),
			Color:    strings.TrimSpace(body.Color),
			Price:    body.Price.Float64(),
		}

		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o item")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Item de estoque criado: %s", item.Name))
		bus.Notify(live.ColStockItems)

		return c.Status(fiber.StatusCreated).JSON(toResponse(item))
	}
}

// GET /api/stock-items?q=vela
func ListItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.StockItem{})

		if q := strings.TrimSpace(c.Query("q")); q != "" {
			like := "%" + strings.ToLower(q) + "%"
			dbq = dbq.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", like, like)
		}

		var items []models.StockItem
		if err := dbq.Order("name asc").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar o estoque")
		}

		resp := make([]ItemResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, toResponse(item))
		}
		return c.JSON(resp)
	}
}

// PUT /api/stock-items/:id (somente MASTER)
func UpdateItemHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.StockItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Item não encontrado")
		}

		var body UpdateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Name != nil {
			item.Name = strings.TrimSpace(*body.Name)
		}
		if body.Category != nil {
			item.Category = strings.TrimSpace(*body.Category)
		}
		if body.Quantity != nil {
			q := *body.Quantity
			if q < 0 {
				q = 0
			}
			item.Quantity = q
		}
		if body.Unit != nil {
			item.Unit = strings.TrimSpace(*body.Unit)
		}
		if body.Supplier != nil {
			item.Supplier = strings.TrimSpace(*body.Supplier)
		}
		if body.Color != nil {
			item.Color = strings.TrimSpace(*body.Color)
		}
		if body.Price != nil {
			item.Price = body.Price.Float64()
		}

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o item")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Item de estoque atualizado: %s", item.Name))
		bus.Notify(live.ColStockItems)

		return c.JSON(toResponse(item))
	}
}

// POST /api/stock-items/:id/adjust: soma delta na quantidade, clampando
// em zero (quantidade nunca fica negativa)
func AdjustQuantityHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.StockItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Item não encontrado")
		}

		var body AdjustQuantityRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if body.Delta == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "delta precisa ser diferente de zero")
		}

		next := item.Quantity + body.Delta
		if next < 0 {
			next = 0
		}
		item.Quantity = next

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível ajustar a quantidade")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Estoque de %s ajustado para %d %s", item.Name, item.Quantity, item.Unit))
		bus.Notify(live.ColStockItems)

		return c.JSON(toResponse(item))
	}
}

// DELETE /api/stock-items/:id (somente MASTER)
func DeleteItemHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.StockItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Item não encontrado")
		}

		if err := database.DB.Delete(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover o item")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Item de estoque removido: %s", item.Name))
		bus.Notify(live.ColStockItems)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DELETE /api/stock-items (somente MASTER): limpa o estoque inteiro
func ClearItemsHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result := database.DB.Where("1 = 1").Delete(&models.StockItem{})
		if result.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível limpar o estoque")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Estoque limpo (%d itens removidos)", result.RowsAffected))
		bus.Notify(live.ColStockItems)

		return c.JSON(fiber.Map{"removed": result.RowsAffected})
	}
}
