package caixa

import (
	"fmt"
	"strings"
	"time"

	"terreiro-backend/internal/audit"
	"terreiro-backend/internal/auth"
	"terreiro-backend/internal/database"
	"terreiro-backend/internal/live"
	"terreiro-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateTransactionRequest struct {
	Label  string          `json:"label"`
	Type   models.CashType `json:"type"`   // entrada | saida
	Amount models.Amount   `json:"amount"` // número ou string numérica
	Date   string          `json:"date"`   // dd/mm/yyyy, vazio vira hoje
	Method string          `json:"method"`
}

type UpdateTransactionRequest struct {
	Label  *string          `json:"label"`
	Type   *models.CashType `json:"type"`
	Amount *models.Amount   `json:"amount"`
	Date   *string          `json:"date"`
	Method *string          `json:"method"`
}

type TransactionResponse struct {
	ID        uint            `json:"id"`
	Label     string          `json:"label"`
	Type      models.CashType `json:"type"`
	Amount    float64         `json:"amount"`
	Date      string          `json:"date"`
	Method    string          `json:"method"`
	CreatedAt string          `json:"created_at"`
}

func toResponse(tx models.CashTransaction) TransactionResponse {
	return TransactionResponse{
		ID:        tx.ID,
		Label:     tx.Label,
		Type:      tx.Type,
		Amount:    tx.Amount,
		Date:      tx.Date,
		Method:    tx.Method,
		CreatedAt: tx.CreatedAt.Format(time.RFC3339),
	}
}

// POST /api/cash-transactions
func CreateTransactionHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Label = strings.TrimSpace(body.Label)
		if body.Label == "" {
			body.Label = "Movimento"
		}

		switch body.Type {
		case models.CashTypeEntrada, models.CashTypeSaida:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Tipo inválido (entrada|saida)")
		}

		date := strings.TrimSpace(body.Date)
		if date == "" {
			date = time.Now().Format("02/01/2006")
		} else if _, ok := live.ParseBRDate(date); !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Data inválida, use dd/mm/aaaa")
		}

		tx := models.CashTransaction{
			Label:  body.Label,
			Type:   body.Type,
			Amount: body.Amount.Float64(),
			Date:   date,
			Method: strings.TrimSpace(body.Method),
		}

		if err := database.DB.Create(&tx).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gravar o movimento")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Movimento de caixa criado: %s (%s R$ %.2f)", tx.Label, tx.Type, tx.Amount))
		bus.Notify(live.ColCashTransactions)

		return c.Status(fiber.StatusCreated).JSON(toResponse(tx))
	}
}

// GET /api/cash-transactions?type=entrada
func ListTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.CashTransaction{})

		if typeStr := c.Query("type"); typeStr != "" {
			switch models.CashType(typeStr) {
			case models.CashTypeEntrada, models.CashTypeSaida:
				dbq = dbq.Where("type = ?", typeStr)
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Tipo inválido (entrada|saida)")
			}
		}

		var txs []models.CashTransaction
		if err := dbq.Order("created_at desc, id desc").Find(&txs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os movimentos")
		}

		resp := make([]TransactionResponse, 0, len(txs))
		for _, tx := range txs {
			resp = append(resp, toResponse(tx))
		}
		return c.JSON(resp)
	}
}

// PUT /api/cash-transactions/:id (somente MASTER)
func UpdateTransactionHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var tx models.CashTransaction
		if err := database.DB.First(&tx, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Movimento não encontrado")
		}

		var body UpdateTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Label != nil {
			tx.Label = strings.TrimSpace(*body.Label)
		}
		if body.Type != nil {
			switch *body.Type {
			case models.CashTypeEntrada, models.CashTypeSaida:
				tx.Type = *body.Type
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Tipo inválido (entrada|saida)")
			}
		}
		if body.Amount != nil {
			tx.Amount = body.Amount.Float64()
		}
		if body.Date != nil {
			if _, ok := live.ParseBRDate(*body.Date); !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Data inválida, use dd/mm/aaaa")
			}
			tx.Date = *body.Date
		}
		if body.Method != nil {
			tx.Method = strings.TrimSpace(*body.Method)
		}

		if err := database.DB.Save(&tx).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o movimento")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Movimento de caixa atualizado: #%d", tx.ID))
		bus.Notify(live.ColCashTransactions)

		return c.JSON(toResponse(tx))
	}
}

// DELETE /api/cash-transactions/:id (somente MASTER)
func DeleteTransactionHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var tx models.CashTransaction
		if err := database.DB.First(&tx, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Movimento não encontrado")
		}

		if err := database.DB.Delete(&tx).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover o movimento")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Movimento de caixa removido: %s", tx.Label))
		bus.Notify(live.ColCashTransactions)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DELETE /api/cash-transactions (somente MASTER): limpa o caixa inteiro
func ClearTransactionsHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result := database.DB.Where("1 = 1").Delete(&models.CashTransaction{})
		if result.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível limpar o caixa")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Caixa limpo (%d movimentos removidos)", result.RowsAffected))
		bus.Notify(live.ColCashTransactions)

		return c.JSON(fiber.Map{"removed": result.RowsAffected})
	}
}
