package caixa

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"terreiro-backend/internal/database"
	"terreiro-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/cash-transactions/export: CSV com todos os movimentos
func ExportTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var txs []models.CashTransaction
		if err := database.DB.Order("created_at asc, id asc").Find(&txs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível exportar os movimentos")
		}

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)

		_ = w.Write([]string{"id", "descricao", "tipo", "valor", "data", "forma"})
		for _, tx := range txs {
			_ = w.Write([]string{
				fmt.Sprintf("%d", tx.ID),
				tx.Label,
				string(tx.Type),
				fmt.Sprintf("%.2f", tx.Amount),
				tx.Date,
				tx.Method,
			})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível montar o CSV")
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="caixa.csv"`)
		return c.Send(buf.Bytes())
	}
}
