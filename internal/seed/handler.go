package seed

import (
	"terreiro-backend/internal/audit"
	"terreiro-backend/internal/auth"
	"terreiro-backend/internal/database"
	"terreiro-backend/internal/live"
	"terreiro-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// POST /api/seed (somente MASTER): cria os campos base do terreiro.
// Idempotente: se já existe movimento no caixa não cria de novo.
func SeedBaseDataHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var count int64
		database.DB.Model(&models.CashTransaction{}).Count(&count)
		if count > 0 {
			return c.JSON(fiber.Map{"seeded": false})
		}

		stock := []models.StockItem{
			{Name: "Vela Branca Pequena", Category: "Velas", Quantity: 24, Unit: "un", Supplier: "Casa das Velas", Color: "Branca", Price: 2.5},
			{Name: "Defumador de Arruda", Category: "Defumadores", Quantity: 6, Unit: "pct", Supplier: "Ervas do Norte", Color: "Verde", Price: 18},
		}
		events := []models.Event{
			{Title: "Gira de Gratidão", Date: "15/02/2026", Time: "19:00", Leader: "Mãe Joana", Status: models.EventConfirmado},
			{Title: "Estudo de Cantigas", Date: "17/02/2026", Time: "20:00", Leader: "Pai Marcelo", Status: models.EventPendente},
		}
		cash := []models.CashTransaction{
			{Label: "Ofertas do culto", Type: models.CashTypeEntrada, Amount: 420, Date: "09/02/2026", Method: "Dinheiro"},
			{Label: "Compra de velas", Type: models.CashTypeSaida, Amount: 180, Date: "08/02/2026", Method: "Pix"},
		}
		members := []models.Membership{
			{Name: "Ana Souza", Value: 70, Status: models.MembershipPago, LastPayment: "08/02/2026", Month: "2026-02"},
			{Name: "Bruno Lima", Value: 70, Status: models.MembershipPendente, LastPayment: "01/02/2026", Month: "2026-02"},
		}

		for i := range stock {
			if err := database.DB.Create(&stock[i]).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar os dados base")
			}
		}
		for i := range events {
			if err := database.DB.Create(&events[i]).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar os dados base")
			}
		}
		for i := range cash {
			if err := database.DB.Create(&cash[i]).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar os dados base")
			}
		}
		for i := range members {
			if err := database.DB.Create(&members[i]).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar os dados base")
			}
		}

		audit.Record(auth.CurrentEmail(c), "Campos base criados")

		bus.Notify(live.ColStockItems)
		bus.Notify(live.ColEvents)
		bus.Notify(live.ColCashTransactions)
		bus.Notify(live.ColMemberships)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"seeded": true})
	}
}
