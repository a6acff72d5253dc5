package mensalidades

import (
	"fmt"
	"math"
	"time"

	"terreiro-backend/internal/audit"
	"terreiro-backend/internal/auth"
	"terreiro-backend/internal/database"
	"terreiro-backend/internal/live"
	"terreiro-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Meta mensal do terreiro, rateada entre a lista padrão de membros.
const monthlyGoal = 690.0

var defaultNames = []string{
	"Adriano (Tio Dri)",
	"Adriene",
	"Alisson",
	"Patricia",
	"Matheus",
	"Nicolas",
	"Pai",
	"Vanessa",
	"Victor",
	"Adriano (Pardal)",
	"Adriano RB",
	"Gabriela",
	"Gustavo Soares",
	"Kethleen",
	"Leleia",
	"Luciane",
	"Moreira",
	"Rosana",
	"Marcos Vinicius",
}

func defaultMemberValue() float64 {
	return math.Round(monthlyGoal/float64(len(defaultNames))*100) / 100
}

func seedMonth(month string) (int, error) {
	value := defaultMemberValue()
	for _, name := range defaultNames {
		member := models.Membership{
			Name:        name,
			Value:       value,
			Status:      models.MembershipPendente,
			LastPayment: "—",
			Month:       month,
		}
		if err := database.DB.Create(&member).Error; err != nil {
			return 0, err
		}
	}
	return len(defaultNames), nil
}

// POST /api/memberships/ensure-month: cria a lista padrão do mês atual
// quando ainda não existe. Idempotente: segunda chamada (clique duplo)
// não duplica registros.
func EnsureMonthHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		month := monthKey(time.Now())

		var count int64
		database.DB.Model(&models.Membership{}).Where("month = ?", month).Count(&count)
		if count > 0 {
			return c.JSON(fiber.Map{"month": month, "created": 0})
		}

		created, err := seedMonth(month)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar a lista do mês")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Lista de mensalidades criada para %s (%d membros)", month, created))
		bus.Notify(live.ColMemberships)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"month": month, "created": created})
	}
}

// POST /api/memberships/reset (somente MASTER): apaga tudo e recria a
// lista padrão do mês atual
func ResetMembershipsHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result := database.DB.Where("1 = 1").Delete(&models.Membership{})
		if result.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível limpar as mensalidades")
		}

		month := monthKey(time.Now())
		created, err := seedMonth(month)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível recriar a lista padrão")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Mensalidades zeradas e recriadas para %s", month))
		bus.Notify(live.ColMemberships)

		return c.JSON(fiber.Map{"month": month, "removed": result.RowsAffected, "created": created})
	}
}
