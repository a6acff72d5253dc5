package live

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// GET /api/dashboard
func DashboardHandler(e *Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(e.State())
	}
}

// GET /api/dashboard/cash-chart?period=day|week|month|year
// O recorte é avaliado contra o relógio na hora da requisição, não na
// hora em que o snapshot chegou.
func CashChartHandler(e *Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := Period(c.Query("period", string(PeriodMonth)))

		switch period {
		case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "period inválido (day|week|month|year)")
		}

		state := e.State()
		points := FilterPeriod(state.Cash.Series, period, time.Now())

		return c.JSON(fiber.Map{
			"period":   period,
			"has_data": state.Cash.HasData,
			"points":   points,
			"monthly":  state.Cash.Monthly,
		})
	}
}
