package mensalidades

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

type CreateMembershipRequest struct {
	Name  string        `json:"name"`
	Value models.Amount `json:"value"`
	Month string        `json:"month"` // yyyy-mm, vazio vira o mês atual
}

type UpdateMembershipRequest struct {
	Name        *string                  `json:"name"`
	Value       *models.Amount           `json:"value"`
	Status      *models.MembershipStatus `json:"status"`
	LastPayment *string                  `json:"last_payment"`
}

type MembershipResponse struct {
	ID          uint                    `json:"id"`
	Name        string                  `json:"name"`
	Value       float64                 `json:"value"`
	Status      models.MembershipStatus `json:"status"`
	LastPayment string                  `json:"last_payment"`
	Month       string                  `json:"month"`
}

func toResponse(m models.Membership) MembershipResponse {
	return MembershipResponse{
		ID:          m.ID,
		Name:        m.Name,
		Value:       m.Value,
		Status:      m.Status,
		LastPayment: m.LastPayment,
		Month:       m.Month,
	}
}

func monthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// POST /api/memberships
func CreateMembershipHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMembershipRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome do membro é obrigatório")
		}

		month := strings.TrimSpace(body.Month)
		if month == "" {
			month = monthKey(time.Now())
		}

		member := models.Membership{
			Name:        body.Name,
			Value:       body.Value.Float64(),
			Status:      models.MembershipPendente,
			LastPayment: "—",
			Month:       month,
		}

		if err := database.DB.Create(&member).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar a mensalidade")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Mensalidade criada: %s (%s)", member.Name, member.Month))
		bus.Notify(live.ColMemberships)

		return c.Status(fiber.StatusCreated).JSON(toResponse(member))
	}
}

// GET /api/memberships?status=pago&month=2026-02
func ListMembershipsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Membership{})

		if statusStr := c.Query("status"); statusStr != "" {
			switch models.MembershipStatus(statusStr) {
			case models.MembershipPago, models.MembershipPendente:
				dbq = dbq.Where("status = ?", statusStr)
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Status inválido (pago|pendente)")
			}
		}
		if month := c.Query("month"); month != "" {
			dbq = dbq.Where("month = ?", month)
		}

		var members []models.Membership
		if err := dbq.Order("name asc").Find(&members).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as mensalidades")
		}

		resp := make([]MembershipResponse, 0, len(members))
		for _, m := range members {
			resp = append(resp, toResponse(m))
		}
		return c.JSON(resp)
	}
}

// GET /api/memberships/summary
func MembershipSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var members []models.Membership
		if err := database.DB.Find(&members).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível calcular o resumo")
		}
		return c.JSON(live.AggregateMembership(members, time.Now()))
	}
}

// PUT /api/memberships/:id (somente MASTER)
func UpdateMembershipHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var member models.Membership
		if err := database.DB.First(&member, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mensalidade não encontrada")
		}

		var body UpdateMembershipRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Name != nil {
			member.Name = strings.TrimSpace(*body.Name)
		}
		if body.Value != nil {
			member.Value = body.Value.Float64()
		}
		if body.Status != nil {
			switch *body.Status {
			case models.MembershipPago, models.MembershipPendente:
				member.Status = *body.Status
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Status inválido (pago|pendente)")
			}
		}
		if body.LastPayment != nil {
			member.LastPayment = *body.LastPayment
		}

		if err := database.DB.Save(&member).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar a mensalidade")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Mensalidade atualizada: %s", member.Name))
		bus.Notify(live.ColMemberships)

		return c.JSON(toResponse(member))
	}
}

// POST /api/memberships/:id/toggle: alterna pago/pendente e carimba o
// último pagamento quando vira pago
func ToggleMembershipHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var member models.Membership
		if err := database.DB.First(&member, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mensalidade não encontrada")
		}

		if member.Status == models.MembershipPago {
			member.Status = models.MembershipPendente
		} else {
			member.Status = models.MembershipPago
			member.LastPayment = time.Now().Format("02/01/2006")
		}

		if err := database.DB.Save(&member).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar a mensalidade")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Mensalidade de %s marcada como %s", member.Name, member.Status))
		bus.Notify(live.ColMemberships)

		return c.JSON(toResponse(member))
	}
}

// DELETE /api/memberships/:id (somente MASTER)
func DeleteMembershipHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var member models.Membership
		if err := database.DB.First(&member, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mensalidade não encontrada")
		}

		if err := database.DB.Delete(&member).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover a mensalidade")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Mensalidade removida: %s", member.Name))
		bus.Notify(live.ColMemberships)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
