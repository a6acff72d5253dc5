package eventos

import (
	"fmt"
	"sort"
	"strings"

	"terreiro-backend/internal/audit"
	"terreiro-backend/internal/auth"
	"terreiro-backend/internal/database"
	"terreiro-backend/internal/live"
	"terreiro-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateEventRequest struct {
	Title  string             `json:"title"`
	Date   string             `json:"date"` // dd/mm/yyyy
	Time   string             `json:"time"` // HH:MM
	Leader string             `json:"leader"`
	Status models.EventStatus `json:"status"`
}

type UpdateEventRequest struct {
	Title  *string             `json:"title"`
	Date   *string             `json:"date"`
	Time   *string             `json:"time"`
	Leader *string             `json:"leader"`
	Status *models.EventStatus `json:"status"`
}

type EventResponse struct {
	ID     uint               `json:"id"`
	Title  string             `json:"title"`
	Date   string             `json:"date"`
	Time   string             `json:"time"`
	Leader string             `json:"leader"`
	Status models.EventStatus `json:"status"`
}

func toResponse(ev models.Event) EventResponse {
	return EventResponse{
		ID:     ev.ID,
		Title:  ev.Title,
		Date:   ev.Date,
		Time:   ev.Time,
		Leader: ev.Leader,
		Status: ev.Status,
	}
}

func validStatus(s models.EventStatus) bool {
	switch s {
	case models.EventConfirmado, models.EventPendente, models.EventCancelado:
		return true
	}
	return false
}

// POST /api/events (somente MASTER)
func CreateEventHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateEventRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Title = strings.TrimSpace(body.Title)
		if body.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Título do evento é obrigatório")
		}
		if _, ok := live.ParseBRDate(body.Date); !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Data inválida, use dd/mm/aaaa")
		}
		if body.Status == "" {
			body.Status = models.EventPendente
		}
		if !validStatus(body.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "Status inválido (confirmado|pendente|cancelado)")
		}

		ev := models.Event{
			Title:  body.Title,
			Date:   body.Date,
			Time:   strings.TrimSpace(body.Time),
			Leader: strings.TrimSpace(body.Leader),
			Status: body.Status,
		}

		if err := database.DB.Create(&ev).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o evento")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Evento criado: %s em %s", ev.Title, ev.Date))
		bus.Notify(live.ColEvents)

		return c.Status(fiber.StatusCreated).JSON(toResponse(ev))
	}
}

// GET /api/events: ordenado por data real, não pela string dd/mm/aaaa
func ListEventsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var events []models.Event
		if err := database.DB.Find(&events).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os eventos")
		}

		sort.SliceStable(events, func(i, j int) bool {
			di, oki := live.ParseBRDate(events[i].Date)
			dj, okj := live.ParseBRDate(events[j].Date)
			if oki && okj {
				return di.Before(dj)
			}
			return oki // datas quebradas vão para o fim
		})

		resp := make([]EventResponse, 0, len(events))
		for _, ev := range events {
			resp = append(resp, toResponse(ev))
		}
		return c.JSON(resp)
	}
}

// PUT /api/events/:id (somente MASTER)
func UpdateEventHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var ev models.Event
		if err := database.DB.First(&ev, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Evento não encontrado")
		}

		var body UpdateEventRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Title != nil {
			ev.Title = strings.TrimSpace(*body.Title)
		}
		if body.Date != nil {
			if _, ok := live.ParseBRDate(*body.Date); !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Data inválida, use dd/mm/aaaa")
			}
			ev.Date = *body.Date
		}
		if body.Time != nil {
			ev.Time = strings.TrimSpace(*body.Time)
		}
		if body.Leader != nil {
			ev.Leader = strings.TrimSpace(*body.Leader)
		}
		if body.Status != nil {
			if !validStatus(*body.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "Status inválido (confirmado|pendente|cancelado)")
			}
			ev.Status = *body.Status
		}

		if err := database.DB.Save(&ev).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o evento")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Evento atualizado: %s", ev.Title))
		bus.Notify(live.ColEvents)

		return c.JSON(toResponse(ev))
	}
}

// DELETE /api/events/:id (somente MASTER)
func DeleteEventHandler(bus *live.Bus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var ev models.Event
		if err := database.DB.First(&ev, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Evento não encontrado")
		}

		if err := database.DB.Delete(&ev).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover o evento")
		}

		audit.Record(auth.CurrentEmail(c), fmt.Sprintf("Evento removido: %s", ev.Title))
		bus.Notify(live.ColEvents)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
