package live

import (
	"math"
	"sort"
	"time"

	"terreiro-backend/internal/models"
)

// Agregadores: funções puras do snapshot completo de cada coleção.
// Nada aqui aplica delta sobre estado anterior; escritas em lote e
// callbacks fora de ordem entre coleções tornariam patch incremental
// arriscado, e as coleções são pequenas o bastante para recomputar tudo.

type ActivityEntry struct {
	ID     uint            `json:"id"`
	Label  string          `json:"label"`
	Type   models.CashType `json:"type"`
	Amount float64         `json:"amount"`
	Date   string          `json:"date"`
}

type CashSummary struct {
	HasData  bool            `json:"has_data"`
	Entradas float64         `json:"entradas"`
	Saidas   float64         `json:"saidas"`
	Total    float64         `json:"total"`
	Series   []SeriesPoint   `json:"series"`  // um ponto por data com movimento
	Monthly  []SeriesPoint   `json:"monthly"` // janela fixa de 12 meses
	Activity []ActivityEntry `json:"activity"`
}

type MembershipSummary struct {
	HasData  bool          `json:"has_data"`
	Total    float64       `json:"total"`
	Paid     float64       `json:"paid"`
	Progress float64       `json:"progress"` // % em [0,100]
	Monthly  []SeriesPoint `json:"monthly"`
}

type StockSummary struct {
	HasData  bool `json:"has_data"`
	Items    int  `json:"items"`
	Critical int  `json:"critical"` // quantidade <= 0
}

type EventEntry struct {
	ID     uint               `json:"id"`
	Title  string             `json:"title"`
	Date   string             `json:"date"`
	Time   string             `json:"time"`
	Leader string             `json:"leader"`
	Status models.EventStatus `json:"status"`
}

type EventsSummary struct {
	Next   *EventEntry  `json:"next"`
	Agenda []EventEntry `json:"agenda"`
}

type FocusEntry struct {
	ID        uint   `json:"id"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

type ActionEntry struct {
	ID        uint                `json:"id"`
	Title     string              `json:"title"`
	Status    models.ActionStatus `json:"status"`
	Owner     string              `json:"owner"`
	CreatedBy uint                `json:"created_by"`
	CreatedAt string              `json:"created_at"`
}

const (
	agendaLimit   = 4
	activityLimit = 5
	focusLimit    = 5
	actionsLimit  = 10
)

func AggregateCash(txs []models.CashTransaction, now time.Time) CashSummary {
	summary := CashSummary{
		HasData:  len(txs) > 0,
		Series:   []SeriesPoint{},
		Monthly:  []SeriesPoint{},
		Activity: []ActivityEntry{},
	}

	byDate := make(map[string]float64)
	dated := make([]DatedValue, 0, len(txs))

	for _, tx := range txs {
		amount := coerce(tx.Amount)
		signed := amount
		switch tx.Type {
		case models.CashTypeEntrada:
			summary.Entradas += amount
		case models.CashTypeSaida:
			summary.Saidas += amount
			signed = -amount
		default:
			continue
		}

		// data quebrada fica fora da série, mas continua nos totais
		if _, ok := ParseBRDate(tx.Date); ok {
			byDate[tx.Date] += signed
			dated = append(dated, DatedValue{Date: tx.Date, Value: signed})
		}
	}

	summary.Total = summary.Entradas - summary.Saidas
	summary.Series = DailySeries(byDate)
	summary.Monthly = MonthlySeries(dated, now)

	recent := make([]models.CashTransaction, len(txs))
	copy(recent, txs)
	sort.SliceStable(recent, func(i, j int) bool {
		if recent[i].CreatedAt.Equal(recent[j].CreatedAt) {
			return recent[i].ID > recent[j].ID
		}
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	for _, tx := range recent {
		if len(summary.Activity) >= activityLimit {
			break
		}
		summary.Activity = append(summary.Activity, ActivityEntry{
			ID:     tx.ID,
			Label:  tx.Label,
			Type:   tx.Type,
			Amount: coerce(tx.Amount),
			Date:   tx.Date,
		})
	}

	return summary
}

func AggregateMembership(members []models.Membership, now time.Time) MembershipSummary {
	summary := MembershipSummary{
		HasData: len(members) > 0,
		Monthly: []SeriesPoint{},
	}

	paidDates := make([]DatedValue, 0, len(members))
	for _, m := range members {
		value := coerce(m.Value)
		summary.Total += value
		if m.Status == models.MembershipPago {
			summary.Paid += value
			paidDates = append(paidDates, DatedValue{Date: m.LastPayment, Value: value})
		}
	}

	if summary.Total > 0 {
		summary.Progress = math.Min(100, math.Max(0, summary.Paid/summary.Total*100))
	}
	summary.Monthly = MonthlySeries(paidDates, now)

	return summary
}

func AggregateStock(items []models.StockItem) StockSummary {
	summary := StockSummary{HasData: len(items) > 0, Items: len(items)}
	for _, item := range items {
		if item.Quantity <= 0 {
			summary.Critical++
		}
	}
	return summary
}

func AggregateEvents(events []models.Event) EventsSummary {
	type datedEvent struct {
		event models.Event
		date  time.Time
	}

	dated := make([]datedEvent, 0, len(events))
	for _, ev := range events {
		date, ok := ParseBRDate(ev.Date)
		if !ok {
			continue
		}
		dated = append(dated, datedEvent{event: ev, date: date})
	}

	sort.SliceStable(dated, func(i, j int) bool { return dated[i].date.Before(dated[j].date) })

	summary := EventsSummary{Agenda: []EventEntry{}}
	for _, d := range dated {
		if len(summary.Agenda) >= agendaLimit {
			break
		}
		status := d.event.Status
		if status == "" {
			status = models.EventPendente
		}
		summary.Agenda = append(summary.Agenda, EventEntry{
			ID:     d.event.ID,
			Title:  d.event.Title,
			Date:   d.event.Date,
			Time:   d.event.Time,
			Leader: d.event.Leader,
			Status: status,
		})
	}
	if len(summary.Agenda) > 0 {
		next := summary.Agenda[0]
		summary.Next = &next
	}

	return summary
}

func AggregateFocus(notes []models.FocusNote) []FocusEntry {
	ordered := make([]models.FocusNote, len(notes))
	copy(ordered, notes)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].ID > ordered[j].ID
		}
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	entries := make([]FocusEntry, 0, focusLimit)
	for _, note := range ordered {
		if len(entries) >= focusLimit {
			break
		}
		entries = append(entries, FocusEntry{
			ID:        note.ID,
			Message:   note.Message,
			CreatedAt: note.CreatedAt.Format(time.RFC3339),
		})
	}
	return entries
}

func AggregateActions(items []models.ActionItem) []ActionEntry {
	ordered := make([]models.ActionItem, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].ID > ordered[j].ID
		}
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	entries := make([]ActionEntry, 0, actionsLimit)
	for _, item := range ordered {
		if len(entries) >= actionsLimit {
			break
		}
		status := item.Status
		if status == "" {
			status = models.ActionPendente
		}
		entries = append(entries, ActionEntry{
			ID:        item.ID,
			Title:     item.Title,
			Status:    status,
			Owner:     item.Owner,
			CreatedBy: item.CreatedBy,
			CreatedAt: item.CreatedAt.Format(time.RFC3339),
		})
	}
	return entries
}

// coerce zera NaN e infinito antes da aritmética, nunca propaga lixo
// numérico para os totais.
func coerce(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
