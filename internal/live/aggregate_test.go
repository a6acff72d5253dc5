package live

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"terreiro-backend/internal/models"
)

var testNow = time.Date(2026, 2, 20, 12, 0, 0, 0, time.Local)

func TestAggregateCash_Scenario(t *testing.T) {
	txs := []models.CashTransaction{
		{ID: 1, Label: "Ofertas do culto", Type: models.CashTypeEntrada, Amount: 420, Date: "09/02/2026", CreatedAt: testNow.Add(-time.Hour)},
		{ID: 2, Label: "Compra de velas", Type: models.CashTypeSaida, Amount: 180, Date: "08/02/2026", CreatedAt: testNow},
	}

	got := AggregateCash(txs, testNow)

	require.True(t, got.HasData)
	require.Equal(t, 420.0, got.Entradas)
	require.Equal(t, 180.0, got.Saidas)
	require.Equal(t, 240.0, got.Total)

	// série diária: um ponto por data, saída com sinal negativo, em ordem
	require.Len(t, got.Series, 2)
	require.Equal(t, SeriesPoint{Label: "08/02/2026", Value: -180}, got.Series[0])
	require.Equal(t, SeriesPoint{Label: "09/02/2026", Value: 420}, got.Series[1])

	require.Len(t, got.Monthly, 12)
	require.Equal(t, 240.0, got.Monthly[11].Value)

	// atividade: mais recente primeiro, valor sempre positivo
	require.Len(t, got.Activity, 2)
	require.Equal(t, uint(2), got.Activity[0].ID)
	require.Equal(t, 180.0, got.Activity[0].Amount)
}

func TestAggregateCash_Empty(t *testing.T) {
	got := AggregateCash(nil, testNow)

	require.False(t, got.HasData)
	require.Zero(t, got.Total)
	require.Empty(t, got.Series)
	require.Len(t, got.Monthly, 12)
	require.Empty(t, got.Activity)
}

func TestAggregateCash_Idempotent(t *testing.T) {
	txs := []models.CashTransaction{
		{ID: 1, Type: models.CashTypeEntrada, Amount: 100, Date: "01/02/2026", CreatedAt: testNow},
		{ID: 2, Type: models.CashTypeSaida, Amount: 30, Date: "01/02/2026", CreatedAt: testNow},
	}

	first := AggregateCash(txs, testNow)
	second := AggregateCash(txs, testNow)

	require.Equal(t, first, second)
}

func TestAggregateCash_CoercesGarbageAmounts(t *testing.T) {
	txs := []models.CashTransaction{
		{ID: 1, Type: models.CashTypeEntrada, Amount: math.NaN(), Date: "01/02/2026", CreatedAt: testNow},
		{ID: 2, Type: models.CashTypeEntrada, Amount: math.Inf(1), Date: "02/02/2026", CreatedAt: testNow},
		{ID: 3, Type: models.CashTypeEntrada, Amount: 50, Date: "03/02/2026", CreatedAt: testNow},
	}

	got := AggregateCash(txs, testNow)

	require.Equal(t, 50.0, got.Entradas)
	require.Equal(t, 50.0, got.Total)
}

func TestAggregateCash_BrokenDateStaysInTotals(t *testing.T) {
	txs := []models.CashTransaction{
		{ID: 1, Type: models.CashTypeEntrada, Amount: 100, Date: "sem data", CreatedAt: testNow},
	}

	got := AggregateCash(txs, testNow)

	require.Equal(t, 100.0, got.Total)
	require.Empty(t, got.Series)
}

func TestAggregateCash_ActivityBounded(t *testing.T) {
	txs := make([]models.CashTransaction, 0, 8)
	for i := 1; i <= 8; i++ {
		txs = append(txs, models.CashTransaction{
			ID:        uint(i),
			Type:      models.CashTypeEntrada,
			Amount:    10,
			Date:      "01/02/2026",
			CreatedAt: testNow.Add(time.Duration(i) * time.Minute),
		})
	}

	got := AggregateCash(txs, testNow)

	require.Len(t, got.Activity, 5)
	require.Equal(t, uint(8), got.Activity[0].ID)
}

func TestAggregateMembership_Progress(t *testing.T) {
	members := []models.Membership{
		{ID: 1, Name: "Ana", Value: 70, Status: models.MembershipPago, LastPayment: "08/02/2026"},
		{ID: 2, Name: "Bruno", Value: 70, Status: models.MembershipPendente},
		{ID: 3, Name: "Clara", Value: 60, Status: models.MembershipPago, LastPayment: "10/02/2026"},
	}

	got := AggregateMembership(members, testNow)

	require.True(t, got.HasData)
	require.Equal(t, 200.0, got.Total)
	require.Equal(t, 130.0, got.Paid)
	require.Equal(t, 65.0, got.Progress)
	require.Len(t, got.Monthly, 12)
	require.Equal(t, 130.0, got.Monthly[11].Value)
}

func TestAggregateMembership_ProgressClamped(t *testing.T) {
	// pago maior que o total não passa de 100%
	members := []models.Membership{
		{ID: 1, Value: -50, Status: models.MembershipPendente},
		{ID: 2, Value: 100, Status: models.MembershipPago, LastPayment: "08/02/2026"},
	}

	got := AggregateMembership(members, testNow)

	require.Equal(t, 100.0, got.Progress)
}

func TestAggregateMembership_ProgressNeverNegative(t *testing.T) {
	// valor pago negativo não pode puxar o percentual abaixo de zero
	members := []models.Membership{
		{ID: 1, Value: -50, Status: models.MembershipPago, LastPayment: "08/02/2026"},
		{ID: 2, Value: 100, Status: models.MembershipPendente},
	}

	got := AggregateMembership(members, testNow)

	require.Equal(t, 50.0, got.Total)
	require.Equal(t, -50.0, got.Paid)
	require.Zero(t, got.Progress)
}

func TestAggregateMembership_ZeroTotal(t *testing.T) {
	members := []models.Membership{
		{ID: 1, Value: 0, Status: models.MembershipPago, LastPayment: "08/02/2026"},
	}

	got := AggregateMembership(members, testNow)

	require.True(t, got.HasData)
	require.Zero(t, got.Progress)
}

func TestAggregateMembership_Empty(t *testing.T) {
	got := AggregateMembership(nil, testNow)

	require.False(t, got.HasData)
	require.Zero(t, got.Progress)
	require.Len(t, got.Monthly, 12)
}

func TestAggregateStock_Critical(t *testing.T) {
	items := []models.StockItem{
		{ID: 1, Name: "Vela Branca", Quantity: 0},
		{ID: 2, Name: "Defumador", Quantity: 5},
		{ID: 3, Name: "Arruda", Quantity: -1},
	}

	got := AggregateStock(items)

	require.True(t, got.HasData)
	require.Equal(t, 3, got.Items)
	require.Equal(t, 2, got.Critical)
}

func TestAggregateStock_Empty(t *testing.T) {
	got := AggregateStock(nil)

	require.False(t, got.HasData)
	require.Zero(t, got.Items)
	require.Zero(t, got.Critical)
}

func TestAggregateEvents_ChronologicalAgenda(t *testing.T) {
	events := []models.Event{
		{ID: 1, Title: "Gira de Março", Date: "01/03/2026", Status: models.EventConfirmado},
		{ID: 2, Title: "Estudo de Cantigas", Date: "17/02/2026", Status: models.EventPendente},
		{ID: 3, Title: "Gira de Gratidão", Date: "15/02/2026", Status: models.EventConfirmado},
		{ID: 4, Title: "Sem data", Date: "???"},
	}

	got := AggregateEvents(events)

	require.NotNil(t, got.Next)
	require.Equal(t, "Gira de Gratidão", got.Next.Title)
	require.Len(t, got.Agenda, 3)
	require.Equal(t, uint(3), got.Agenda[0].ID)
	require.Equal(t, uint(2), got.Agenda[1].ID)
	require.Equal(t, uint(1), got.Agenda[2].ID)
}

func TestAggregateEvents_AgendaBounded(t *testing.T) {
	events := make([]models.Event, 0, 6)
	for i := 1; i <= 6; i++ {
		events = append(events, models.Event{
			ID:    uint(i),
			Title: "Gira",
			Date:  fmt.Sprintf("%02d/03/2026", i),
		})
	}

	got := AggregateEvents(events)

	require.Len(t, got.Agenda, 4)
}

func TestAggregateEvents_Empty(t *testing.T) {
	got := AggregateEvents(nil)

	require.Nil(t, got.Next)
	require.Empty(t, got.Agenda)
}

func TestAggregateFocus_RecentFirstAndBounded(t *testing.T) {
	notes := make([]models.FocusNote, 0, 7)
	for i := 1; i <= 7; i++ {
		notes = append(notes, models.FocusNote{
			ID:        uint(i),
			Message:   "Recado",
			CreatedAt: testNow.Add(time.Duration(i) * time.Minute),
		})
	}

	got := AggregateFocus(notes)

	require.Len(t, got, 5)
	require.Equal(t, uint(7), got[0].ID)
	require.Equal(t, uint(3), got[4].ID)
}

func TestAggregateActions_RecentFirstAndBounded(t *testing.T) {
	items := make([]models.ActionItem, 0, 12)
	for i := 1; i <= 12; i++ {
		items = append(items, models.ActionItem{
			ID:        uint(i),
			Title:     "Tarefa",
			Status:    models.ActionPendente,
			CreatedAt: testNow.Add(time.Duration(i) * time.Minute),
		})
	}

	got := AggregateActions(items)

	require.Len(t, got, 10)
	require.Equal(t, uint(12), got[0].ID)
}

func TestAggregateActions_DoesNotMutateInput(t *testing.T) {
	items := []models.ActionItem{
		{ID: 1, CreatedAt: testNow},
		{ID: 2, CreatedAt: testNow.Add(time.Hour)},
	}

	AggregateActions(items)

	require.Equal(t, uint(1), items[0].ID)
	require.Equal(t, uint(2), items[1].ID)
}
