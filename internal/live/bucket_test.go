package live

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseBRDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"data válida", "09/02/2026", time.Date(2026, 2, 9, 0, 0, 0, 0, time.Local), true},
		{"sem barras", "2026-02-09", time.Time{}, false},
		{"duas partes", "09/02", time.Time{}, false},
		{"quatro partes", "09/02/20/26", time.Time{}, false},
		{"parte não numérica", "dd/mm/aaaa", time.Time{}, false},
		{"mês fora do intervalo", "09/13/2026", time.Time{}, false},
		{"dia zero", "00/02/2026", time.Time{}, false},
		{"vazio", "", time.Time{}, false},
		{"com espaços", " 09 / 02 / 2026 ", time.Date(2026, 2, 9, 0, 0, 0, 0, time.Local), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseBRDate(tt.input)
			require.Equal(t, tt.ok, ok)
			if ok {
				require.True(t, tt.want.Equal(got))
			}
		})
	}
}

func TestDailySeries_ChronologicalOrder(t *testing.T) {
	// dd/mm/aaaa comparado como texto colocaria 01/03 antes de 05/01
	byDate := map[string]float64{
		"01/03/2026": 10,
		"15/02/2026": -5,
		"05/01/2026": 20,
	}

	points := DailySeries(byDate)

	require.Len(t, points, 3)
	require.Equal(t, "05/01/2026", points[0].Label)
	require.Equal(t, "15/02/2026", points[1].Label)
	require.Equal(t, "01/03/2026", points[2].Label)
	require.Equal(t, []float64{20, -5, 10}, []float64{points[0].Value, points[1].Value, points[2].Value})
}

func TestDailySeries_DropsMalformedDates(t *testing.T) {
	byDate := map[string]float64{
		"09/02/2026": 100,
		"não é data": 50,
	}

	points := DailySeries(byDate)

	require.Len(t, points, 1)
	require.Equal(t, "09/02/2026", points[0].Label)
}

func TestMonthlySeries_FixedTwelvePointWindow(t *testing.T) {
	now := time.Date(2026, 2, 20, 10, 0, 0, 0, time.Local)

	values := []DatedValue{
		{Date: "08/02/2026", Value: 70},
		{Date: "10/02/2026", Value: 70},
		{Date: "05/11/2025", Value: 30},
		{Date: "01/01/2020", Value: 999}, // fora da janela
		{Date: "data quebrada", Value: 50},
	}

	points := MonthlySeries(values, now)

	require.Len(t, points, 12)
	require.Equal(t, "Mar/25", points[0].Label)
	require.Equal(t, "Fev/26", points[11].Label)
	require.Equal(t, 140.0, points[11].Value)

	var nov float64
	for _, p := range points {
		if p.Label == "Nov/25" {
			nov = p.Value
		}
	}
	require.Equal(t, 30.0, nov)

	// meses sem movimento aparecem como zero, não são omitidos
	var zeros int
	for _, p := range points {
		if p.Value == 0 {
			zeros++
		}
	}
	require.Equal(t, 10, zeros)
}

func TestMonthlySeries_EmptyStillHasTwelvePoints(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local)

	points := MonthlySeries(nil, now)

	require.Len(t, points, 12)
	for _, p := range points {
		require.Zero(t, p.Value)
	}
}

func TestFilterPeriod(t *testing.T) {
	now := time.Date(2026, 2, 18, 12, 0, 0, 0, time.Local) // quarta-feira

	points := []SeriesPoint{
		{Label: "18/02/2026", Value: 1},  // hoje
		{Label: "16/02/2026", Value: 2},  // mesma semana (domingo = 15/02)
		{Label: "10/02/2026", Value: 3},  // mesmo mês
		{Label: "05/01/2026", Value: 4},  // mesmo ano
		{Label: "20/12/2025", Value: 5},  // ano passado
		{Label: "data ruim", Value: 6},   // descartado sempre
	}

	tests := []struct {
		period Period
		want   []float64
	}{
		{PeriodDay, []float64{1}},
		{PeriodWeek, []float64{1, 2}},
		{PeriodMonth, []float64{1, 2, 3}},
		{PeriodYear, []float64{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			got := FilterPeriod(points, tt.period, now)
			values := make([]float64, 0, len(got))
			for _, p := range got {
				values = append(values, p.Value)
			}
			require.Equal(t, tt.want, values)
		})
	}
}
