package live

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// DatedValue: valor com data dd/mm/aaaa, entrada do agrupamento mensal.
type DatedValue struct {
	Date  string
	Value float64
}

type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

var monthShort = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// ParseBRDate interpreta "dd/mm/aaaa". Precisa ter exatamente três partes
// numéricas; qualquer outra coisa é descartada pelo chamador.
func ParseBRDate(value string) (time.Time, bool) {
	parts := strings.Split(value, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 1 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
}

// DailySeries ordena o acumulado por data em ordem cronológica real.
// dd/mm/aaaa comparado como texto ordena errado, então a chave vira
// time.Time antes do sort.
func DailySeries(byDate map[string]float64) []SeriesPoint {
	type datedPoint struct {
		label string
		date  time.Time
		value float64
	}

	dated := make([]datedPoint, 0, len(byDate))
	for label, value := range byDate {
		date, ok := ParseBRDate(label)
		if !ok {
			continue
		}
		dated = append(dated, datedPoint{label: label, date: date, value: value})
	}

	sort.Slice(dated, func(i, j int) bool { return dated[i].date.Before(dated[j].date) })

	points := make([]SeriesPoint, 0, len(dated))
	for _, d := range dated {
		points = append(points, SeriesPoint{Label: d.label, Value: d.value})
	}
	return points
}

// MonthlySeries: janela fixa dos últimos 12 meses (incluindo o atual),
// meses sem movimento aparecem como zero para o eixo do gráfico não
// mudar de largura.
func MonthlySeries(values []DatedValue, now time.Time) []SeriesPoint {
	type monthBucket struct {
		key   string
		label string
	}

	buckets := make([]monthBucket, 0, 12)
	totals := make(map[string]float64, 12)
	for i := 11; i >= 0; i-- {
		d := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		key := fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month()))
		label := fmt.Sprintf("%s/%02d", monthShort[int(d.Month())-1], d.Year()%100)
		buckets = append(buckets, monthBucket{key: key, label: label})
		totals[key] = 0
	}

	for _, v := range values {
		date, ok := ParseBRDate(v.Date)
		if !ok {
			continue
		}
		key := fmt.Sprintf("%04d-%02d", date.Year(), int(date.Month()))
		if _, tracked := totals[key]; tracked {
			totals[key] += v.Value
		}
	}

	points := make([]SeriesPoint, 0, 12)
	for _, b := range buckets {
		points = append(points, SeriesPoint{Label: b.label, Value: totals[b.key]})
	}
	return points
}

// FilterPeriod recorta a série diária para o período corrente, avaliado
// contra o relógio no momento da renderização.
func FilterPeriod(points []SeriesPoint, period Period, now time.Time) []SeriesPoint {
	filtered := make([]SeriesPoint, 0, len(points))
	for _, p := range points {
		date, ok := ParseBRDate(p.Label)
		if !ok {
			continue
		}
		if inPeriod(date, period, now) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func inPeriod(date time.Time, period Period, now time.Time) bool {
	switch period {
	case PeriodDay:
		return date.Year() == now.Year() && date.YearDay() == now.YearDay()
	case PeriodWeek:
		weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
			AddDate(0, 0, -int(now.Weekday()))
		return !date.Before(weekStart)
	case PeriodMonth:
		return date.Year() == now.Year() && date.Month() == now.Month()
	case PeriodYear:
		return date.Year() == now.Year()
	default:
		return true
	}
}
