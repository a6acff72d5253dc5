package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount: valor monetário tolerante no JSON. Número, string numérica
// (com vírgula ou ponto) ou qualquer outra coisa; o que não der para
// interpretar vira 0, nunca erro.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*a = Amount(sanitize(n))
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*a = Amount(sanitize(v))
			return nil
		}
	}

	*a = 0
	return nil
}

func (a Amount) Float64() float64 {
	return sanitize(float64(a))
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
