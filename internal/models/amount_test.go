package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"número", `70.5`, 70.5},
		{"número negativo", `-12`, -12},
		{"string com ponto", `"70.5"`, 70.5},
		{"string com vírgula", `"70,5"`, 70.5},
		{"string com espaços", `" 70 "`, 70},
		{"string não numérica", `"setenta"`, 0},
		{"string vazia", `""`, 0},
		{"booleano", `true`, 0},
		{"objeto", `{"x":1}`, 0},
		{"array", `[1,2]`, 0},
		{"null", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			err := json.Unmarshal([]byte(tt.input), &a)
			require.NoError(t, err, "valor irreconhecível vira 0, nunca erro")
			require.Equal(t, tt.want, a.Float64())
		})
	}
}

func TestAmountInsideRequestBody(t *testing.T) {
	var body struct {
		Label  string `json:"label"`
		Amount Amount `json:"amount"`
	}

	err := json.Unmarshal([]byte(`{"label":"Ofertas","amount":"abc"}`), &body)

	require.NoError(t, err)
	require.Equal(t, "Ofertas", body.Label)
	require.Zero(t, body.Amount.Float64())
}
