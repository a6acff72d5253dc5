package mensalidades

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultMemberValue(t *testing.T) {
	// 690 rateado entre 19 membros, arredondado para centavos
	require.Equal(t, 36.32, defaultMemberValue())
}

func TestMonthKey(t *testing.T) {
	require.Equal(t, "2026-02", monthKey(time.Date(2026, 2, 9, 0, 0, 0, 0, time.Local)))
	require.Equal(t, "2025-11", monthKey(time.Date(2025, 11, 30, 23, 59, 0, 0, time.Local)))
}
