package utils_test

import (
	"testing"

	"github.com/Rodfox31/cierre-caja-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClosingDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2025-10-07", "2025-10-07"},
		{"07/10/2025", "2025-10-07"},
		{"07-10-2025", "2025-10-07"},
		{" 2025-10-07 ", "2025-10-07"},
	}

	for _, tt := range tests {
		got, err := utils.NormalizeClosingDate(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestNormalizeClosingDateRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "10/2025", "2025/10/07", "mañana"} {
		_, err := utils.NormalizeClosingDate(input)
		assert.Error(t, err, "input %q", input)
	}
}
