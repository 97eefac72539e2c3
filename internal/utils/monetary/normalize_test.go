package monetary_test

import (
	"encoding/json"
	"testing"

	"github.com/Rodfox31/cierre-caja-backend/internal/utils/monetary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain integer", "1234", "1234"},
		{"dot decimal", "1234.56", "1234.56"},
		{"argentine grouped", "1.234,56", "1234.56"},
		{"argentine grouped no decimals", "12.000", "12000"},
		{"argentine millions", "1.234.567,89", "1234567.89"},
		{"bare comma decimal", "1234,56", "1234.56"},
		{"currency prefix", "$1.000", "1000"},
		{"currency prefix with space", "$ 49.800,50", "49800.5"},
		{"ars prefix", "ARS 2500", "2500"},
		{"negative grouped", "-1.234,56", "-1234.56"},
		{"surrounding whitespace", "  500  ", "500"},
		{"empty", "", "0"},
		{"whitespace only", "   ", "0"},
		{"garbage", "abc", "0"},
		{"mixed garbage", "12a4", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			got := monetary.Normalize(tt.input)
			assert.True(t, want.Equal(got), "Normalize(%q) = %s, want %s", tt.input, got, want)
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"1.234,56", "1234.56", "$ 1.000", "1234,5", "0", "-12.000"}
	for _, in := range inputs {
		once := monetary.Normalize(in)
		twice := monetary.Normalize(once.String())
		assert.True(t, once.Equal(twice), "Normalize not idempotent for %q: %s vs %s", in, once, twice)
	}
}

func TestNormalizeSum(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"two terms", "1000+2000", "3000"},
		{"three terms with spaces", "1000 + 2000 + 500", "3500"},
		{"argentine terms", "1.000,50+2.000", "3000.5"},
		{"single term", "1500", "1500"},
		{"trailing plus", "1000+", "1000"},
		{"invalid character fails closed", "1000+abc", "0"},
		{"currency symbol fails closed", "$1000+2000", "0"},
		{"empty", "", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			got := monetary.NormalizeSum(tt.input)
			assert.True(t, want.Equal(got), "NormalizeSum(%q) = %s, want %s", tt.input, got, want)
		})
	}
}

func TestFlexAmountDecode(t *testing.T) {
	var payload struct {
		Declared  monetary.FlexAmount `json:"declared"`
		Collected monetary.FlexAmount `json:"collected"`
		Legacy    monetary.FlexAmount `json:"legacy"`
		Missing   monetary.FlexAmount `json:"missing"`
	}

	raw := `{"declared": 49800.5, "collected": "49.800,50", "legacy": "$ 1.000", "missing": null}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	assert.True(t, payload.Declared.Equal(decimal.RequireFromString("49800.5")))
	assert.True(t, payload.Collected.Equal(decimal.RequireFromString("49800.5")))
	assert.True(t, payload.Legacy.Equal(decimal.RequireFromString("1000")))
	assert.True(t, payload.Missing.Equal(decimal.Zero))
}

func TestFlexAmountEncodeAlwaysNumeric(t *testing.T) {
	out, err := json.Marshal(monetary.NewFlexAmount(decimal.RequireFromString("1234.56")))
	require.NoError(t, err)
	assert.Equal(t, "1234.56", string(out))
}
