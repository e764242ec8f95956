// internal/workers/assessment/compose-prompt/format_test.go
package composeprompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{42000, "€42,000"},
		{1234.5, "€1,234.5"},
		{-5000, "€-5,000"},
		{0, "€0"},
		{999, "€999"},
		{1234567.891, "€1,234,567.891"},
		{0.12345, "€0.123"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(tt.in))
		})
	}
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, "🟢", Glyph(true))
	assert.Equal(t, "🔴", Glyph(false))
}
