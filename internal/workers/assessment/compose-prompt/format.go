// internal/workers/assessment/compose-prompt/format.go
package composeprompt

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	GlyphAffirmative = "🟢"
	GlyphAttention   = "🔴"
)

// FormatNumber groups thousands and keeps up to three fraction digits.
func FormatNumber(v float64) string {
	return message.NewPrinter(language.English).Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(3)))
}

// FormatMoney prefixes FormatNumber with the euro sign.
func FormatMoney(v float64) string {
	return "€" + FormatNumber(v)
}

func Glyph(value bool) string {
	if value {
		return GlyphAffirmative
	}
	return GlyphAttention
}
