// Package money formatea importes para salidas legibles (recibos PDF, CLI).
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Prefix símbolo usado en los documentos. Las fuentes base de PDF no incluyen el glifo ₹.
const Prefix = "Rs. "

var printer = message.NewPrinter(language.English)

// Format devuelve d con separador de miles y dos decimales, ej. 1234567.5 → "1,234,567.50".
func Format(d decimal.Decimal) string {
	units := d.Truncate(0)
	cents := d.Sub(units).Abs().Shift(2).Round(0).IntPart()
	if cents == 100 {
		// 0.995 redondea al siguiente entero
		if d.IsNegative() {
			units = units.Sub(decimal.NewFromInt(1))
		} else {
			units = units.Add(decimal.NewFromInt(1))
		}
		cents = 0
	}
	sign := ""
	if d.IsNegative() && units.IsZero() {
		sign = "-"
	}
	return sign + printer.Sprintf("%d", units.IntPart()) + fmt.Sprintf(".%02d", cents)
}

// WithPrefix Format con el símbolo de moneda.
func WithPrefix(d decimal.Decimal) string {
	return Prefix + Format(d)
}
