// Package currency formats monetary values the way the storefront displays
// them: Brazilian reais with pt-BR separators ("R$ 1.234,56").
package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders a value as a localized Brazilian real string.
func FormatBRL(value float64) string {
	return printer.Sprintf("R$ %v", number.Decimal(value,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
