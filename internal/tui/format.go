package tui

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer renders grouped numbers ("12,450,300") for monetary columns.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatMoney renders a monetary amount with thousands separators and its
// currency code.
func FormatMoney(amount float64, currency string) string {
	return printer.Sprintf("%d %s", int64(amount), currency)
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatScore renders a risk score with one decimal.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}
