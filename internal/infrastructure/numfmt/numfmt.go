// Package numfmt formats miles, money and value-per-mile figures for display.
package numfmt

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var displayLanguage = language.AmericanEnglish

func printer() *message.Printer {
	return message.NewPrinter(displayLanguage)
}

// Miles formats a miles balance with thousands separators (e.g., "24,185").
func Miles(miles int) string {
	return printer().Sprintf("%d", miles)
}

// USD formats an amount as dollars with two decimals (e.g., "$1,234.50").
func USD(amount float64) string {
	if amount < 0 {
		return "-$" + printer().Sprintf("%.2f", -amount)
	}
	return "$" + printer().Sprintf("%.2f", amount)
}

// Money formats an amount with its currency code (e.g., "320.00 USD").
// A USD amount is shown with the dollar sign instead.
func Money(amount float64, currency string) string {
	if currency == "" || currency == "USD" {
		return USD(amount)
	}
	return printer().Sprintf("%.2f", amount) + " " + currency
}

// Cents formats a value per mile in cents (e.g., "1.30¢").
func Cents(cents float64) string {
	return printer().Sprintf("%.2f", cents) + "¢"
}
