// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts typed by the
// user and rendering them for a given locale.
package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ParseAmount converts a decimal string to an amount rounded to cents.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and rounds
// half-up on the third decimal place. Zero is allowed, negative values and
// anything that is not a plain decimal number are ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount("12,34")  -> 12.34, nil
//	ParseAmount("12.345") -> 12.35, nil
//	ParseAmount("-1")     -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return decimal.Zero, ErrInvalidAmount
	}
	digits := 0
	for _, p := range parts {
		for _, r := range p {
			// Rejects signs and exponents too, which NewFromString would accept
			if !unicode.IsDigit(r) {
				return decimal.Zero, ErrInvalidAmount
			}
			digits++
		}
	}
	if digits == 0 {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d.Round(2), nil
}

// FormatAmount renders an amount with two decimals using the grouping and
// decimal separators of the given BCP 47 locale. Unknown locales fall back
// to English. Digits come from the decimal itself, so any magnitude prints
// exactly.
func FormatAmount(locale string, amount decimal.Decimal) string {
	group, point := separators(locale)

	fixed := amount.StringFixed(2)
	negative := strings.HasPrefix(fixed, "-")
	whole, frac, _ := strings.Cut(strings.TrimPrefix(fixed, "-"), ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(group)
		}
		b.WriteRune(r)
	}
	b.WriteString(point)
	b.WriteString(frac)
	return b.String()
}

// separators reads the locale's group and decimal separators off a
// formatted sample number.
func separators(locale string) (group, point string) {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	sample := []rune(message.NewPrinter(tag).Sprintf("%.2f", 1234567.25))
	if len(sample) < 4 {
		return ",", "."
	}
	point = string(sample[len(sample)-3])
	for _, r := range sample[:len(sample)-3] {
		if !unicode.IsDigit(r) {
			group = string(r)
			break
		}
	}
	return group, point
}
