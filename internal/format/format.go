// Package format holds the canonical display conversions: currency, percents,
// calendar-date keys and pt-BR month labels. Every component renders money and
// periods through this package so rounding stays consistent across tables,
// tooltips, axis ticks and cards.
package format

import (
	"fmt"
	"math"
	"strings"

	"financas/internal/core"
)

// monthNames holds the full pt-BR month names, indexed by month-1.
var monthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// shortMonthNames are the 3-letter forms used in chart labels ("Dez/24").
// Precomputed because Março truncates on a multi-byte rune.
var shortMonthNames = [12]string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// Currency renders a monetary value as "R$ 1234,56": half-up rounding to two
// decimals, comma decimal separator, sign between the symbol and the digits.
func Currency(v float64) string {
	rounded := math.Round(v*100) / 100
	s := fmt.Sprintf("%.2f", rounded)
	return "R$ " + strings.Replace(s, ".", ",", 1)
}

// Money renders an exact cents amount; no rounding is involved.
func Money(m core.Money) string {
	return "R$ " + strings.Replace(m.String(), ".", ",", 1)
}

// Percent renders a ratio already expressed in percent, e.g. 50 -> "50,00%".
func Percent(v float64) string {
	s := fmt.Sprintf("%.2f", math.Round(v*100)/100)
	return strings.Replace(s, ".", ",", 1) + "%"
}

// MonthName returns the full pt-BR month name, or "" for out-of-range months.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// ShortMonthName returns the 3-letter pt-BR month name, or "" when invalid.
func ShortMonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return shortMonthNames[month-1]
}

// MonthLabel formats a (year, month) pair as a chart axis label: "Jan/25".
func MonthLabel(year, month int) string {
	short := ShortMonthName(month)
	if short == "" {
		return ""
	}
	return fmt.Sprintf("%s/%02d", short, year%100)
}

// MonthFromShort is the stable inverse of ShortMonthName. Chart libraries may
// reorder series by label string; re-sorting must go through this mapping
// back to (year, monthNumber), never through a lexical sort on the label.
func MonthFromShort(name string) (int, bool) {
	for i, short := range shortMonthNames {
		if strings.EqualFold(short, name) {
			return i + 1, true
		}
	}
	return 0, false
}

// ParseMonthLabel splits "Jan/25" back into (2025, 1).
// Two-digit years are anchored to the 2000s, matching the label format.
func ParseMonthLabel(label string) (year, month int, ok bool) {
	parts := strings.Split(label, "/")
	if len(parts) != 2 {
		return 0, 0, false
	}
	month, ok = MonthFromShort(parts[0])
	if !ok {
		return 0, 0, false
	}
	var yy int
	if _, err := fmt.Sscanf(parts[1], "%d", &yy); err != nil {
		return 0, 0, false
	}
	if yy < 0 || yy > 99 {
		return 0, 0, false
	}
	return 2000 + yy, month, true
}
