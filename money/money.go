// Package money turns free-form spreadsheet price cells into numbers and
// formats them for display.
//
// Price cells mix Latin-American ("93.000,50") and US ("93,000.50")
// conventions. When both separators appear, the rightmost one is the decimal
// point. When only one kind appears, groups of exactly three digits after
// every separator mean thousands grouping; anything else is a decimal point.
// This is a heuristic: "1.234,567" parses as 1234.567.
package money

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	currencyMarker      = regexp.MustCompile(`(?i)ars`)
	digit               = regexp.MustCompile(`\d`)
	commaThousands      = regexp.MustCompile(`^\d{1,3}(,\d{3})+(,\d+)?$`)
	dotThousands        = regexp.MustCompile(`^\d{1,3}(\.\d{3})+(\.\d+)?$`)
	firstDecimalNumeral = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
)

// Parse returns the numeric value of raw, or nil when raw holds no usable
// number. It never fails.
func Parse(raw string) *float64 {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '$' {
			return -1
		}
		return r
	}, raw)
	s = currencyMarker.ReplaceAllString(s, "")

	if !digit.MatchString(s) {
		return nil
	}

	s = normalizeSeparators(s)

	numeral := firstDecimalNumeral.FindString(s)
	if numeral == "" {
		return nil
	}

	value, err := strconv.ParseFloat(numeral, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return nil
	}
	return &value
}

func normalizeSeparators(s string) string {
	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")

	switch {
	case hasDot && hasComma:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			return strings.ReplaceAll(s, ",", ".")
		}
		return strings.ReplaceAll(s, ",", "")
	case hasComma:
		if commaThousands.MatchString(s) {
			return strings.ReplaceAll(s, ",", "")
		}
		return strings.ReplaceAll(s, ",", ".")
	case hasDot:
		if dotThousands.MatchString(s) {
			return strings.ReplaceAll(s, ".", "")
		}
		return s
	default:
		return s
	}
}
