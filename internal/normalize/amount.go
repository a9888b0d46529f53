package normalize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ErrEmptyAmount is returned by ParseAmount when nothing is left after cleaning.
var ErrEmptyAmount = errors.New("empty amount")

// ParseAmount converts a French formatted amount ("1 000,50") to float64.
// Whitespace of any kind is dropped and a comma decimal separator becomes a
// period before parsing.
func ParseAmount(s string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return -1
		case r == ',':
			return '.'
		}
		return r
	}, s)
	if cleaned == "" {
		return 0, ErrEmptyAmount
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid amount %q: not a finite number", s)
	}
	return f, nil
}

// FormatAmount renders f as a plain decimal string. Integral values keep a
// trailing ".0": 100 -> "100.0", 1250.5 -> "1250.5".
func FormatAmount(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
