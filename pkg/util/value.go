package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var unitMap = map[string]float64{
	"t":   1e12,    // tera
	"g":   1e9,     // giga
	"meg": 1e6,     // mega
	"k":   1e3,     // kilo
	"mil": 25.4e-6, // thousandth of an inch
	"m":   1e-3,    // milli
	"u":   1e-6,    // micro
	"n":   1e-9,    // nano
	"p":   1e-12,   // pico
	"f":   1e-15,   // femto
}

// Trailing letters after the factor are units (ohm, f, v, s...) and ignored.
var valueRe = regexp.MustCompile(`^([-+]?\d*\.?\d+(?:e[-+]?\d+)?)(meg|mil|[tgkmunpf])?[a-z]*$`)

// ParseValue - Parse value and factor. 1k -> 1000, 2.2meg -> 2.2e6
func ParseValue(val string) (float64, error) {
	matches := valueRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(val)))
	if matches == nil {
		return 0, fmt.Errorf("invalid value format: %s", val)
	}

	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, err
	}

	if matches[2] != "" {
		num *= unitMap[matches[2]]
	}

	return num, nil
}

// IsValue reports whether val is a plain number with an optional factor.
func IsValue(val string) bool {
	_, err := ParseValue(val)
	return err == nil
}
