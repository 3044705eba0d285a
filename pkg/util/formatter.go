package util

import (
	"fmt"
	"math"
	"strconv"
)

var factors = []struct {
	scale  float64
	suffix string
}{
	{1e12, "t"},
	{1e9, "g"},
	{1e6, "meg"},
	{1e3, "k"},
	{1, ""},
	{1e-3, "m"},
	{1e-6, "u"},
	{1e-9, "n"},
	{1e-12, "p"},
	{1e-15, "f"},
}

// FormatValue writes value back in netlist notation. 3e-6 -> 3u
func FormatValue(value float64) string {
	absValue := math.Abs(value)
	if absValue == 0 {
		return "0"
	}
	for _, f := range factors {
		if absValue >= f.scale*(1-1e-12) {
			return strconv.FormatFloat(value/f.scale, 'g', 12, 64) + f.suffix
		}
	}
	return strconv.FormatFloat(value, 'g', 12, 64)
}

func FormatValueFactor(value float64, unit string) string {
	absValue := math.Abs(value)
	switch {
	case absValue >= 1e6:
		return fmt.Sprintf("%.3f M%s", value/1e6, unit)
	case absValue >= 1e3:
		return fmt.Sprintf("%.3f k%s", value/1e3, unit)
	case absValue >= 1:
		return fmt.Sprintf("%.3f %s", value, unit)
	case absValue >= 1e-3:
		return fmt.Sprintf("%.3f m%s", value*1e3, unit)
	case absValue >= 1e-6:
		return fmt.Sprintf("%.3f u%s", value*1e6, unit)
	case absValue >= 1e-9:
		return fmt.Sprintf("%.3f n%s", value*1e9, unit)
	case absValue >= 1e-12:
		return fmt.Sprintf("%.3f p%s", value*1e12, unit)
	default:
		return fmt.Sprintf("%.3e %s", value, unit)
	}
}
