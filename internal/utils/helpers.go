package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// ParseSalary extracts a numeric salary from a raw CSV cell.
// Accepts plain numbers as well as "$150,000" and "150K" forms.
func ParseSalary(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty salary")
	}

	multiplier := 1.0
	if upper := strings.ToUpper(s); strings.HasSuffix(upper, "K") {
		s = upper[:len(upper)-1]
		multiplier = 1000
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid salary %q: %w", raw, err)
	}
	if math.IsNaN(val) || math.IsInf(val, 0) || val < 0 {
		return 0, fmt.Errorf("invalid salary %q", raw)
	}
	return val * multiplier, nil
}

// ParseRemoteRatio parses a remote_ratio cell, which must be a percentage
func ParseRemoteRatio(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid remote ratio %q: %w", raw, err)
	}
	if val < 0 || val > 100 || val != math.Trunc(val) {
		return 0, fmt.Errorf("remote ratio %q out of range", raw)
	}
	return int(val), nil
}

// FormatSalary formats a salary as whole dollars with comma separators
func FormatSalary(salary float64) string {
	return "$" + humanize.Comma(int64(math.Round(salary)))
}

// FormatNumber formats an axis value with comma separators
func FormatNumber(v float64) string {
	if v == math.Trunc(v) {
		return humanize.Comma(int64(v))
	}
	return humanize.Commaf(v)
}

// FormatPercent appends the percent suffix used on remote ratio labels
func FormatPercent(key string) string {
	return key + "%"
}

// TruncateString truncates a string to the specified number of runes and adds "..." if necessary
func TruncateString(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length || length < 4 {
		return s
	}
	return string(runes[:length-3]) + "..."
}
