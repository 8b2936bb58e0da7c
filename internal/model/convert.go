package model

import (
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the ledger's human-readable timestamp format.
const TimeLayout = "2006-01-02 15:04:05"

// ParseDecimal parses a decimal string leniently.
// Malformed numeric fields degrade to 0 rather than failing the batch; this
// is deliberate policy, not an accident.
func ParseDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// FormatDecimal renders a float the way ledger rows expect: shortest exact
// form, with a trailing ".0" kept on integral values so 50.0 and "50" stay
// distinguishable from integer IDs.
// 50000.0 -> "50000.0", 0.001 -> "0.001", 50.0 -> "50.0"
func FormatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// FormatTime renders epoch milliseconds in the local timezone.
// A missing timestamp (0) renders as the epoch rather than failing; callers
// may treat such records as suspect.
func FormatTime(ms int64) string {
	return time.UnixMilli(ms).Format(TimeLayout)
}

// FormatPercent renders a percentage with two decimals: 12.345 -> "12.35%".
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64) + "%"
}

// FormatBool renders a maker flag as "True"/"False" for the ledger.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
