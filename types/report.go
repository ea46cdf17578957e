package types

import (
	"strconv"
	"strings"
)

// Report is a single energy_reports row. The measurement columns vary
// between deployments, so rows are kept exactly as scanned and passed
// through to JSON unchanged. Only meter_no, machine_name, and
// reading_date carry meaning for this service.
type Report map[string]any

// MeterNo returns the row's meter number coerced to a number. The second
// return is false when the column is absent, NULL, or not numeric.
func (r Report) MeterNo() (float64, bool) {
	return toNumber(r["meter_no"])
}

// MachineName returns the machine_name column when present and non-empty.
func (r Report) MachineName() (string, bool) {
	switch s := r["machine_name"].(type) {
	case string:
		if s == "" {
			return "", false
		}
		return s, true
	case []byte:
		if len(s) == 0 {
			return "", false
		}
		return string(s), true
	default:
		return "", false
	}
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case string:
		return parseNumber(n)
	case []byte:
		return parseNumber(string(n))
	default:
		return 0, false
	}
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
