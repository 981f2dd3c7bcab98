package csvfeed

import (
	"math"
	"strconv"
	"strings"
	"time"

	"csvconnector/internal/services/connector/domain"
)

// datetime layouts tried in order; zone-less layouts are read as UTC
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// candidates in precedence order
var candidates = []struct {
	kind domain.Kind
	ok   func(string) bool
}{
	{domain.KindInt, func(s string) bool { _, ok := parseInt(s); return ok }},
	{domain.KindFloat, func(s string) bool { _, ok := parseFloat(s); return ok }},
	{domain.KindBool, func(s string) bool { _, ok := parseBool(s); return ok }},
	{domain.KindDatetime, func(s string) bool { _, ok := parseTime(s); return ok }},
}

// inferKind picks the first kind every non-empty cell satisfies
func inferKind(cells []string) domain.Kind {
	vals := make([]string, 0, len(cells))
	for _, c := range cells {
		if t := strings.TrimSpace(c); t != "" {
			vals = append(vals, t)
		}
	}
	if len(vals) == 0 {
		return domain.KindString
	}
next:
	for _, c := range candidates {
		for _, v := range vals {
			if !c.ok(v) {
				continue next
			}
		}
		return c.kind
	}
	return domain.KindString
}

// convert turns one cell into the scalar for kind; empty cells become nil
func convert(kind domain.Kind, cell string) any {
	t := strings.TrimSpace(cell)
	if t == "" {
		return nil
	}
	switch kind {
	case domain.KindInt:
		v, _ := parseInt(t)
		return v
	case domain.KindFloat:
		v, _ := parseFloat(t)
		return v
	case domain.KindBool:
		v, _ := parseBool(t)
		return v
	case domain.KindDatetime:
		v, _ := parseTime(t)
		return v
	default:
		return cell
	}
}

func parseInt(s string) (int64, bool) {
	v, err := strconv.ParseInt(s, 10, 64)
	return v, err == nil
}

// parseFloat accepts decimal and exponent forms only; inf, nan, hex and
// underscore-separated literals stay strings
func parseFloat(s string) (float64, bool) {
	if !strings.ContainsAny(s, "0123456789") || strings.Contains(s, "_") {
		return 0, false
	}
	if u := strings.TrimLeft(s, "+-"); strings.HasPrefix(u, "0x") || strings.HasPrefix(u, "0X") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func parseBool(s string) (bool, bool) {
	switch {
	case strings.EqualFold(s, "true"):
		return true, true
	case strings.EqualFold(s, "false"):
		return false, true
	}
	return false, false
}

func parseTime(s string) (time.Time, bool) {
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
