package csvfeed

import (
	"strconv"
	"strings"
)

// normalizeHeader names blank columns "Unnamed: <i>" and suffixes repeats as x.1, x.2
func normalizeHeader(raw []string) []string {
	out := make([]string, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, h := range raw {
		seen[h] = true
	}
	taken := make(map[string]int, len(raw))

	for i, h := range raw {
		name := h
		if strings.TrimSpace(name) == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if n, dup := taken[name]; dup {
			base := name
			for {
				n++
				name = base + "." + strconv.Itoa(n)
				if _, used := taken[name]; !used && !seen[name] {
					break
				}
			}
			taken[base] = n
		}
		taken[name] = 0
		out[i] = name
	}
	return out
}
