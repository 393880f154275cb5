package utils

import (
	"strconv"
	"strings"

	"github.com/PolarWolf314/rotp/internal/ui"
)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// UniqueName returns base, or base with the first free "-N" suffix (N >= 2)
// when taken reports base as used. Comparison is exact, since labels are
// case sensitive.
func UniqueName(base string, taken func(string) bool) string {
	name := base
	for suffix := 2; taken(name); suffix++ {
		name = base + "-" + strconv.Itoa(suffix)
	}
	return name
}
