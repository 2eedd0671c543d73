package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName canoniza un nombre antes de compararlo o persistirlo:
// NFC, espacios colapsados y sin espacios en los extremos. La unicidad de
// nombres se evalúa siempre sobre la forma normalizada.
func NormalizeName(name string) string {
	name = norm.NFC.String(name)
	return strings.Join(strings.Fields(name), " ")
}
