package stats

import "strings"

// ToID converts a display name into its canonical key: lower-case with every
// character outside [a-z0-9] removed. Names that collapse to the same key are
// the same entity.
func ToID(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
