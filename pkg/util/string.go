package util

// Ellipsis marks a value that was cut to fit a cell.
const Ellipsis = "..."

// Truncate caps s at max runes. Oversized values keep their first max-3
// runes and end with the ellipsis marker, so the result is exactly max
// runes long. Values that already fit are returned unchanged, which makes
// the function idempotent.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	keep := max - len(Ellipsis)
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + Ellipsis
}
