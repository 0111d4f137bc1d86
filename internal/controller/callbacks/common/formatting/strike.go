package formatting

import "strings"

// combiningLongStroke is U+0336.
const combiningLongStroke = '\u0336'

// Strike draws a line through s by following each rune with U+0336.
// Telegram buttons have no markup, so this is how taken slots are shown.
func Strike(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for _, r := range s {
		b.WriteRune(r)
		b.WriteRune(combiningLongStroke)
	}
	return b.String()
}

// Scale renders a 1..5 value as filled and empty dots.
func Scale(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 5 {
		v = 5
	}
	return strings.Repeat("●", v) + strings.Repeat("○", 5-v)
}

// MoodEmoji maps a 1..5 mood onto a face.
func MoodEmoji(v int) string {
	switch v {
	case 1:
		return "😞"
	case 2:
		return "🙁"
	case 3:
		return "😐"
	case 4:
		return "🙂"
	case 5:
		return "😄"
	}
	return "❔"
}

// Truncate shortens s to max runes, marking the cut with "…".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max < 1 {
		return s
	}
	return string(r[:max-1]) + "…"
}
