// Package nlnum extracts integers from free-text collaborator replies.
// It exists because AI collaborators are asked for "an integer" and answer
// with prose; the parse is best effort with documented failure modes:
// empty input, input with no digits, and digit runs too long for an int all
// report ok=false.
package nlnum

import "strconv"

// FirstInt returns the first run of decimal digits found anywhere in s,
// parsed as an int. "approximately 400 days" yields 400; "7-10 days" yields
// 7; "N/A" yields ok=false. Signs are ignored, so the result is never
// negative.
func FirstInt(s string) (int, bool) {
	start := -1

	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}

			continue
		}

		if start >= 0 {
			return toInt(s[start:i])
		}
	}

	if start >= 0 {
		return toInt(s[start:])
	}

	return 0, false
}

func toInt(digits string) (int, bool) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}

	return n, true
}
