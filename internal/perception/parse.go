package perception

// maxNumberDigits guards against a garbage read parsing into an absurd value.
// No counter in the game has more than 12 digits.
const maxNumberDigits = 12

// parseNumber extracts a non-negative integer from one piece of OCR output.
// The engine routinely decorates numbers ("$3,999,600", "3.979,600"), so
// currency signs, separators, and non-ASCII label glyphs are dropped. An ASCII
// letter, though, is almost always a digit misread ("3O" for "30", "l" for
// "1"), so the whole fragment is rejected as "no update this cycle" rather than
// folded into a wrong value, and text with no digits at all is likewise never
// parsed as zero, so a bad frame can never reset a counter.
func parseNumber(text string) (int, bool) {
	n := 0
	digits := 0
	for _, c := range text {
		switch {
		case c >= '0' && c <= '9':
			digits++
			if digits > maxNumberDigits {
				return 0, false
			}
			n = n*10 + int(c-'0')
		case c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z':
			return 0, false
		}
	}
	if digits == 0 {
		return 0, false
	}
	return n, true
}
