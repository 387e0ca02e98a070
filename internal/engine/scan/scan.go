// Package scan locates number-token boundaries in expression text.
//
// The scanner is an explicit character-class scan over raw bytes; no
// regular expressions are involved. It deliberately does not validate
// that a run is a well-formed number ("1.2.3" is a run): sign and
// percent toggling operate best-effort on the raw characters, and the
// evaluator flags genuinely malformed results afterwards.
package scan

// NumberAt returns the maximal contiguous run [start, end) of number
// characters (digits and the decimal point) touching index, scanning
// left and then right from it. The run must be non-empty; ok is false
// when index sits on no number, such as between two operators or on a
// parenthesis.
func NumberAt(text string, index int) (start, end int, ok bool) {
	if index < 0 || index > len(text) {
		return 0, 0, false
	}

	start, end = index, index
	for start > 0 && isNumberByte(text[start-1]) {
		start--
	}
	for end < len(text) && isNumberByte(text[end]) {
		end++
	}

	if start == end {
		return 0, 0, false
	}
	return start, end, true
}

func isNumberByte(b byte) bool {
	return b == '.' || (b >= '0' && b <= '9')
}
