package chatlayout

// WrapByCharCount implements spec.md §4.6 step 3's fixed max-character
// wrap: scan runes, remember the last space seen since the current
// line started, and once a line would exceed maxChars break at that
// space (or at the current position if no space fits on the line).
func WrapByCharCount(text string, maxChars int) []string {
	if maxChars < 1 {
		maxChars = 1
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return []string{""}
	}

	var lines []string
	lineStart := 0
	lastSpace := -1

	for i := 0; i < len(runes); i++ {
		if runes[i] == ' ' {
			lastSpace = i
		}
		if i-lineStart+1 > maxChars {
			if lastSpace < lineStart {
				lines = append(lines, string(runes[lineStart:i]))
				lineStart = i
			} else {
				lines = append(lines, string(runes[lineStart:lastSpace]))
				lineStart = lastSpace + 1
			}
			lastSpace = -1
		}
	}
	if lineStart < len(runes) {
		lines = append(lines, string(runes[lineStart:]))
	}
	return lines
}
