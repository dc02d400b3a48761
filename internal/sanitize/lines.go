package sanitize

import (
	"fmt"
	"strconv"
	"strings"
)

const lineSeparator = "\n"

func splitLines(text string) []string {
	lines := strings.Split(text, lineSeparator)
	for lineIndex, line := range lines {
		lines[lineIndex] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// RemoveEmptyLines drops every line that is empty after trimming whitespace.
func RemoveEmptyLines(text string) string {
	lines := splitLines(text)
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, lineSeparator)
}

// AddLineNumbers prefixes each line with its 1-based number right-aligned to the
// width of the largest number, followed by " | ".
func AddLineNumbers(text string) string {
	lines := splitLines(text)
	width := len(strconv.Itoa(len(lines)))
	numbered := make([]string, len(lines))
	for lineIndex, line := range lines {
		numbered[lineIndex] = fmt.Sprintf("%*d | %s", width, lineIndex+1, line)
	}
	return strings.Join(numbered, lineSeparator)
}
