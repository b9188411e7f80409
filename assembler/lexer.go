package assembler

import "strings"

// stripComment truncates a physical line at the first // occurrence.
func stripComment(line string) string {
	if i := strings.Index(line, "//"); i != -1 {
		return line[:i]
	}
	return line
}

// splitStatements splits a comment-stripped physical line into trimmed
// statement fragments. A line may carry several statements separated by
// semicolons. Returns the non-empty fragments, whether the line ended in one
// or more bare trailing semicolons, and how many empty fragments were
// produced by non-trailing semicolons.
func splitStatements(line string) (pieces []string, trailing bool, interiorEmpty int) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false, 0
	}

	trailing = strings.HasSuffix(line, ";")

	parts := strings.Split(line, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	// Empty fragments at the end of the line are covered by the trailing
	// semicolon warning, not reported individually.
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	for _, part := range parts {
		if part == "" {
			interiorEmpty++
			continue
		}
		pieces = append(pieces, part)
	}
	return pieces, trailing, interiorEmpty
}
