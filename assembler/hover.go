package assembler

import (
	"fmt"
	"strings"
)

func isTokenDelimiter(c byte) bool {
	return c == ' ' || c == '\t' || c == ';'
}

// tokenAt extracts the whitespace/semicolon-delimited token covering char
// position char, and whether that token heads its statement fragment.
func tokenAt(line string, char int) (token string, head bool, ok bool) {
	if char < 0 || char >= len(line) || isTokenDelimiter(line[char]) {
		return "", false, false
	}

	start := char
	for start > 0 && !isTokenDelimiter(line[start-1]) {
		start--
	}
	end := char
	for end < len(line) && !isTokenDelimiter(line[end]) {
		end++
	}

	head = true
	for i := start - 1; i >= 0; i-- {
		if line[i] == ';' {
			break
		}
		if line[i] != ' ' && line[i] != '\t' {
			head = false
			break
		}
	}

	return line[start:end], head, true
}

// EvaluateHover returns markdown documentation for the token under position,
// using the symbol tables built by Parse. The second return is false when
// there is nothing to show.
func (a *Assembler) EvaluateHover(position TextPosition) (string, bool) {
	if position.Line < 0 || position.Line >= len(a.sourceLines) {
		return "", false
	}

	line := stripComment(a.sourceLines[position.Line])
	token, head, ok := tokenAt(line, position.Char)
	if !ok {
		return "", false
	}

	if strings.HasSuffix(token, ":") {
		label := token[:len(token)-1]
		if index, exists := a.labels[label]; exists {
			return fmt.Sprintf(hoverInfoFormats.labelDefinition, label, index), true
		}
		return "", false
	}

	if head {
		if token == "#define" {
			return "Define Directive.\n\nFormat: `#define NAME VALUE`\n\nRegisters a flat text substitution applied to operand tokens.", true
		}
		if info := getHoverInfoForMnemonic(token); info != "" {
			return info, true
		}
		return "", false
	}

	if value, exists := a.defines[token]; exists {
		return fmt.Sprintf(hoverInfoFormats.defineReference, token, value), true
	}

	if index, exists := a.labels[token]; exists {
		return fmt.Sprintf(hoverInfoFormats.labelReference, token, index), true
	}

	if reg, err := a.parseRegister(token); err == nil {
		if reg == 0 {
			return hoverInfoFormats.zeroRegister, true
		}
		return fmt.Sprintf(hoverInfoFormats.genericRegister, reg), true
	}

	if info := getHoverInfoForCondition(token); info != "" {
		return info, true
	}

	if value, err := parseInt(token); err == nil {
		return fmt.Sprintf(hoverInfoFormats.integerLiteral, value, uint64(value)&0xFFFF), true
	}

	return "", false
}
