package assembler

import (
	"fmt"
	"sort"
	"strings"
)

// AssemblerError is one collected problem. Line is 1-based; 0 means the error
// is global (not tied to a source line). Warnings are reported alongside
// errors but do not fail the run.
type AssemblerError struct {
	Description string
	Line        int
	Warning     bool
}

func (e *AssemblerError) Error() string {
	if e.Line == 0 {
		return e.Description
	}
	return fmt.Sprintf("[Line %d] %s", e.Line, e.Description)
}

// ErrorList accumulates problems across both passes. Nothing short-circuits:
// a bad statement contributes one entry and parsing moves on.
type ErrorList []*AssemblerError

// Sort orders entries by line number, global entries first. The sort is
// stable so same-line entries keep discovery order.
func (l ErrorList) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Line < l[j].Line
	})
}

// HasErrors reports whether the list contains at least one non-warning entry.
func (l ErrorList) HasErrors() bool {
	for _, e := range l {
		if !e.Warning {
			return true
		}
	}
	return false
}

func (l ErrorList) Strings() []string {
	out := make([]string, len(l))
	for i, e := range l {
		out[i] = e.Error()
	}
	return out
}

// wrap turns an opaque error (typically I/O) into a global entry.
func wrap(err error) *AssemblerError {
	return &AssemblerError{Description: err.Error()}
}

// joinWithAnd renders an operand name list as "A, B and C".
func joinWithAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

// Errors constructs the error-severity entries of the taxonomy.
type assemblyErrors struct{}

var Errors assemblyErrors

func (assemblyErrors) UnknownOpcode(name string, line int) *AssemblerError {
	return &AssemblerError{Description: fmt.Sprintf("Unknown opcode: %s", name), Line: line}
}

func (assemblyErrors) ArgumentCount(expected []string, actual, line int) *AssemblerError {
	want := "no arguments"
	if len(expected) > 0 {
		plural := "s"
		if len(expected) == 1 {
			plural = ""
		}
		want = fmt.Sprintf("%s (%d argument%s)", joinWithAnd(expected), len(expected), plural)
	}
	return &AssemblerError{
		Description: fmt.Sprintf("Expected %s, got %d instead", want, actual),
		Line:        line,
	}
}

func (assemblyErrors) RegisterPrefix(token string, line int) *AssemblerError {
	return &AssemblerError{
		Description: fmt.Sprintf("Register %q must start with a lowercase 'r'", token),
		Line:        line,
	}
}

func (assemblyErrors) RegisterRange(digits string, line int) *AssemblerError {
	return &AssemblerError{
		Description: fmt.Sprintf("Register %s out of range, expected 0-%d", digits, RegisterCount-1),
		Line:        line,
	}
}

func (assemblyErrors) RegisterParse(digits string, err error, line int) *AssemblerError {
	return &AssemblerError{
		Description: fmt.Sprintf("Failed to parse register %q: %v", digits, err),
		Line:        line,
	}
}

func (assemblyErrors) ImmediateRange(token string, line int) *AssemblerError {
	return &AssemblerError{
		Description: fmt.Sprintf("Immediate %s out of range, expected %d-%d", token, ImmediateMin, ImmediateMax),
		Line:        line,
	}
}

func (assemblyErrors) ImmediateParse(token string, err error, line int) *AssemblerError {
	return &AssemblerError{
		Description: fmt.Sprintf("Failed to parse immediate %q: %v", token, err),
		Line:        line,
	}
}

func (assemblyErrors) CharacterUnterminated(token string, line int) *AssemblerError {
	return &AssemblerError{
		Description: fmt.Sprintf("Immediate %q must end with '", token),
		Line:        line,
	}
}

func (assemblyErrors) CharacterLength(content string, line int) *AssemblerError {
	return &AssemblerError{
		Description: fmt.Sprintf("Immediate %q must only contain a single character", content),
		Line:        line,
	}
}

func (assemblyErrors) CharacterUnsupported(char rune, line int) *AssemblerError {
	return &AssemblerError{
		Description: fmt.Sprintf("Character \"%c\" is not supported, you can only use ones in %q", char, string(Characters)),
		Line:        line,
	}
}

func (assemblyErrors) OffsetRange(token string, line int) *AssemblerError {
	return &AssemblerError{
		Description: fmt.Sprintf("Offset %s out of range, expected %d-%d", token, OffsetMin, OffsetMax),
		Line:        line,
	}
}

func (assemblyErrors) OffsetParse(token string, err error, line int) *AssemblerError {
	return &AssemblerError{
		Description: fmt.Sprintf("Failed to parse offset %q: %v", token, err),
		Line:        line,
	}
}

func (assemblyErrors) UnknownCondition(token string, line int) *AssemblerError {
	return &AssemblerError{
		Description: fmt.Sprintf("Unknown condition: %q", token),
		Line:        line,
	}
}

func (assemblyErrors) AddressRange(address uint64, line int) *AssemblerError {
	return &AssemblerError{
		Description: fmt.Sprintf("Address %d out of range, expected 0-%d", address, MaxAddress),
		Line:        line,
	}
}

func (assemblyErrors) RelativeParse(token string, err error, line int) *AssemblerError {
	return &AssemblerError{
		Description: fmt.Sprintf("Failed to parse address offset %q: %v", token, err),
		Line:        line,
	}
}

func (assemblyErrors) RelativeRange(target, line int) *AssemblerError {
	return &AssemblerError{
		Description: fmt.Sprintf("Relative target %d out of range, expected 0-%d", target, MaxAddress),
		Line:        line,
	}
}

func (assemblyErrors) DuplicateLabel(name string, line int) *AssemblerError {
	return &AssemblerError{
		Description: fmt.Sprintf("Label %q was already defined", name),
		Line:        line,
	}
}

func (assemblyErrors) DuplicateDefine(name string, line int) *AssemblerError {
	return &AssemblerError{
		Description: fmt.Sprintf("Definition of %q already exists", name),
		Line:        line,
	}
}

func (assemblyErrors) UnknownLabel(name string, line int) *AssemblerError {
	return &AssemblerError{
		Description: fmt.Sprintf("Unknown label %q", name),
		Line:        line,
	}
}

func (assemblyErrors) EmptyStatement(line int) *AssemblerError {
	return &AssemblerError{
		Description: "Empty statement between semicolons",
		Line:        line,
	}
}

func (assemblyErrors) ProgramTooLarge(count int) *AssemblerError {
	return &AssemblerError{
		Description: fmt.Sprintf("Program exceeds maximum size (%d out of %d instructions)", count, MaxInstructions),
	}
}

// Warnings constructs the warning-severity entries.
type assemblyWarnings struct{}

var Warnings assemblyWarnings

func (assemblyWarnings) TrailingSemicolon(line int) *AssemblerError {
	return &AssemblerError{
		Description: "Semicolons at the end of lines are useless",
		Line:        line,
		Warning:     true,
	}
}
