package assembler

// LSP-shaped diagnostic structures. The language server publishes these; the
// checker and CLI render AssemblerError directly.

type TextPosition struct {
	Line int `json:"line"`
	Char int `json:"character"`
}

type TextRange struct {
	Start TextPosition `json:"start"`
	End   TextPosition `json:"end"`
}

type DiagnosticSeverity int

const (
	Error       DiagnosticSeverity = 1
	Warning     DiagnosticSeverity = 2
	Information DiagnosticSeverity = 3
	Hint        DiagnosticSeverity = 4
)

type Diagnostic struct {
	Range    TextRange          `json:"range"`
	Message  string             `json:"message"`
	Source   string             `json:"source,omitempty"`
	Severity DiagnosticSeverity `json:"severity,omitempty"`
}

// DiagnosticsFromErrors maps collected assembler errors onto LSP diagnostics.
// AssemblerError lines are 1-based; LSP lines are 0-based. Global entries
// attach to the first line. lines carries the source text so ranges can span
// the offending line's content.
func DiagnosticsFromErrors(errs ErrorList, lines []string) []Diagnostic {
	diagnostics := make([]Diagnostic, 0, len(errs))
	for _, e := range errs {
		line := 0
		if e.Line > 0 {
			line = e.Line - 1
		}

		endChar := 0
		if line < len(lines) {
			endChar = len(lines[line])
		}

		severity := Error
		if e.Warning {
			severity = Warning
		}

		diagnostics = append(diagnostics, Diagnostic{
			Range: TextRange{
				Start: TextPosition{Line: line, Char: 0},
				End:   TextPosition{Line: line, Char: endChar},
			},
			Message:  e.Description,
			Source:   "Assembler",
			Severity: severity,
		})
	}
	return diagnostics
}
