package languageServer

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/batpulabs/batpu-tools/assembler"
	"github.com/batpulabs/batpu-tools/util"
)

var documentMap = make(map[string]TextDocumentItem) // uri -> document

// analyzeDocument runs both passes over the document text and stores the
// parsed assembler for hover lookups. Diagnostics from both passes are
// merged; a second-pass run only happens when the first is clean enough to
// have produced a full instruction list.
func analyzeDocument(uri DocumentUri) []assembler.Diagnostic {
	doc := documentMap[string(uri)]

	a := assembler.NewAssembler(assembler.DefaultConfig())
	errs := a.Parse(doc.Text)
	if !errs.HasErrors() {
		if _, encodeErrs := a.Assemble(); encodeErrs != nil {
			errs = append(errs, encodeErrs...)
			errs.Sort()
		}
	}

	doc.lastAssembler = a
	documentMap[string(uri)] = doc

	return assembler.DiagnosticsFromErrors(errs, strings.Split(doc.Text, "\n"))
}

func documentOpenNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidOpenTextDocumentParams{}
	err := json.Unmarshal(*req.Params, &decodedParams)
	if err != nil {
		rpcErr := jsonrpc2.Error{}
		rpcErr.SetError("invalid parameters")
		conn.ReplyWithError(context.Background(), req.ID, &rpcErr)
		return
	}

	documentMap[string(decodedParams.TextDocument.URI)] = decodedParams.TextDocument

	diagnostics := analyzeDocument(decodedParams.TextDocument.URI)
	conn.Notify(context.Background(), "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         decodedParams.TextDocument.URI,
		Diagnostics: diagnostics,
	})
}

func documentCloseNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidCloseTextDocumentParams{}
	err := json.Unmarshal(*req.Params, &decodedParams)
	if err != nil {
		rpcErr := jsonrpc2.Error{}
		rpcErr.SetError("invalid parameters")
		conn.ReplyWithError(context.Background(), req.ID, &rpcErr)
		return
	}

	delete(documentMap, string(decodedParams.TextDocument.URI))
}

func documentChangeNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidChangeTextDocumentParams{}
	err := json.Unmarshal(*req.Params, &decodedParams)
	if err != nil {
		rpcErr := jsonrpc2.Error{}
		rpcErr.SetError("invalid parameters")
		conn.ReplyWithError(context.Background(), req.ID, &rpcErr)
		return
	}

	doc := documentMap[string(decodedParams.TextDocument.URI)]
	doc.Text = decodedParams.ContentChanges[0].Text
	doc.Version = decodedParams.TextDocument.Version
	documentMap[string(decodedParams.TextDocument.URI)] = doc

	diagnostics := analyzeDocument(decodedParams.TextDocument.URI)
	conn.Notify(context.Background(), "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         decodedParams.TextDocument.URI,
		Version:     doc.Version,
		Diagnostics: diagnostics,
	})
}

func documentDiagnostics(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentDiagnosticsParams{}
	err := json.Unmarshal(*req.Params, &decodedParams)
	if err != nil {
		rpcErr := jsonrpc2.Error{}
		rpcErr.SetError("invalid parameters")
		conn.ReplyWithError(context.Background(), req.ID, &rpcErr)
		return
	}

	diagnostics := analyzeDocument(decodedParams.TextDocument.URI)
	conn.Reply(context.Background(), req.ID, DocumentDiagnosticsReport{
		Kind:  "full",
		Items: diagnostics,
	})
}

// reformatDocument normalizes whitespace: labels and #define directives stay
// flush left, instructions are indented past the longest label.
func reformatDocument(uri DocumentUri) string {
	doc := documentMap[string(uri)]

	a := assembler.NewAssembler(assembler.DefaultConfig())
	a.Parse(doc.Text)

	maxLabelLength := 0
	for label := range a.Labels() {
		if len(label) > maxLabelLength {
			maxLabelLength = len(label)
		}
	}

	lines := strings.Split(doc.Text, "\n")
	for i, line := range lines {
		withoutComment := line
		withComment := ""
		if idx := strings.Index(line, "//"); idx != -1 {
			withoutComment = line[:idx]
			withComment = " " + line[idx:]
		}

		stripped := strings.Join(strings.Fields(withoutComment), " ")
		if stripped == "" {
			lines[i] = strings.TrimRight(withComment, " ")
			if lines[i] != "" {
				lines[i] = strings.TrimLeft(lines[i], " ")
			}
			continue
		}

		if strings.HasSuffix(strings.Fields(stripped)[0], ":") || strings.HasPrefix(stripped, "#define") {
			lines[i] = stripped + withComment
		} else {
			lines[i] = strings.Repeat(" ", maxLabelLength+2) + stripped + withComment
		}
	}
	return strings.Join(lines, "\n")
}

func documentWillSaveWaitUntil(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentWillSaveWaitUntilParams{}
	err := json.Unmarshal(*req.Params, &decodedParams)
	if err != nil {
		rpcErr := jsonrpc2.Error{}
		rpcErr.SetError("invalid parameters")
		conn.ReplyWithError(context.Background(), req.ID, &rpcErr)
		return
	}

	lines := strings.Split(documentMap[string(decodedParams.TextDocument.URI)].Text, "\n")

	edits := []TextEdit{{
		Range: assembler.TextRange{
			Start: assembler.TextPosition{Line: 0, Char: 0},
			End:   assembler.TextPosition{Line: len(lines) - 1, Char: len(lines[len(lines)-1])},
		},
		NewText: reformatDocument(decodedParams.TextDocument.URI),
	}}

	conn.Reply(context.Background(), req.ID, edits)
	util.LogF("BatPU-2 Language Server: reformatted document")
}
