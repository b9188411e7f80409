package assembler_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/batpulabs/batpu-tools/assembler"
)

func TestWriteBinaryIsBigEndian(t *testing.T) {
	var buf bytes.Buffer
	if err := assembler.WriteBinary(&buf, []uint16{0x8101}); err != nil {
		t.Fatalf("Expected the write to succeed, got %v", err)
	}

	got := buf.Bytes()
	if len(got) != 2 {
		t.Fatalf("Expected exactly 2 bytes, got %d", len(got))
	}
	if got[0] != 0x81 || got[1] != 0x01 {
		t.Errorf("Expected 0x81 0x01, got 0x%02X 0x%02X", got[0], got[1])
	}
}

func TestWriteTextHasNoTrailingNewline(t *testing.T) {
	var buf bytes.Buffer
	if err := assembler.WriteText(&buf, []uint16{0x8101}); err != nil {
		t.Fatalf("Expected the write to succeed, got %v", err)
	}

	got := buf.String()
	if got != "1000000100000001" {
		t.Errorf("Expected 16 binary digits and nothing else, got %q", got)
	}

	buf.Reset()
	if err := assembler.WriteText(&buf, []uint16{0x8101, 0x1000}); err != nil {
		t.Fatalf("Expected the write to succeed, got %v", err)
	}
	if buf.String() != "1000000100000001\n0001000000000000" {
		t.Errorf("Expected a single interior newline, got %q", buf.String())
	}
}

func TestAssembleToFile(t *testing.T) {
	dir := t.TempDir()

	config := assembler.DefaultConfig()
	config.TextOutput = true
	a := assembler.NewAssembler(config)
	if errs := a.Parse("ldi r1 1\nhlt"); errs != nil {
		t.Fatalf("Expected no parse errors, got %v", errs.Strings())
	}

	path := filepath.Join(dir, "program.mc")
	if errs := a.AssembleToFile(path); errs != nil {
		t.Fatalf("Expected the assembly to succeed, got %v", errs.Strings())
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected the output file to exist, got %v", err)
	}
	if string(b) != "1000000100000001\n0001000000000000" {
		t.Errorf("Unexpected file contents %q", string(b))
	}
}

func TestAssembleToFileWritesNothingOnError(t *testing.T) {
	dir := t.TempDir()

	a := assembler.NewAssembler(assembler.DefaultConfig())
	if errs := a.Parse("jmp nowhere"); errs != nil {
		t.Fatalf("Expected pass 1 to be clean, got %v", errs.Strings())
	}

	path := filepath.Join(dir, "program.mc")
	errs := a.AssembleToFile(path)
	if errs == nil || !errs.HasErrors() {
		t.Fatal("Expected the unknown label to surface")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected no output file to be created")
	}
}
