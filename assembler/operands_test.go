package assembler

import "testing"

func testAssembler() *Assembler {
	a := NewAssembler(DefaultConfig())
	a.line = 1
	return a
}

func TestParseRegisterRoundTrip(t *testing.T) {
	a := testAssembler()
	for i, token := range []string{
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
		"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
	} {
		reg, err := a.parseRegister(token)
		if err != nil {
			t.Fatalf("Expected %q to parse, got %v", token, err)
		}
		if int(reg) != i {
			t.Errorf("Expected %q to parse to %d, got %d", token, i, reg)
		}
	}
}

func TestParseRegisterErrorsAreDistinct(t *testing.T) {
	a := testAssembler()

	_, rangeErr := a.parseRegister("r16")
	if rangeErr == nil {
		t.Fatal("Expected r16 to fail")
	}
	_, parseErr := a.parseRegister("rX")
	if parseErr == nil {
		t.Fatal("Expected rX to fail")
	}
	if rangeErr.Description == parseErr.Description {
		t.Errorf("Expected distinct messages, both were %q", rangeErr.Description)
	}
}

func TestParseImmediateRepresentations(t *testing.T) {
	a := testAssembler()
	for _, token := range []string{"170", "0xAA", "0b10101010", "0b1010_1010", "0x_A_A"} {
		imm, err := a.parseImmediate(token)
		if err != nil {
			t.Fatalf("Expected %q to parse, got %v", token, err)
		}
		if imm != 170 {
			t.Errorf("Expected %q to parse to 170, got %d", token, imm)
		}
	}
}

func TestParseImmediateBoundaries(t *testing.T) {
	a := testAssembler()

	if _, err := a.parseImmediate("255"); err != nil {
		t.Errorf("Expected 255 to be accepted, got %v", err)
	}
	if _, err := a.parseImmediate("-128"); err != nil {
		t.Errorf("Expected -128 to be accepted, got %v", err)
	}
	if _, err := a.parseImmediate("256"); err == nil {
		t.Error("Expected 256 to be rejected")
	}
	if _, err := a.parseImmediate("-129"); err == nil {
		t.Error("Expected -129 to be rejected")
	}
}

func TestImmediateSignedPattern(t *testing.T) {
	a := testAssembler()
	imm, err := a.parseImmediate("-1")
	if err != nil {
		t.Fatalf("Expected -1 to parse, got %v", err)
	}
	if uint8(imm) != 0xFF {
		t.Errorf("Expected -1 to store as 0xFF, got 0x%02X", uint8(imm))
	}
	if imm.Signed() != -1 {
		t.Errorf("Expected the signed reading to round-trip, got %d", imm.Signed())
	}
}

func TestParseCharacterImmediates(t *testing.T) {
	a := testAssembler()
	for i, c := range Characters {
		imm, err := a.parseImmediate("'" + string(c) + "'")
		if err != nil {
			t.Fatalf("Expected %q to parse, got %v", string(c), err)
		}
		if int(imm) != i {
			t.Errorf("Expected '%c' to parse to %d, got %d", c, i, imm)
		}
	}

	if _, err := a.parseImmediate("'a'"); err == nil {
		t.Error("Expected lowercase character to be rejected")
	}
	if _, err := a.parseImmediate("'AB'"); err == nil {
		t.Error("Expected multi-character literal to be rejected")
	}
	if _, err := a.parseImmediate("'A"); err == nil {
		t.Error("Expected unterminated literal to be rejected")
	}
}

func TestParseOffsetBoundaries(t *testing.T) {
	a := testAssembler()
	for value, want := range map[string]Offset{"-8": -8, "7": 7, "0": 0} {
		off, err := a.parseOffset(value)
		if err != nil {
			t.Fatalf("Expected %q to parse, got %v", value, err)
		}
		if off != want {
			t.Errorf("Expected %q to parse to %d, got %d", value, want, off)
		}
	}
	if _, err := a.parseOffset("8"); err == nil {
		t.Error("Expected 8 to be rejected")
	}
	if _, err := a.parseOffset("-9"); err == nil {
		t.Error("Expected -9 to be rejected")
	}
}

func TestParseConditionIsCaseSensitive(t *testing.T) {
	a := testAssembler()
	if _, err := a.parseCondition("notzero"); err != nil {
		t.Errorf("Expected notzero to parse, got %v", err)
	}
	if _, err := a.parseCondition("NotZero"); err == nil {
		t.Error("Expected NotZero to be rejected")
	}
}

func TestParseLocationForms(t *testing.T) {
	a := testAssembler()

	loc, err := a.parseLocation("512")
	if err != nil || loc.Kind != LocationAddress || loc.Address != 512 {
		t.Errorf("Expected an absolute address, got %+v (%v)", loc, err)
	}

	loc, err = a.parseLocation("+3")
	if err != nil || loc.Kind != LocationRelative || loc.Offset != 3 {
		t.Errorf("Expected a +3 relative location, got %+v (%v)", loc, err)
	}

	loc, err = a.parseLocation("-2")
	if err != nil || loc.Kind != LocationRelative || loc.Offset != -2 {
		t.Errorf("Expected a -2 relative location, got %+v (%v)", loc, err)
	}

	loc, err = a.parseLocation("loop")
	if err != nil || loc.Kind != LocationLabel || loc.Label != "loop" {
		t.Errorf("Expected a label location, got %+v (%v)", loc, err)
	}

	if _, err = a.parseLocation("+x"); err == nil {
		t.Error("Expected a malformed relative offset to be rejected")
	}
}

func TestSplitStatements(t *testing.T) {
	pieces, trailing, empty := splitStatements("  ldi r1 1 ; ldi r2 2  ")
	if len(pieces) != 2 || pieces[0] != "ldi r1 1" || pieces[1] != "ldi r2 2" {
		t.Errorf("Expected two trimmed pieces, got %v", pieces)
	}
	if trailing || empty != 0 {
		t.Errorf("Expected no trailing semicolon and no empty fragments, got %v %d", trailing, empty)
	}

	pieces, trailing, empty = splitStatements("nop;")
	if len(pieces) != 1 || !trailing || empty != 0 {
		t.Errorf("Expected a trailing semicolon only, got %v %v %d", pieces, trailing, empty)
	}

	pieces, trailing, empty = splitStatements("nop;;hlt")
	if len(pieces) != 2 || trailing || empty != 1 {
		t.Errorf("Expected one interior empty fragment, got %v %v %d", pieces, trailing, empty)
	}

	pieces, _, _ = splitStatements("")
	if pieces != nil {
		t.Errorf("Expected no pieces for an empty line, got %v", pieces)
	}
}

func TestStripComment(t *testing.T) {
	if got := stripComment("nop // does nothing"); got != "nop " {
		t.Errorf("Expected the comment to be removed, got %q", got)
	}
	if got := stripComment("// whole line"); got != "" {
		t.Errorf("Expected an empty result, got %q", got)
	}
	if got := stripComment("nop"); got != "nop" {
		t.Errorf("Expected the line untouched, got %q", got)
	}
}

func TestDecodeRoundTrips(t *testing.T) {
	word := makeThreeRegInstruction(OpAdd, 1, 2, 3)
	if GetOpcode(word) != OpAdd {
		t.Errorf("Expected opcode add, got %v", GetOpcode(word))
	}
	a, b, c := DecodeThreeRegInstruction(word)
	if a != 1 || b != 2 || c != 3 {
		t.Errorf("Expected registers 1,2,3, got %d,%d,%d", a, b, c)
	}

	word = makeMemoryInstruction(OpLod, 4, 5, -3)
	ra, rb, off := DecodeMemoryInstruction(word)
	if ra != 4 || rb != 5 || off != -3 {
		t.Errorf("Expected 4,5,-3, got %d,%d,%d", ra, rb, off)
	}

	word = makeBranchInstruction(CondNotCarry, 0x2AB)
	cond, address := DecodeBranchInstruction(word)
	if cond != CondNotCarry || address != 0x2AB {
		t.Errorf("Expected notcarry/0x2AB, got %v/0x%03X", cond, address)
	}

	word = makeImmediateInstruction(OpAdi, 7, NewImmediate(-2))
	reg, imm := DecodeImmediateInstruction(word)
	if reg != 7 || imm.Signed() != -2 {
		t.Errorf("Expected 7/-2, got %d/%d", reg, imm.Signed())
	}
}
