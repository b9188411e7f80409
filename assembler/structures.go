package assembler

// AssemblerConfig is the configuration surface consumed by the core. The CLI
// layer owns flag parsing and hands the result over as this struct.
type AssemblerConfig struct {
	DefaultDefines bool // seed the define table with the I/O port names
	PrintInfo      bool // print a utilization summary after a successful assemble
	TextOutput     bool // emit binary-digit text instead of raw big-endian words
}

func DefaultConfig() AssemblerConfig {
	return AssemblerConfig{
		DefaultDefines: true,
		PrintInfo:      false,
		TextOutput:     false,
	}
}

// Register is a register index in [0, RegisterCount).
type Register uint8

// Immediate is the 8-bit pattern of an immediate operand. Accepted source
// values span ImmediateMin..ImmediateMax; both readings share one pattern.
type Immediate uint8

// NewImmediate truncates a validated source value to its 8-bit pattern.
func NewImmediate(value int) Immediate {
	return Immediate(uint8(value & 0xFF))
}

// Signed reinterprets the stored pattern as a signed value.
func (imm Immediate) Signed() int8 {
	return int8(imm)
}

// Offset is a load/store address offset in [OffsetMin, OffsetMax].
type Offset int8

// Condition selects which flag a branch tests.
type Condition uint8

const (
	CondZero Condition = iota
	CondNotZero
	CondCarry
	CondNotCarry
)

func (c Condition) String() string {
	switch c {
	case CondZero:
		return "zero"
	case CondNotZero:
		return "notzero"
	case CondCarry:
		return "carry"
	case CondNotCarry:
		return "notcarry"
	}
	return "unknown"
}

type LocationKind int

const (
	// LocationAddress is an absolute, already validated program address.
	LocationAddress LocationKind = iota
	// LocationLabel is a symbolic target resolved during encoding.
	LocationLabel
	// LocationRelative is an offset from the instruction's own position,
	// resolved to an absolute address during encoding.
	LocationRelative
)

// Location is a jump/branch/call target in one of three source forms.
type Location struct {
	Kind    LocationKind
	Address uint16 // LocationAddress
	Label   string // LocationLabel
	Offset  int    // LocationRelative
}

// Opcode is the 4-bit instruction index of the closed 16-variant set.
type Opcode uint8

const (
	OpNop Opcode = iota
	OpHlt
	OpAdd
	OpSub
	OpNor
	OpAnd
	OpXor
	OpRsh
	OpLdi
	OpAdi
	OpJmp
	OpBrh
	OpCal
	OpRet
	OpLod
	OpStr
)

func (op Opcode) String() string {
	names := [...]string{
		"nop", "hlt", "add", "sub", "nor", "and", "xor", "rsh",
		"ldi", "adi", "jmp", "brh", "cal", "ret", "lod", "str",
	}
	if int(op) < len(names) {
		return names[op]
	}
	return "unknown"
}

// Instruction is one decoded statement. Op selects which operand fields are
// meaningful; the encoder switches exhaustively on it.
type Instruction struct {
	Op Opcode

	A, B, C Register  // register formats
	Imm     Immediate // ldi/adi
	Off     Offset    // lod/str
	Cond    Condition // brh
	Target  Location  // jmp/brh/cal
}

// sourceInstruction pairs a pass-1 instruction with its originating source
// line so pass-2 errors can be attributed.
type sourceInstruction struct {
	instr Instruction
	line  int
}
