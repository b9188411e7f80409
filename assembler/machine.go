package assembler

// Limits of the target machine. The canonical target is the 1024-instruction
// BatPU-2: 10-bit program addresses, 16 registers, 8-bit immediates.
const (
	RegisterCount   = 16
	MaxInstructions = 1024
	MaxAddress      = MaxInstructions - 1

	ImmediateMin = -128
	ImmediateMax = 255

	OffsetMin = -8
	OffsetMax = 7
)

// Characters is the fixed table for character literals. The index of a
// character in this table is the immediate value it assembles to.
var Characters = []rune{
	' ',
	'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M',
	'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z',
	'.', '!', '?',
}

// DefaultDefines returns the built-in define set for the memory-mapped I/O
// ports. Seeded into a new Assembler unless AssemblerConfig.DefaultDefines is
// disabled.
func DefaultDefines() map[string]string {
	return map[string]string{
		// Screen
		"SCR_PIX_X": "240",
		"SCR_PIX_Y": "241",

		"SCR_DRAW_PIX": "242",
		"SCR_CLR_PIX":  "243",
		"SCR_LOAD_PIX": "244",

		"SCR_DRAW": "245",
		"SCR_CLR":  "246",

		// Character display
		"CHAR_DISP_WRITE": "247",

		"CHAR_DISP_DRAW": "248",
		"CHAR_DISP_CLR":  "249",

		// Number display
		"NUM_DISP_SHOW": "250",
		"NUM_DISP_CLR":  "251",

		"NUM_DISP_SIGNED":   "252",
		"NUM_DISP_UNSIGNED": "253",

		// Random number generator
		"RNG": "254",

		// Controller
		"CONTROLLER": "255",
	}
}
