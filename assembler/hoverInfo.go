package assembler

type hoverInfoFormatsType struct {
	labelDefinition string
	labelReference  string
	defineReference string
	integerLiteral  string

	// registers
	zeroRegister    string
	genericRegister string

	// conditions
	zero     string
	notzero  string
	carry    string
	notcarry string

	// instructions
	nop string
	hlt string
	add string
	sub string
	nor string
	and string
	xor string
	rsh string
	ldi string
	adi string
	jmp string
	brh string
	cal string
	ret string
	lod string
	str string

	// sugar
	cmp string
	mov string
	lsh string
	inc string
	dec string
	not string
	neg string
}

var hoverInfoFormats = hoverInfoFormatsType{
	labelDefinition: "Definition of label `%s`.\n\nAddress `%d`",
	labelReference:  "Reference to label `%s`\n\nEvaluates to `%d`",
	defineReference: "Define `%s`\n\nExpands to `%s`",
	integerLiteral:  "Integer Literal `%d` (`0x%X`)",

	zeroRegister:    "Register `r0`. Hardwired to zero; writes are discarded",
	genericRegister: "Register `r%d`. 8-Bit General Purpose Register",

	zero:     "Branch condition `zero`: taken when the zero flag is set",
	notzero:  "Branch condition `notzero`: taken when the zero flag is clear",
	carry:    "Branch condition `carry`: taken when the carry flag is set",
	notcarry: "Branch condition `notcarry`: taken when the carry flag is clear",

	nop: "No Operation Instruction.\n\nFormat: `nop`\n\nDoes nothing for one cycle.",
	hlt: "Halt Instruction.\n\nFormat: `hlt`\n\nStops the machine.",
	add: "Addition Instruction.\n\nFormat: `add <reg a> <reg b> <dst reg>`\n\nExample: `add r1 r2 r3` is the same as `r3 = r1 + r2`\n\nSets the zero and carry flags.",
	sub: "Subtraction Instruction.\n\nFormat: `sub <reg a> <reg b> <dst reg>`\n\nExample: `sub r1 r2 r3` is the same as `r3 = r1 - r2`\n\nSets the zero and carry flags.",
	nor: "Bitwise NOR Instruction.\n\nFormat: `nor <reg a> <reg b> <dst reg>`\n\nExample: `nor r1 r2 r3` is the same as `r3 = ~(r1 | r2)`",
	and: "Bitwise AND Instruction.\n\nFormat: `and <reg a> <reg b> <dst reg>`\n\nExample: `and r1 r2 r3` is the same as `r3 = r1 & r2`",
	xor: "Bitwise XOR Instruction.\n\nFormat: `xor <reg a> <reg b> <dst reg>`\n\nExample: `xor r1 r2 r3` is the same as `r3 = r1 ^ r2`",
	rsh: "Right Shift Instruction.\n\nFormat: `rsh <reg a> <dst reg>`\n\nExample: `rsh r1 r2` is the same as `r2 = r1 >> 1`",
	ldi: "Load Immediate Instruction.\n\nFormat: `ldi <reg a> <imm>`\n\nExample: `ldi r1 200` is the same as `r1 = 200`\n\nThe immediate is an 8-bit value between -128 and 255; character literals such as `'A'` use the machine's character table.",
	adi: "Add Immediate Instruction.\n\nFormat: `adi <reg a> <imm>`\n\nExample: `adi r1 -1` is the same as `r1 = r1 - 1`\n\nSets the zero and carry flags.",
	jmp: "Jump Instruction.\n\nFormat: `jmp <label/address>`\n\nUnconditionally continues execution at the target, which may be a label, an absolute address, or a relative target such as `+2`.",
	brh: "Branch Instruction.\n\nFormat: `brh <condition> <label/address>`\n\nConditions are `zero`, `notzero`, `carry` and `notcarry`. Continues at the target when the condition holds.",
	cal: "Call Instruction.\n\nFormat: `cal <label/address>`\n\nPushes the return address onto the call stack and continues at the target.",
	ret: "Return Instruction.\n\nFormat: `ret`\n\nPops the call stack and continues after the matching `cal`.",
	lod: "Memory Load Instruction.\n\nFormat: `lod <addr reg> <dst reg> <offset>`\n\nExample: `lod r1 r2 -1` is the same as `r2 = mem[r1 - 1]`\n\nThe offset is between -8 and 7. Addresses 240-255 are memory-mapped I/O ports.",
	str: "Memory Store Instruction.\n\nFormat: `str <addr reg> <src reg> <offset>`\n\nExample: `str r1 r2 0` is the same as `mem[r1] = r2`\n\nThe offset is between -8 and 7. Addresses 240-255 are memory-mapped I/O ports.",

	cmp: "Compare Pseudo-Instruction.\n\nFormat: `cmp <reg a> <reg b>`\n\nAssembles to `sub <reg a> <reg b> r0`: sets the flags, discards the result.",
	mov: "Move Pseudo-Instruction.\n\nFormat: `mov <reg a> <dst reg>`\n\nAssembles to `add <reg a> r0 <dst reg>`.",
	lsh: "Left Shift Pseudo-Instruction.\n\nFormat: `lsh <reg a> <dst reg>`\n\nAssembles to `add <reg a> <reg a> <dst reg>`.",
	inc: "Increment Pseudo-Instruction.\n\nFormat: `inc <reg a>`\n\nAssembles to `adi <reg a> 1`.",
	dec: "Decrement Pseudo-Instruction.\n\nFormat: `dec <reg a>`\n\nAssembles to `adi <reg a> -1`.",
	not: "Bitwise NOT Pseudo-Instruction.\n\nFormat: `not <reg a> <dst reg>`\n\nAssembles to `nor <reg a> r0 <dst reg>`.",
	neg: "Negate Pseudo-Instruction.\n\nFormat: `neg <reg a> <dst reg>`\n\nAssembles to `sub r0 <reg a> <dst reg>`.",
}

func getHoverInfoForMnemonic(name string) string {
	switch name {
	case "nop":
		return hoverInfoFormats.nop
	case "hlt":
		return hoverInfoFormats.hlt
	case "add":
		return hoverInfoFormats.add
	case "sub":
		return hoverInfoFormats.sub
	case "nor":
		return hoverInfoFormats.nor
	case "and":
		return hoverInfoFormats.and
	case "xor":
		return hoverInfoFormats.xor
	case "rsh":
		return hoverInfoFormats.rsh
	case "ldi":
		return hoverInfoFormats.ldi
	case "adi":
		return hoverInfoFormats.adi
	case "jmp":
		return hoverInfoFormats.jmp
	case "brh":
		return hoverInfoFormats.brh
	case "cal":
		return hoverInfoFormats.cal
	case "ret":
		return hoverInfoFormats.ret
	case "lod":
		return hoverInfoFormats.lod
	case "str":
		return hoverInfoFormats.str
	case "cmp":
		return hoverInfoFormats.cmp
	case "mov":
		return hoverInfoFormats.mov
	case "lsh":
		return hoverInfoFormats.lsh
	case "inc":
		return hoverInfoFormats.inc
	case "dec":
		return hoverInfoFormats.dec
	case "not":
		return hoverInfoFormats.not
	case "neg":
		return hoverInfoFormats.neg
	}
	return ""
}

func getHoverInfoForCondition(name string) string {
	switch name {
	case "zero":
		return hoverInfoFormats.zero
	case "notzero":
		return hoverInfoFormats.notzero
	case "carry":
		return hoverInfoFormats.carry
	case "notcarry":
		return hoverInfoFormats.notcarry
	}
	return ""
}
