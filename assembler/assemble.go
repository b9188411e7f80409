package assembler

import (
	"fmt"
	"os"
	"strings"
)

// Assembler owns one translation unit. The label and define tables are
// mutated during pass 1 only; pass 2 reads them to resolve forward
// references. Create one per source, discard after encoding.
type Assembler struct {
	Config AssemblerConfig

	instructions []sourceInstruction
	labels       map[string]int
	defines      map[string]string
	sourceLines  []string

	line int // 1-based, current line during pass 1
}

func NewAssembler(config AssemblerConfig) *Assembler {
	defines := map[string]string{}
	if config.DefaultDefines {
		defines = DefaultDefines()
	}

	return &Assembler{
		Config:  config,
		labels:  map[string]int{},
		defines: defines,
	}
}

// InstructionCount returns the number of instructions collected by pass 1.
func (a *Assembler) InstructionCount() int {
	return len(a.instructions)
}

// Labels exposes the pass-1 label table (read-only by convention).
func (a *Assembler) Labels() map[string]int {
	return a.labels
}

// Parse is pass 1: walk the source line by line, appending instructions and
// recording labels and defines. All problems are collected; no line aborts
// the walk. Returns nil when the source is clean.
func (a *Assembler) Parse(source string) ErrorList {
	var errs ErrorList

	for i, line := range strings.Split(source, "\n") {
		a.line = i + 1
		a.sourceLines = append(a.sourceLines, line)
		errs = append(errs, a.parseLine(line)...)
	}

	if len(a.instructions) > MaxInstructions {
		errs = append(errs, Errors.ProgramTooLarge(len(a.instructions)))
	}

	errs.Sort()
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ParseFile reads path and runs Parse. I/O failures surface as a single
// global entry.
func (a *Assembler) ParseFile(path string) ErrorList {
	b, err := os.ReadFile(path)
	if err != nil {
		return ErrorList{wrap(err)}
	}
	return a.Parse(string(b))
}

func (a *Assembler) parseLine(line string) ErrorList {
	var errs ErrorList

	pieces, trailing, interiorEmpty := splitStatements(stripComment(line))
	if trailing {
		errs = append(errs, Warnings.TrailingSemicolon(a.line))
	}
	for i := 0; i < interiorEmpty; i++ {
		errs = append(errs, Errors.EmptyStatement(a.line))
	}

	for _, piece := range pieces {
		instr, err := a.parseStatement(piece)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if instr != nil {
			a.instructions = append(a.instructions, sourceInstruction{instr: *instr, line: a.line})
		}
	}

	return errs
}

// checkArguments verifies the operand count for a mnemonic or directive.
// args includes the mnemonic itself.
func (a *Assembler) checkArguments(args []string, expected ...string) *AssemblerError {
	if len(args)-1 != len(expected) {
		return Errors.ArgumentCount(expected, len(args)-1, a.line)
	}
	return nil
}

// parseStatement handles one statement fragment: a label definition, a
// #define directive, or a mnemonic with operands. Directives mutate the
// symbol tables and yield no instruction.
func (a *Assembler) parseStatement(piece string) (*Instruction, *AssemblerError) {
	args := strings.Fields(piece)
	name := args[0]

	if strings.HasSuffix(name, ":") {
		if err := a.checkArguments(args); err != nil {
			return nil, err
		}

		label := name[:len(name)-1]
		if _, exists := a.labels[label]; exists {
			return nil, Errors.DuplicateLabel(label, a.line)
		}
		a.labels[label] = len(a.instructions)
		return nil, nil
	}

	if name == "#define" {
		if err := a.checkArguments(args, "Name", "Value"); err != nil {
			return nil, err
		}

		defineName := args[1]
		if _, exists := a.defines[defineName]; exists {
			return nil, Errors.DuplicateDefine(defineName, a.line)
		}
		a.defines[defineName] = args[2]
		return nil, nil
	}

	// Flat token-for-token define substitution before operand parsing.
	for i := 1; i < len(args); i++ {
		if replacement, ok := a.defines[args[i]]; ok {
			args[i] = replacement
		}
	}

	return a.parseMnemonic(name, args)
}

func (a *Assembler) parseMnemonic(name string, args []string) (*Instruction, *AssemblerError) {
	switch name {
	case "nop":
		if err := a.checkArguments(args); err != nil {
			return nil, err
		}
		return &Instruction{Op: OpNop}, nil

	case "hlt":
		if err := a.checkArguments(args); err != nil {
			return nil, err
		}
		return &Instruction{Op: OpHlt}, nil

	case "add":
		return a.threeRegister(OpAdd, args)
	case "sub":
		return a.threeRegister(OpSub, args)
	case "nor":
		return a.threeRegister(OpNor, args)
	case "and":
		return a.threeRegister(OpAnd, args)
	case "xor":
		return a.threeRegister(OpXor, args)

	case "rsh":
		if err := a.checkArguments(args, "RegA", "RegC"); err != nil {
			return nil, err
		}
		regA, err := a.parseRegister(args[1])
		if err != nil {
			return nil, err
		}
		regC, err := a.parseRegister(args[2])
		if err != nil {
			return nil, err
		}
		return &Instruction{Op: OpRsh, A: regA, C: regC}, nil

	case "ldi":
		return a.registerImmediate(OpLdi, args)
	case "adi":
		return a.registerImmediate(OpAdi, args)

	case "jmp":
		return a.locationOnly(OpJmp, args)
	case "cal":
		return a.locationOnly(OpCal, args)

	case "brh":
		if err := a.checkArguments(args, "Condition", "Label/Address"); err != nil {
			return nil, err
		}
		cond, err := a.parseCondition(args[1])
		if err != nil {
			return nil, err
		}
		target, err := a.parseLocation(args[2])
		if err != nil {
			return nil, err
		}
		return &Instruction{Op: OpBrh, Cond: cond, Target: target}, nil

	case "ret":
		if err := a.checkArguments(args); err != nil {
			return nil, err
		}
		return &Instruction{Op: OpRet}, nil

	case "lod":
		return a.memoryAccess(OpLod, args)
	case "str":
		return a.memoryAccess(OpStr, args)

	// Syntactic sugar, lowered to the primitive variants.
	case "cmp":
		if err := a.checkArguments(args, "RegA", "RegB"); err != nil {
			return nil, err
		}
		regA, err := a.parseRegister(args[1])
		if err != nil {
			return nil, err
		}
		regB, err := a.parseRegister(args[2])
		if err != nil {
			return nil, err
		}
		return &Instruction{Op: OpSub, A: regA, B: regB, C: 0}, nil

	case "mov":
		if err := a.checkArguments(args, "RegA", "RegC"); err != nil {
			return nil, err
		}
		regA, err := a.parseRegister(args[1])
		if err != nil {
			return nil, err
		}
		regC, err := a.parseRegister(args[2])
		if err != nil {
			return nil, err
		}
		return &Instruction{Op: OpAdd, A: regA, B: 0, C: regC}, nil

	case "lsh":
		if err := a.checkArguments(args, "RegA", "RegC"); err != nil {
			return nil, err
		}
		regA, err := a.parseRegister(args[1])
		if err != nil {
			return nil, err
		}
		regC, err := a.parseRegister(args[2])
		if err != nil {
			return nil, err
		}
		return &Instruction{Op: OpAdd, A: regA, B: regA, C: regC}, nil

	case "inc":
		if err := a.checkArguments(args, "RegA"); err != nil {
			return nil, err
		}
		regA, err := a.parseRegister(args[1])
		if err != nil {
			return nil, err
		}
		return &Instruction{Op: OpAdi, A: regA, Imm: NewImmediate(1)}, nil

	case "dec":
		if err := a.checkArguments(args, "RegA"); err != nil {
			return nil, err
		}
		regA, err := a.parseRegister(args[1])
		if err != nil {
			return nil, err
		}
		return &Instruction{Op: OpAdi, A: regA, Imm: NewImmediate(-1)}, nil

	case "not":
		if err := a.checkArguments(args, "RegA", "RegC"); err != nil {
			return nil, err
		}
		regA, err := a.parseRegister(args[1])
		if err != nil {
			return nil, err
		}
		regC, err := a.parseRegister(args[2])
		if err != nil {
			return nil, err
		}
		return &Instruction{Op: OpNor, A: regA, B: 0, C: regC}, nil

	case "neg":
		if err := a.checkArguments(args, "RegA", "RegC"); err != nil {
			return nil, err
		}
		regA, err := a.parseRegister(args[1])
		if err != nil {
			return nil, err
		}
		regC, err := a.parseRegister(args[2])
		if err != nil {
			return nil, err
		}
		return &Instruction{Op: OpSub, A: 0, B: regA, C: regC}, nil
	}

	return nil, Errors.UnknownOpcode(name, a.line)
}

func (a *Assembler) threeRegister(op Opcode, args []string) (*Instruction, *AssemblerError) {
	if err := a.checkArguments(args, "RegA", "RegB", "RegC"); err != nil {
		return nil, err
	}
	regA, err := a.parseRegister(args[1])
	if err != nil {
		return nil, err
	}
	regB, err := a.parseRegister(args[2])
	if err != nil {
		return nil, err
	}
	regC, err := a.parseRegister(args[3])
	if err != nil {
		return nil, err
	}
	return &Instruction{Op: op, A: regA, B: regB, C: regC}, nil
}

func (a *Assembler) registerImmediate(op Opcode, args []string) (*Instruction, *AssemblerError) {
	if err := a.checkArguments(args, "RegA", "Immediate"); err != nil {
		return nil, err
	}
	regA, err := a.parseRegister(args[1])
	if err != nil {
		return nil, err
	}
	imm, err := a.parseImmediate(args[2])
	if err != nil {
		return nil, err
	}
	return &Instruction{Op: op, A: regA, Imm: imm}, nil
}

func (a *Assembler) locationOnly(op Opcode, args []string) (*Instruction, *AssemblerError) {
	if err := a.checkArguments(args, "Label/Address"); err != nil {
		return nil, err
	}
	target, err := a.parseLocation(args[1])
	if err != nil {
		return nil, err
	}
	return &Instruction{Op: op, Target: target}, nil
}

func (a *Assembler) memoryAccess(op Opcode, args []string) (*Instruction, *AssemblerError) {
	if err := a.checkArguments(args, "RegA", "RegB", "Offset"); err != nil {
		return nil, err
	}
	regA, err := a.parseRegister(args[1])
	if err != nil {
		return nil, err
	}
	regB, err := a.parseRegister(args[2])
	if err != nil {
		return nil, err
	}
	off, err := a.parseOffset(args[3])
	if err != nil {
		return nil, err
	}
	return &Instruction{Op: op, A: regA, B: regB, Off: off}, nil
}

// Assemble is pass 2: each instruction's position becomes its address and the
// instruction is encoded independently against the now-complete label table.
// A missing label on one instruction does not stop encoding of the next. On
// any error no words are returned.
func (a *Assembler) Assemble() ([]uint16, ErrorList) {
	var errs ErrorList
	words := make([]uint16, 0, len(a.instructions))

	for i, si := range a.instructions {
		word, err := si.instr.encode(i, si.line, a.labels)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		words = append(words, word)
	}

	if len(errs) > 0 {
		errs.Sort()
		return nil, errs
	}

	if a.Config.PrintInfo {
		fmt.Printf("%d out of %d instructions used (%.1f%%)\n",
			len(a.instructions), MaxInstructions,
			float64(len(a.instructions))*100.0/float64(MaxInstructions))
	}

	return words, nil
}
