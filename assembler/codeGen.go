package assembler

// Instruction word layout: the opcode index occupies the top 4 bits of every
// word; the remaining 12 bits are format specific.

func makeThreeRegInstruction(op Opcode, a, b, c Register) uint16 {
	return uint16(op)<<12 | uint16(a&0xF)<<8 | uint16(b&0xF)<<4 | uint16(c&0xF)
}

func makeTwoRegInstruction(op Opcode, a, c Register) uint16 {
	return uint16(op)<<12 | uint16(a&0xF)<<8 | uint16(c&0xF)
}

func makeImmediateInstruction(op Opcode, a Register, imm Immediate) uint16 {
	return uint16(op)<<12 | uint16(a&0xF)<<8 | uint16(imm)
}

func makeAddressInstruction(op Opcode, address uint16) uint16 {
	return uint16(op)<<12 | address&0x3FF
}

func makeBranchInstruction(cond Condition, address uint16) uint16 {
	return uint16(OpBrh)<<12 | uint16(cond&0x3)<<10 | address&0x3FF
}

func makeMemoryInstruction(op Opcode, a, b Register, off Offset) uint16 {
	return uint16(op)<<12 | uint16(a&0xF)<<8 | uint16(b&0xF)<<4 | uint16(off)&0xF
}

// GetOpcode extracts the opcode index from an instruction word.
func GetOpcode(word uint16) Opcode {
	return Opcode(word >> 12)
}

func DecodeThreeRegInstruction(word uint16) (a, b, c Register) {
	a = Register(word >> 8 & 0xF)
	b = Register(word >> 4 & 0xF)
	c = Register(word & 0xF)
	return
}

func DecodeTwoRegInstruction(word uint16) (a, c Register) {
	a = Register(word >> 8 & 0xF)
	c = Register(word & 0xF)
	return
}

func DecodeImmediateInstruction(word uint16) (a Register, imm Immediate) {
	a = Register(word >> 8 & 0xF)
	imm = Immediate(word & 0xFF)
	return
}

func DecodeAddressInstruction(word uint16) (address uint16) {
	return word & 0x3FF
}

func DecodeBranchInstruction(word uint16) (cond Condition, address uint16) {
	cond = Condition(word >> 10 & 0x3)
	address = word & 0x3FF
	return
}

func DecodeMemoryInstruction(word uint16) (a, b Register, off Offset) {
	a = Register(word >> 8 & 0xF)
	b = Register(word >> 4 & 0xF)
	// sign extend the 4-bit offset field
	off = Offset(int8(word&0xF<<4) >> 4)
	return
}

// resolve turns a Location into an absolute address. index is the position of
// the referencing instruction; line attributes symbol errors back to the
// statement recorded in pass 1.
func (l Location) resolve(index, line int, labels map[string]int) (uint16, *AssemblerError) {
	switch l.Kind {
	case LocationAddress:
		return l.Address, nil
	case LocationLabel:
		position, ok := labels[l.Label]
		if !ok {
			return 0, Errors.UnknownLabel(l.Label, line)
		}
		return uint16(position), nil
	default:
		target := index + l.Offset
		if target < 0 || target > MaxAddress {
			return 0, Errors.RelativeRange(target, line)
		}
		return uint16(target), nil
	}
}

// encode packs one instruction into its 16-bit word. Pure with respect to
// the label table: pass 2 never mutates it.
func (in Instruction) encode(index, line int, labels map[string]int) (uint16, *AssemblerError) {
	switch in.Op {
	case OpNop, OpHlt, OpRet:
		return makeAddressInstruction(in.Op, 0), nil

	case OpAdd, OpSub, OpNor, OpAnd, OpXor:
		return makeThreeRegInstruction(in.Op, in.A, in.B, in.C), nil

	case OpRsh:
		return makeTwoRegInstruction(in.Op, in.A, in.C), nil

	case OpLdi, OpAdi:
		return makeImmediateInstruction(in.Op, in.A, in.Imm), nil

	case OpJmp, OpCal:
		address, err := in.Target.resolve(index, line, labels)
		if err != nil {
			return 0, err
		}
		return makeAddressInstruction(in.Op, address), nil

	case OpBrh:
		address, err := in.Target.resolve(index, line, labels)
		if err != nil {
			return 0, err
		}
		return makeBranchInstruction(in.Cond, address), nil

	case OpLod, OpStr:
		return makeMemoryInstruction(in.Op, in.A, in.B, in.Off), nil
	}

	return makeAddressInstruction(in.Op, 0), nil
}
