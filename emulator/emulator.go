package emulator

import (
	"github.com/batpulabs/batpu-tools/assembler"
)

func (inst *EmulatorInstance) regRead(reg assembler.Register) uint8 {
	return inst.registers[reg&0xF]
}

func (inst *EmulatorInstance) regWrite(reg assembler.Register, value uint8) {
	if reg == 0 {
		// r0 is hardwired to zero, writes are discarded
		return
	}
	inst.registers[reg&0xF] = value
}

func (inst *EmulatorInstance) setFlags(result uint8, carry bool) {
	inst.zeroFlag = result == 0
	inst.carryFlag = carry
}

func (inst *EmulatorInstance) conditionMet(cond assembler.Condition) bool {
	switch cond {
	case assembler.CondZero:
		return inst.zeroFlag
	case assembler.CondNotZero:
		return !inst.zeroFlag
	case assembler.CondCarry:
		return inst.carryFlag
	default:
		return !inst.carryFlag
	}
}

// memRead resolves a load. Addresses at PortBase and above hit the
// peripherals instead of RAM.
func (inst *EmulatorInstance) memRead(addr uint8) uint8 {
	if addr >= PortBase {
		return inst.ioRead(addr)
	}
	return inst.ram[addr]
}

func (inst *EmulatorInstance) memWrite(addr uint8, value uint8) {
	if addr >= PortBase {
		inst.ioWrite(addr, value)
		return
	}
	inst.ram[addr] = value
}

// Step fetches, decodes and executes one instruction. Returns false once the
// machine has halted or been terminated.
func (inst *EmulatorInstance) Step() bool {
	if inst.halted.Load() || inst.terminated.Load() {
		return false
	}

	word := inst.program[inst.pc&(ProgramSize-1)]
	nextPC := (inst.pc + 1) & (ProgramSize - 1)

	switch op := assembler.GetOpcode(word); op {
	case assembler.OpNop:

	case assembler.OpHlt:
		inst.halted.Store(true)

	case assembler.OpAdd:
		a, b, c := assembler.DecodeThreeRegInstruction(word)
		sum := uint16(inst.regRead(a)) + uint16(inst.regRead(b))
		inst.regWrite(c, uint8(sum))
		inst.setFlags(uint8(sum), sum > 0xFF)

	case assembler.OpSub:
		a, b, c := assembler.DecodeThreeRegInstruction(word)
		va, vb := inst.regRead(a), inst.regRead(b)
		diff := va - vb
		inst.regWrite(c, diff)
		// carry means no borrow
		inst.setFlags(diff, va >= vb)

	case assembler.OpNor:
		a, b, c := assembler.DecodeThreeRegInstruction(word)
		result := ^(inst.regRead(a) | inst.regRead(b))
		inst.regWrite(c, result)
		inst.setFlags(result, false)

	case assembler.OpAnd:
		a, b, c := assembler.DecodeThreeRegInstruction(word)
		result := inst.regRead(a) & inst.regRead(b)
		inst.regWrite(c, result)
		inst.setFlags(result, false)

	case assembler.OpXor:
		a, b, c := assembler.DecodeThreeRegInstruction(word)
		result := inst.regRead(a) ^ inst.regRead(b)
		inst.regWrite(c, result)
		inst.setFlags(result, false)

	case assembler.OpRsh:
		a, c := assembler.DecodeTwoRegInstruction(word)
		inst.regWrite(c, inst.regRead(a)>>1)

	case assembler.OpLdi:
		a, imm := assembler.DecodeImmediateInstruction(word)
		inst.regWrite(a, uint8(imm))

	case assembler.OpAdi:
		a, imm := assembler.DecodeImmediateInstruction(word)
		sum := uint16(inst.regRead(a)) + uint16(uint8(imm))
		inst.regWrite(a, uint8(sum))
		inst.setFlags(uint8(sum), sum > 0xFF)

	case assembler.OpJmp:
		nextPC = assembler.DecodeAddressInstruction(word)

	case assembler.OpBrh:
		cond, address := assembler.DecodeBranchInstruction(word)
		if inst.conditionMet(cond) {
			nextPC = address
		}

	case assembler.OpCal:
		if len(inst.callStack) >= CallStackDepth {
			inst.newCallStackOverflowException()
			inst.halted.Store(true)
			break
		}
		inst.callStack = append(inst.callStack, nextPC)
		nextPC = assembler.DecodeAddressInstruction(word)

	case assembler.OpRet:
		if len(inst.callStack) == 0 {
			inst.newCallStackUnderflowException()
			inst.halted.Store(true)
			break
		}
		nextPC = inst.callStack[len(inst.callStack)-1]
		inst.callStack = inst.callStack[:len(inst.callStack)-1]

	case assembler.OpLod:
		a, b, off := assembler.DecodeMemoryInstruction(word)
		addr := uint8(int16(inst.regRead(a)) + int16(off))
		inst.regWrite(b, inst.memRead(addr))

	case assembler.OpStr:
		a, b, off := assembler.DecodeMemoryInstruction(word)
		addr := uint8(int16(inst.regRead(a)) + int16(off))
		inst.memWrite(addr, inst.regRead(b))
	}

	inst.pc = nextPC
	inst.executed++
	return !inst.halted.Load() && !inst.terminated.Load()
}

// Emulate runs from the current program counter until a halt, a terminate
// from another goroutine, or the configured runtime limit.
func (inst *EmulatorInstance) Emulate() {
	for inst.Step() {
		if inst.runtimeLimit != 0 && inst.executed >= inst.runtimeLimit {
			inst.newRuntimeLimitException()
			inst.halted.Store(true)
			return
		}
	}
}
