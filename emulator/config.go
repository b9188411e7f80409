package emulator

import (
	"math/rand"
	"time"
)

func NewEmulator(config EmulatorConfig) *EmulatorInstance {
	seed := config.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	inst := &EmulatorInstance{
		callStack:    make([]uint16, 0, CallStackDepth),
		runtimeLimit: config.RuntimeLimit,
		rng:          rand.New(rand.NewSource(seed)),

		screen:  &Screen{},
		chars:   &CharDisplay{},
		numbers: &NumberDisplay{},

		runtimeErrorCallback:  config.RuntimeErrorCallback,
		charDisplayCallback:   config.CharDisplayCallback,
		numberDisplayCallback: config.NumberDisplayCallback,
		screenCallback:        config.ScreenCallback,
	}

	copy(inst.program[:], config.Program)
	return inst
}

// Reset returns the machine to its power-on state. Program memory and the
// random sequence are kept so a reset run stays reproducible relative to the
// original seed only when reseeded by the caller.
func (inst *EmulatorInstance) Reset() {
	inst.registers = [RegisterCount]uint8{}
	inst.ram = [RAMSize]uint8{}
	inst.pc = 0
	inst.zeroFlag = false
	inst.carryFlag = false
	inst.callStack = inst.callStack[:0]
	inst.halted.Store(false)
	inst.terminated.Store(false)
	inst.executed = 0
	inst.errors = nil

	inst.screen.reset()
	inst.chars.reset()
	inst.numbers.reset()
}

func (inst *EmulatorInstance) PC() uint16 {
	return inst.pc
}

func (inst *EmulatorInstance) Register(index int) uint8 {
	if index < 0 || index >= RegisterCount {
		return 0
	}
	return inst.registers[index]
}

// Flags returns the zero and carry flags.
func (inst *EmulatorInstance) Flags() (zero, carry bool) {
	return inst.zeroFlag, inst.carryFlag
}

func (inst *EmulatorInstance) RAM(addr uint8) uint8 {
	return inst.ram[addr]
}

func (inst *EmulatorInstance) Halted() bool {
	return inst.halted.Load()
}

func (inst *EmulatorInstance) ExecutedInstructions() uint64 {
	return inst.executed
}

func (inst *EmulatorInstance) Errors() []RuntimeException {
	return inst.errors
}

func (inst *EmulatorInstance) Screen() *Screen {
	return inst.screen
}

func (inst *EmulatorInstance) CharDisplay() *CharDisplay {
	return inst.chars
}

func (inst *EmulatorInstance) NumberDisplay() *NumberDisplay {
	return inst.numbers
}

// SetControllerState replaces the controller button bitmap. Safe to call from
// another goroutine while the machine runs.
func (inst *EmulatorInstance) SetControllerState(state uint8) {
	inst.controllerMutex.Lock()
	inst.controller = state
	inst.controllerMutex.Unlock()
}

// Terminate stops an Emulate loop from another goroutine. The current
// instruction finishes first.
func (inst *EmulatorInstance) Terminate() {
	inst.terminated.Store(true)
}
