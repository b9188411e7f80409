package emulator

import (
	"math/rand"
	"sync"
	"sync/atomic"
)

// Machine dimensions of the emulated target.
const (
	RegisterCount  = 16
	ProgramSize    = 1024
	RAMSize        = 256
	PortBase       = 240
	CallStackDepth = 16

	ScreenWidth  = 32
	ScreenHeight = 32

	CharDisplaySize = 10
)

// Memory-mapped I/O ports. Loads and stores whose effective address lands in
// [PortBase, 255] hit a peripheral instead of RAM.
const (
	portPixelX = PortBase + iota
	portPixelY
	portDrawPixel
	portClearPixel
	portLoadPixel
	portShowScreen
	portClearScreen
	portCharWrite
	portCharDraw
	portCharClear
	portNumberShow
	portNumberClear
	portNumberSigned
	portNumberUnsigned
	portRNG
	portController
)

// EmulatorConfig configures a single instance. Callbacks are optional and are
// invoked from the emulation goroutine.
type EmulatorConfig struct {
	Program      []uint16
	RuntimeLimit uint64 // 0 means unlimited
	RandomSeed   int64  // 0 means seed from the clock

	// Callbacks fire from the emulation goroutine: on a runtime error, when
	// the character display is pushed, when the number display changes, and
	// when the screen buffer is pushed.
	RuntimeErrorCallback  func(RuntimeException)
	CharDisplayCallback   func(string)
	NumberDisplayCallback func(string)
	ScreenCallback        func(*Screen)
}

// RuntimeException captures the machine state at the point of a runtime
// error: a snapshot, not live references.
type RuntimeException struct {
	regs      [RegisterCount]uint8
	pc        uint16
	callStack []uint16
	message   string
}

func (e RuntimeException) Message() string { return e.message }

func (e RuntimeException) PC() uint16 { return e.pc }

func (e RuntimeException) Registers() [RegisterCount]uint8 { return e.regs }

func (e RuntimeException) CallStack() []uint16 { return e.callStack }

// Screen is the 32x32 monochrome display. Writes land in a back buffer; the
// show-screen port copies the buffer to the visible frame. The mutex guards
// against readers on other goroutines (the playground's frame streamer).
type Screen struct {
	buffer  [ScreenWidth * ScreenHeight]bool
	visible [ScreenWidth * ScreenHeight]bool

	x, y uint8

	mutex  sync.Mutex
	pushes int64
}

// CharDisplay is the ten-slot character display. Writes fill slots left to
// right; the draw port publishes the slots, the clear port resets them.
type CharDisplay struct {
	slots [CharDisplaySize]rune
	next  int
	shown string
}

// NumberDisplay shows one 8-bit value, read as signed or unsigned depending
// on the last mode port written.
type NumberDisplay struct {
	value  uint8
	signed bool
	shown  bool
}

// EmulatorInstance is one running machine. Create with NewEmulator, drive
// with Emulate or Step. Not safe for concurrent stepping; the peripheral
// accessors and Terminate are safe from other goroutines.
type EmulatorInstance struct {
	registers [RegisterCount]uint8
	program   [ProgramSize]uint16
	ram       [RAMSize]uint8

	pc        uint16
	zeroFlag  bool
	carryFlag bool
	callStack []uint16

	// halted and terminated are atomics so the playground's poller and stop
	// handler can observe them from other goroutines.
	halted     atomic.Bool
	terminated atomic.Bool
	executed   uint64

	runtimeLimit uint64
	rng          *rand.Rand

	screen     *Screen
	chars      *CharDisplay
	numbers    *NumberDisplay
	controller uint8

	controllerMutex sync.Mutex

	errors []RuntimeException

	runtimeErrorCallback  func(RuntimeException)
	charDisplayCallback   func(string)
	numberDisplayCallback func(string)
	screenCallback        func(*Screen)
}
