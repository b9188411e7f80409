package emulator_test

import (
	"testing"

	"github.com/batpulabs/batpu-tools/assembler"
	"github.com/batpulabs/batpu-tools/emulator"
)

func assembleProgram(t *testing.T, source string) []uint16 {
	t.Helper()

	a := assembler.NewAssembler(assembler.DefaultConfig())
	if errs := a.Parse(source); errs != nil && errs.HasErrors() {
		t.Fatalf("Expected the program to parse, got %v", errs.Strings())
	}
	words, errs := a.Assemble()
	if errs != nil {
		t.Fatalf("Expected the program to assemble, got %v", errs.Strings())
	}
	return words
}

func run(t *testing.T, source string) *emulator.EmulatorInstance {
	t.Helper()

	inst := emulator.NewEmulator(emulator.EmulatorConfig{
		Program:      assembleProgram(t, source),
		RuntimeLimit: 1000000,
	})
	inst.Emulate()
	return inst
}

func TestAdditionWrapsAndSetsCarry(t *testing.T) {
	inst := run(t, "ldi r1 200\nldi r2 100\nadd r1 r2 r3\nhlt")

	if got := inst.Register(3); got != 44 {
		t.Errorf("Expected r3 to hold 44, got %d", got)
	}
	zero, carry := inst.Flags()
	if zero || !carry {
		t.Errorf("Expected carry without zero, got zero=%v carry=%v", zero, carry)
	}
}

func TestSubtractionFlags(t *testing.T) {
	inst := run(t, "ldi r1 5\nldi r2 5\ncmp r1 r2\nhlt")
	zero, carry := inst.Flags()
	if !zero || !carry {
		t.Errorf("Expected equal compare to set both flags, got zero=%v carry=%v", zero, carry)
	}

	inst = run(t, "ldi r1 3\nldi r2 5\ncmp r1 r2\nhlt")
	zero, carry = inst.Flags()
	if zero || carry {
		t.Errorf("Expected a borrow to clear both flags, got zero=%v carry=%v", zero, carry)
	}
}

func TestZeroRegisterIsReadOnly(t *testing.T) {
	inst := run(t, "ldi r0 99\nadd r0 r0 r1\nhlt")

	if got := inst.Register(0); got != 0 {
		t.Errorf("Expected r0 to stay zero, got %d", got)
	}
	if got := inst.Register(1); got != 0 {
		t.Errorf("Expected r1 to hold 0, got %d", got)
	}
}

func TestCountdownLoop(t *testing.T) {
	inst := run(t, "ldi r1 5\nloop:\ndec r1\nbrh notzero loop\nhlt")

	if got := inst.Register(1); got != 0 {
		t.Errorf("Expected r1 to reach 0, got %d", got)
	}
	if !inst.Halted() {
		t.Error("Expected the machine to halt")
	}
}

func TestCallAndReturn(t *testing.T) {
	inst := run(t, "cal routine\nldi r1 1\nhlt\nroutine:\nldi r2 7\nret")

	if got := inst.Register(2); got != 7 {
		t.Errorf("Expected the routine to run, r2 = %d", got)
	}
	if got := inst.Register(1); got != 1 {
		t.Errorf("Expected execution to resume after the call, r1 = %d", got)
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	inst := run(t, "ldi r1 42\nldi r2 10\nstr r2 r1 0\nlod r2 r3 0\nhlt")

	if got := inst.Register(3); got != 42 {
		t.Errorf("Expected the load to see the store, got %d", got)
	}
	if got := inst.RAM(10); got != 42 {
		t.Errorf("Expected RAM[10] to hold 42, got %d", got)
	}
}

func TestMemoryOffsets(t *testing.T) {
	inst := run(t, "ldi r1 42\nldi r2 16\nstr r2 r1 -8\nlod r2 r3 -8\nhlt")

	if got := inst.RAM(8); got != 42 {
		t.Errorf("Expected RAM[8] to hold 42, got %d", got)
	}
	if got := inst.Register(3); got != 42 {
		t.Errorf("Expected the offset load to see the store, got %d", got)
	}
}

func TestCharDisplay(t *testing.T) {
	var published string
	inst := emulator.NewEmulator(emulator.EmulatorConfig{
		Program: assembleProgram(t, `
ldi r1 CHAR_DISP_WRITE
ldi r2 'H'
str r1 r2 0
ldi r2 'I'
str r1 r2 0
str r1 r0 1
hlt`),
		RuntimeLimit: 1000,
		CharDisplayCallback: func(text string) {
			published = text
		},
	})
	inst.Emulate()

	if inst.CharDisplay().Shown() != "HI" {
		t.Errorf("Expected the display to show HI, got %q", inst.CharDisplay().Shown())
	}
	if published != "HI" {
		t.Errorf("Expected the callback to receive HI, got %q", published)
	}
}

func TestNumberDisplaySignedness(t *testing.T) {
	inst := run(t, "ldi r1 NUM_DISP_SIGNED\nstr r1 r0 0\nldi r1 NUM_DISP_SHOW\nldi r2 255\nstr r1 r2 0\nhlt")
	if got := inst.NumberDisplay().String(); got != "-1" {
		t.Errorf("Expected -1 on the signed display, got %q", got)
	}

	inst = run(t, "ldi r1 NUM_DISP_SHOW\nldi r2 255\nstr r1 r2 0\nhlt")
	if got := inst.NumberDisplay().String(); got != "255" {
		t.Errorf("Expected 255 on the unsigned display, got %q", got)
	}

	inst = run(t, "ldi r1 NUM_DISP_SHOW\nldi r2 9\nstr r1 r2 0\nldi r1 NUM_DISP_CLR\nstr r1 r0 0\nhlt")
	if got := inst.NumberDisplay().String(); got != "" {
		t.Errorf("Expected a cleared display, got %q", got)
	}
}

func TestScreenBufferAndShow(t *testing.T) {
	source := `
ldi r1 SCR_PIX_X
ldi r2 3
str r1 r2 0
ldi r1 SCR_PIX_Y
ldi r2 4
str r1 r2 0
ldi r1 SCR_DRAW_PIX
str r1 r0 0
hlt`
	inst := run(t, source)
	if inst.Screen().Pixel(3, 4) {
		t.Error("Expected the pixel to stay in the back buffer before a show")
	}

	inst = run(t, source[:len(source)-4]+"\nldi r1 SCR_DRAW\nstr r1 r0 0\nhlt")
	if !inst.Screen().Pixel(3, 4) {
		t.Error("Expected the shown frame to contain the pixel")
	}
	if inst.Screen().Pixel(4, 3) {
		t.Error("Expected other pixels to stay clear")
	}
}

func TestLoadPixelPort(t *testing.T) {
	inst := run(t, `
ldi r1 SCR_PIX_X
ldi r2 1
str r1 r2 0
ldi r1 SCR_PIX_Y
str r1 r2 0
ldi r1 SCR_DRAW_PIX
str r1 r0 0
ldi r1 SCR_LOAD_PIX
lod r1 r3 0
hlt`)

	if got := inst.Register(3); got != 1 {
		t.Errorf("Expected the load-pixel port to read back 1, got %d", got)
	}
}

func TestControllerPort(t *testing.T) {
	inst := emulator.NewEmulator(emulator.EmulatorConfig{
		Program:      assembleProgram(t, "ldi r1 CONTROLLER\nlod r1 r2 0\nhlt"),
		RuntimeLimit: 1000,
	})
	inst.SetControllerState(0b1010)
	inst.Emulate()

	if got := inst.Register(2); got != 0b1010 {
		t.Errorf("Expected the controller state to read back, got %d", got)
	}
}

func TestRNGIsDeterministicWithSeed(t *testing.T) {
	source := "ldi r1 RNG\nlod r1 r2 0\nhlt"

	first := emulator.NewEmulator(emulator.EmulatorConfig{
		Program: assembleProgram(t, source), RuntimeLimit: 1000, RandomSeed: 2035,
	})
	second := emulator.NewEmulator(emulator.EmulatorConfig{
		Program: assembleProgram(t, source), RuntimeLimit: 1000, RandomSeed: 2035,
	})
	first.Emulate()
	second.Emulate()

	if first.Register(2) != second.Register(2) {
		t.Errorf("Expected matching seeds to produce matching values, got %d and %d",
			first.Register(2), second.Register(2))
	}
}

func TestRuntimeLimit(t *testing.T) {
	var reported []emulator.RuntimeException
	inst := emulator.NewEmulator(emulator.EmulatorConfig{
		Program:      assembleProgram(t, "loop:\njmp loop"),
		RuntimeLimit: 100,
		RuntimeErrorCallback: func(e emulator.RuntimeException) {
			reported = append(reported, e)
		},
	})
	inst.Emulate()

	if len(reported) != 1 {
		t.Fatalf("Expected one runtime exception, got %d", len(reported))
	}
	if len(inst.Errors()) != 1 {
		t.Fatalf("Expected the exception to be recorded, got %d", len(inst.Errors()))
	}
	if !inst.Halted() {
		t.Error("Expected the machine to stop")
	}
}

func TestCallStackOverflow(t *testing.T) {
	inst := run(t, "loop:\ncal loop")

	errs := inst.Errors()
	if len(errs) != 1 {
		t.Fatalf("Expected one runtime exception, got %d", len(errs))
	}
	if errs[0].Message() == "" {
		t.Error("Expected a descriptive message")
	}
}

func TestReturnWithEmptyCallStack(t *testing.T) {
	inst := run(t, "ret")

	if len(inst.Errors()) != 1 {
		t.Fatalf("Expected one runtime exception, got %d", len(inst.Errors()))
	}
	if !inst.Halted() {
		t.Error("Expected the machine to stop")
	}
}

func TestTerminateStopsEmulation(t *testing.T) {
	inst := emulator.NewEmulator(emulator.EmulatorConfig{
		Program: assembleProgram(t, "loop:\njmp loop"),
	})
	inst.Terminate()
	inst.Emulate()

	if inst.ExecutedInstructions() > 1 {
		t.Errorf("Expected at most one instruction, got %d", inst.ExecutedInstructions())
	}
}

func TestTerminateFromAnotherGoroutine(t *testing.T) {
	inst := emulator.NewEmulator(emulator.EmulatorConfig{
		Program: assembleProgram(t, "loop:\njmp loop"),
	})

	done := make(chan struct{})
	go func() {
		inst.Emulate()
		close(done)
	}()
	inst.Terminate()
	<-done

	if inst.Halted() {
		t.Error("Expected a terminated machine, not a halted one")
	}
}

func TestReset(t *testing.T) {
	inst := run(t, "ldi r1 9\nldi r2 20\nstr r2 r1 0\nhlt")
	inst.Reset()

	if inst.Register(1) != 0 || inst.RAM(20) != 0 || inst.PC() != 0 {
		t.Error("Expected the reset machine to be back at power-on state")
	}
	if inst.Halted() {
		t.Error("Expected the reset machine to be runnable")
	}
}
