package checker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/batpulabs/batpu-tools/assembler"
	"github.com/batpulabs/batpu-tools/emulator"
)

// RunChecks assembles every program in the config, runs the optional
// emulation checks, and writes the report. The returned report mirrors what
// was saved; the error covers config and report I/O only, failed checks are
// part of the report.
func RunChecks(configPath string) (*Report, error) {
	conf, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	report := CreateReport(conf.Name)
	for _, program := range conf.Programs {
		report.AddCheck(checkProgram(program))
	}

	if err := report.Save(conf.ResultsDir); err != nil {
		return nil, err
	}
	return report, nil
}

func checkProgram(program ProgramCheck) CheckResult {
	result := CheckResult{Name: program.Name}

	a := assembler.NewAssembler(assembler.DefaultConfig())
	if errs := a.ParseFile(program.Path); errs != nil {
		for _, line := range errs.Strings() {
			result.OutputPrintLn(line)
		}
		if errs.HasErrors() {
			return result
		}
	}

	words, errs := a.Assemble()
	if errs != nil {
		for _, line := range errs.Strings() {
			result.OutputPrintLn(line)
		}
		return result
	}

	result.Instructions = len(words)
	result.OutputPrintLn(fmt.Sprintf("Assembled %d instructions", len(words)))

	if program.Run == nil {
		result.Passed = true
		return result
	}

	runCheckProgram(&result, program.Run, words)
	return result
}

func runCheckProgram(result *CheckResult, check *RunCheck, words []uint16) {
	limit := check.RuntimeLimit
	if limit == 0 {
		limit = 1000000
	}

	inst := emulator.NewEmulator(emulator.EmulatorConfig{
		Program:      words,
		RuntimeLimit: limit,
		RandomSeed:   check.RandomSeed,
	})
	inst.Emulate()

	passed := true
	for _, e := range inst.Errors() {
		result.OutputPrintLn("Runtime exception: " + e.Message())
		passed = false
	}

	if check.ExpectedCharDisplay != nil {
		if got := inst.CharDisplay().Shown(); got != *check.ExpectedCharDisplay {
			result.OutputPrintLn(fmt.Sprintf("Character display: expected %q, got %q", *check.ExpectedCharDisplay, got))
			passed = false
		}
	}

	if check.ExpectedNumberDisplay != nil {
		if got := inst.NumberDisplay().String(); got != *check.ExpectedNumberDisplay {
			result.OutputPrintLn(fmt.Sprintf("Number display: expected %q, got %q", *check.ExpectedNumberDisplay, got))
			passed = false
		}
	}

	for name, expected := range check.ExpectedRegisters {
		index, err := strconv.Atoi(strings.TrimPrefix(name, "r"))
		if err != nil || index < 0 || index >= emulator.RegisterCount {
			result.OutputPrintLn(fmt.Sprintf("Bad register name in config: %q", name))
			passed = false
			continue
		}
		if got := inst.Register(index); got != expected {
			result.OutputPrintLn(fmt.Sprintf("Register r%d: expected %d, got %d", index, expected, got))
			passed = false
		}
	}

	for name, expected := range check.ExpectedRAM {
		addr, err := strconv.Atoi(name)
		if err != nil || addr < 0 || addr >= emulator.RAMSize {
			result.OutputPrintLn(fmt.Sprintf("Bad RAM address in config: %q", name))
			passed = false
			continue
		}
		if got := inst.RAM(uint8(addr)); got != expected {
			result.OutputPrintLn(fmt.Sprintf("RAM[%d]: expected %d, got %d", addr, expected, got))
			passed = false
		}
	}

	result.OutputPrintLn(fmt.Sprintf("Executed %d instructions", inst.ExecutedInstructions()))
	result.Passed = passed
}
