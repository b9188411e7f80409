package emulator

import "fmt"

func (inst *EmulatorInstance) newException(format string, args ...interface{}) RuntimeException {
	callStack := make([]uint16, len(inst.callStack))
	copy(callStack, inst.callStack)

	exception := RuntimeException{
		regs:      inst.registers,
		pc:        inst.pc,
		callStack: callStack,
		message:   fmt.Sprintf(format, args...),
	}

	inst.errors = append(inst.errors, exception)
	if inst.runtimeErrorCallback != nil {
		inst.runtimeErrorCallback(exception)
	}
	return exception
}

func (inst *EmulatorInstance) newCallStackOverflowException() RuntimeException {
	return inst.newException("Call stack overflow at address %d (depth %d)", inst.pc, CallStackDepth)
}

func (inst *EmulatorInstance) newCallStackUnderflowException() RuntimeException {
	return inst.newException("Return with empty call stack at address %d", inst.pc)
}

func (inst *EmulatorInstance) newRuntimeLimitException() RuntimeException {
	return inst.newException("Runtime limit of %d instructions exceeded", inst.runtimeLimit)
}
