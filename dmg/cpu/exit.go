package cpu

import "fmt"

// ExitReason describes why the interpreter loop stopped.
type ExitReason int

const (
	// ExitStop means a STOP instruction was executed.
	ExitStop ExitReason = iota
	// ExitHalt means a HALT instruction was executed.
	ExitHalt
	// ExitOOBRead means a memory access fell outside every mapped region.
	ExitOOBRead
)

func (r ExitReason) String() string {
	switch r {
	case ExitStop:
		return "stop"
	case ExitHalt:
		return "halt"
	case ExitOOBRead:
		return "out-of-bounds read"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// Exit is the typed exit returned by Step when the program terminates the
// run. PC is the address of the terminating instruction. For ExitOOBRead,
// Cause holds the decoder error that triggered the exit.
type Exit struct {
	Reason ExitReason
	PC     uint16
	Cause  error
}

func (e *Exit) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vm exit (%s) at 0x%04X: %v", e.Reason, e.PC, e.Cause)
	}
	return fmt.Sprintf("vm exit (%s) at 0x%04X", e.Reason, e.PC)
}

func (e *Exit) Unwrap() error {
	return e.Cause
}

// OpcodeError reports an opcode the interpreter does not implement. It is
// returned through the normal error path so a host can assert on it without
// the process going down.
type OpcodeError struct {
	Opcode uint16
	PC     uint16
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("unimplemented opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}
