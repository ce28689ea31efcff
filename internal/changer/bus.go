// internal/changer/bus.go
package changer

import "fmt"

// Bank is one 8-bit register bank of an expander.
type Bank uint8

const (
	BankInput  Bank = iota // detect lines, one bit per local slot
	BankOutput             // [sel3 pwr3 sel2 pwr2 sel1 pwr1 sel0 pwr0]
)

func (b Bank) String() string {
	switch b {
	case BankInput:
		return "input"
	case BankOutput:
		return "output"
	}
	return fmt.Sprintf("Bank(%d)", uint8(b))
}

// BankSetup is the one-time direction and pull-up configuration of a bank.
type BankSetup struct {
	Input   bool // true: all 8 lines are inputs; false: all outputs
	Pullups byte
}

// Bus abstracts register access to the expander pair.
// Implementations need not be safe for concurrent use: the changer
// serializes every call.
type Bus interface {
	ReadBank(exp ExpanderRef, bank Bank) (byte, error)
	WriteBank(exp ExpanderRef, bank Bank, v byte) error
	ConfigureBank(exp ExpanderRef, bank Bank, setup BankSetup) error
}

// PortPins is the SDMMC wiring of one port half.
type PortPins struct {
	Clk, Cmd       int
	D0, D1, D2, D3 int
	Width          int
}
