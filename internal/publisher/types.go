// internal/publisher/types.go
package publisher

// StatusPlan is the fully-built delivery plan for one changer status block.
type StatusPlan struct {
	Endpoint string
	UnitID   uint8
	BaseSlot uint16 // block index; register address = BaseSlot * SlotsPerBlock
	Name     string
}

// endpointClient is the write surface the status writer needs.
type endpointClient interface {
	WriteHolding(unit uint8, addr uint16, regs []uint16) error
}
