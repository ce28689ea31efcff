// internal/changer/changer.go
package changer

import (
	"errors"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// NoSlot is reported by State.Selected when nothing is selected.
const NoSlot SlotID = -1

// State is a copy of the changer bookkeeping.
type State struct {
	Selected SlotID // NoSlot when none
	Powered  Mask
	Detected Mask // last sample, not auto-refreshed
}

// Changer owns the two expanders behind one SDMMC host.
// All operations are serialized by mu, so each read-modify-write of an
// output bank is never interleaved with another caller's.
type Changer struct {
	mu sync.Mutex

	bus     Bus
	ports   [2]PortPins
	pullups [ExpanderCount]byte

	crossHalf bool
	log       logrus.FieldLogger

	selected SlotID
	powered  Mask
	detected Mask

	// latch is the last output byte seen or written per expander.
	// Zero until Init or Sync, which reads as "selects may be held".
	latch [ExpanderCount]byte
}

// Option configures a Changer.
type Option func(*Changer)

// WithLogger sets the logger. Default discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Changer) {
		if l != nil {
			c.log = l
		}
	}
}

// WithCrossHalfExclusive controls whether selecting a slot also deselects
// a selection held on the other half. Default true.
func WithCrossHalfExclusive(on bool) Option {
	return func(c *Changer) { c.crossHalf = on }
}

// WithPullups sets the input bank pull-ups per expander. Default 0xFF.
func WithPullups(exp0, exp1 byte) Option {
	return func(c *Changer) { c.pullups = [ExpanderCount]byte{exp0, exp1} }
}

// New creates a changer. ports is indexed by PortHalf.
// No IO: call Init or Sync before use.
func New(bus Bus, ports [2]PortPins, opts ...Option) (*Changer, error) {
	if bus == nil {
		return nil, errors.New("changer: bus required")
	}

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	c := &Changer{
		bus:       bus,
		ports:     ports,
		pullups:   [ExpanderCount]byte{0xFF, 0xFF},
		crossHalf: true,
		log:       quiet,
		selected:  NoSlot,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Init configures both expanders (input bank = inputs with pull-ups,
// output bank = outputs) and drives the baseline: all deselected, all
// unpowered. The latch is written before the direction so no line glitches
// active while switching to output.
func (c *Changer) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.log.Info("initializing sd changer")

	for e := Expander0; e < ExpanderCount; e++ {
		if err := c.bus.ConfigureBank(e, BankInput, BankSetup{Input: true, Pullups: c.pullups[e]}); err != nil {
			return &RegisterAccessError{Expander: e, Bank: BankInput, Op: "configure", Err: err}
		}
		if err := c.bus.WriteBank(e, BankOutput, BaselineOutput); err != nil {
			return &RegisterAccessError{Expander: e, Bank: BankOutput, Op: "write", Err: err}
		}
		if err := c.bus.ConfigureBank(e, BankOutput, BankSetup{Input: false}); err != nil {
			return &RegisterAccessError{Expander: e, Bank: BankOutput, Op: "configure", Err: err}
		}
	}

	c.selected = NoSlot
	c.powered = 0
	c.detected = 0
	c.latch = [ExpanderCount]byte{BaselineOutput, BaselineOutput}

	c.log.Info("sd changer initialized")
	return nil
}

// Sync rebuilds the powered mask and the selection from the output banks.
// Use it after a RegisterAccessError, or to adopt a board initialized by
// another process. The detected mask is left alone.
func (c *Changer) Sync() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var outs [ExpanderCount]byte
	for e := Expander0; e < ExpanderCount; e++ {
		v, err := c.readBank(e, BankOutput)
		if err != nil {
			return err
		}
		outs[e] = v
	}

	var powered Mask
	selected := NoSlot
	for e := Expander0; e < ExpanderCount; e++ {
		pw, sel := decodeOutput(outs[e])
		for local := uint8(0); local < SlotsPerHalf; local++ {
			powered = powered.with(slotAt(e, local), pw[local])
		}
		if sel >= 0 && selected == NoSlot {
			selected = slotAt(e, uint8(sel))
		}
	}

	c.powered = powered
	c.selected = selected
	c.latch = outs

	c.log.WithFields(logrus.Fields{
		"powered":  powered.String(),
		"selected": int(selected),
	}).Debug("synced from hardware")
	return nil
}

// Snapshot returns a consistent copy of the state.
func (c *Changer) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Selected: c.selected, Powered: c.powered, Detected: c.detected}
}

func (c *Changer) readBank(e ExpanderRef, b Bank) (byte, error) {
	v, err := c.bus.ReadBank(e, b)
	if err != nil {
		return 0, &RegisterAccessError{Expander: e, Bank: b, Op: "read", Err: err}
	}
	return v, nil
}

func (c *Changer) writeBank(e ExpanderRef, b Bank, v byte) error {
	if err := c.bus.WriteBank(e, b, v); err != nil {
		return &RegisterAccessError{Expander: e, Bank: b, Op: "write", Err: err}
	}
	return nil
}

// modifyOutput is one read-modify-write transaction on an output bank.
// Caller holds mu.
func (c *Changer) modifyOutput(e ExpanderRef, fn func(byte) byte) (byte, error) {
	cur, err := c.readBank(e, BankOutput)
	if err != nil {
		return 0, err
	}
	c.latch[e] = cur
	next := fn(cur)
	if err := c.writeBank(e, BankOutput, next); err != nil {
		return 0, err
	}
	c.latch[e] = next
	return next, nil
}
