// internal/changer/select.go
package changer

import "github.com/sirupsen/logrus"

// Select routes slot onto its half's SDMMC wiring and returns that wiring.
// The card must be present in a sample taken by this call.
//
// Every other slot of the owning expander is deselected in the same write.
// With cross-half exclusivity on, any selection the other expander's
// latch shows is released first, including one adopted by Sync.
func (c *Changer) Select(slot SlotID) (PortPins, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	loc, err := c.requirePresent(slot)
	if err != nil {
		return PortPins{}, err
	}

	if c.crossHalf {
		for e := Expander0; e < ExpanderCount; e++ {
			if e == loc.Expander || !selectHeld(c.latch[e]) {
				continue
			}
			if _, err := c.modifyOutput(e, deselectAll); err != nil {
				return PortPins{}, err
			}
			c.log.WithField("expander", e.String()).Debug("released other half")
			if prev, err := Resolve(c.selected); err == nil && prev.Expander == e {
				c.selected = NoSlot
			}
		}
	}

	out, err := c.modifyOutput(loc.Expander, func(b byte) byte {
		return applySelect(b, loc.Local)
	})
	if err != nil {
		return PortPins{}, err
	}
	c.selected = slot

	c.log.WithFields(logrus.Fields{
		"slot":   int(slot),
		"port":   loc.Half.String(),
		"output": bitString(out),
	}).Debug("selected")
	return c.ports[loc.Half], nil
}

// Deselect releases the selection on both halves. Power is untouched.
func (c *Changer) Deselect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for e := Expander0; e < ExpanderCount; e++ {
		if _, err := c.modifyOutput(e, deselectAll); err != nil {
			return err
		}
	}
	c.selected = NoSlot

	c.log.Debug("deselected all")
	return nil
}

func deselectAll(b byte) byte { return b | selectBitsMask }

// selectHeld reports whether any select line of an output byte is active.
func selectHeld(b byte) bool { return b&selectBitsMask != selectBitsMask }
