// internal/changer/query.go
package changer

// Selected returns the selected slot, if any.
func (c *Changer) Selected() (SlotID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected, c.selected != NoSlot
}

// Powered returns the powered-slot mask.
func (c *Changer) Powered() Mask {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.powered
}

// Detected returns the mask of the last sample without touching the bus.
func (c *Changer) Detected() Mask {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detected
}

func (c *Changer) IsSelected(slot SlotID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slot.Valid() && c.selected == slot
}

func (c *Changer) IsPowered(slot SlotID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.powered.Has(slot)
}

// IsDetected takes a fresh sample. A bus failure reads as not detected;
// use Detect to see the error.
func (c *Changer) IsDetected(slot SlotID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !slot.Valid() {
		return false
	}
	m, err := c.detect()
	if err != nil {
		c.log.WithError(err).Warn("detect failed")
		return false
	}
	return m.Has(slot)
}
