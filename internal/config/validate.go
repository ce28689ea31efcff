// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}
	c := cfg.Changer

	// name sanity (ASCII only)
	for i := 0; i < len(c.Name); i++ {
		if c.Name[i] > 0x7F {
			return fmt.Errorf("changer.name must contain ASCII characters only")
		}
	}

	// ------------------------------------------------------------
	// BUS
	// ------------------------------------------------------------

	switch c.Bus.Kind {
	case BusI2C:
		if c.Bus.I2C.SpeedHz < 0 {
			return fmt.Errorf("changer.bus.i2c.speed_hz must be >= 0")
		}
	case BusModbus:
		m := c.Bus.Modbus
		if m.Endpoint == "" {
			return fmt.Errorf("changer.bus.modbus.endpoint is required")
		}
		switch m.Mode {
		case "", "tcp":
		case "rtu":
			if m.BaudRate <= 0 {
				return fmt.Errorf("changer.bus.modbus.baud_rate is required for rtu")
			}
		default:
			return fmt.Errorf("changer.bus.modbus.mode %q: want tcp or rtu", m.Mode)
		}
		if m.TimeoutMs < 0 {
			return fmt.Errorf("changer.bus.modbus.timeout_ms must be >= 0")
		}
	default:
		return fmt.Errorf("changer.bus.kind %q: want %s or %s", c.Bus.Kind, BusI2C, BusModbus)
	}

	// ------------------------------------------------------------
	// EXPANDERS (exactly two, distinct addresses)
	// ------------------------------------------------------------

	if len(c.Expanders) != 2 {
		return fmt.Errorf("changer.expanders: want exactly 2, got %d", len(c.Expanders))
	}
	for i, e := range c.Expanders {
		if e.Address < 0x20 || e.Address > 0x27 {
			return fmt.Errorf("changer.expanders[%d]: address 0x%02x out of range 0x20-0x27", i, e.Address)
		}
	}
	if c.Expanders[0].Address == c.Expanders[1].Address {
		return fmt.Errorf("changer.expanders: address collision 0x%02x", c.Expanders[0].Address)
	}

	// ------------------------------------------------------------
	// PORT PIN TABLES
	// ------------------------------------------------------------

	if len(c.Ports) != 2 {
		return fmt.Errorf("changer.ports: want exactly 2, got %d", len(c.Ports))
	}
	for i, p := range c.Ports {
		if err := validatePort(p); err != nil {
			return fmt.Errorf("changer.ports[%d]: %w", i, err)
		}
	}

	// ------------------------------------------------------------
	// MONITOR / STATUS
	// ------------------------------------------------------------

	if cfg.Monitor.IntervalMs < 0 {
		return fmt.Errorf("monitor.interval_ms must be >= 0")
	}

	if s := cfg.Status; s != nil {
		if s.Endpoint == "" {
			return fmt.Errorf("status.endpoint is required when status is set")
		}
		if s.UnitID > 247 {
			return fmt.Errorf("status.unit_id %d out of range 0-247", s.UnitID)
		}
		if s.TimeoutMs < 0 {
			return fmt.Errorf("status.timeout_ms must be >= 0")
		}
	}

	return nil
}

func validatePort(p PortConfig) error {
	pins := map[string]int{"clk": p.Clk, "cmd": p.Cmd, "d0": p.D0}

	switch p.Width {
	case 1:
	case 4:
		pins["d1"] = p.D1
		pins["d2"] = p.D2
		pins["d3"] = p.D3
	default:
		return fmt.Errorf("width %d: want 1 or 4", p.Width)
	}

	owner := make(map[int]string, len(pins))
	for name, n := range pins {
		if n < 0 {
			return fmt.Errorf("%s pin %d must be >= 0", name, n)
		}
		if prev, exists := owner[n]; exists {
			return fmt.Errorf("pin %d used by both %s and %s", n, prev, name)
		}
		owner[n] = name
	}
	return nil
}
