// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultI2CSpeedHz   = 100_000
	DefaultTimeoutMs    = 1000
	DefaultIntervalMs   = 1000
	DefaultPullups      = 0xFF
	NameMaxChars        = 16
	defaultModbusMode   = "tcp"
	defaultCrossHalfExc = true
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	c := &cfg.Changer

	// Truncate name to what fits in the status block.
	if len(c.Name) > NameMaxChars {
		c.Name = c.Name[:NameMaxChars]
	}

	if c.CrossHalfExclusive == nil {
		v := defaultCrossHalfExc
		c.CrossHalfExclusive = &v
	}

	switch c.Bus.Kind {
	case BusI2C:
		if c.Bus.I2C.SpeedHz == 0 {
			c.Bus.I2C.SpeedHz = DefaultI2CSpeedHz
		}
	case BusModbus:
		if c.Bus.Modbus.Mode == "" {
			c.Bus.Modbus.Mode = defaultModbusMode
		}
		if c.Bus.Modbus.TimeoutMs == 0 {
			c.Bus.Modbus.TimeoutMs = DefaultTimeoutMs
		}
	}

	for i := range c.Expanders {
		if c.Expanders[i].Pullups == nil {
			v := uint8(DefaultPullups)
			c.Expanders[i].Pullups = &v
		}
	}

	if cfg.Monitor.IntervalMs == 0 {
		cfg.Monitor.IntervalMs = DefaultIntervalMs
	}

	if cfg.Status != nil && cfg.Status.TimeoutMs == 0 {
		cfg.Status.TimeoutMs = DefaultTimeoutMs
	}
}
