// internal/board/builder.go
package board

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/host/v3"

	"github.com/tamzrod/sd-changer/internal/changer"
	cfg "github.com/tamzrod/sd-changer/internal/config"
	"github.com/tamzrod/sd-changer/internal/expander"
	"github.com/tamzrod/sd-changer/internal/expander/i2cbus"
	"github.com/tamzrod/sd-changer/internal/expander/mbbridge"
)

// Build opens the register transport and constructs a Changer on it.
// No register IO: the caller decides between Init and Sync.
// Assumes config has already passed Validate and Normalize.
func Build(c cfg.ChangerConfig, log logrus.FieldLogger) (*changer.Changer, func() error, error) {
	conn, closeConn, err := openConn(c.Bus)
	if err != nil {
		return nil, nil, err
	}

	ch, err := assemble(c, conn, log)
	if err != nil {
		_ = closeConn()
		return nil, nil, err
	}
	return ch, closeConn, nil
}

// assemble wires a Changer on an already open connection.
func assemble(c cfg.ChangerConfig, conn expander.Conn, log logrus.FieldLogger) (*changer.Changer, error) {
	if len(c.Expanders) != changer.ExpanderCount {
		return nil, fmt.Errorf("board: want %d expanders, got %d", changer.ExpanderCount, len(c.Expanders))
	}

	pair, err := expander.NewPair(conn, c.Expanders[0].Address, c.Expanders[1].Address)
	if err != nil {
		return nil, err
	}

	ports, err := Ports(c)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithFields(logrus.Fields{
		"changer": c.Name,
		"bus":     c.Bus.Kind,
	})

	return changer.New(pair, ports, Options(c, log)...)
}

// Ports converts the pin tables. Index = port half.
func Ports(c cfg.ChangerConfig) ([2]changer.PortPins, error) {
	var out [2]changer.PortPins
	if len(c.Ports) != len(out) {
		return out, fmt.Errorf("board: want %d port tables, got %d", len(out), len(c.Ports))
	}
	for i, p := range c.Ports {
		out[i] = changer.PortPins{
			Clk:   p.Clk,
			Cmd:   p.Cmd,
			D0:    p.D0,
			D1:    p.D1,
			D2:    p.D2,
			D3:    p.D3,
			Width: p.Width,
		}
	}
	return out, nil
}

// Options maps config knobs onto changer options.
func Options(c cfg.ChangerConfig, log logrus.FieldLogger) []changer.Option {
	opts := []changer.Option{changer.WithLogger(log)}

	if c.CrossHalfExclusive != nil {
		opts = append(opts, changer.WithCrossHalfExclusive(*c.CrossHalfExclusive))
	}

	pull := [2]byte{cfg.DefaultPullups, cfg.DefaultPullups}
	for i := 0; i < len(c.Expanders) && i < len(pull); i++ {
		if c.Expanders[i].Pullups != nil {
			pull[i] = *c.Expanders[i].Pullups
		}
	}
	opts = append(opts, changer.WithPullups(pull[0], pull[1]))

	return opts
}

// openConn opens ONE transport. No retries.
func openConn(b cfg.BusConfig) (expander.Conn, func() error, error) {
	switch b.Kind {
	case cfg.BusI2C:
		if _, err := host.Init(); err != nil {
			return nil, nil, fmt.Errorf("board: host init: %w", err)
		}
		c, err := i2cbus.Open(i2cbus.Config{
			Name:    b.I2C.Name,
			SpeedHz: b.I2C.SpeedHz,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil

	case cfg.BusModbus:
		c, err := mbbridge.Dial(mbbridge.Config{
			Mode:     mbbridge.Mode(b.Modbus.Mode),
			Endpoint: b.Modbus.Endpoint,
			BaudRate: b.Modbus.BaudRate,
			Timeout:  time.Duration(b.Modbus.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil

	default:
		return nil, nil, fmt.Errorf("board: unknown bus kind %q", b.Kind)
	}
}
