// internal/config/config.go
package config

type Config struct {
	Changer ChangerConfig `yaml:"changer"`
	Monitor MonitorConfig `yaml:"monitor"`
	Status  *StatusConfig `yaml:"status"` // optional, opt-in
}

// ---- CHANGER ----

type ChangerConfig struct {
	Name               string           `yaml:"name"`
	CrossHalfExclusive *bool            `yaml:"cross_half_exclusive"` // nil => true
	Bus                BusConfig        `yaml:"bus"`
	Expanders          []ExpanderConfig `yaml:"expanders"` // index = expander ref
	Ports              []PortConfig     `yaml:"ports"`     // index = port half
}

// ---- BUS ----

const (
	BusI2C    = "i2c"
	BusModbus = "modbus"
)

type BusConfig struct {
	Kind   string       `yaml:"kind"`
	I2C    I2CConfig    `yaml:"i2c"`
	Modbus ModbusConfig `yaml:"modbus"`
}

type I2CConfig struct {
	Name    string `yaml:"name"`
	SpeedHz int64  `yaml:"speed_hz"`
}

type ModbusConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Mode      string `yaml:"mode"` // tcp | rtu
	BaudRate  int    `yaml:"baud_rate"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- EXPANDERS ----

type ExpanderConfig struct {
	Address uint16 `yaml:"address"`
	Pullups *uint8 `yaml:"pullups"` // nil => 0xFF
}

// ---- PORT PIN TABLE ----

type PortConfig struct {
	Clk   int `yaml:"clk"`
	Cmd   int `yaml:"cmd"`
	D0    int `yaml:"d0"`
	D1    int `yaml:"d1"`
	D2    int `yaml:"d2"`
	D3    int `yaml:"d3"`
	Width int `yaml:"width"`
}

// ---- MONITOR ----

type MonitorConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- STATUS MIRROR ----

type StatusConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	BaseSlot  uint16 `yaml:"base_slot"`
	TimeoutMs int    `yaml:"timeout_ms"`
}
