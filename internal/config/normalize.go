// internal/config/normalize.go
package config

// Defaults for a Growatt MIC/MIN TL-X on a USB RS485 adapter.
const (
	DefaultBaudRate        = 9600
	DefaultDataBits        = 8
	DefaultParity          = "N"
	DefaultStopBits        = 1
	DefaultSlaveID         = 1
	DefaultTimeoutMs       = 2000
	DefaultGPIOChip        = "gpiochip0"
	DefaultClientID        = "growatt1500"
	DefaultKeepAliveSec    = 30
	DefaultModbusUpdateSec = 10
	DefaultStatusUpdateSec = 300
	DefaultLogLevel        = "info"
)

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	d := &cfg.Device
	if d.BaudRate == 0 {
		d.BaudRate = DefaultBaudRate
	}
	if d.DataBits == 0 {
		d.DataBits = DefaultDataBits
	}
	if d.Parity == "" {
		d.Parity = DefaultParity
	}
	if d.StopBits == 0 {
		d.StopBits = DefaultStopBits
	}
	if d.SlaveID == 0 {
		d.SlaveID = DefaultSlaveID
	}
	if d.TimeoutMs == 0 {
		d.TimeoutMs = DefaultTimeoutMs
	}
	if d.Direction.Chip == "" && (d.Direction.RENegGPIO != nil || d.Direction.DEGPIO != nil) {
		d.Direction.Chip = DefaultGPIOChip
	}

	m := &cfg.MQTT
	if m.ClientID == "" {
		m.ClientID = DefaultClientID
	}
	// Topic root follows the client id unless set.
	if m.TopicRoot == "" {
		m.TopicRoot = m.ClientID
	}
	if m.KeepAliveSec == 0 {
		m.KeepAliveSec = DefaultKeepAliveSec
	}

	if cfg.Poll.ModbusUpdateSec == 0 {
		cfg.Poll.ModbusUpdateSec = DefaultModbusUpdateSec
	}
	if cfg.Poll.StatusUpdateSec == 0 {
		cfg.Poll.StatusUpdateSec = DefaultStatusUpdateSec
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}
