// internal/config/config.go
package config

type Config struct {
	Device DeviceConfig `yaml:"device" toml:"device"`
	MQTT   MQTTConfig   `yaml:"mqtt" toml:"mqtt"`
	Poll   PollConfig   `yaml:"poll" toml:"poll"`
	HTTP   HTTPConfig   `yaml:"http" toml:"http"`
	Store  StoreConfig  `yaml:"store" toml:"store"`
	Log    LogConfig    `yaml:"log" toml:"log"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Port      string `yaml:"port" toml:"port"`
	BaudRate  int    `yaml:"baud_rate" toml:"baud_rate"`
	DataBits  int    `yaml:"data_bits" toml:"data_bits"`
	Parity    string `yaml:"parity" toml:"parity"` // N | E | O
	StopBits  int    `yaml:"stop_bits" toml:"stop_bits"`
	SlaveID   uint8  `yaml:"slave_id" toml:"slave_id"`
	TimeoutMs int    `yaml:"timeout_ms" toml:"timeout_ms"`

	// Kernel RS485 mode (RTS toggled by the driver).
	RS485 bool `yaml:"rs485" toml:"rs485"`

	// GPIO-driven converter direction (optional, opt-in)
	Direction DirectionConfig `yaml:"direction" toml:"direction"`
}

// DirectionConfig names two line offsets on one GPIO character device.
type DirectionConfig struct {
	Chip      string `yaml:"chip" toml:"chip"` // e.g. gpiochip0
	RENegGPIO *int   `yaml:"re_neg_gpio" toml:"re_neg_gpio"`
	DEGPIO    *int   `yaml:"de_gpio" toml:"de_gpio"`
}

// ---- MQTT ----

type MQTTConfig struct {
	Broker       string `yaml:"broker" toml:"broker"`
	Username     string `yaml:"username" toml:"username"`
	Password     string `yaml:"password" toml:"password"`
	ClientID     string `yaml:"client_id" toml:"client_id"`
	TopicRoot    string `yaml:"topic_root" toml:"topic_root"`
	KeepAliveSec int    `yaml:"keepalive_sec" toml:"keepalive_sec"`
}

// ---- POLL ----

// PollConfig holds the startup cadence. Values persisted in the store win.
type PollConfig struct {
	ModbusUpdateSec uint16 `yaml:"modbus_update_sec" toml:"modbus_update_sec"`
	StatusUpdateSec uint16 `yaml:"status_update_sec" toml:"status_update_sec"`
}

// ---- SURFACES ----

// HTTPConfig: empty Listen disables the HTTP server.
type HTTPConfig struct {
	Listen string `yaml:"listen" toml:"listen"`
}

// StoreConfig: empty Path disables persistence.
type StoreConfig struct {
	Path string `yaml:"path" toml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Pretty bool   `yaml:"pretty" toml:"pretty"`
}
