// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	d := cfg.Device
	if d.Port == "" {
		return errors.New("device.port is required")
	}

	switch d.Parity {
	case "", "N", "E", "O":
	default:
		return fmt.Errorf("device.parity %q: must be N, E or O", d.Parity)
	}

	switch d.DataBits {
	case 0, 7, 8:
	default:
		return fmt.Errorf("device.data_bits %d: must be 7 or 8", d.DataBits)
	}

	switch d.StopBits {
	case 0, 1, 2:
	default:
		return fmt.Errorf("device.stop_bits %d: must be 1 or 2", d.StopBits)
	}

	if d.BaudRate < 0 || d.TimeoutMs < 0 {
		return errors.New("device: baud_rate and timeout_ms must not be negative")
	}

	// 0 means default; 248..255 are reserved.
	if d.SlaveID > 247 {
		return fmt.Errorf("device.slave_id %d: must be 1..247", d.SlaveID)
	}

	// GPIO direction and kernel RS485 are mutually exclusive
	gpio := d.Direction.RENegGPIO != nil || d.Direction.DEGPIO != nil
	if gpio && d.RS485 {
		return errors.New("device: direction GPIOs and rs485 mode are mutually exclusive")
	}
	for name, p := range map[string]*int{"re_neg_gpio": d.Direction.RENegGPIO, "de_gpio": d.Direction.DEGPIO} {
		if p != nil && *p < 0 {
			return fmt.Errorf("device.direction.%s %d: must be >= 0", name, *p)
		}
	}

	// ------------------------------------------------------------
	// MQTT
	// ------------------------------------------------------------

	if cfg.MQTT.Broker == "" {
		return errors.New("mqtt.broker is required")
	}
	for _, s := range []string{cfg.MQTT.TopicRoot, cfg.MQTT.ClientID} {
		if strings.ContainsAny(s, "+#") {
			return fmt.Errorf("mqtt: %q must not contain wildcards", s)
		}
	}
	if strings.HasSuffix(cfg.MQTT.TopicRoot, "/") {
		return fmt.Errorf("mqtt.topic_root %q: must not end with /", cfg.MQTT.TopicRoot)
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	if cfg.Log.Level != "" {
		if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("log.level %q: %w", cfg.Log.Level, err)
		}
	}

	return nil
}
