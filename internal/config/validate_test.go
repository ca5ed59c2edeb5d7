// internal/config/validate_test.go
package config

import "testing"

// helper to build a valid config quickly
func valid() *Config {
	return &Config{
		Device: DeviceConfig{Port: "/dev/ttyUSB0"},
		MQTT:   MQTTConfig{Broker: "tcp://127.0.0.1:1883"},
	}
}

func intp(v int) *int { return &v }

// ---- tests ----

func TestValidate_Minimal(t *testing.T) {
	if err := Validate(valid()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_PortRequired(t *testing.T) {
	cfg := valid()
	cfg.Device.Port = ""

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected port error, got nil")
	}
}

func TestValidate_BrokerRequired(t *testing.T) {
	cfg := valid()
	cfg.MQTT.Broker = ""

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected broker error, got nil")
	}
}

func TestValidate_BadParity(t *testing.T) {
	cfg := valid()
	cfg.Device.Parity = "X"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected parity error, got nil")
	}
}

func TestValidate_SlaveIDRange(t *testing.T) {
	cfg := valid()
	cfg.Device.SlaveID = 248

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected slave id error, got nil")
	}
}

func TestValidate_GPIOAndRS485Exclusive(t *testing.T) {
	cfg := valid()
	cfg.Device.RS485 = true
	cfg.Device.Direction.DEGPIO = intp(5)

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected exclusivity error, got nil")
	}
}

func TestValidate_NegativeGPIO(t *testing.T) {
	cfg := valid()
	cfg.Device.Direction.RENegGPIO = intp(-1)

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected gpio error, got nil")
	}
}

func TestValidate_TopicWildcard(t *testing.T) {
	cfg := valid()
	cfg.MQTT.TopicRoot = "growatt/#"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected wildcard error, got nil")
	}
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := valid()
	cfg.Log.Level = "loud"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected log level error, got nil")
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := valid()
	_ = Validate(cfg)

	if cfg.Device.BaudRate != 0 || cfg.MQTT.TopicRoot != "" {
		t.Fatalf("Validate mutated config: %+v", cfg)
	}
}
