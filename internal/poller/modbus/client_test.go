// internal/poller/modbus/client_test.go
package modbus

import (
	"errors"
	"testing"

	"github.com/goburrow/modbus"
	"github.com/goburrow/serial"
	"github.com/rs/zerolog"

	"github.com/tamzrod/growatt-bridge/internal/status"
)

// ---- fakes ----

type fakeMaster struct {
	events *[]string
	err    error
	regs   []byte
}

func (f *fakeMaster) ReadInputRegisters(addr, qty uint16) ([]byte, error) {
	*f.events = append(*f.events, "fc4")
	return f.regs, f.err
}

func (f *fakeMaster) ReadHoldingRegisters(addr, qty uint16) ([]byte, error) {
	*f.events = append(*f.events, "fc3")
	return f.regs, f.err
}

func (f *fakeMaster) WriteSingleRegister(addr, value uint16) ([]byte, error) {
	*f.events = append(*f.events, "fc6")
	return nil, f.err
}

type recordingDirection struct{ events *[]string }

func (d recordingDirection) PreTransmission(*Client)  { *d.events = append(*d.events, "tx") }
func (d recordingDirection) PostTransmission(*Client) { *d.events = append(*d.events, "rx") }

type recordingWatchdog struct{ events *[]string }

func (w recordingWatchdog) Disable() { *w.events = append(*w.events, "wd-off") }
func (w recordingWatchdog) Enable()  { *w.events = append(*w.events, "wd-on") }

type fakeLine struct{ levels []bool }

func (l *fakeLine) Set(high bool) error {
	l.levels = append(l.levels, high)
	return nil
}

func newTestClient(events *[]string, m *fakeMaster) *Client {
	m.events = events
	return newClient(m, Config{
		Port:      "/dev/null",
		Direction: recordingDirection{events},
		Watchdog:  recordingWatchdog{events},
		Logger:    zerolog.Nop(),
	})
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ---- tests ----

func TestClient_StartsInReceiveMode(t *testing.T) {
	var events []string
	newTestClient(&events, &fakeMaster{})

	if !equal(events, []string{"rx"}) {
		t.Fatalf("expected initial receive, got %v", events)
	}
}

func TestClient_ReadBracketsWatchdog(t *testing.T) {
	var events []string
	c := newTestClient(&events, &fakeMaster{regs: []byte{0x12, 0x34, 0x00, 0x01}})
	events = events[:0]

	regs, err := c.ReadInputRegisters(0, 2)
	if err != nil {
		t.Fatalf("unexpected err=%v", err)
	}
	if len(regs) != 2 || regs[0] != 0x1234 || regs[1] != 0x0001 {
		t.Fatalf("unexpected registers %v", regs)
	}

	want := []string{"wd-off", "fc4", "wd-on"}
	if !equal(events, want) {
		t.Fatalf("got %v want %v", events, want)
	}
}

func TestClient_WriteSkipsWatchdog(t *testing.T) {
	var events []string
	c := newTestClient(&events, &fakeMaster{})
	events = events[:0]

	if err := c.WriteRegister(0, 1); err != nil {
		t.Fatalf("unexpected err=%v", err)
	}

	want := []string{"fc6"}
	if !equal(events, want) {
		t.Fatalf("got %v want %v", events, want)
	}
}

func TestClient_ExceptionClassified(t *testing.T) {
	var events []string
	c := newTestClient(&events, &fakeMaster{
		err: &modbus.ModbusError{FunctionCode: 0x83, ExceptionCode: 2},
	})
	events = events[:0]

	_, err := c.ReadHoldingRegisters(0, 64)

	var r status.Result
	if !errors.As(err, &r) || r != status.IllegalDataAddress {
		t.Fatalf("expected IllegalDataAddress, got %v", err)
	}
	want := []string{"wd-off", "fc3", "wd-on"}
	if !equal(events, want) {
		t.Fatalf("got %v want %v", events, want)
	}
}

func TestClient_TimeoutClassified(t *testing.T) {
	var events []string
	c := newTestClient(&events, &fakeMaster{err: serial.ErrTimeout})

	if err := c.WriteRegister(3, 50); err != status.ResponseTimedOut {
		t.Fatalf("expected ResponseTimedOut, got %v", err)
	}
}

type closingLine struct {
	fakeLine
	closed bool
}

func (l *closingLine) Close() error {
	l.closed = true
	return nil
}

func TestClient_CloseReleasesLines(t *testing.T) {
	re, de := &closingLine{}, &closingLine{}
	c := newClient(&fakeMaster{}, Config{
		Port:      "/dev/null",
		Direction: LineDirection{RENeg: re, DE: de},
		Logger:    zerolog.Nop(),
	})

	if err := c.Close(); err != nil {
		t.Fatalf("unexpected err=%v", err)
	}
	if !re.closed || !de.closed {
		t.Fatalf("lines not released: re=%v de=%v", re.closed, de.closed)
	}
}

func TestUnpackRegisters_BigEndian(t *testing.T) {
	got := unpackRegisters([]byte{0xAB, 0xCD, 0x00, 0xFF, 0x01})
	if len(got) != 2 || got[0] != 0xABCD || got[1] != 0x00FF {
		t.Fatalf("unexpected %v", got)
	}
}
