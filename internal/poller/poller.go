// internal/poller/poller.go
package poller

import (
	"time"

	"github.com/tamzrod/growatt-bridge/internal/growatt"
)

// Client abstracts the Modbus reads needed by the poller.
// Every error it returns is a status.Result.
type Client interface {
	ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) // FC 3
	ReadInputRegisters(addr, qty uint16) ([]uint16, error)   // FC 4
}

// Poller reads the paired register blocks of one inverter.
// It holds no state between calls.
type Poller struct {
	client Client
	settle time.Duration
	sleep  func(time.Duration)
}

// New creates a poller using the default inter-block settle delay.
func New(client Client) *Poller {
	return &Poller{
		client: client,
		settle: BlockSettle,
		sleep:  time.Sleep,
	}
}

// ReadTelemetry reads input registers 0..127 and decodes them.
// All-or-nothing: any failure returns the zero record and the result.
func (p *Poller) ReadTelemetry() (growatt.Telemetry, error) {
	return readPair(p, p.client.ReadInputRegisters, growatt.NewTelemetryDecoder())
}

// ReadSettings reads holding registers 0..127 and decodes them.
// All-or-nothing: any failure returns the zero record and the result.
func (p *Poller) ReadSettings() (growatt.Settings, error) {
	return readPair(p, p.client.ReadHoldingRegisters, growatt.NewSettingsDecoder())
}

// readPair performs block 0, settle, block 1 back to back.
// The decoder, and with it the carry word, lives only for this call.
func readPair[R any](p *Poller, read func(addr, qty uint16) ([]uint16, error), d *growatt.Decoder[R]) (R, error) {
	var zero R

	regs, err := read(Block0Addr, BlockQty)
	if err != nil {
		return zero, err
	}
	d.Block0(regs)

	p.sleep(p.settle)

	regs, err = read(Block1Addr, BlockQty)
	if err != nil {
		return zero, err
	}
	d.Block1(regs)

	// Commit only if both reads succeeded
	return d.Record(), nil
}
