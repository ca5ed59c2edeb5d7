// internal/poller/modbus/client.go
package modbus

import (
	"errors"
	"io"
	"time"

	"github.com/goburrow/modbus"
	"github.com/goburrow/serial"
	"github.com/rs/zerolog"

	"github.com/tamzrod/growatt-bridge/internal/status"
)

// master is the subset of the goburrow client the adapter drives.
type master interface {
	ReadInputRegisters(address, quantity uint16) ([]byte, error)
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error)
	WriteSingleRegister(address, value uint16) ([]byte, error)
}

// Client is the RTU transport adapter for one inverter on one bus.
// It is not safe for concurrent use: the converter direction is shared
// hardware state and callers serialize all transactions.
type Client struct {
	port     io.Closer
	mb       master
	name     string
	dir      Direction
	watchdog Watchdog
	logger   zerolog.Logger
}

// Config is minimal transport config.
type Config struct {
	Port     string
	BaudRate int
	DataBits int
	Parity   string
	StopBits int
	SlaveID  uint8
	Timeout  time.Duration

	// RS485 hands RTS direction control to the kernel driver.
	RS485 bool

	Direction Direction
	Watchdog  Watchdog
	Logger    zerolog.Logger
}

// New opens the serial port and returns a connected adapter.
// Framing and CRC come from the goburrow RTU packager; the wire exchange
// is done by rtuTransport so the direction hooks can split it.
func New(cfg Config) (*Client, error) {
	if cfg.Port == "" {
		return nil, errors.New("modbus client: port required")
	}

	sc := &serial.Config{
		Address:  cfg.Port,
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		Parity:   cfg.Parity,
		StopBits: cfg.StopBits,
		Timeout:  cfg.Timeout,
	}
	if cfg.RS485 {
		sc.RS485 = serial.RS485Config{
			Enabled:           true,
			RtsHighDuringSend: true,
			RtsHighAfterSend:  false,
		}
	}
	port, err := serial.Open(sc)
	if err != nil {
		return nil, err
	}

	packager := modbus.NewRTUClientHandler(cfg.Port)
	packager.SlaveId = cfg.SlaveID

	c := newClient(nil, cfg)
	c.mb = modbus.NewClient2(packager, newTransport(port, cfg, c))
	c.port = port
	return c, nil
}

func newClient(mb master, cfg Config) *Client {
	c := &Client{
		mb:       mb,
		name:     cfg.Port,
		dir:      cfg.Direction,
		watchdog: cfg.Watchdog,
		logger:   cfg.Logger,
	}
	if c.dir == nil {
		c.dir = NopDirection{}
	}
	if c.watchdog == nil {
		c.watchdog = NopWatchdog{}
	}
	// Converter starts in receive mode.
	c.dir.PostTransmission(c)
	return c
}

// Port returns the serial device path.
func (c *Client) Port() string { return c.name }

// Close closes the serial port and releases the direction lines.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	var err error
	if c.port != nil {
		err = c.port.Close()
	}
	if cl, ok := c.dir.(io.Closer); ok {
		if derr := cl.Close(); err == nil {
			err = derr
		}
	}
	return err
}

// ---- poller.Client / writer.RegisterClient ----

// ReadInputRegisters reads one block of input registers (FC 4).
func (c *Client) ReadInputRegisters(addr, qty uint16) ([]uint16, error) {
	return c.readBlock(addr, qty, c.mb.ReadInputRegisters)
}

// ReadHoldingRegisters reads one block of holding registers (FC 3).
func (c *Client) ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) {
	return c.readBlock(addr, qty, c.mb.ReadHoldingRegisters)
}

// WriteRegister writes one holding register (FC 6).
func (c *Client) WriteRegister(addr, value uint16) error {
	_, err := c.transact(func() ([]byte, error) {
		return c.mb.WriteSingleRegister(addr, value)
	})
	if err != nil {
		c.logger.Debug().Uint16("addr", addr).Uint16("value", value).Err(err).Msg("write failed")
	}
	return err
}

// ---- internal request helpers ----

func (c *Client) readBlock(addr, qty uint16, fn func(address, quantity uint16) ([]byte, error)) ([]uint16, error) {
	c.watchdog.Disable()
	raw, err := c.transact(func() ([]byte, error) { return fn(addr, qty) })
	c.watchdog.Enable()

	if err != nil {
		c.logger.Debug().Uint16("addr", addr).Uint16("qty", qty).Err(err).Msg("read failed")
		return nil, err
	}
	return unpackRegisters(raw), nil
}

// transact runs exactly one request and classifies the outcome.
// Direction switching happens inside the transport.
func (c *Client) transact(fn func() ([]byte, error)) ([]byte, error) {
	raw, err := fn()
	if err != nil {
		r := status.FromError(err)
		c.logger.Trace().Err(err).Str("result", r.Error()).Msg("transaction error")
		return nil, r
	}
	return raw, nil
}

// ---- helpers (pure geometry) ----

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
