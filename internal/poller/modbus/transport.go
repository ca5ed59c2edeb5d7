// internal/poller/modbus/transport.go
package modbus

import (
	"encoding/binary"
	"errors"
	"io"
	"time"

	"github.com/goburrow/modbus"
	"github.com/rs/zerolog"
)

// RTU frame geometry.
const (
	rtuMinSize       = 4
	rtuExceptionSize = 5
	rtuMaxSize       = 256
)

// rtuTransport implements modbus.Transporter over an open serial port.
// The converter is in transmit mode only while the request frame is on
// the wire; it is back in receive mode before the reply is read.
type rtuTransport struct {
	port     io.ReadWriter
	charTime time.Duration

	pre  func()
	post func()

	now    func() time.Time
	sleep  func(time.Duration)
	logger zerolog.Logger
}

var _ modbus.Transporter = (*rtuTransport)(nil)

func newTransport(port io.ReadWriter, cfg Config, c *Client) *rtuTransport {
	return &rtuTransport{
		port:     port,
		charTime: charTime(cfg.BaudRate, cfg.DataBits, cfg.Parity, cfg.StopBits),
		pre:      func() { c.dir.PreTransmission(c) },
		post:     func() { c.dir.PostTransmission(c) },
		now:      time.Now,
		sleep:    time.Sleep,
		logger:   cfg.Logger,
	}
}

// charTime is the time one character occupies on the line:
// start bit, data bits, optional parity bit, stop bits.
func charTime(baud, dataBits int, parity string, stopBits int) time.Duration {
	if baud <= 0 {
		baud = 9600
	}
	if dataBits <= 0 {
		dataBits = 8
	}
	if stopBits <= 0 {
		stopBits = 1
	}
	bits := 1 + dataBits + stopBits
	if parity != "" && parity != "N" {
		bits++
	}
	return time.Duration(bits) * time.Second / time.Duration(baud)
}

func (t *rtuTransport) Send(req []byte) ([]byte, error) {
	if len(req) < rtuMinSize {
		return nil, errors.New("modbus: request frame too short")
	}
	t.logger.Trace().Hex("tx", req).Msg("frame")

	t.pre()
	start := t.now()
	_, err := t.port.Write(req)
	if err == nil {
		// Write returns once the frame is queued; hold transmit until
		// the last character has been shifted out.
		if rest := time.Duration(len(req))*t.charTime - t.now().Sub(start); rest > 0 {
			t.sleep(rest)
		}
	}
	t.post()
	if err != nil {
		return nil, err
	}

	var buf [rtuMaxSize]byte
	n, err := io.ReadAtLeast(t.port, buf[:], rtuMinSize)
	if err != nil {
		return nil, err
	}

	want := responseLength(req)
	if buf[1] == req[1]|0x80 {
		want = rtuExceptionSize
	}
	if n < want {
		m, err := io.ReadFull(t.port, buf[n:want])
		n += m
		if err != nil {
			return nil, err
		}
	}

	t.logger.Trace().Hex("rx", buf[:n]).Msg("frame")
	return buf[:n], nil
}

// responseLength is the full reply size, CRC included, for the
// function codes this adapter issues.
func responseLength(req []byte) int {
	switch req[1] {
	case modbus.FuncCodeReadInputRegisters, modbus.FuncCodeReadHoldingRegisters:
		if len(req) >= 6 {
			if n := 5 + 2*int(binary.BigEndian.Uint16(req[4:])); n <= rtuMaxSize {
				return n
			}
		}
	case modbus.FuncCodeWriteSingleRegister:
		return 8
	}
	return rtuMinSize
}
