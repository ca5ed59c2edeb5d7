// internal/poller/modbus/direction.go
package modbus

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/warthog618/go-gpiocdev"
)

// Direction switches the RS485 converter between transmit and receive.
// PreTransmission runs before a request frame is written, PostTransmission
// once the frame has left the UART and before the reply is read.
type Direction interface {
	PreTransmission(c *Client)
	PostTransmission(c *Client)
}

// NopDirection leaves direction control to the converter or the kernel
// RS485 driver.
type NopDirection struct{}

func (NopDirection) PreTransmission(*Client)  {}
func (NopDirection) PostTransmission(*Client) {}

// Line is one digital output.
type Line interface {
	Set(high bool) error
}

// LineDirection drives the RE (active low) and DE pins of a MAX485-style
// converter. Both pins high = transmit, both low = receive.
type LineDirection struct {
	RENeg Line
	DE    Line
}

func (d LineDirection) PreTransmission(c *Client)  { d.set(c, true) }
func (d LineDirection) PostTransmission(c *Client) { d.set(c, false) }

func (d LineDirection) set(c *Client, high bool) {
	for _, l := range []Line{d.RENeg, d.DE} {
		if l == nil {
			continue
		}
		if err := l.Set(high); err != nil {
			log.Warn().Str("port", c.Port()).Bool("high", high).Err(err).Msg("direction line write failed")
		}
	}
}

// Close releases lines that hold a kernel handle.
func (d LineDirection) Close() error {
	var first error
	for _, l := range []Line{d.RENeg, d.DE} {
		if cl, ok := l.(io.Closer); ok {
			if err := cl.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

// ChipLine is one output line requested from a GPIO character device.
type ChipLine struct {
	l *gpiocdev.Line
}

// OpenChipLine requests offset on chip (e.g. "gpiochip0") as an output,
// initially low.
func OpenChipLine(chip string, offset int) (*ChipLine, error) {
	l, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsOutput(0),
		gpiocdev.WithConsumer("growatt-bridge"),
	)
	if err != nil {
		return nil, fmt.Errorf("gpio %s:%d: %w", chip, offset, err)
	}
	return &ChipLine{l: l}, nil
}

func (c *ChipLine) Set(high bool) error {
	v := 0
	if high {
		v = 1
	}
	return c.l.SetValue(v)
}

func (c *ChipLine) Close() error {
	return c.l.Close()
}
