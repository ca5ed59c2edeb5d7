// internal/poller/builder.go
package poller

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	cfg "github.com/tamzrod/growatt-bridge/internal/config"
	pmodbus "github.com/tamzrod/growatt-bridge/internal/poller/modbus"
)

// Build opens the RTU transport for the configured device and wraps it in a Poller.
// The returned client is shared with the write sequencer; the caller owns Close.
// No retries: a port that cannot be opened fails startup.
func Build(d cfg.DeviceConfig) (*Poller, *pmodbus.Client, error) {
	dir, err := buildDirection(d.Direction)
	if err != nil {
		return nil, nil, err
	}

	client, err := pmodbus.New(pmodbus.Config{
		Port:      d.Port,
		BaudRate:  d.BaudRate,
		DataBits:  d.DataBits,
		Parity:    d.Parity,
		StopBits:  d.StopBits,
		SlaveID:   d.SlaveID,
		Timeout:   time.Duration(d.TimeoutMs) * time.Millisecond,
		RS485:     d.RS485,
		Direction: dir,
		Logger:    log.With().Str("component", "modbus").Logger(),
	})
	if err != nil {
		if cl, ok := dir.(io.Closer); ok {
			cl.Close()
		}
		return nil, nil, fmt.Errorf("open %s: %w", d.Port, err)
	}

	return New(client), client, nil
}

func buildDirection(d cfg.DirectionConfig) (pmodbus.Direction, error) {
	if d.RENegGPIO == nil && d.DEGPIO == nil {
		return pmodbus.NopDirection{}, nil
	}

	var ld pmodbus.LineDirection
	if d.RENegGPIO != nil {
		l, err := pmodbus.OpenChipLine(d.Chip, *d.RENegGPIO)
		if err != nil {
			return nil, err
		}
		ld.RENeg = l
	}
	if d.DEGPIO != nil {
		l, err := pmodbus.OpenChipLine(d.Chip, *d.DEGPIO)
		if err != nil {
			ld.Close()
			return nil, err
		}
		ld.DE = l
	}
	return ld, nil
}
