// internal/writer/writer.go
package writer

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Sequencer issues ordered single-register writes.
// No read-back and no retry: a failed write is reported, never repeated.
type Sequencer struct {
	cli    RegisterClient
	sleep  func(time.Duration)
	logger zerolog.Logger
}

func New(cli RegisterClient) *Sequencer {
	return &Sequencer{
		cli:    cli,
		sleep:  time.Sleep,
		logger: log.With().Str("component", "writer").Logger(),
	}
}

// WriteSimple writes one register.
func (s *Sequencer) WriteSimple(addr, value uint16) error {
	return s.cli.WriteRegister(addr, value)
}

// WriteModulePower changes the module power word, which the inverter only
// accepts while disabled: off, settle, value, settle, on, restart.
//
// All three writes are always attempted. The returned error is the value
// write's failure; when the value write succeeded but re-enabling failed,
// the re-enable failure is returned since the inverter may be left off.
// A failed disable alone is logged only. Nothing is rolled back.
func (s *Sequencer) WriteModulePower(value uint16) error {
	offErr := s.cli.WriteRegister(RegOnOff, Off)
	if offErr != nil {
		s.logger.Warn().Err(offErr).Msg("module power: disable failed")
	}
	s.sleep(ModuleSettle)

	setErr := s.cli.WriteRegister(RegModulePower, value)
	s.sleep(ModuleSettle)

	onErr := s.cli.WriteRegister(RegOnOff, On)
	if onErr != nil {
		s.logger.Error().Err(onErr).Msg("module power: re-enable failed")
	}
	s.sleep(ModuleRestart)

	if setErr != nil {
		return setErr
	}
	return onErr
}
