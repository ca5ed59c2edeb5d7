// internal/writer/types.go
package writer

import "time"

// Holding registers driven by write commands.
const (
	RegOnOff           uint16 = 0   // 0 = off, 1 = on
	RegMaxOutputActive uint16 = 3   // 0-100 %, 255 = not limited
	RegStartVoltage    uint16 = 17  // 0.1 V
	RegModulePower     uint16 = 121 // module power configuration word
)

const (
	Off uint16 = 0
	On  uint16 = 1
)

// Settle delays of the module-power choreography.
const (
	ModuleSettle  = 500 * time.Millisecond
	ModuleRestart = 1500 * time.Millisecond
)

// RegisterClient is the exact transport contract the sequencer uses.
// Every error it returns is a status.Result.
type RegisterClient interface {
	WriteRegister(addr, value uint16) error
}
