// internal/bridge/types.go
package bridge

import (
	"github.com/tamzrod/growatt-bridge/internal/growatt"
)

// Reader performs the paired block reads. Every error is a status.Result.
type Reader interface {
	ReadTelemetry() (growatt.Telemetry, error)
	ReadSettings() (growatt.Settings, error)
}

// Writer issues register writes on the same bus as the reader.
type Writer interface {
	WriteSimple(addr, value uint16) error
	WriteModulePower(value uint16) error
}

// Publisher sends a payload to <root>/<sub>.
type Publisher interface {
	Publish(sub, payload string) error
}

// Store persists runtime cadence changes.
type Store interface {
	SetUint16(name string, v uint16) error
}

// Sink receives every telemetry record (HTTP latest + websocket).
type Sink interface {
	Telemetry(record string)
}

// Command is one inbound message, queued for the bridge goroutine.
type Command struct {
	Topic   string
	Payload []byte
}

// Command suffixes below <root>.
const (
	CmdGetSettings   = "write/getSettings"
	CmdSetEnable     = "write/setEnable"
	CmdSetMaxOutput  = "write/setMaxOutput"
	CmdStartVoltage  = "write/setStartVoltage"
	CmdSetModulPower = "write/setModulPower"
	CmdSetModbusUpd  = "writeconfig/setModbusUpd"
	CmdSetStatusUpd  = "writeconfig/setStatusUpd"
)

const commandQueue = 16
