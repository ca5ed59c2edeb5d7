// internal/poller/modbus/watchdog.go
package modbus

// Watchdog is suspended for the duration of one block read.
// Hosts whose watchdog is serviced elsewhere use NopWatchdog.
type Watchdog interface {
	Disable()
	Enable()
}

// NopWatchdog does nothing.
type NopWatchdog struct{}

func (NopWatchdog) Disable() {}
func (NopWatchdog) Enable()  {}
