// internal/status/encode.go
package status

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Info is the static part of the periodic status record.
type Info struct {
	ClientID     string
	Version      string
	UptimeSec    uint64
	ModbusUpdate uint16
	StatusUpdate uint16
}

// Encode renders the status record published on <root>/status.
// Key order is fixed. No IO. No side effects.
func Encode(info Info, s Snapshot) string {
	var b strings.Builder
	b.WriteString("{")
	fmt.Fprintf(&b, "\"uptime\":%d,", info.UptimeSec)
	fmt.Fprintf(&b, "\"clientid\":%s,", quote(info.ClientID))
	fmt.Fprintf(&b, "\"version\":%s,", quote(info.Version))
	fmt.Fprintf(&b, "\"modbusUpdate\":%d,", info.ModbusUpdate)
	fmt.Fprintf(&b, "\"statusUpdate\":%d,", info.StatusUpdate)
	fmt.Fprintf(&b, "\"health\":%d,", s.Health)
	fmt.Fprintf(&b, "\"lastError\":%d,", s.LastErrorCode)
	fmt.Fprintf(&b, "\"secondsInError\":%d", s.SecondsInError)
	b.WriteString("}")
	return b.String()
}

func quote(s string) string {
	q, _ := json.Marshal(s)
	return string(q)
}
