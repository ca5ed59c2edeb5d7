// internal/growatt/record.go
package growatt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record renders telemetry as the flat JSON object published on <root>/data.
func Record(t Telemetry) string {
	return render(TelemetryFields, &t)
}

// SettingsRecord renders settings as the flat JSON object published on <root>/settings.
func SettingsRecord(s Settings) string {
	return render(SettingsFields, &s)
}

// render writes every field of the table exactly once, in table order.
func render[R any](fields []Field[R], r *R) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(f.Key)
		b.WriteString(`":`)
		b.WriteString(value(f, r))
	}
	b.WriteByte('}')
	return b.String()
}

func value[R any](f Field[R], r *R) string {
	switch p := f.Ref(r).(type) {
	case *float64:
		switch f.Format {
		case Fixed2:
			return strconv.FormatFloat(*p, 'f', 2, 64)
		case Int:
			return strconv.FormatFloat(*p, 'f', 0, 64)
		default:
			return strconv.FormatFloat(*p, 'f', 1, 64)
		}
	case *uint16:
		if f.Format == Hex4 {
			return fmt.Sprintf(`"%04X"`, *p)
		}
		return strconv.FormatUint(uint64(*p), 10)
	case *uint32:
		return strconv.FormatUint(uint64(*p), 10)
	case *string:
		q, _ := json.Marshal(*p)
		return string(q)
	}
	return "null"
}
