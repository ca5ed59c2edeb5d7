// internal/bridge/command.go
package bridge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tamzrod/growatt-bridge/internal/mqtt"
	"github.com/tamzrod/growatt-bridge/internal/status"
	"github.com/tamzrod/growatt-bridge/internal/store"
	"github.com/tamzrod/growatt-bridge/internal/writer"
)

const writeFailedPrefix = "last transmission has failed with: "

// handle routes one inbound message. Payloads are matched upper-cased.
// Malformed values are logged and ignored; nothing reaches the bus.
func (b *Bridge) handle(cmd Command) {
	sub, ok := strings.CutPrefix(cmd.Topic, b.root+"/")
	if !ok {
		b.logger.Debug().Str("topic", cmd.Topic).Msg("ignoring foreign topic")
		return
	}
	msg := strings.ToUpper(strings.TrimSpace(string(cmd.Payload)))

	switch sub {
	case CmdGetSettings:
		if msg == "ON" {
			b.settingsDue = true
		}

	case CmdSetEnable:
		switch msg {
		case "ON":
			b.write(sub, func() error { return b.writer.WriteSimple(writer.RegOnOff, writer.On) })
		case "OFF":
			b.write(sub, func() error { return b.writer.WriteSimple(writer.RegOnOff, writer.Off) })
		default:
			b.rejected(sub, msg)
		}

	case CmdSetMaxOutput:
		v, err := strconv.ParseUint(msg, 10, 16)
		if err != nil {
			b.rejected(sub, msg)
			return
		}
		b.write(sub, func() error { return b.writer.WriteSimple(writer.RegMaxOutputActive, uint16(v)) })

	case CmdStartVoltage:
		// Whole volts in, register holds 0.1 V.
		v, err := strconv.ParseUint(msg, 10, 16)
		if err != nil || v*10 > 0xFFFF {
			b.rejected(sub, msg)
			return
		}
		b.write(sub, func() error { return b.writer.WriteSimple(writer.RegStartVoltage, uint16(v*10)) })

	case CmdSetModulPower:
		v, err := strconv.ParseUint(strings.TrimPrefix(msg, "0X"), 16, 16)
		if err != nil {
			b.rejected(sub, msg)
			return
		}
		b.write(sub, func() error { return b.writer.WriteModulePower(uint16(v)) })

	case CmdSetModbusUpd:
		b.setCadence(&b.modbusSec, store.ModbusUpdateSec, msg)
		b.publish(mqtt.TopicInfo, fmt.Sprintf("Reading Modbus values updated to %d sec", b.modbusSec))

	case CmdSetStatusUpd:
		b.setCadence(&b.statusSec, store.StatusUpdateSec, msg)
		b.publish(mqtt.TopicInfo, fmt.Sprintf("Send Status updated to %d sec", b.statusSec))

	default:
		b.logger.Debug().Str("topic", cmd.Topic).Msg("unknown command")
	}
}

// write runs one write command. Success schedules a settings re-read;
// failure is published with its classified message.
func (b *Bridge) write(sub string, fn func() error) {
	err := fn()

	name := strings.TrimPrefix(sub, mqtt.TopicWrite+"/")
	if b.metrics != nil {
		b.metrics.Write(name, err)
	}

	if err != nil {
		b.logger.Error().Str("command", name).Err(err).Msg("write failed")
		b.publish(mqtt.TopicError, writeFailedPrefix+status.Of(err).Error())
		return
	}

	b.logger.Info().Str("command", name).Msg("write ok")
	b.settingsDue = true
}

// setCadence applies a positive seconds value and persists it.
// Zero, negative or malformed values leave the cadence unchanged.
func (b *Bridge) setCadence(cur *uint16, name, msg string) {
	n, err := strconv.ParseUint(msg, 10, 16)
	if err != nil || n == 0 || uint16(n) == *cur {
		return
	}
	*cur = uint16(n)

	if b.store == nil {
		return
	}
	if err := b.store.SetUint16(name, *cur); err != nil {
		b.logger.Error().Str("setting", name).Err(err).Msg("persist failed")
	}
}

func (b *Bridge) rejected(sub, msg string) {
	b.logger.Warn().Str("command", sub).Str("payload", msg).Msg("invalid payload")
}
