// internal/bridge/bridge.go
package bridge

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tamzrod/growatt-bridge/internal/config"
	"github.com/tamzrod/growatt-bridge/internal/growatt"
	"github.com/tamzrod/growatt-bridge/internal/metrics"
	"github.com/tamzrod/growatt-bridge/internal/mqtt"
	"github.com/tamzrod/growatt-bridge/internal/status"
)

type Options struct {
	Reader    Reader
	Writer    Writer
	Publisher Publisher

	// Optional collaborators.
	Store   Store
	Sink    Sink
	Metrics *metrics.Metrics

	Root     string
	ClientID string
	Version  string

	ModbusUpdateSec uint16
	StatusUpdateSec uint16
}

// Bridge owns the bus. Polls, settings reads and write commands all run
// on the goroutine that calls Run, so transactions never interleave.
type Bridge struct {
	reader  Reader
	writer  Writer
	pub     Publisher
	store   Store
	sink    Sink
	metrics *metrics.Metrics

	root     string
	clientID string
	version  string

	modbusSec uint16
	statusSec uint16

	// Runner-owned state.
	snap        status.Snapshot
	seconds     uint64
	settingsDue bool

	commands chan Command
	now      func() time.Time
	logger   zerolog.Logger
}

func New(o Options) *Bridge {
	b := &Bridge{
		reader:    o.Reader,
		writer:    o.Writer,
		pub:       o.Publisher,
		store:     o.Store,
		sink:      o.Sink,
		metrics:   o.Metrics,
		root:      o.Root,
		clientID:  o.ClientID,
		version:   o.Version,
		modbusSec: o.ModbusUpdateSec,
		statusSec: o.StatusUpdateSec,

		// Settings are read once at boot.
		settingsDue: true,
		snap:        status.Snapshot{Health: status.HealthUnknown},

		commands: make(chan Command, commandQueue),
		now:      time.Now,
		logger:   log.With().Str("component", "bridge").Logger(),
	}

	if b.modbusSec == 0 {
		b.modbusSec = config.DefaultModbusUpdateSec
	}
	if b.statusSec == 0 {
		b.statusSec = config.DefaultStatusUpdateSec
	}
	return b
}

// Enqueue hands an inbound message to the bridge goroutine.
// Safe from any goroutine; never blocks. A full queue drops the message.
func (b *Bridge) Enqueue(topic string, payload []byte) bool {
	cmd := Command{Topic: topic, Payload: append([]byte(nil), payload...)}
	select {
	case b.commands <- cmd:
		return true
	default:
		b.logger.Warn().Str("topic", topic).Msg("command queue full, dropped")
		return false
	}
}

// Run polls once at boot, then drives the 1 Hz schedule until ctx ends.
// No overlap. No retries: the next due tick is the recovery path.
func (b *Bridge) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	b.poll()
	b.publishStatus()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-b.commands:
			b.handle(cmd)
		case <-ticker.C:
			b.tick()
		}
	}
}

func (b *Bridge) tick() {
	b.seconds++
	b.snap.Tick()

	if b.seconds%uint64(b.modbusSec) == 0 {
		b.poll()
	}
	if b.seconds%uint64(b.statusSec) == 0 {
		b.publishStatus()
	}
}

// poll reads telemetry, then settings when a re-read is pending.
func (b *Bridge) poll() {
	t, err := b.reader.ReadTelemetry()
	b.observe("telemetry", err)
	if err != nil {
		b.publish(mqtt.TopicError, status.Of(err).Error())
	} else {
		rec := growatt.Record(t)
		b.publish(mqtt.TopicData, rec)
		if b.sink != nil {
			b.sink.Telemetry(rec)
		}
		if b.metrics != nil {
			b.metrics.Telemetry(t, float64(b.now().Unix()))
		}
	}

	if !b.settingsDue {
		return
	}

	s, err := b.reader.ReadSettings()
	b.observe("settings", err)
	if err != nil {
		// Stays due; retried on the next poll.
		b.publish(mqtt.TopicError, status.Of(err).Error())
		return
	}
	b.publish(mqtt.TopicSettings, growatt.SettingsRecord(s))
	b.settingsDue = false
}

func (b *Bridge) observe(kind string, err error) {
	if b.metrics != nil {
		b.metrics.Poll(kind, err)
	}

	if !b.snap.Observe(err) {
		return
	}
	if err != nil {
		b.logger.Warn().
			Str("kind", kind).
			Uint16("code", status.Of(err).Code()).
			Err(err).
			Msg("device unhealthy")
	} else {
		b.logger.Info().Str("kind", kind).Msg("device healthy")
	}
	if b.metrics != nil {
		b.metrics.Health(b.snap)
	}
}

func (b *Bridge) publishStatus() {
	b.publish(mqtt.TopicStatus, status.Encode(status.Info{
		ClientID:     b.clientID,
		Version:      b.version,
		UptimeSec:    b.seconds,
		ModbusUpdate: b.modbusSec,
		StatusUpdate: b.statusSec,
	}, b.snap))
}

func (b *Bridge) publish(sub, payload string) {
	if err := b.pub.Publish(sub, payload); err != nil {
		b.logger.Warn().Str("topic", sub).Err(err).Msg("publish failed")
	}
}
