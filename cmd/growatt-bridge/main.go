// cmd/growatt-bridge/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tamzrod/growatt-bridge/internal/bridge"
	"github.com/tamzrod/growatt-bridge/internal/config"
	"github.com/tamzrod/growatt-bridge/internal/httpapi"
	"github.com/tamzrod/growatt-bridge/internal/metrics"
	"github.com/tamzrod/growatt-bridge/internal/mqtt"
	"github.com/tamzrod/growatt-bridge/internal/poller"
	"github.com/tamzrod/growatt-bridge/internal/store"
	"github.com/tamzrod/growatt-bridge/internal/writer"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		log.Fatal().Msg("usage: growatt-bridge <config.yaml|config.toml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("config validation failed")
	}
	config.Normalize(cfg)

	setupLogging(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Persisted cadence overrides config
	// --------------------

	var st *store.Store
	if cfg.Store.Path != "" {
		st, err = store.Open(cfg.Store.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("store open failed")
		}
		defer st.Close()

		loadCadence(st, store.ModbusUpdateSec, &cfg.Poll.ModbusUpdateSec)
		loadCadence(st, store.StatusUpdateSec, &cfg.Poll.StatusUpdateSec)
	}

	// --------------------
	// Bus: one transport shared by poller and writer
	// --------------------

	p, client, err := poller.Build(cfg.Device)
	if err != nil {
		log.Fatal().Err(err).Msg("poller build failed")
	}
	defer client.Close()

	seq := writer.New(client)
	m := metrics.New()

	var srv *httpapi.Server
	if cfg.HTTP.Listen != "" {
		srv = httpapi.New(cfg.HTTP.Listen, m.Registry)
		srv.Start()
	}

	opts := bridge.Options{
		Reader:          p,
		Writer:          seq,
		Metrics:         m,
		Root:            cfg.MQTT.TopicRoot,
		ClientID:        cfg.MQTT.ClientID,
		Version:         version,
		ModbusUpdateSec: cfg.Poll.ModbusUpdateSec,
		StatusUpdateSec: cfg.Poll.StatusUpdateSec,
	}
	if st != nil {
		opts.Store = st
	}
	if srv != nil {
		opts.Sink = srv
	}

	// The MQTT handler only enqueues; the bridge goroutine owns the bus.
	var b *bridge.Bridge
	mq, err := mqtt.New(cfg.MQTT, func(topic string, payload []byte) {
		b.Enqueue(topic, payload)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mqtt setup failed")
	}

	opts.Publisher = mq
	b = bridge.New(opts)

	// Polling and the HTTP surface keep running without a broker.
	if err := mq.Connect(); err != nil {
		log.Error().Err(err).Msg("mqtt connect failed")
	}
	defer mq.Close()

	log.Info().
		Str("version", version).
		Str("port", client.Port()).
		Str("topic_root", cfg.MQTT.TopicRoot).
		Uint16("modbus_update_sec", cfg.Poll.ModbusUpdateSec).
		Uint16("status_update_sec", cfg.Poll.StatusUpdateSec).
		Msg("bridge started")

	b.Run(ctx)

	log.Info().Msg("shutting down")
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("http shutdown failed")
		}
	}
}

func setupLogging(c config.LogConfig) {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if c.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func loadCadence(st *store.Store, name string, dst *uint16) {
	v, ok, err := st.Uint16(name)
	if err != nil {
		log.Warn().Err(err).Str("setting", name).Msg("stored cadence ignored")
		return
	}
	if ok && v > 0 {
		*dst = v
	}
}
