// internal/metrics/metrics.go

// Package metrics exposes poll, write and telemetry values to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tamzrod/growatt-bridge/internal/growatt"
	"github.com/tamzrod/growatt-bridge/internal/status"
)

// Metrics owns its registry so tests and multiple bridges never collide.
type Metrics struct {
	Registry *prometheus.Registry

	polls  *prometheus.CounterVec
	writes *prometheus.CounterVec

	power   *prometheus.GaugeVec
	energy  *prometheus.GaugeVec
	temp    *prometheus.GaugeVec
	grid    *prometheus.GaugeVec
	faults  prometheus.Gauge
	health  prometheus.Gauge
	updated prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "growatt_polls_total",
			Help: "Register block pair reads by kind and result.",
		}, []string{"kind", "result"}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "growatt_writes_total",
			Help: "Write commands by command and result.",
		}, []string{"command", "result"}),
		power: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "growatt_power_watts",
			Help: "Instantaneous power.",
		}, []string{"source"}),
		energy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "growatt_energy_kwh",
			Help: "Cumulative energy.",
		}, []string{"source", "period"}),
		temp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "growatt_temperature_celsius",
			Help: "Inverter temperatures.",
		}, []string{"sensor"}),
		grid: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "growatt_grid",
			Help: "Grid voltage (V) and frequency (Hz).",
		}, []string{"quantity"}),
		faults: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "growatt_fault_code",
			Help: "Current inverter fault code.",
		}),
		health: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "growatt_bridge_health",
			Help: "0 unknown, 1 ok, 2 error.",
		}),
		updated: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "growatt_last_telemetry_timestamp_seconds",
			Help: "Unix time of the last successful telemetry poll.",
		}),
	}

	m.Registry.MustRegister(m.polls, m.writes, m.power, m.energy, m.temp, m.grid, m.faults, m.health, m.updated)
	return m
}

// Poll counts one block-pair read.
func (m *Metrics) Poll(kind string, err error) {
	m.polls.WithLabelValues(kind, label(err)).Inc()
}

// Write counts one write command.
func (m *Metrics) Write(command string, err error) {
	m.writes.WithLabelValues(command, label(err)).Inc()
}

// Health mirrors the bridge health code.
func (m *Metrics) Health(s status.Snapshot) {
	m.health.Set(float64(s.Health))
}

// Telemetry updates gauges from one decoded record.
func (m *Metrics) Telemetry(t growatt.Telemetry, unix float64) {
	m.power.WithLabelValues("solar").Set(t.SolarPower)
	m.power.WithLabelValues("pv1").Set(t.PV1Power)
	m.power.WithLabelValues("pv2").Set(t.PV2Power)
	m.power.WithLabelValues("output").Set(t.OutputPower)

	m.energy.WithLabelValues("output", "today").Set(t.EnergyToday)
	m.energy.WithLabelValues("output", "total").Set(t.EnergyTotal)
	m.energy.WithLabelValues("pv1", "today").Set(t.PV1EnergyToday)
	m.energy.WithLabelValues("pv1", "total").Set(t.PV1EnergyTotal)
	m.energy.WithLabelValues("pv2", "today").Set(t.PV2EnergyToday)
	m.energy.WithLabelValues("pv2", "total").Set(t.PV2EnergyTotal)

	m.temp.WithLabelValues("inverter").Set(t.TempInverter)
	m.temp.WithLabelValues("ipm").Set(t.TempIPM)
	m.temp.WithLabelValues("boost").Set(t.TempBoost)

	m.grid.WithLabelValues("voltage").Set(t.GridVoltage)
	m.grid.WithLabelValues("frequency").Set(t.GridFrequency)

	m.faults.Set(float64(t.FaultCode))
	m.updated.Set(unix)
}

func label(err error) string {
	if err == nil {
		return "ok"
	}
	return status.Of(err).Error()
}
