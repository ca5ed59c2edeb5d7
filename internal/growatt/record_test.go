// internal/growatt/record_test.go
package growatt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keysInOrder walks a flat JSON object and returns its keys as they appear.
func keysInOrder(t *testing.T, s string) []string {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	tok, err := dec.Token()
	require.NoError(t, err)
	require.Equal(t, json.Delim('{'), tok)

	var keys []string
	for dec.More() {
		k, err := dec.Token()
		require.NoError(t, err)
		keys = append(keys, k.(string))
		_, err = dec.Token()
		require.NoError(t, err)
	}
	return keys
}

func fullTelemetry() Telemetry {
	return Telemetry{
		Status:         1,
		SolarPower:     1234.5,
		PV1Voltage:     310.2,
		PV1Current:     2.1,
		PV1Power:       651.4,
		PV2Voltage:     305.9,
		PV2Current:     1.9,
		PV2Power:       581.2,
		OutputPower:    1190.3,
		GridFrequency:  49.98,
		GridVoltage:    231.4,
		EnergyToday:    5.6,
		EnergyTotal:    10234.7,
		TotalWorkTime:  8123.5,
		PV1EnergyToday: 2.9,
		PV1EnergyTotal: 5200.1,
		PV2EnergyToday: 2.7,
		PV2EnergyTotal: 5034.6,
		OPFullPower:    1500,
		TempInverter:   41.3,
		TempIPM:        44.0,
		TempBoost:      39.8,
		IPF:            20000,
		RealOPPercent:  80,
		DeratingMode:   0,
		FaultCode:      0,
		FaultBitCode:   0x80000000,
		WarningBitCode: 1,
	}
}

func TestRecord_Telemetry(t *testing.T) {
	got := Record(fullTelemetry())

	want := `{"status":1,"solarpower":1234.5,"pv1voltage":310.2,"pv1current":2.1,"pv1power":651.4,` +
		`"pv2voltage":305.9,"pv2current":1.9,"pv2power":581.2,"outputpower":1190.3,"gridfrequency":49.98,` +
		`"gridvoltage":231.4,"energytoday":5.6,"energytotal":10234.7,"totalworktime":8123.5,` +
		`"pv1energytoday":2.9,"pv1energytotal":5200.1,"pv2energytoday":2.7,"pv2energytotal":5034.6,` +
		`"opfullpower":1500.0,"tempinverter":41.3,"tempipm":44.0,"tempboost":39.8,"ipf":20000,` +
		`"realoppercent":80,"deratingmode":0,"faultcode":0,"faultbitcode":2147483648,"warningbitcode":1}`
	assert.Equal(t, want, got)
}

func TestRecord_TelemetryKeysOnceInTableOrder(t *testing.T) {
	keys := keysInOrder(t, Record(fullTelemetry()))

	want := make([]string, 0, len(TelemetryFields))
	for _, f := range TelemetryFields {
		want = append(want, f.Key)
	}
	assert.Equal(t, want, keys)
}

func TestRecord_ZeroTelemetryStillHasEveryKey(t *testing.T) {
	keys := keysInOrder(t, Record(Telemetry{}))
	assert.Len(t, keys, len(TelemetryFields))
}

func TestRecord_Settings(t *testing.T) {
	s := Settings{
		Enable:                1,
		SafetyFuncEn:          0x0011,
		MaxOutputActivePP:     100,
		MaxOutputReactivePP:   255,
		MaxPower:              1500,
		VoltNormal:            230,
		StartVoltage:          80,
		GridVoltLowLimit:      184,
		GridVoltHighLimit:     264.5,
		GridFreqLowLimit:      47.5,
		GridFreqHighLimit:     51.5,
		GridVoltLowConnLimit:  196,
		GridVoltHighConnLimit: 253,
		GridFreqLowConnLimit:  47.52,
		GridFreqHighConnLimit: 50.05,
		Firmware:              "GH1.0",
		ControlFirmware:       "ZAAA",
		Serial:                "AB12345678",
		ModulePower:           0x0a1f,
	}

	want := `{"enable":1,"safetyfuncen":17,"maxoutputactivepp":100,"maxoutputreactivepp":255,` +
		`"maxpower":1500.0,"voltnormal":230.0,"startvoltage":80.0,"gridvoltlowlimit":184.0,` +
		`"gridvolthighlimit":264.5,"gridfreqlowlimit":47.50,"gridfreqhighlimit":51.50,` +
		`"gridvoltlowconnlimit":196.0,"gridvolthighconnlimit":253.0,"gridfreqlowconnlimit":47.52,` +
		`"gridfreqhighconnlimit":50.05,"firmware":"GH1.0","controlfirmware":"ZAAA",` +
		`"serial":"AB12345678","modulPower":"0A1F"}`
	assert.Equal(t, want, SettingsRecord(s))
}

func TestRecord_SettingsStringsAreEscaped(t *testing.T) {
	out := SettingsRecord(Settings{Serial: `A"B`})

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, `A"B`, m["serial"])
	assert.Equal(t, "0000", m["modulPower"])
}
