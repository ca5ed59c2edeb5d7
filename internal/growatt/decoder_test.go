// internal/growatt/decoder_test.go
package growatt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blocks() ([]uint16, []uint16) {
	return make([]uint16, BlockSize), make([]uint16, BlockSize)
}

func TestTables_AddressesWithinMap(t *testing.T) {
	for _, f := range TelemetryFields {
		assert.Less(t, f.Last(), uint16(MapSize), f.Key)
	}
	for _, f := range SettingsFields {
		assert.Less(t, f.Last(), uint16(MapSize), f.Key)
	}
}

func TestTables_SingleStraddlingField(t *testing.T) {
	var straddling []string
	for _, f := range TelemetryFields {
		if f.Straddles() {
			straddling = append(straddling, f.Key)
			assert.Equal(t, U32, f.Kind)
			assert.Equal(t, uint16(BlockSize-1), f.Addr)
		}
	}
	assert.Equal(t, []string{"pv2energytoday"}, straddling)

	for _, f := range SettingsFields {
		assert.False(t, f.Straddles(), f.Key)
	}
}

func TestTables_UniqueKeys(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range TelemetryFields {
		require.False(t, seen[f.Key], "duplicate %s", f.Key)
		seen[f.Key] = true
	}
	seen = map[string]bool{}
	for _, f := range SettingsFields {
		require.False(t, seen[f.Key], "duplicate %s", f.Key)
		seen[f.Key] = true
	}
}

func TestDecodeTelemetry_SolarPower(t *testing.T) {
	b0, b1 := blocks()
	b0[1] = 0
	b0[2] = 12345

	got := DecodeTelemetry(b0, b1)
	assert.InDelta(t, 1234.5, got.SolarPower, 1e-9)
}

func TestDecodeTelemetry_CarryAcrossBlocks(t *testing.T) {
	b0, b1 := blocks()
	b0[63] = 0x00AB
	b1[0] = 0x00CD

	got := DecodeTelemetry(b0, b1)
	want := float64(uint32(0x00AB)<<16|0x00CD) * 0.1
	assert.InDelta(t, want, got.PV2EnergyToday, 1e-6)
}

func TestDecodeTelemetry_StraddlingMatchesInBlockComposition(t *testing.T) {
	pairs := [][2]uint16{{0, 0}, {0, 1}, {1, 0}, {0x00AB, 0x00CD}, {0x1234, 0xFFFF}, {0xFFFF, 0xFFFF}}

	for _, p := range pairs {
		b0, b1 := blocks()
		// pv1energytoday 59-60 lies in block 0
		b0[59], b0[60] = p[0], p[1]
		// pv2energytotal 65-66 lies in block 1
		b1[1], b1[2] = p[0], p[1]
		// pv2energytoday 63|64 straddles
		b0[63], b1[0] = p[0], p[1]

		got := DecodeTelemetry(b0, b1)
		assert.Equal(t, got.PV1EnergyToday, got.PV2EnergyToday, "pair %v", p)
		assert.Equal(t, got.PV1EnergyToday, got.PV2EnergyTotal, "pair %v", p)
	}
}

func TestDecodeTelemetry_Block1Fields(t *testing.T) {
	b0, b1 := blocks()
	b1[93-64] = 456 // tempinverter
	b1[100-64] = 1  // ipf
	b1[102-64] = 0  // opfullpower hi
	b1[103-64] = 30000
	b1[104-64] = 3  // deratingmode
	b1[105-64] = 25 // faultcode
	b1[106-64] = 0x8000
	b1[107-64] = 0x0001
	b1[110-64] = 0x0000
	b1[111-64] = 0x0100

	got := DecodeTelemetry(b0, b1)
	assert.InDelta(t, 45.6, got.TempInverter, 1e-9)
	assert.Equal(t, uint16(1), got.IPF)
	assert.InDelta(t, 3000.0, got.OPFullPower, 1e-9)
	assert.Equal(t, uint16(3), got.DeratingMode)
	assert.Equal(t, uint16(25), got.FaultCode)
	assert.Equal(t, uint32(0x80000001), got.FaultBitCode)
	assert.Equal(t, uint32(0x00000100), got.WarningBitCode)
}

func TestDecodeTelemetry_HalfScale(t *testing.T) {
	b0, b1 := blocks()
	b0[57], b0[58] = 0x0001, 0x0001 // 65537 half-hours

	got := DecodeTelemetry(b0, b1)
	assert.InDelta(t, 32768.5, got.TotalWorkTime, 1e-9)
}

func TestDecoder_Block0OnlyLeavesBlock1FieldsZero(t *testing.T) {
	b0 := make([]uint16, BlockSize)
	for i := range b0 {
		b0[i] = 0x0101
	}

	d := NewTelemetryDecoder()
	d.Block0(b0)
	got := d.Record()

	assert.Zero(t, got.PV2EnergyToday)
	assert.Zero(t, got.PV2EnergyTotal)
	assert.Zero(t, got.TempInverter)
	assert.Zero(t, got.FaultBitCode)
	assert.NotZero(t, got.PV1EnergyTotal)
}

func TestDecoder_ShortBlockDoesNotPanic(t *testing.T) {
	got := DecodeTelemetry([]uint16{1, 0, 10}, nil)
	assert.Equal(t, uint16(1), got.Status)
	assert.InDelta(t, 1.0, got.SolarPower, 1e-9)
	assert.Zero(t, got.PV2EnergyToday)
}

func TestDecodeSettings(t *testing.T) {
	b0, b1 := blocks()
	b0[0] = 1
	b0[3] = 100
	b0[6], b0[7] = 0, 15000
	b0[8] = 2300
	// "GH1.0 " firmware, "ZAAA" control firmware padded with NUL
	b0[9], b0[10], b0[11] = 'G'<<8|'H', '1'<<8|'.', '0'<<8|' '
	b0[12], b0[13], b0[14] = 'Z'<<8|'A', 'A'<<8|'A', 0
	// "AB12345678" serial
	b0[23], b0[24], b0[25], b0[26], b0[27] = 'A'<<8|'B', '1'<<8|'2', '3'<<8|'4', '5'<<8|'6', '7'<<8|'8'
	b0[17] = 800
	b0[54], b0[55] = 4750, 5150
	b1[0], b1[1] = 1960, 2530
	b1[2], b1[3] = 4800, 5010
	b1[121-64] = 0x1234

	got := DecodeSettings(b0, b1)
	assert.Equal(t, uint16(1), got.Enable)
	assert.Equal(t, uint16(100), got.MaxOutputActivePP)
	assert.InDelta(t, 1500.0, got.MaxPower, 1e-9)
	assert.InDelta(t, 230.0, got.VoltNormal, 1e-9)
	assert.InDelta(t, 80.0, got.StartVoltage, 1e-9)
	assert.Equal(t, "GH1.0 ", got.Firmware)
	assert.Equal(t, "ZAAA", got.ControlFirmware)
	assert.Equal(t, "AB12345678", got.Serial)
	assert.InDelta(t, 47.5, got.GridFreqLowLimit, 1e-9)
	assert.InDelta(t, 51.5, got.GridFreqHighLimit, 1e-9)
	assert.InDelta(t, 196.0, got.GridVoltLowConnLimit, 1e-9)
	assert.InDelta(t, 253.0, got.GridVoltHighConnLimit, 1e-9)
	assert.InDelta(t, 48.0, got.GridFreqLowConnLimit, 1e-9)
	assert.InDelta(t, 50.1, got.GridFreqHighConnLimit, 1e-9)
	assert.Equal(t, uint16(0x1234), got.ModulePower)
}

func TestDecoder_IndependentCarryPerDecoder(t *testing.T) {
	b0, b1 := blocks()
	b0[63] = 0x0001

	first := NewTelemetryDecoder()
	first.Block0(b0)

	second := NewTelemetryDecoder()
	second.Block1(b1)

	assert.Zero(t, second.Record().PV2EnergyToday)

	first.Block1(b1)
	assert.InDelta(t, 6553.6, first.Record().PV2EnergyToday, 1e-6)
}
