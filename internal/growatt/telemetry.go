// internal/growatt/telemetry.go
package growatt

// Telemetry is one snapshot of the inverter input registers (FC 4).
// Power in W, voltage in V, current in A, energy in kWh, frequency in Hz,
// temperature in °C, work time in hours.
type Telemetry struct {
	Status uint16

	SolarPower float64
	PV1Voltage float64
	PV1Current float64
	PV1Power   float64
	PV2Voltage float64
	PV2Current float64
	PV2Power   float64

	OutputPower   float64
	GridFrequency float64
	GridVoltage   float64

	EnergyToday    float64
	EnergyTotal    float64
	TotalWorkTime  float64
	PV1EnergyToday float64
	PV1EnergyTotal float64
	PV2EnergyToday float64
	PV2EnergyTotal float64
	OPFullPower    float64

	TempInverter float64
	TempIPM      float64
	TempBoost    float64

	IPF           uint16
	RealOPPercent uint16
	DeratingMode  uint16
	FaultCode     uint16

	FaultBitCode   uint32
	WarningBitCode uint32
}

// TelemetryFields is the input register map. Order is the record order.
// pv2energytoday is the only field that crosses the block boundary.
var TelemetryFields = []Field[Telemetry]{
	{Key: "status", Addr: 0, Kind: U16, Scale: 1, Format: Int, Ref: func(t *Telemetry) any { return &t.Status }},
	{Key: "solarpower", Addr: 1, Kind: U32, Scale: 0.1, Format: Fixed1, Ref: func(t *Telemetry) any { return &t.SolarPower }},
	{Key: "pv1voltage", Addr: 3, Kind: U16, Scale: 0.1, Format: Fixed1, Ref: func(t *Telemetry) any { return &t.PV1Voltage }},
	{Key: "pv1current", Addr: 4, Kind: U16, Scale: 0.1, Format: Fixed1, Ref: func(t *Telemetry) any { return &t.PV1Current }},
	{Key: "pv1power", Addr: 5, Kind: U32, Scale: 0.1, Format: Fixed1, Ref: func(t *Telemetry) any { return &t.PV1Power }},
	{Key: "pv2voltage", Addr: 7, Kind: U16, Scale: 0.1, Format: Fixed1, Ref: func(t *Telemetry) any { return &t.PV2Voltage }},
	{Key: "pv2current", Addr: 8, Kind: U16, Scale: 0.1, Format: Fixed1, Ref: func(t *Telemetry) any { return &t.PV2Current }},
	{Key: "pv2power", Addr: 9, Kind: U32, Scale: 0.1, Format: Fixed1, Ref: func(t *Telemetry) any { return &t.PV2Power }},
	{Key: "outputpower", Addr: 35, Kind: U32, Scale: 0.1, Format: Fixed1, Ref: func(t *Telemetry) any { return &t.OutputPower }},
	{Key: "gridfrequency", Addr: 37, Kind: U16, Scale: 0.01, Format: Fixed2, Ref: func(t *Telemetry) any { return &t.GridFrequency }},
	{Key: "gridvoltage", Addr: 38, Kind: U16, Scale: 0.1, Format: Fixed1, Ref: func(t *Telemetry) any { return &t.GridVoltage }},
	{Key: "energytoday", Addr: 53, Kind: U32, Scale: 0.1, Format: Fixed1, Ref: func(t *Telemetry) any { return &t.EnergyToday }},
	{Key: "energytotal", Addr: 55, Kind: U32, Scale: 0.1, Format: Fixed1, Ref: func(t *Telemetry) any { return &t.EnergyTotal }},
	{Key: "totalworktime", Addr: 57, Kind: U32, Scale: 0.5, Format: Fixed1, Ref: func(t *Telemetry) any { return &t.TotalWorkTime }},
	{Key: "pv1energytoday", Addr: 59, Kind: U32, Scale: 0.1, Format: Fixed1, Ref: func(t *Telemetry) any { return &t.PV1EnergyToday }},
	{Key: "pv1energytotal", Addr: 61, Kind: U32, Scale: 0.1, Format: Fixed1, Ref: func(t *Telemetry) any { return &t.PV1EnergyTotal }},
	{Key: "pv2energytoday", Addr: 63, Kind: U32, Scale: 0.1, Format: Fixed1, Ref: func(t *Telemetry) any { return &t.PV2EnergyToday }},
	{Key: "pv2energytotal", Addr: 65, Kind: U32, Scale: 0.1, Format: Fixed1, Ref: func(t *Telemetry) any { return &t.PV2EnergyTotal }},
	{Key: "opfullpower", Addr: 102, Kind: U32, Scale: 0.1, Format: Fixed1, Ref: func(t *Telemetry) any { return &t.OPFullPower }},
	{Key: "tempinverter", Addr: 93, Kind: U16, Scale: 0.1, Format: Fixed1, Ref: func(t *Telemetry) any { return &t.TempInverter }},
	{Key: "tempipm", Addr: 94, Kind: U16, Scale: 0.1, Format: Fixed1, Ref: func(t *Telemetry) any { return &t.TempIPM }},
	{Key: "tempboost", Addr: 95, Kind: U16, Scale: 0.1, Format: Fixed1, Ref: func(t *Telemetry) any { return &t.TempBoost }},
	{Key: "ipf", Addr: 100, Kind: U16, Scale: 1, Format: Int, Ref: func(t *Telemetry) any { return &t.IPF }},
	{Key: "realoppercent", Addr: 101, Kind: U16, Scale: 1, Format: Int, Ref: func(t *Telemetry) any { return &t.RealOPPercent }},
	{Key: "deratingmode", Addr: 104, Kind: U16, Scale: 1, Format: Int, Ref: func(t *Telemetry) any { return &t.DeratingMode }},
	{Key: "faultcode", Addr: 105, Kind: U16, Scale: 1, Format: Int, Ref: func(t *Telemetry) any { return &t.FaultCode }},
	{Key: "faultbitcode", Addr: 106, Kind: U32, Scale: 1, Format: Int, Ref: func(t *Telemetry) any { return &t.FaultBitCode }},
	{Key: "warningbitcode", Addr: 110, Kind: U32, Scale: 1, Format: Int, Ref: func(t *Telemetry) any { return &t.WarningBitCode }},
}

// NewTelemetryDecoder returns a decoder for one telemetry poll.
func NewTelemetryDecoder() *Decoder[Telemetry] {
	return NewDecoder(TelemetryFields)
}

// DecodeTelemetry decodes two successfully read input register blocks.
func DecodeTelemetry(block0, block1 []uint16) Telemetry {
	return decode(TelemetryFields, block0, block1)
}
