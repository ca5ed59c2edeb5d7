// internal/growatt/settings.go
package growatt

// Settings is the inverter configuration held in holding registers (FC 3).
type Settings struct {
	Enable              uint16
	SafetyFuncEn        uint16 // bit0 SPI, bit1 AutoTestStart, bit2 LVFRT, bit3 FreqDerating, ...
	MaxOutputActivePP   uint16 // 0-100 %, 255 = not limited
	MaxOutputReactivePP uint16

	MaxPower     float64
	VoltNormal   float64
	StartVoltage float64

	GridVoltLowLimit      float64
	GridVoltHighLimit     float64
	GridFreqLowLimit      float64
	GridFreqHighLimit     float64
	GridVoltLowConnLimit  float64
	GridVoltHighConnLimit float64
	GridFreqLowConnLimit  float64
	GridFreqHighConnLimit float64

	Firmware        string
	ControlFirmware string
	Serial          string

	ModulePower uint16
}

// SettingsFields is the holding register map. Order is the record order.
var SettingsFields = []Field[Settings]{
	{Key: "enable", Addr: 0, Kind: U16, Scale: 1, Format: Int, Ref: func(s *Settings) any { return &s.Enable }},
	{Key: "safetyfuncen", Addr: 1, Kind: U16, Scale: 1, Format: Int, Ref: func(s *Settings) any { return &s.SafetyFuncEn }},
	{Key: "maxoutputactivepp", Addr: 3, Kind: U16, Scale: 1, Format: Int, Ref: func(s *Settings) any { return &s.MaxOutputActivePP }},
	{Key: "maxoutputreactivepp", Addr: 4, Kind: U16, Scale: 1, Format: Int, Ref: func(s *Settings) any { return &s.MaxOutputReactivePP }},
	{Key: "maxpower", Addr: 6, Kind: U32, Scale: 0.1, Format: Fixed1, Ref: func(s *Settings) any { return &s.MaxPower }},
	{Key: "voltnormal", Addr: 8, Kind: U16, Scale: 0.1, Format: Fixed1, Ref: func(s *Settings) any { return &s.VoltNormal }},
	{Key: "startvoltage", Addr: 17, Kind: U16, Scale: 0.1, Format: Fixed1, Ref: func(s *Settings) any { return &s.StartVoltage }},
	{Key: "gridvoltlowlimit", Addr: 52, Kind: U16, Scale: 0.1, Format: Fixed1, Ref: func(s *Settings) any { return &s.GridVoltLowLimit }},
	{Key: "gridvolthighlimit", Addr: 53, Kind: U16, Scale: 0.1, Format: Fixed1, Ref: func(s *Settings) any { return &s.GridVoltHighLimit }},
	{Key: "gridfreqlowlimit", Addr: 54, Kind: U16, Scale: 0.01, Format: Fixed2, Ref: func(s *Settings) any { return &s.GridFreqLowLimit }},
	{Key: "gridfreqhighlimit", Addr: 55, Kind: U16, Scale: 0.01, Format: Fixed2, Ref: func(s *Settings) any { return &s.GridFreqHighLimit }},
	{Key: "gridvoltlowconnlimit", Addr: 64, Kind: U16, Scale: 0.1, Format: Fixed1, Ref: func(s *Settings) any { return &s.GridVoltLowConnLimit }},
	{Key: "gridvolthighconnlimit", Addr: 65, Kind: U16, Scale: 0.1, Format: Fixed1, Ref: func(s *Settings) any { return &s.GridVoltHighConnLimit }},
	{Key: "gridfreqlowconnlimit", Addr: 66, Kind: U16, Scale: 0.01, Format: Fixed2, Ref: func(s *Settings) any { return &s.GridFreqLowConnLimit }},
	{Key: "gridfreqhighconnlimit", Addr: 67, Kind: U16, Scale: 0.01, Format: Fixed2, Ref: func(s *Settings) any { return &s.GridFreqHighConnLimit }},
	{Key: "firmware", Addr: 9, Kind: String, Words: 3, Format: Quoted, Ref: func(s *Settings) any { return &s.Firmware }},
	{Key: "controlfirmware", Addr: 12, Kind: String, Words: 3, Format: Quoted, Ref: func(s *Settings) any { return &s.ControlFirmware }},
	{Key: "serial", Addr: 23, Kind: String, Words: 5, Format: Quoted, Ref: func(s *Settings) any { return &s.Serial }},
	{Key: "modulPower", Addr: 121, Kind: U16, Scale: 1, Format: Hex4, Ref: func(s *Settings) any { return &s.ModulePower }},
}

// NewSettingsDecoder returns a decoder for one settings read.
func NewSettingsDecoder() *Decoder[Settings] {
	return NewDecoder(SettingsFields)
}

// DecodeSettings decodes two successfully read holding register blocks.
func DecodeSettings(block0, block1 []uint16) Settings {
	return decode(SettingsFields, block0, block1)
}
