// internal/growatt/field.go
package growatt

// BlockSize is the number of registers in one read transaction.
const BlockSize = 64

// MapSize is the addressable register range covered by two blocks.
const MapSize = 2 * BlockSize

// Kind selects how a field is composed from raw words.
type Kind uint8

const (
	U16    Kind = iota // one word
	U32                // two words, high word first
	String             // Words words, two bytes per word, high byte first
)

// Format selects how a field is rendered in the outbound record.
type Format uint8

const (
	Int    Format = iota // plain integer
	Fixed1               // one decimal digit
	Fixed2               // two decimal digits
	Quoted               // quoted text
	Hex4                 // quoted 4-digit uppercase hex
)

// Field maps one register address to a record field.
// Addr is absolute within the 128-register map; the block is Addr / BlockSize.
//
// Ref returns a pointer into the record: *float64 receives the scaled value,
// *uint16 and *uint32 the raw composition, *string the packed bytes.
type Field[R any] struct {
	Key    string
	Addr   uint16
	Kind   Kind
	Words  uint16
	Scale  float64
	Format Format
	Ref    func(r *R) any
}

// Width is the number of registers the field occupies.
func (f Field[R]) Width() uint16 {
	switch f.Kind {
	case U32:
		return 2
	case String:
		return f.Words
	default:
		return 1
	}
}

// Last is the address of the field's last register.
func (f Field[R]) Last() uint16 {
	return f.Addr + f.Width() - 1
}

// Straddles reports whether the field begins in block 0 and ends in block 1.
func (f Field[R]) Straddles() bool {
	return f.Addr < BlockSize && f.Last() >= BlockSize
}

// store writes a composed numeric value into the record.
// Scale is applied after composition.
func (f Field[R]) store(r *R, raw uint32) {
	switch p := f.Ref(r).(type) {
	case *float64:
		*p = float64(raw) * f.Scale
	case *uint16:
		*p = uint16(raw)
	case *uint32:
		*p = raw
	}
}

// word returns words[i], or zero when the device sent a short block.
func word(words []uint16, i uint16) uint16 {
	if int(i) >= len(words) {
		return 0
	}
	return words[i]
}

// unpackString packs words into bytes and cuts at the first NUL.
func unpackString(words []uint16, at, n uint16) string {
	b := make([]byte, 0, 2*n)
	for i := uint16(0); i < n; i++ {
		w := word(words, at+i)
		b = append(b, byte(w>>8), byte(w))
	}
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
