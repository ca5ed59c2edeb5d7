// internal/growatt/decoder.go
package growatt

// Decoder fills one record from the two blocks of a single poll.
// It is created per poll: the carry word must never outlive the call
// that read it.
type Decoder[R any] struct {
	fields []Field[R]
	rec    R
	carry  uint16
}

// NewDecoder returns a decoder for the given field table.
func NewDecoder[R any](fields []Field[R]) *Decoder[R] {
	return &Decoder[R]{fields: fields}
}

// Block0 decodes registers 0..63 and retains the high word
// of any field that continues into block 1.
func (d *Decoder[R]) Block0(words []uint16) {
	for _, f := range d.fields {
		switch {
		case f.Last() < BlockSize:
			d.apply(f, words, 0)
		case f.Straddles():
			d.carry = word(words, f.Addr)
		}
	}
}

// Block1 decodes registers 64..127 (local offsets 0..63) and completes
// the straddling field from the carry word.
func (d *Decoder[R]) Block1(words []uint16) {
	for _, f := range d.fields {
		switch {
		case f.Addr >= BlockSize && f.Last() < MapSize:
			d.apply(f, words, BlockSize)
		case f.Straddles():
			lo := word(words, f.Last()-BlockSize)
			f.store(&d.rec, uint32(d.carry)<<16|uint32(lo))
		}
	}
}

// Record returns the decoded record.
func (d *Decoder[R]) Record() R {
	return d.rec
}

func (d *Decoder[R]) apply(f Field[R], words []uint16, base uint16) {
	at := f.Addr - base
	switch f.Kind {
	case U16:
		f.store(&d.rec, uint32(word(words, at)))
	case U32:
		f.store(&d.rec, uint32(word(words, at))<<16|uint32(word(words, at+1)))
	case String:
		if p, ok := f.Ref(&d.rec).(*string); ok {
			*p = unpackString(words, at, f.Words)
		}
	}
}

// decode runs both blocks through a fresh decoder.
func decode[R any](fields []Field[R], block0, block1 []uint16) R {
	d := NewDecoder(fields)
	d.Block0(block0)
	d.Block1(block1)
	return d.Record()
}
