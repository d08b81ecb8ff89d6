// Package varint reads the 7-bit little-endian variable-length integers the
// raw nontone pair dictionary is encoded with. The convention differs from
// LEB128: the first byte of each integer has its high bit clear and every
// continuation byte has it set, so an integer ends at the byte before the
// next high-bit-clear byte.
package varint

import (
	"bufio"
	"io"
)

// Reader decodes a stream of such integers.
type Reader struct {
	r       *bufio.Reader
	pending byte
	started bool
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns the next integer, or io.EOF once the stream is exhausted.
func (r *Reader) Next() (int, error) {
	var res, power int
	if r.started {
		res = int(r.pending)
		power = 7
	} else {
		b, err := r.r.ReadByte()
		if err != nil {
			return 0, err
		}
		res = int(b & 0x7f)
		power = 7
	}
	for {
		d, err := r.r.ReadByte()
		if err == io.EOF {
			r.started = false
			return res, nil
		}
		if err != nil {
			return 0, err
		}
		if d&0x80 == 0 {
			// High bit clear starts the next integer.
			r.pending = d
			r.started = true
			return res, nil
		}
		res |= int(d&0x7f) << power
		power += 7
	}
}
