package varint

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encode produces the dictionary convention: first byte of each integer has
// its high bit clear, continuation bytes have it set.
func encode(values ...int) []byte {
	var buf []byte
	for _, v := range values {
		buf = append(buf, byte(v&0x7f))
		v >>= 7
		for v > 0 {
			buf = append(buf, byte(v&0x7f)|0x80)
			v >>= 7
		}
	}
	return buf
}

func TestNext(t *testing.T) {
	for _, c := range []struct {
		values []int
	}{
		{values: []int{0}},
		{values: []int{1}},
		{values: []int{127}},
		{values: []int{128}},
		{values: []int{300}},
		{values: []int{16384, 0, 1}},
		{values: []int{0, 0, 0}},
		{values: []int{5, 1000000, 42, 7}},
	} {
		r := NewReader(bytes.NewReader(encode(c.values...)))
		for _, want := range c.values {
			got, err := r.Next()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
		_, err := r.Next()
		assert.ErrorIs(t, err, io.EOF)
	}
}

func TestNextEmpty(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	_, err := r.Next()
	assert.ErrorIs(t, err, io.EOF)
}
