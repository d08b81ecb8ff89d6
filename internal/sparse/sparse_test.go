package sparse

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	m := NewMatrix(3)
	m.Set(0, 1, 1.5)
	m.Set(0, 2, 2.25)
	m.Set(2, 0, 0.125)

	var buf bytes.Buffer
	require.NoError(t, m.WriteTo(&buf))
	loaded, err := Read(&buf)
	require.NoError(t, err)

	require.Len(t, loaded, 3)
	assert.Equal(t, float32(1.5), loaded.Get(0, 1))
	assert.Equal(t, float32(2.25), loaded.Get(0, 2))
	assert.Equal(t, float32(0.125), loaded.Get(2, 0))
	assert.Equal(t, float32(0), loaded.Get(1, 1))
	assert.Empty(t, loaded[1])
}

func TestEmptyMatrix(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMatrix(0).WriteTo(&buf))
	loaded, err := Read(&buf)
	require.NoError(t, err)
	assert.Len(t, loaded, 0)
}

func TestReadMalformed(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte{0x01, 0x00}))
	assert.ErrorIs(t, err, ErrMalformed)

	// Row count promises more rows than the stream holds.
	m := NewMatrix(2)
	m.Set(0, 0, 1)
	var buf bytes.Buffer
	require.NoError(t, m.WriteTo(&buf))
	_, err = Read(bytes.NewReader(buf.Bytes()[:buf.Len()-2]))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestFileRoundTrip(t *testing.T) {
	m := NewMatrix(2)
	m.Set(1, 0, 3.5)
	path := filepath.Join(t.TempDir(), "pairs.dump")
	require.NoError(t, m.WriteFile(path))
	loaded, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, float32(3.5), loaded.Get(1, 0))
}
