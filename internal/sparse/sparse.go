// Package sparse holds the 2-D pair-score matrix used by the sticky text
// splitter: one map of column index to score per row, serialized alongside
// the compiled tries.
package sparse

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

// ErrMalformed is returned when a matrix dump is truncated.
var ErrMalformed = errors.New("sparse: malformed dump")

// Matrix is indexed by first-syllable index; each row maps second-syllable
// index to the pair bonus. A nil or empty matrix disables sticky
// segmentation.
type Matrix []map[int32]float32

// NewMatrix allocates rows empty maps.
func NewMatrix(rows int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = map[int32]float32{}
	}
	return m
}

// Get returns the bonus for the pair (first, second), zero when absent.
func (m Matrix) Get(first, second int32) float32 {
	return m[first][second]
}

// Set records the bonus for the pair (first, second).
func (m Matrix) Set(first, second int32, score float32) {
	m[first][second] = score
}

// WriteTo serializes the matrix: int32 row count, then per row a uint32
// entry count followed by (int32 key, float32 value) pairs in key order.
func (m Matrix) WriteTo(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, int32(len(m))); err != nil {
		return err
	}
	for _, row := range m {
		if err := binary.Write(bw, binary.LittleEndian, uint32(len(row))); err != nil {
			return err
		}
		keys := make([]int32, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, k := range keys {
			if err := binary.Write(bw, binary.LittleEndian, k); err != nil {
				return err
			}
			if err := binary.Write(bw, binary.LittleEndian, row[k]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Read deserializes a matrix written by WriteTo.
func Read(r io.Reader) (Matrix, error) {
	br := bufio.NewReader(r)
	var rows int32
	if err := binary.Read(br, binary.LittleEndian, &rows); err != nil {
		return nil, fmt.Errorf("%w: row count: %v", ErrMalformed, err)
	}
	if rows < 0 {
		return nil, fmt.Errorf("%w: negative row count", ErrMalformed)
	}
	m := NewMatrix(int(rows))
	for i := int32(0); i < rows; i++ {
		var count uint32
		if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformed, i, err)
		}
		for j := uint32(0); j < count; j++ {
			var key int32
			var value float32
			if err := binary.Read(br, binary.LittleEndian, &key); err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrMalformed, i, err)
			}
			if err := binary.Read(br, binary.LittleEndian, &value); err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrMalformed, i, err)
			}
			m[i][key] = value
		}
	}
	return m, nil
}

// WriteFile dumps the matrix to path.
func (m Matrix) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile loads a matrix dump from path.
func ReadFile(path string) (Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
