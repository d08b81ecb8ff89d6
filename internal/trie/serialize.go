package trie

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrMalformed is returned when a trie dump is truncated or inconsistent.
var ErrMalformed = errors.New("trie: malformed dump")

// Dump layout, little-endian throughout:
//
//	int32  alphabet size
//	uint32 × alphabet size codepoints, in slot order
//	uint64 pool size
//	pool size × node record (flavor specific)
//
// The writer and reader in this package are the only producers and
// consumers; the layout only has to be symmetric between them.

type multitermDiskNode struct {
	Base    int32
	Parent  int32
	Weight  float32
	Ending  uint8
	Special uint8
}

type syllableDiskNode struct {
	Base   int32
	Parent int32
	Weight float32
	Index  int32
}

func (d *dat) alphabet() []uint32 {
	var res []uint32
	for c, slot := range d.charMap {
		if slot >= 0 {
			res = append(res, uint32(c))
		}
	}
	return res
}

func (d *dat) writeHeader(w io.Writer) error {
	alphabet := d.alphabet()
	if err := binary.Write(w, binary.LittleEndian, int32(len(alphabet))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, alphabet); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, uint64(len(d.base)))
}

func (d *dat) readHeader(r io.Reader) (poolSize uint64, err error) {
	var alphabetSize int32
	if err := binary.Read(r, binary.LittleEndian, &alphabetSize); err != nil {
		return 0, fmt.Errorf("%w: alphabet size: %v", ErrMalformed, err)
	}
	if alphabetSize < 0 {
		return 0, fmt.Errorf("%w: negative alphabet size", ErrMalformed)
	}
	alphabet := make([]uint32, alphabetSize)
	if err := binary.Read(r, binary.LittleEndian, alphabet); err != nil {
		return 0, fmt.Errorf("%w: alphabet: %v", ErrMalformed, err)
	}
	d.buildCharMap(alphabet)
	if err := binary.Read(r, binary.LittleEndian, &poolSize); err != nil {
		return 0, fmt.Errorf("%w: pool size: %v", ErrMalformed, err)
	}
	return poolSize, nil
}

// WriteTo serializes the trie.
func (t *Multiterm) WriteTo(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := t.writeHeader(bw); err != nil {
		return err
	}
	nodes := make([]multitermDiskNode, len(t.base))
	for i := range nodes {
		nodes[i] = multitermDiskNode{
			Base:   t.base[i],
			Parent: t.parent[i],
			Weight: t.weight[i],
		}
		if t.ending[i] {
			nodes[i].Ending = 1
		}
		if t.special[i] {
			nodes[i].Special = 1
		}
	}
	if err := binary.Write(bw, binary.LittleEndian, nodes); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadMultiterm deserializes a trie written by WriteTo.
func ReadMultiterm(r io.Reader) (*Multiterm, error) {
	t := &Multiterm{}
	poolSize, err := t.readHeader(r)
	if err != nil {
		return nil, err
	}
	nodes := make([]multitermDiskNode, poolSize)
	if err := binary.Read(r, binary.LittleEndian, nodes); err != nil {
		return nil, fmt.Errorf("%w: pool: %v", ErrMalformed, err)
	}
	t.base = make([]int32, poolSize)
	t.parent = make([]int32, poolSize)
	t.weight = make([]float32, poolSize)
	t.ending = make([]bool, poolSize)
	t.special = make([]bool, poolSize)
	for i, n := range nodes {
		t.base[i] = n.Base
		t.parent[i] = n.Parent
		t.weight[i] = n.Weight
		t.ending[i] = n.Ending != 0
		t.special[i] = n.Special != 0
	}
	return t, nil
}

// WriteTo serializes the trie.
func (t *Syllable) WriteTo(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := t.writeHeader(bw); err != nil {
		return err
	}
	nodes := make([]syllableDiskNode, len(t.base))
	for i := range nodes {
		nodes[i] = syllableDiskNode{
			Base:   t.base[i],
			Parent: t.parent[i],
			Weight: t.weight[i],
			Index:  t.index[i],
		}
	}
	if err := binary.Write(bw, binary.LittleEndian, nodes); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadSyllable deserializes a trie written by WriteTo.
func ReadSyllable(r io.Reader) (*Syllable, error) {
	t := &Syllable{}
	poolSize, err := t.readHeader(r)
	if err != nil {
		return nil, err
	}
	nodes := make([]syllableDiskNode, poolSize)
	if err := binary.Read(r, binary.LittleEndian, nodes); err != nil {
		return nil, fmt.Errorf("%w: pool: %v", ErrMalformed, err)
	}
	t.base = make([]int32, poolSize)
	t.parent = make([]int32, poolSize)
	t.weight = make([]float32, poolSize)
	t.index = make([]int32, poolSize)
	for i, n := range nodes {
		t.base[i] = n.Base
		t.parent[i] = n.Parent
		t.weight[i] = n.Weight
		t.index[i] = n.Index
	}
	return t, nil
}

// WriteFile dumps the trie to path.
func (t *Multiterm) WriteFile(path string) error {
	return writeFile(path, t.WriteTo)
}

// WriteFile dumps the trie to path.
func (t *Syllable) WriteFile(path string) error {
	return writeFile(path, t.WriteTo)
}

func writeFile(path string, writeTo func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadMultitermFile loads a trie dump from path.
func ReadMultitermFile(path string) (*Multiterm, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadMultiterm(bufio.NewReader(f))
}

// ReadSyllableFile loads a trie dump from path.
func ReadSyllableFile(path string) (*Syllable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSyllable(bufio.NewReader(f))
}
