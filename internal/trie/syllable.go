package trie

import (
	"math"
)

// Syllable self-weight parameters: coefficient, length power, frequency
// power.
var syllableParams = [3]float64{8.68047, 1.49414, 0.02}

func syllableWeight(frequency, length int32) float32 {
	return float32(syllableParams[0] *
		math.Pow(float64(length), syllableParams[1]) *
		math.Pow(float64(frequency), syllableParams[2]))
}

// Syllable is the runtime trie of known single-word syllables. Terminal
// nodes carry a self weight; the compiler assigns each known nontone
// syllable an index into the pair-score matrix in a second pass.
type Syllable struct {
	dat
	weight []float32
	index  []int32
}

// BuildSyllable packs a populated hash trie into its double-array form. All
// indices start unassigned (-1) until UpdateIndex is called.
func BuildSyllable(src *HashTrie) *Syllable {
	t := &Syllable{}
	mapping, size := t.buildFromHash(src)
	t.weight = make([]float32, size)
	t.index = make([]int32, size)
	for i := range t.index {
		t.index[i] = -1
	}
	for i := range src.Pool {
		node := &src.Pool[i]
		u := mapping[i]
		if node.Frequency >= 0 {
			t.weight[u] = syllableWeight(node.Frequency, node.Length)
		} else {
			t.weight[u] = 0.5
		}
	}
	return t
}

// UpdateIndex assigns index to the node reached by s and returns the
// codepoint length of s, or 0 when s is not in the trie.
func (t *Syllable) UpdateIndex(s string, index int32) int32 {
	u := int32(0)
	length := int32(0)
	for _, r := range s {
		v, ok := t.Step(u, uint32(r))
		if !ok {
			return 0
		}
		u = v
		length++
	}
	t.index[u] = index
	return length
}

func (t *Syllable) Weight(u int32) float32 { return t.weight[u] }
func (t *Syllable) Index(u int32) int32    { return t.index[u] }
