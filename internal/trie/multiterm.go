package trie

import (
	"math"
)

// multitermParams holds the (freq_power, len_power) pairs indexed by space
// count. Space counts beyond four share the last pair.
var multitermParams = [10]float64{0.38, 1, 0.14, 2.59, 1.42, 4.42, 1.45, 0.23, 0.1, 1}

func multitermWeight(frequency, spaceCount int32) float32 {
	s := spaceCount
	if s > 4 {
		s = 4
	}
	freqPower := multitermParams[2*s]
	lenPower := multitermParams[2*s+1]
	return float32(math.Pow(math.Log2(float64(frequency)+3), freqPower) *
		math.Pow(float64(s)+1, lenPower))
}

// Multiterm is the runtime dictionary of multi-syllable terms. Every node
// carries a weight (0.5 for non-terminal prefixes), a terminal flag, and the
// special flag that shields a term from segmentation rewrites.
type Multiterm struct {
	dat
	weight  []float32
	ending  []bool
	special []bool
}

// BuildMultiterm packs a populated hash trie into its double-array form,
// computing terminal weights from frequency and space count.
func BuildMultiterm(src *HashTrie) *Multiterm {
	t := &Multiterm{}
	mapping, size := t.buildFromHash(src)
	t.weight = make([]float32, size)
	t.ending = make([]bool, size)
	t.special = make([]bool, size)
	for i := range src.Pool {
		node := &src.Pool[i]
		u := mapping[i]
		if node.Frequency >= 0 {
			t.weight[u] = multitermWeight(node.Frequency, node.SpaceCount)
			t.ending[u] = true
		} else {
			t.weight[u] = 0.5
		}
		t.special[u] = node.IsSpecial
	}
	return t
}

func (t *Multiterm) Weight(u int32) float32 { return t.weight[u] }
func (t *Multiterm) IsEnding(u int32) bool  { return t.ending[u] }
func (t *Multiterm) IsSpecial(u int32) bool { return t.special[u] }
