// Package trie implements the two trie representations behind the
// tokenizer's dictionaries: a map-based hash trie used at dictionary build
// time, and a compact immutable double-array trie (DAT) used at runtime,
// with binary serialization between the compiler and the loader.
package trie

import (
	"math"
	"sort"

	"github.com/vntok/vntok/internal/vnlang"
)

// HashNode is one build-time trie node. Frequency is -1 until the node is
// marked as a term ending. The remaining fields are payload for the trie
// flavor that owns the node and are ignored by the others.
type HashNode struct {
	Frequency int32
	Children  map[uint32]int32

	SpaceCount int32
	IsSpecial  bool
	Length     int32
}

// HashTrie is the mutable trie the dictionary compiler populates before the
// double-array form is built.
type HashTrie struct {
	Pool     []HashNode
	alphabet map[uint32]struct{}
}

func NewHashTrie() *HashTrie {
	return &HashTrie{
		Pool:     []HashNode{{Frequency: -1}},
		alphabet: map[uint32]struct{}{},
	}
}

func (t *HashTrie) addChild(u int32, c uint32) int32 {
	id := int32(len(t.Pool))
	if t.Pool[u].Children == nil {
		t.Pool[u].Children = map[uint32]int32{}
	}
	t.Pool[u].Children[c] = id
	t.Pool = append(t.Pool, HashNode{Frequency: -1})
	t.alphabet[c] = struct{}{}
	return id
}

// AddTerm walks s creating missing children and accumulates frequency at the
// terminal node, saturating at the int32 maximum. It returns the terminal
// node index.
func (t *HashTrie) AddTerm(s string, frequency int32) int32 {
	cur := int32(0)
	for _, r := range s {
		c := uint32(r)
		next, ok := t.Pool[cur].Children[c]
		if !ok {
			next = t.addChild(cur, c)
		}
		cur = next
	}
	t.markEnding(cur, frequency)
	return cur
}

func (t *HashTrie) markEnding(u, frequency int32) {
	node := &t.Pool[u]
	if node.Frequency >= 0 {
		if node.Frequency < math.MaxInt32-frequency {
			node.Frequency += frequency
		} else {
			node.Frequency = math.MaxInt32
		}
	} else {
		node.Frequency = frequency
	}
}

// Alphabet returns every codepoint used on an edge, ascending.
func (t *HashTrie) Alphabet() []uint32 {
	res := make([]uint32, 0, len(t.alphabet))
	for c := range t.alphabet {
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// AddMultiterm inserts a multi-syllable term with its space count and
// specialness. With addTransformation set, the d/gi- and i/y-transformed
// spelling is inserted too when it differs.
func (t *HashTrie) AddMultiterm(s string, frequency int32, addTransformation, isSpecial bool) {
	spaces := int32(0)
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			spaces++
		}
	}
	end := t.AddTerm(s, frequency)
	t.Pool[end].SpaceCount = spaces
	t.Pool[end].IsSpecial = isSpecial
	if addTransformation {
		if transformed := vnlang.GetTransformationString(s); transformed != s {
			t.AddTerm(transformed, frequency)
		}
	}
}

// AddSyllable inserts a single-word syllable, recording its codepoint count.
func (t *HashTrie) AddSyllable(s string, frequency int32) {
	end := t.AddTerm(s, frequency)
	length := int32(0)
	for range s {
		length++
	}
	t.Pool[end].Length = length
}
