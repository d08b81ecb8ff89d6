package trie

// StringSet is a small immutable membership trie over codepoint slices,
// used for the baked-in domain suffix tables.
type StringSet struct {
	dat
	ending []bool
}

// NewStringSet builds the set from literal terms.
func NewStringSet(terms ...string) *StringSet {
	src := NewHashTrie()
	for _, s := range terms {
		src.AddTerm(s, 1)
	}
	t := &StringSet{}
	mapping, size := t.buildFromHash(src)
	t.ending = make([]bool, size)
	for i := range src.Pool {
		if src.Pool[i].Frequency >= 0 {
			t.ending[mapping[i]] = true
		}
	}
	return t
}

// Contains reports whether text[from:to] is a member.
func (t *StringSet) Contains(text []uint32, from, to int) bool {
	u := int32(0)
	for i := from; i < to; i++ {
		v, ok := t.Step(u, text[i])
		if !ok {
			return false
		}
		u = v
	}
	return t.ending[u]
}
