package trie

import (
	"sort"
)

// dat is the packed double-array layout shared by every trie flavor. Node u
// reaches its child on codepoint c at base[u]+charMap[c]; the edge exists
// iff that slot's parent pointer is u. Root is node 0 with parent -1.
type dat struct {
	base    []int32
	parent  []int32
	charMap []int32
}

// Step resolves the child of u on codepoint c. It returns the child index
// and whether the edge exists, so callers never depend on hidden scratch
// state.
func (d *dat) Step(u int32, c uint32) (int32, bool) {
	if c >= uint32(len(d.charMap)) {
		return 0, false
	}
	slot := d.charMap[c]
	if slot < 0 {
		return 0, false
	}
	v := d.base[u] + slot
	if d.parent[v] != u {
		return 0, false
	}
	return v, true
}

// Walk follows every codepoint of s from the root and reports the final
// node, or false if the walk falls off the trie.
func (d *dat) Walk(s string) (int32, bool) {
	u := int32(0)
	for _, r := range s {
		v, ok := d.Step(u, uint32(r))
		if !ok {
			return 0, false
		}
		u = v
	}
	return u, true
}

func (d *dat) buildCharMap(alphabet []uint32) {
	if len(alphabet) == 0 {
		d.charMap = nil
		return
	}
	d.charMap = make([]int32, alphabet[len(alphabet)-1]+1)
	for i := range d.charMap {
		d.charMap[i] = -1
	}
	for slot, c := range alphabet {
		d.charMap[c] = int32(slot)
	}
}

// buildFromHash packs the hash trie into the double array. The returned
// mapping translates hash-trie node indices to pool indices so flavor
// builders can copy their payloads across.
func (d *dat) buildFromHash(src *HashTrie) (mapping []int32, poolSize int) {
	alphabet := src.Alphabet()
	d.buildCharMap(alphabet)

	positions := construct(src.Pool, d.charMap, len(alphabet))
	last := int32(0)
	for _, p := range positions {
		if p > last {
			last = p
		}
	}
	poolSize = int(last) + len(alphabet)
	if poolSize < 2 {
		poolSize = 2
	}
	d.base = make([]int32, poolSize)
	d.parent = make([]int32, poolSize)
	for i := range d.parent {
		d.parent[i] = -1
	}
	d.base[0] = 1

	// Children are always created after their parent, so ascending order
	// visits every node with its mapping already known.
	mapping = make([]int32, len(src.Pool))
	for i := range src.Pool {
		for c, child := range src.Pool[i].Children {
			index := d.base[mapping[i]] + d.charMap[c]
			mapping[child] = index
			d.base[index] = positions[child]
			d.parent[index] = mapping[i]
		}
	}
	return mapping, poolSize
}

// slotPacker finds, for each sibling set, a base so that no two sibling sets
// collide. free[i] holds the base positions whose slot i is unoccupied;
// probing starts from the child slot with the fewest free positions to keep
// the candidate scan short. Bases are handed out from [1, curEnd); curEnd
// grows whenever a placement reaches past it.
type slotPacker struct {
	free         []map[int32]struct{}
	occupied     []bool
	curEnd       int32
	alphabetSize int32
}

func newSlotPacker(alphabetSize int) *slotPacker {
	p := &slotPacker{
		free:         make([]map[int32]struct{}, alphabetSize),
		occupied:     make([]bool, alphabetSize+2),
		curEnd:       2,
		alphabetSize: int32(alphabetSize),
	}
	for i := range p.free {
		p.free[i] = map[int32]struct{}{1: {}}
	}
	return p
}

func (p *slotPacker) isOccupied(pos int32) bool {
	return pos < int32(len(p.occupied)) && p.occupied[pos]
}

// grow makes every base up to end available, granting each new base the
// slots that are currently unoccupied.
func (p *slotPacker) grow(end int32) {
	for ; p.curEnd <= end; p.curEnd++ {
		for i := int32(0); i < p.alphabetSize; i++ {
			if !p.isOccupied(p.curEnd + i) {
				p.free[i][p.curEnd] = struct{}{}
			}
		}
	}
}

// place picks a base for the sibling slot offsets in mask and marks the
// chosen positions occupied.
func (p *slotPacker) place(mask []int32) int32 {
	sort.Slice(mask, func(x, y int) bool {
		return len(p.free[mask[x]]) < len(p.free[mask[y]])
	})

	foundPos := int32(-1)
	for cand := range p.free[mask[0]] {
		good := true
		for _, m := range mask[1:] {
			if _, ok := p.free[m][cand]; !ok {
				good = false
				break
			}
		}
		if good {
			foundPos = cand
			break
		}
	}
	if foundPos == -1 {
		foundPos = p.curEnd
	}

	maxOffset := mask[0]
	for _, m := range mask[1:] {
		if m > maxOffset {
			maxOffset = m
		}
	}
	p.grow(foundPos + maxOffset)

	for _, offset := range mask {
		pos := foundPos + offset
		for int32(len(p.occupied)) <= pos {
			p.occupied = append(p.occupied, false)
		}
		p.occupied[pos] = true
		// Every base whose window covers pos loses that slot.
		for affected := pos; affected > pos-p.alphabetSize && affected >= 1; affected-- {
			delete(p.free[pos-affected], affected)
		}
	}
	return foundPos
}

// construct assigns a base position to every hash-trie node; childless nodes
// get base 0, which is never a valid child position.
func construct(pool []HashNode, charMap []int32, alphabetSize int) []int32 {
	packer := newSlotPacker(alphabetSize)
	res := make([]int32, len(pool))
	mask := make([]int32, 0, alphabetSize)
	for i := range pool {
		if len(pool[i].Children) == 0 {
			res[i] = 0
			continue
		}
		mask = mask[:0]
		for c := range pool[i].Children {
			mask = append(mask, charMap[c])
		}
		res[i] = packer.place(mask)
	}
	return res
}
