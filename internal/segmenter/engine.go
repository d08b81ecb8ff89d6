package segmenter

import (
	"github.com/vntok/vntok/internal/sparse"
	"github.com/vntok/vntok/internal/trie"
	"github.com/vntok/vntok/internal/vnlang"
)

// Engine segments codepoint buffers against immutable compiled
// dictionaries. It is read-only after construction; every request owns its
// own working state.
type Engine struct {
	Multiterm  *trie.Multiterm
	Syllable   *trie.Syllable
	PairScores sparse.Matrix
}

// candidate is one possible token ending position. right is -1 when the
// enumerator has nothing more to offer. hasMore means the caller may resume
// the walk past a space to form a longer multi-word term.
type candidate struct {
	right     int32
	weight    float64
	hasMore   bool
	isSpecial bool
}

func noCandidate() candidate {
	return candidate{right: -1, weight: 0.5}
}

// enumState carries the walk state between resumed nextToken calls for the
// same start position.
type enumState struct {
	curNode          int32
	lastDelimiterPos int32
	numericPrefix    bool
	inDict           bool
}

func newEnumState() enumState {
	return enumState{lastDelimiterPos: -1, inDict: true}
}

// nextToken yields the next candidate token ending from position from. It
// follows the multi-term trie as far as it can; once the buffer falls out
// of the dictionary it switches to heuristics: numeric prefixes swallow
// digit runs and decimal groups, otherwise the token is cut at the last
// delimiter or extended through the alphanumeric run.
func (e *Engine) nextToken(text []uint32, from int, state *enumState) candidate {
	length := len(text)
	for i := from; i <= length; i++ {
		if i != from && !vnlang.IsAlphanumeric(text[i-1]) {
			state.lastDelimiterPos = int32(i - 1)
		}

		var child int32
		inTrie := false
		if state.inDict && i < length {
			child, inTrie = e.Multiterm.Step(state.curNode, text[i])
		}
		if inTrie {
			// A space inside a dictionary walk is a cut point; the caller
			// may resume to try the longer multi-word term.
			if text[i] == ' ' && i != from {
				return candidate{
					right:     int32(i),
					weight:    float64(e.Multiterm.Weight(state.curNode)),
					hasMore:   true,
					isSpecial: e.Multiterm.IsSpecial(state.curNode),
				}
			}
			if vnlang.IsDigit(text[i]) {
				if i == from {
					state.numericPrefix = true
				}
			} else {
				state.numericPrefix = false
			}
			state.curNode = child
			continue
		}

		state.inDict = false
		if state.numericPrefix {
			if i == length {
				return candidate{
					right:     int32(i),
					weight:    float64(e.Multiterm.Weight(state.curNode)),
					isSpecial: e.Multiterm.IsSpecial(state.curNode),
				}
			}
			for i < length && vnlang.IsDigit(text[i]) {
				i++
			}
			// Decimal and thousands groups: "3.1", "99,99".
			for i+1 < length && (text[i] == ',' || text[i] == '.') && vnlang.IsDigit(text[i+1]) {
				i++
				for i < length && vnlang.IsDigit(text[i]) {
					i++
				}
			}
			// A letter run straight after the number forms a compound.
			if i < length && vnlang.IsAlphabetic(text[i]) {
				if i != from {
					return candidate{right: int32(i), weight: 0.5, hasMore: true}
				}
				alphabeticTill := i + 1
				for alphabeticTill < length && vnlang.IsAlphanumeric(text[alphabeticTill]) {
					alphabeticTill++
				}
				return candidate{
					right:  int32(alphabeticTill),
					weight: 0.5 + float64(max32(0, alphabeticTill-i-2))*0.25,
				}
			}
			return candidate{right: int32(i), weight: 0.5}
		}

		if i == length || !vnlang.IsAlphanumeric(text[i]) {
			if i == from {
				continue
			}
			// A full dictionary word, or no delimiter to fall back to.
			if e.Multiterm.IsEnding(state.curNode) || state.lastDelimiterPos == -1 {
				return candidate{
					right:     int32(i),
					weight:    float64(e.Multiterm.Weight(state.curNode)),
					isSpecial: e.Multiterm.IsSpecial(state.curNode),
				}
			}
			return candidate{
				right:     state.lastDelimiterPos,
				weight:    float64(e.Multiterm.Weight(state.curNode)),
				isSpecial: e.Multiterm.IsSpecial(state.curNode),
			}
		}

		// Enough buffer built and the walk sits on a letter-to-digit
		// transition: cut at the dictionary word.
		if i-from > 2 && e.Multiterm.IsEnding(state.curNode) &&
			vnlang.IsAlphabetic(text[i-1]) && !vnlang.IsAlphabetic(text[i]) {
			return candidate{
				right:     int32(i),
				weight:    float64(e.Multiterm.Weight(state.curNode)),
				isSpecial: e.Multiterm.IsSpecial(state.curNode),
			}
		}

		if state.lastDelimiterPos == -1 {
			for i < length && vnlang.IsAlphanumeric(text[i]) {
				i++
			}
			return candidate{right: int32(i), weight: 0.5}
		}
		if text[state.lastDelimiterPos] != ' ' {
			if e.Multiterm.IsEnding(state.curNode) {
				return candidate{
					right:     int32(i),
					weight:    float64(e.Multiterm.Weight(state.curNode)),
					isSpecial: e.Multiterm.IsSpecial(state.curNode),
				}
			}
			for i < length && vnlang.IsAlphanumeric(text[i]) {
				i++
			}
			return candidate{right: int32(i), weight: 0.5}
		}
		return noCandidate()
	}
	return noCandidate()
}

func max32(a, b int) int {
	if a > b {
		return a
	}
	return b
}
