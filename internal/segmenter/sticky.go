package segmenter

import (
	"github.com/vntok/vntok/internal/vnlang"
)

// maxTokenLength caps the syllable length the sticky DP considers.
const maxTokenLength = 25

// tokenizePureSticky splits one alphanumeric run into syllables with a
// 2-gram DP: state (i, l) is position i with a last syllable of length l,
// scored by the syllable self weight plus the pair bonus from the sparse
// matrix when both syllables carry indices. Split positions are appended to
// spacePositions in run-local coordinates, ascending; a boundary between
// two adjacent digits is never emitted.
func (e *Engine) tokenizePureSticky(text []uint32, spacePositions []int32) []int32 {
	length := len(text)
	if length <= 0 {
		return spacePositions
	}
	begin := len(spacePositions)

	bestScores := make([][]float64, length+1)
	allTokenLengths := make([][]int32, length+1)
	trace := make([][]int32, length+1)
	syllNode := make([][]int32, length+1)
	for i := 0; i <= length; i++ {
		width := minInt(maxTokenLength, i) + 1
		bestScores[i] = make([]float64, width)
		trace[i] = make([]int32, width)
		syllNode[i] = make([]int32, width)
		for j := 0; j < width; j++ {
			bestScores[i][j] = -1
			trace[i][j] = -1
			syllNode[i][j] = -1
		}
	}

	bestScores[0][0] = 0
	allTokenLengths[0] = append(allTokenLengths[0], 0)
	for i := 0; i < length; i++ {
		if len(allTokenLengths[i]) > 0 {
			// Precompute the trie walk for every syllable starting at i.
			next := int32(0)
			for j := i; j < i+maxTokenLength && j < length; j++ {
				child, ok := e.Syllable.Step(next, text[j])
				if !ok {
					break
				}
				next = child
				syllNode[j+1][j-i+1] = next
			}
		}

		for _, lastLen := range allTokenLengths[i] {
			lastNode := syllNode[i][lastLen]
			for j := i; j < i+maxTokenLength && j < length; j++ {
				selfLen := int32(j - i + 1)
				nextNode := syllNode[j+1][selfLen]
				if nextNode == -1 {
					break
				}

				curScore := float64(e.Syllable.Weight(nextNode))
				if lastNode >= 0 && e.Syllable.Index(lastNode) >= 0 && e.Syllable.Index(nextNode) >= 0 {
					curScore += float64(e.PairScores.Get(
						e.Syllable.Index(lastNode), e.Syllable.Index(nextNode)))
				}

				total := bestScores[i][lastLen] + curScore
				if bestScores[j+1][selfLen] < total {
					bestScores[j+1][selfLen] = total
					trace[j+1][selfLen] = lastLen
					if lens := allTokenLengths[j+1]; len(lens) == 0 || lens[len(lens)-1] != selfLen {
						allTokenLengths[j+1] = append(allTokenLengths[j+1], selfLen)
					}
				}
			}
		}
	}

	lastLen := int32(0)
	for j := 1; j < len(bestScores[length]); j++ {
		if trace[length][j] >= 0 && bestScores[length][lastLen] < bestScores[length][j] {
			lastLen = int32(j)
		}
	}
	for i, j := length, lastLen; i > 0; {
		if trace[i][j] < 0 {
			break
		}
		newI := i - int(j)
		if newI != 0 {
			if !(vnlang.IsDigit(text[newI-1]) && vnlang.IsDigit(text[newI])) {
				spacePositions = append(spacePositions, int32(newI))
			}
		}
		j = trace[i][j]
		i = newI
	}

	reverseInt32(spacePositions[begin:])
	return spacePositions
}

// StickySplit applies the sticky splitter to every maximal alphanumeric run
// of text, shifting split positions back into global coordinates.
func (e *Engine) StickySplit(text []uint32) []int32 {
	var spacePositions []int32
	pushResults := func(left, right int) {
		start := len(spacePositions)
		spacePositions = e.tokenizePureSticky(text[left:right], spacePositions)
		for i := start; i < len(spacePositions); i++ {
			spacePositions[i] += int32(left)
		}
	}

	lastNonAlphanumeric := -1
	for i := 0; i < len(text); i++ {
		if !vnlang.IsAlphanumeric(text[i]) {
			if lastNonAlphanumeric+1 != i {
				pushResults(lastNonAlphanumeric+1, i)
			}
			lastNonAlphanumeric = i
		}
	}
	if lastNonAlphanumeric+1 != len(text) {
		pushResults(lastNonAlphanumeric+1, len(text))
	}
	return spacePositions
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
