package segmenter

import (
	"github.com/vntok/vntok/internal/vnlang"
)

// runTokenize partitions text by a max-weight cover DP over the candidates
// the enumerator yields, then rewrites token boundaries for the special
// forms (percent, ordinal, operator), detects domains/URLs, and
// sub-tokenizes URL bodies through the sticky splitter.
//
// Tokens accumulate right-to-left during traceback; the final reversal (or
// the transforming filler pass) restores forward order before returning.
func (e *Engine) runTokenize(text []uint32, tokens []Token, spacePositions []int32,
	forTransforming, tokenizeSticky, skipPunctFillers bool) ([]Token, []int32) {

	length := len(text)
	bestScores := make([]float64, length+1)
	trace := make([]int32, length+1)
	isSpecial := make([]bool, length+1)
	for i := range trace {
		trace[i] = -1
	}

	// bestScores[i] is the maximum cumulative weight over a partition of
	// text[:i]; trace[i] is the start of the token ending at i, -1 when
	// position i is skipped as punctuation.
	lastScore := 0.0
	shouldGo := true
	for i := 0; i < length; i++ {
		if trace[i] >= 0 {
			lastScore = bestScores[i]
			shouldGo = true
		}
		if !vnlang.IsAlphanumeric(text[i]) {
			continue
		}
		if !shouldGo {
			continue
		}
		shouldGo = false
		state := newEnumState()
		tok := e.nextToken(text, i, &state)
		for tok.right >= 0 {
			if bestScores[tok.right] < lastScore+tok.weight {
				bestScores[tok.right] = lastScore + tok.weight
				trace[tok.right] = int32(i)
				isSpecial[tok.right] = tok.isSpecial
			}
			if !tok.hasMore {
				break
			}
			tok = e.nextToken(text, int(tok.right), &state)
		}
	}

	nextIsDomain := false
	for i := int32(length); i > 0; {
		if trace[i] < 0 {
			i--
			continue
		}
		tokens = append(tokens, newToken(trace[i], i))
		last := len(tokens) - 1
		tokens[last].Type = tokenType(text, trace[i], i)
		if !tokenizeSticky {
			// Sticky segmentation only happens inside URLs; the URL path
			// disables it for the recursive pass.
			i = trace[i]
			continue
		}
		if isSpecial[i] {
			tokens[last].SegType = SegSkip
		} else {
			if tokens[last].Type == TypeNumber {
				if int(tokens[last].NormalizedEnd) < length && text[tokens[last].NormalizedEnd] == '%' {
					tokens[last].NormalizedEnd++
					tokens[last].Type = TypeWord
					tokens[last].SegType = SegSkip
				} else if len(tokens) > 1 {
					// Ordinal forms: the 2-letter suffix sits directly to
					// the right, already emitted.
					suffix := &tokens[last-1]
					if suffix.NormalizedStart == tokens[last].NormalizedEnd &&
						suffix.NormalizedEnd-suffix.NormalizedStart == 2 &&
						isOrdinalSuffix(text[suffix.NormalizedStart], text[suffix.NormalizedStart+1]) {
						tokens[last].NormalizedEnd += 2
						tokens[last].Type = TypeWord
						tokens[last].SegType = SegSkip
						tokens[last-1] = tokens[last]
						tokens = tokens[:last]
						last--
					}
				}
			}

			// Operator forms ([a-z]|\d+)(^|+)([a-z]|\d+): x^y, a+b, 12+13.
			if len(tokens) > 1 {
				right := &tokens[last-1]
				if int(tokens[last].NormalizedEnd) < length &&
					isSpecialOperatorSign(text[tokens[last].NormalizedEnd]) &&
					tokens[last].NormalizedEnd+1 == right.NormalizedStart &&
					isSmallNumberOrAzChar(text, tokens[last]) &&
					isSmallNumberOrAzChar(text, *right) {
					tokens[last].NormalizedEnd = right.NormalizedEnd
					tokens[last].Type = TypeWord
					tokens[last].SegType = SegSkip
					tokens[last-1] = tokens[last]
					tokens = tokens[:last]
					last--
				}
			}
		}
		if tokens[last].Type == TypeNumber {
			tokens[last].SegType = SegSkip
		}

		if nextIsDomain {
			if isDomainField(text, tokens[last].NormalizedStart, tokens[last].NormalizedEnd) {
				tokens[last].SegType = SegEndURL
			} else {
				// A domain suffix was seen to the right: this token is the
				// host or a path component.
				tokens[last].SegType = SegURL
				lastSpacePos := findLastSpacePos(text, tokens[last])
				if lastSpacePos == -1 {
					nextIsDomain = tokens[last].NormalizedStart > 0 &&
						text[tokens[last].NormalizedStart-1] == '.'
				} else {
					saveStart := tokens[last].NormalizedStart
					tokens[last].NormalizedStart = lastSpacePos + 1
					tokens = append(tokens, newToken(saveStart, lastSpacePos))
					nextIsDomain = false
				}
			}
		} else {
			left := tokens[last].NormalizedStart
			right := tokens[last].NormalizedEnd
			if isDomainEnd(text, left, right) {
				if isDomainField(text, left, right) {
					// Walk the dot-joined run to the right and mark it as
					// one URL.
					till := len(tokens) - 2
					for till >= 0 && tokens[till].NormalizedStart == tokens[till+1].NormalizedEnd+1 &&
						text[tokens[till].NormalizedStart-1] == '.' {
						till--
					}
					till++
					tokens[till].SegType = SegSkip
					till++
					for till < len(tokens) {
						tokens[till].SegType = SegEndURL
						till++
					}
				} else {
					tokens[last].SegType = SegSkip
				}
				nextIsDomain = true
			}
		}

		lastToken := tokens[len(tokens)-1]
		if lastToken.SegType == SegURL && len(e.PairScores) > 0 {
			tokens, spacePositions = e.subSplitURLToken(text, tokens, spacePositions, lastToken)
		}

		i = trace[i]
	}

	if forTransforming {
		tokens = spliceFillers(text, tokens, length, skipPunctFillers)
	} else {
		reverseTokens(tokens)
	}
	if tokenizeSticky {
		reverseInt32(spacePositions)
	}
	return tokens, spacePositions
}

// subSplitURLToken runs the sticky splitter over a URL token body and, when
// it finds split points, re-tokenizes the spaced-out body and replaces the
// token with the resulting sub-tokens, re-deriving their offsets back into
// the unspaced coordinate.
func (e *Engine) subSplitURLToken(text []uint32, tokens []Token, spacePositions []int32, lastToken Token) ([]Token, []int32) {
	subSpacePositions := e.tokenizePureSticky(
		text[lastToken.NormalizedStart:lastToken.NormalizedEnd], nil)
	if len(subSpacePositions) == 0 {
		return tokens, spacePositions
	}

	subtext := make([]uint32, 0,
		int(lastToken.NormalizedEnd-lastToken.NormalizedStart)+len(subSpacePositions))
	it := 0
	for pos := lastToken.NormalizedStart; pos < lastToken.NormalizedEnd; pos++ {
		if it < len(subSpacePositions) && pos-lastToken.NormalizedStart == subSpacePositions[it] {
			subtext = append(subtext, ' ')
			it++
		}
		subtext = append(subtext, text[pos])
	}

	subranges, _ := e.runTokenize(subtext, nil, nil, false, false, false)

	tokens = tokens[:len(tokens)-1]
	si := len(subSpacePositions) - 1
	for rangeID := len(subranges) - 1; rangeID >= 0; rangeID-- {
		tokens = append(tokens, subranges[rangeID])
		sub := &tokens[len(tokens)-1]
		sub.SegType = lastToken.SegType
		for si >= 0 && subSpacePositions[si]+int32(si) >= sub.NormalizedEnd {
			si--
		}
		sub.NormalizedEnd += lastToken.NormalizedStart
		sub.NormalizedEnd -= int32(si + 1)
		for si >= 0 && subSpacePositions[si]+int32(si) > sub.NormalizedStart {
			spacePositions = append(spacePositions,
				subSpacePositions[si]+lastToken.NormalizedStart)
			si--
		}
		sub.NormalizedStart += lastToken.NormalizedStart
		sub.NormalizedStart -= int32(si + 1)
	}
	return tokens, spacePositions
}

// spliceFillers replays the reverse-accumulated tokens in forward order,
// inserting one-codepoint SPACE/PUNCT fillers between content tokens.
// Fillers are withheld inside URL runs. Spaces inside kept tokens become
// underscores; pre-existing underscores inside special terms become '~'.
func spliceFillers(text []uint32, temp []Token, length int, skipPunctFillers bool) []Token {
	sumLength := 0
	for _, t := range temp {
		sumLength += int(t.Length())
	}
	tokens := make([]Token, 0, length-sumLength+len(temp))
	lastPos := int32(0)
	insideURL := false
	for len(temp) > 0 {
		back := temp[len(temp)-1]
		withheld := insideURL && (back.isURLRelated() ||
			(back.SegType == SegSkip && back.NormalizedStart > 0 && text[back.NormalizedStart-1] == '.'))
		if !skipPunctFillers && !withheld {
			for lastPos < back.NormalizedStart {
				filler := newToken(lastPos, lastPos+1)
				if text[lastPos] == ' ' {
					filler.Type = TypeSpace
				} else {
					filler.Type = TypePunct
				}
				tokens = append(tokens, filler)
				lastPos++
			}
		}
		tokens = append(tokens, back)
		for i := back.NormalizedStart; i < back.NormalizedEnd; i++ {
			if text[i] == '_' {
				text[i] = '~'
			}
			if text[i] == ' ' {
				text[i] = '_'
			}
		}
		lastPos = back.NormalizedEnd
		insideURL = back.isURLRelated()
		temp = temp[:len(temp)-1]
	}
	if !skipPunctFillers {
		for lastPos < int32(length) {
			filler := newToken(lastPos, lastPos+1)
			if text[lastPos] == ' ' {
				filler.Type = TypeSpace
			} else {
				filler.Type = TypePunct
			}
			tokens = append(tokens, filler)
			lastPos++
		}
	}
	return tokens
}

func reverseTokens(tokens []Token) {
	for i, j := 0, len(tokens)-1; i < j; i, j = i+1, j-1 {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}
}

func reverseInt32(a []int32) {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}
