// Package segmenter implements the tokenization engine: candidate
// enumeration over the multi-term trie, the max-weight cover DP, the
// post-pass boundary rewrites, the sticky 2-gram splitter, and the three
// request modes.
package segmenter

import (
	"fmt"

	"github.com/vntok/vntok/internal/vnlang"
)

// Token types.
const (
	TypeWord   int32 = 0
	TypeNumber int32 = 1
	TypeSpace  int32 = 2
	TypePunct  int32 = 3
)

// Segmentation sub-types.
const (
	SegOther  int32 = 0
	SegSkip   int32 = 1
	SegURL    int32 = 2
	SegEndURL int32 = 3
	SegEndSeg int32 = 4
)

// Token is one segmented unit. Every field is an int32 so the flat struct
// can be read across a language boundary without marshalling; the field
// order is part of that contract.
type Token struct {
	NormalizedStart int32
	NormalizedEnd   int32
	OriginalStart   int32
	OriginalEnd     int32
	Type            int32
	SegType         int32
}

func newToken(normalizedStart, normalizedEnd int32) Token {
	return Token{NormalizedStart: normalizedStart, NormalizedEnd: normalizedEnd}
}

func (t Token) isURLRelated() bool {
	return t.SegType == SegURL || t.SegType == SegEndURL
}

// Length returns the token's codepoint count.
func (t Token) Length() int32 {
	return t.NormalizedEnd - t.NormalizedStart
}

// tokenType classifies text[from:to): space, punctuation, number (digits
// with at most one '.' or ','), or word.
func tokenType(text []uint32, from, to int32) int32 {
	if text[from] == ' ' {
		return TypeSpace
	}
	if !vnlang.IsAlphanumeric(text[from]) {
		return TypePunct
	}
	dotCount := 0
	for i := from; i < to; i++ {
		if vnlang.IsDigit(text[i]) {
			continue
		}
		if text[i] == '.' || text[i] == ',' {
			dotCount++
			if dotCount > 1 {
				return TypeWord
			}
		} else {
			return TypeWord
		}
	}
	return TypeNumber
}

var typeNames = map[int32]string{
	TypeWord:   "WORD",
	TypeNumber: "NUMBER",
	TypeSpace:  "SPACE",
	TypePunct:  "PUNCT",
}

var segTypeNames = map[int32]string{
	SegOther:  "OTHER",
	SegSkip:   "SKIP",
	SegURL:    "URL",
	SegEndURL: "END",
	SegEndSeg: "END_SEG",
}

func name(names map[int32]string, v int32) string {
	if s, ok := names[v]; ok {
		return s
	}
	return "UNKNOWN"
}

// FullToken pairs a Token with its rendered text.
type FullToken struct {
	Token
	Text string
}

func (t FullToken) String() string {
	return fmt.Sprintf("%s %s %s [%d-%d]{%d-%d}",
		name(typeNames, t.Type), t.Text, name(segTypeNames, t.SegType),
		t.OriginalStart, t.OriginalEnd, t.NormalizedStart, t.NormalizedEnd)
}
