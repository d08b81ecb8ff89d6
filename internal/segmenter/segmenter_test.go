package segmenter

import (
	"math"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vntok/vntok/internal/sparse"
	"github.com/vntok/vntok/internal/trie"
	"github.com/vntok/vntok/internal/vnlang"
)

func TestMain(m *testing.M) {
	vnlang.InitSimple()
	os.Exit(m.Run())
}

// newTestEngine builds an engine over a small in-memory dictionary. The
// syllable set carries nontone indices in listed order and a pair bonus for
// every adjacent pair in the list.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	mt := trie.NewHashTrie()
	for s, freq := range map[string]int32{
		"hà":     500,
		"nội":    400,
		"hà nội": 100000,
		"hoc":    200,
		"sinh":   300,
		"is":     1000,
		"up":     1000,
		"place":  800,
		"và":     2000,
		"1":      50,
		"9":      50,
		"2":      50,
	} {
		mt.AddMultiterm(s, freq, false, false)
	}
	for _, s := range []string{"c++", "k+", "18+"} {
		mt.AddMultiterm(s, math.MaxInt32, false, true)
	}

	sy := trie.NewHashTrie()
	syllables := []string{"ha", "noi", "hoc", "sinh", "web", "xem", "phim"}
	for _, s := range syllables {
		sy.AddSyllable(s, 500)
	}
	syllable := trie.BuildSyllable(sy)
	matrix := sparse.NewMatrix(len(syllables))
	for i, s := range syllables {
		require.Equal(t, int32(len(s)), syllable.UpdateIndex(s, int32(i)))
	}
	matrix.Set(0, 1, 30)  // ha-noi
	matrix.Set(2, 3, 30)  // hoc-sinh
	matrix.Set(5, 6, 30)  // xem-phim
	return &Engine{
		Multiterm:  trie.BuildMultiterm(mt),
		Syllable:   syllable,
		PairScores: matrix,
	}
}

func segmentText(t *testing.T, e *Engine, input string, forTransforming bool, mode int32) []Token {
	t.Helper()
	text, originalPos := vnlang.Normalize(input)
	r, err := e.Handle(text, originalPos, forTransforming, mode, false)
	require.NoError(t, err)
	return r.Tokens
}

type wantToken struct {
	text    string
	typ     int32
	segType int32
}

func checkTokens(t *testing.T, input string, tokens []Token, want []wantToken) {
	t.Helper()
	text, _ := vnlang.Normalize(input)
	got := make([]wantToken, len(tokens))
	for i, tok := range tokens {
		got[i] = wantToken{
			text:    vnlang.String(text[tok.NormalizedStart:tok.NormalizedEnd]),
			typ:     tok.Type,
			segType: tok.SegType,
		}
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(wantToken{})); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentMultiterm(t *testing.T) {
	e := newTestEngine(t)
	tokens := segmentText(t, e, "Hà Nội", false, ModeNormal)
	checkTokens(t, "Hà Nội", tokens, []wantToken{
		{text: "hà nội", typ: TypeWord, segType: SegOther},
	})
}

func TestSegmentOrdinal(t *testing.T) {
	e := newTestEngine(t)
	tokens := segmentText(t, e, "1st place", false, ModeNormal)
	checkTokens(t, "1st place", tokens, []wantToken{
		{text: "1st", typ: TypeWord, segType: SegSkip},
		{text: "place", typ: TypeWord, segType: SegOther},
	})
}

func TestSegmentOperator(t *testing.T) {
	e := newTestEngine(t)
	tokens := segmentText(t, e, "x^2 + 1", false, ModeNormal)
	checkTokens(t, "x^2 + 1", tokens, []wantToken{
		{text: "x^2", typ: TypeWord, segType: SegSkip},
		{text: "1", typ: TypeNumber, segType: SegSkip},
	})
}

func TestSegmentPercent(t *testing.T) {
	e := newTestEngine(t)
	tokens := segmentText(t, e, "99,99%", false, ModeNormal)
	checkTokens(t, "99,99%", tokens, []wantToken{
		{text: "99,99%", typ: TypeWord, segType: SegSkip},
	})
}

func TestSegmentNumber(t *testing.T) {
	e := newTestEngine(t)
	tokens := segmentText(t, e, "95 kg", false, ModeNormal)
	require.NotEmpty(t, tokens)
	assert.Equal(t, TypeNumber, tokens[0].Type)
	assert.Equal(t, SegSkip, tokens[0].SegType)
}

func TestSegmentDomain(t *testing.T) {
	e := newTestEngine(t)
	tokens := segmentText(t, e, "abc.com is up", false, ModeNormal)
	checkTokens(t, "abc.com is up", tokens, []wantToken{
		{text: "abc", typ: TypeWord, segType: SegURL},
		{text: "com", typ: TypeWord, segType: SegSkip},
		{text: "is", typ: TypeWord, segType: SegOther},
		{text: "up", typ: TypeWord, segType: SegOther},
	})
}

func TestSegmentSpecialTerm(t *testing.T) {
	e := newTestEngine(t)
	tokens := segmentText(t, e, "is c++ up", false, ModeNormal)
	checkTokens(t, "is c++ up", tokens, []wantToken{
		{text: "is", typ: TypeWord, segType: SegOther},
		{text: "c++", typ: TypeWord, segType: SegSkip},
		{text: "up", typ: TypeWord, segType: SegOther},
	})
}

func TestSegmentHost(t *testing.T) {
	e := newTestEngine(t)
	text, originalPos := vnlang.Normalize("a.b.co")
	r, err := e.Handle(text, originalPos, false, ModeHost, false)
	require.NoError(t, err)
	require.Len(t, r.Tokens, 3)
	for i, want := range []string{"a", "b", "co"} {
		tok := r.Tokens[i]
		assert.Equal(t, want, vnlang.String(r.Text[tok.NormalizedStart:tok.NormalizedEnd]))
	}
	// Original offsets still point into "a.b.co".
	assert.Equal(t, int32(0), r.OriginalPos[r.Tokens[0].NormalizedStart])
	assert.Equal(t, int32(2), r.OriginalPos[r.Tokens[1].NormalizedStart])
	assert.Equal(t, int32(4), r.OriginalPos[r.Tokens[2].NormalizedStart])
}

func TestSegmentInvalidMode(t *testing.T) {
	e := newTestEngine(t)
	text, originalPos := vnlang.Normalize("abc")
	_, err := e.Handle(text, originalPos, false, 7, false)
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestStickySplit(t *testing.T) {
	e := newTestEngine(t)
	text, _ := vnlang.Normalize("hocsinh")
	assert.Equal(t, []int32{3}, e.StickySplit(text))

	text, _ = vnlang.Normalize("xemphim hocsinh")
	assert.Equal(t, []int32{3, 11}, e.StickySplit(text))
}

func TestStickySplitPositionsSorted(t *testing.T) {
	e := newTestEngine(t)
	text, _ := vnlang.Normalize("hanoihocsinh")
	positions := e.StickySplit(text)
	require.NotEmpty(t, positions)
	for i := 1; i < len(positions); i++ {
		assert.Less(t, positions[i-1], positions[i])
	}
	for _, p := range positions {
		assert.Greater(t, p, int32(0))
		assert.Less(t, p, int32(len(text)))
	}
}

func TestStickySplitNeverBetweenDigits(t *testing.T) {
	e := newTestEngine(t)
	// Digit runs stay glued even when the trie knows nothing about them.
	text, _ := vnlang.Normalize("hoc123sinh")
	for _, p := range e.StickySplit(text) {
		if p > 0 && p < int32(len(text)) {
			digits := vnlang.IsDigit(text[p-1]) && vnlang.IsDigit(text[p])
			assert.False(t, digits, "split between digits at %d", p)
		}
	}
}

func TestSegmentURLMode(t *testing.T) {
	e := newTestEngine(t)
	input := "http://hocsinh.vn/xemphim"
	text, originalPos := vnlang.Normalize(input)
	r, err := e.Handle(text, originalPos, false, ModeURL, false)
	require.NoError(t, err)
	require.NotEmpty(t, r.Tokens)

	var texts []string
	for _, tok := range r.Tokens {
		texts = append(texts, vnlang.String(r.Text[tok.NormalizedStart:tok.NormalizedEnd]))
	}
	assert.Contains(t, texts, "hoc")
	assert.Contains(t, texts, "sinh")
	assert.Contains(t, texts, "xem")
	assert.Contains(t, texts, "phim")

	// Every token's original byte range lies inside the input.
	for _, tok := range r.Tokens {
		start := r.OriginalPos[tok.NormalizedStart]
		end := r.OriginalPos[tok.NormalizedEnd]
		assert.GreaterOrEqual(t, start, int32(0))
		assert.LessOrEqual(t, end, int32(len(input)))
		assert.LessOrEqual(t, start, end)
	}
}

func TestTokensOrderedAndDisjoint(t *testing.T) {
	e := newTestEngine(t)
	for _, input := range []string{
		"Hà Nội và hocsinh",
		"1st place is up",
		"x^2 + 1 = 9",
		"abc.com is up",
		"...!!!",
		"",
	} {
		tokens := segmentText(t, e, input, false, ModeNormal)
		for i := 1; i < len(tokens); i++ {
			assert.GreaterOrEqual(t, tokens[i].NormalizedStart, tokens[i-1].NormalizedEnd,
				"input %q", input)
			assert.Greater(t, tokens[i].NormalizedStart, tokens[i-1].NormalizedStart,
				"input %q", input)
		}
		for _, tok := range tokens {
			assert.LessOrEqual(t, tok.NormalizedStart, tok.NormalizedEnd, "input %q", input)
		}
	}
}

func TestNumberTokenInvariant(t *testing.T) {
	e := newTestEngine(t)
	text, _ := vnlang.Normalize("19,5 and 3.14 and 99")
	tokens := segmentText(t, e, "19,5 and 3.14 and 99", false, ModeNormal)
	for _, tok := range tokens {
		if tok.Type != TypeNumber {
			continue
		}
		assert.Equal(t, SegSkip, tok.SegType)
		seps := 0
		for i := tok.NormalizedStart; i < tok.NormalizedEnd; i++ {
			if text[i] == '.' || text[i] == ',' {
				seps++
			} else {
				assert.True(t, vnlang.IsDigit(text[i]))
			}
		}
		assert.LessOrEqual(t, seps, 1)
	}
}

func TestTransformingFillers(t *testing.T) {
	e := newTestEngine(t)
	input := "is up!"
	text, originalPos := vnlang.Normalize(input)
	r, err := e.Handle(text, originalPos, true, ModeNormal, false)
	require.NoError(t, err)

	// Content plus fillers cover the whole input contiguously.
	var lastEnd int32
	for _, tok := range r.Tokens {
		assert.Equal(t, lastEnd, tok.NormalizedStart)
		lastEnd = tok.NormalizedEnd
	}
	assert.Equal(t, int32(len(r.Text)), lastEnd)

	types := make([]int32, len(r.Tokens))
	for i, tok := range r.Tokens {
		types[i] = tok.Type
	}
	assert.Equal(t, []int32{TypeWord, TypeSpace, TypeWord, TypePunct}, types)
}

func TestTransformingUnderscoreRewrite(t *testing.T) {
	e := newTestEngine(t)
	text, originalPos := vnlang.Normalize("Hà Nội")
	r, err := e.Handle(text, originalPos, true, ModeNormal, false)
	require.NoError(t, err)
	require.Len(t, r.Tokens, 1)
	// The multiterm's inner space renders as an underscore.
	assert.Equal(t, "hà_nội",
		vnlang.String(r.Text[r.Tokens[0].NormalizedStart:r.Tokens[0].NormalizedEnd]))
}

func TestTokenString(t *testing.T) {
	tok := FullToken{Token: Token{
		NormalizedStart: 0, NormalizedEnd: 2,
		OriginalStart: 0, OriginalEnd: 2,
		Type: TypeWord, SegType: SegSkip,
	}, Text: "1st"}
	assert.Equal(t, "WORD 1st SKIP [0-2]{0-2}", tok.String())
}

func TestTokenTypeClassification(t *testing.T) {
	for _, c := range []struct {
		text string
		want int32
	}{
		{text: " x", want: TypeSpace},
		{text: "!x", want: TypePunct},
		{text: "12", want: TypeNumber},
		{text: "1,2", want: TypeNumber},
		{text: "1.2.3", want: TypeWord},
		{text: "12a", want: TypeWord},
		{text: "xyz", want: TypeWord},
	} {
		text := vnlang.ToLowerUTF(c.text)
		assert.Equal(t, c.want, tokenType(text, 0, int32(len(text))), "%q", c.text)
	}
}
