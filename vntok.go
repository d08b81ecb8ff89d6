// Package vntok is a Vietnamese-aware text tokenizer. It segments input
// into typed tokens (words, numbers, spaces, punctuation) using a compiled
// dictionary of multi-syllable terms plus a statistical model for sticky
// no-space text, with dedicated modes for URLs and hostnames.
//
// A Tokenizer is immutable after New and safe for concurrent use; every
// call owns its per-request buffers. The compiled dictionaries are produced
// by the dictionary compiler (see cmd/vntok-compile).
package vntok

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/vntok/vntok/internal/dict"
	"github.com/vntok/vntok/internal/segmenter"
	"github.com/vntok/vntok/internal/sparse"
	"github.com/vntok/vntok/internal/trie"
	"github.com/vntok/vntok/internal/vnlang"
)

// Tokenization modes.
const (
	TokenizeNormal = 0
	TokenizeHost   = 1
	TokenizeURL    = 2
)

// Token is the flat six-int32 record shared with foreign runtimes.
type Token = segmenter.Token

// FullToken pairs a Token with its rendered text.
type FullToken = segmenter.FullToken

// Token types.
const (
	TypeWord   = segmenter.TypeWord
	TypeNumber = segmenter.TypeNumber
	TypeSpace  = segmenter.TypeSpace
	TypePunct  = segmenter.TypePunct
)

// Segmentation sub-types.
const (
	SegOther  = segmenter.SegOther
	SegSkip   = segmenter.SegSkip
	SegURL    = segmenter.SegURL
	SegEndURL = segmenter.SegEndURL
	SegEndSeg = segmenter.SegEndSeg
)

// ErrNotInitialized is returned by the package-level wrappers before
// Initialize has succeeded.
var ErrNotInitialized = errors.New("vntok: tokenizer not initialized")

// Config locates the dictionary directory: the vn_lang_tool classification
// files plus the three compiled dumps, all in one directory. With
// LoadNontoneData unset the syllable trie and pair matrix are skipped and
// sticky segmentation is disabled.
type Config struct {
	DictPath        string
	LoadNontoneData bool
}

// Tokenizer wraps the segmentation engine around immutable loaded
// dictionaries.
type Tokenizer struct {
	engine *segmenter.Engine
}

// New loads the dictionaries at cfg.DictPath and returns a ready Tokenizer.
func New(cfg Config) (*Tokenizer, error) {
	if err := vnlang.Init(cfg.DictPath); err != nil {
		return nil, err
	}
	multiterm, err := trie.ReadMultitermFile(cfg.DictPath + "/" + dict.MultitermDump)
	if err != nil {
		return nil, fmt.Errorf("vntok: loading %s: %w", dict.MultitermDump, err)
	}
	engine := &segmenter.Engine{
		Multiterm: multiterm,
		Syllable:  &trie.Syllable{},
	}
	if cfg.LoadNontoneData {
		syllable, err := trie.ReadSyllableFile(cfg.DictPath + "/" + dict.SyllableDump)
		if err != nil {
			return nil, fmt.Errorf("vntok: loading %s: %w", dict.SyllableDump, err)
		}
		pairScores, err := sparse.ReadFile(cfg.DictPath + "/" + dict.NontonePairDump)
		if err != nil {
			return nil, fmt.Errorf("vntok: loading %s: %w", dict.NontonePairDump, err)
		}
		engine.Syllable = syllable
		engine.PairScores = pairScores
	}
	return &Tokenizer{engine: engine}, nil
}

var (
	defaultMu  sync.Mutex
	defaultTok *Tokenizer
)

// Initialize sets up the process-wide default tokenizer. It is idempotent:
// once a call has succeeded, later calls return nil without reloading. A
// failed call leaves the default unset so it can be retried.
func Initialize(dictPath string, loadNontoneData bool) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultTok != nil {
		return nil
	}
	t, err := New(Config{DictPath: dictPath, LoadNontoneData: loadNontoneData})
	if err != nil {
		return err
	}
	defaultTok = t
	return nil
}

// Default returns the process-wide tokenizer, or nil before Initialize.
func Default() *Tokenizer {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultTok
}

// Segment tokenizes text and renders each token from the normalized
// codepoints. In transforming mode, sticky split points render as
// underscores inside the token text; otherwise as spaces.
func (t *Tokenizer) Segment(text string, forTransforming bool, mode int) ([]FullToken, error) {
	norm, originalPos := vnlang.Normalize(text)
	r, err := t.engine.Handle(norm, originalPos, forTransforming, int32(mode), false)
	if err != nil {
		return nil, err
	}
	if mode == TokenizeURL {
		// The URL buffer already carries its spaces literally.
		r.SpacePositions = r.SpacePositions[:0]
	}
	spacePositions := append(r.SpacePositions, -1)

	res := make([]FullToken, len(r.Tokens))
	it := 0
	for i, tok := range r.Tokens {
		tok.OriginalStart += r.OriginalPos[tok.NormalizedStart]
		tok.OriginalEnd += r.OriginalPos[tok.NormalizedEnd]
		var b strings.Builder
		for pos := tok.NormalizedStart; pos < tok.NormalizedEnd; pos++ {
			if spacePositions[it] == pos {
				if forTransforming {
					b.WriteByte('_')
				} else {
					b.WriteByte(' ')
				}
				it++
			}
			b.WriteRune(rune(r.Text[pos]))
		}
		res[i] = FullToken{Token: tok, Text: b.String()}
	}
	return res, nil
}

// SegmentOriginal tokenizes text but renders each token from the original
// input bytes, with spaces shown as underscores and sticky split points
// marked by underscores.
func (t *Tokenizer) SegmentOriginal(text string, mode int) ([]FullToken, error) {
	return t.segmentFromOriginal(text, mode, false)
}

// SegmentGeneral is SegmentOriginal with punctuation preserved as separate
// tokens; tokens that render as a bare underscore are dropped.
func (t *Tokenizer) SegmentGeneral(text string, mode int) ([]FullToken, error) {
	res, err := t.segmentFromOriginal(text, mode, true)
	if err != nil {
		return nil, err
	}
	kept := res[:0]
	for _, tok := range res {
		if tok.Text != "_" {
			kept = append(kept, tok)
		}
	}
	return kept, nil
}

func (t *Tokenizer) segmentFromOriginal(text string, mode int, forTransforming bool) ([]FullToken, error) {
	norm, originalPos := vnlang.Normalize(text)
	r, err := t.engine.Handle(norm, originalPos, forTransforming, int32(mode), false)
	if err != nil {
		return nil, err
	}
	for i := range r.SpacePositions {
		r.SpacePositions[i] = r.OriginalPos[r.SpacePositions[i]]
	}
	spacePositions := append(r.SpacePositions, -1)

	res := make([]FullToken, len(r.Tokens))
	it := 0
	for i, tok := range r.Tokens {
		tok.OriginalStart += r.OriginalPos[tok.NormalizedStart]
		tok.OriginalEnd += r.OriginalPos[tok.NormalizedEnd]
		var b strings.Builder
		for pos := tok.OriginalStart; pos < tok.OriginalEnd; pos++ {
			if spacePositions[it] == pos {
				if pos > tok.OriginalStart {
					b.WriteByte('_')
				}
				it++
			}
			if text[pos] == ' ' {
				b.WriteByte('_')
			} else {
				b.WriteByte(text[pos])
			}
		}
		res[i] = FullToken{Token: tok, Text: b.String()}
	}
	return res, nil
}

// SegmentStickyToString splits sticky alphanumeric runs of text into
// syllables and returns the spaced-out ASCII rendering; codepoints outside
// ASCII render as '?'.
func (t *Tokenizer) SegmentStickyToString(text string) string {
	norm, _ := vnlang.Normalize(text)
	spacePositions := t.engine.StickySplit(norm)

	var b strings.Builder
	it := 0
	for i, c := range norm {
		if it < len(spacePositions) && spacePositions[it] == int32(i) {
			b.WriteByte(' ')
			it++
		}
		if c < 128 {
			b.WriteByte(byte(c))
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}

// SegmentToStringList returns only the rendered token texts.
func (t *Tokenizer) SegmentToStringList(text string, forTransforming bool, mode int) ([]string, error) {
	full, err := t.Segment(text, forTransforming, mode)
	if err != nil {
		return nil, err
	}
	res := make([]string, len(full))
	for i, tok := range full {
		res[i] = tok.Text
	}
	return res, nil
}

// Handle owns the raw buffers of one segmentation result for a foreign
// runtime: the token array, the normalized codepoint buffer, and the sticky
// split positions. Token offsets are already mapped to original bytes. The
// buffers stay valid until Release.
type Handle struct {
	Tokens         []Token
	Text           []uint32
	SpacePositions []int32
}

// Acquire runs one segmentation and hands the backing buffers to the
// caller. keepPuncts suppresses punctuation fillers in transforming mode.
func (t *Tokenizer) Acquire(text string, forTransforming bool, mode int, keepPuncts bool) (*Handle, error) {
	norm, originalPos := vnlang.Normalize(text)
	r, err := t.engine.Handle(norm, originalPos, forTransforming, int32(mode), keepPuncts)
	if err != nil {
		return nil, err
	}
	for i := range r.Tokens {
		r.Tokens[i].OriginalStart += r.OriginalPos[r.Tokens[i].NormalizedStart]
		r.Tokens[i].OriginalEnd += r.OriginalPos[r.Tokens[i].NormalizedEnd]
	}
	return &Handle{Tokens: r.Tokens, Text: r.Text, SpacePositions: r.SpacePositions}, nil
}

// Release drops the handle's buffers.
func (h *Handle) Release() {
	h.Tokens = nil
	h.Text = nil
	h.SpacePositions = nil
}

// Package-level wrappers over the default tokenizer.

func Segment(text string, forTransforming bool, mode int) ([]FullToken, error) {
	t := Default()
	if t == nil {
		return nil, ErrNotInitialized
	}
	return t.Segment(text, forTransforming, mode)
}

func SegmentOriginal(text string, mode int) ([]FullToken, error) {
	t := Default()
	if t == nil {
		return nil, ErrNotInitialized
	}
	return t.SegmentOriginal(text, mode)
}

func SegmentGeneral(text string, mode int) ([]FullToken, error) {
	t := Default()
	if t == nil {
		return nil, ErrNotInitialized
	}
	return t.SegmentGeneral(text, mode)
}

func SegmentStickyToString(text string) (string, error) {
	t := Default()
	if t == nil {
		return "", ErrNotInitialized
	}
	return t.SegmentStickyToString(text), nil
}
