package segmenter

import (
	"errors"
	"fmt"

	"github.com/vntok/vntok/internal/vnlang"
)

// Tokenization modes.
const (
	ModeNormal int32 = 0
	ModeHost   int32 = 1
	ModeURL    int32 = 2
)

// ErrInvalidOption is returned for a mode outside {NORMAL, HOST, URL}.
var ErrInvalidOption = errors.New("segmenter: invalid tokenize option")

// Request is the per-call working state: the (possibly rewritten) codepoint
// buffer, its mapping back to original byte offsets, and the outputs. All
// of it is owned by one call and dropped on return.
type Request struct {
	Text           []uint32
	OriginalPos    []int32
	Tokens         []Token
	SpacePositions []int32
}

// Handle dispatches one tokenization request to the requested mode.
func (e *Engine) Handle(text []uint32, originalPos []int32,
	forTransforming bool, mode int32, skipPunctFillers bool) (*Request, error) {

	r := &Request{Text: text, OriginalPos: originalPos}
	switch mode {
	case ModeNormal:
		r.Tokens, r.SpacePositions = e.runTokenize(
			r.Text, nil, nil, forTransforming, true, skipPunctFillers)
	case ModeHost:
		e.runTokenizeHost(r)
	case ModeURL:
		e.runTokenizeURL(r, forTransforming)
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidOption, mode)
	}
	return r, nil
}

// runTokenizeURL rewrites the buffer for URL segmentation: the scheme
// prefix is dropped, every alphanumeric run is sticky-split with spaces
// materialized into the buffer, delimiters other than '.' and '/' become
// spaces, and the result is segmented with sticky sub-splitting disabled
// and punctuation fillers suppressed.
func (e *Engine) runTokenizeURL(r *Request, forTransforming bool) {
	startIndex := 0
	if matchASCII(r.Text, "http", 0) {
		if matchASCII(r.Text, "://", 4) {
			startIndex = 7
		} else if matchASCII(r.Text, "s://", 4) {
			startIndex = 8
		}
	}

	newText := make([]uint32, 0, len(r.Text))
	newOriginalPos := make([]int32, 0, len(r.OriginalPos))

	push := func(from, to int) {
		subLength := to - from
		it := len(r.SpacePositions)
		r.SpacePositions = e.tokenizePureSticky(r.Text[from:to], r.SpacePositions)
		for pos := 0; pos < subLength; pos++ {
			if it < len(r.SpacePositions) && int32(pos) == r.SpacePositions[it] {
				r.SpacePositions[it] = int32(len(newText))
				newText = append(newText, ' ')
				newOriginalPos = append(newOriginalPos, r.OriginalPos[from+pos])
				it++
			}
			newText = append(newText, r.Text[from+pos])
			newOriginalPos = append(newOriginalPos, r.OriginalPos[from+pos])
		}
	}

	lastNonAlphanumeric := startIndex - 1
	for i := startIndex; i < len(r.Text); i++ {
		if vnlang.IsAlphanumeric(r.Text[i]) {
			continue
		}
		if lastNonAlphanumeric+1 != i {
			push(lastNonAlphanumeric+1, i)
		}
		if r.Text[i] != '.' && r.Text[i] != '/' {
			newText = append(newText, ' ')
		} else {
			newText = append(newText, r.Text[i])
		}
		newOriginalPos = append(newOriginalPos, r.OriginalPos[i])
		lastNonAlphanumeric = i
	}
	if lastNonAlphanumeric+1 != len(r.Text) {
		push(lastNonAlphanumeric+1, len(r.Text))
	}
	newOriginalPos = append(newOriginalPos, r.OriginalPos[len(r.OriginalPos)-1])

	r.Text = newText
	r.OriginalPos = newOriginalPos
	r.Tokens, r.SpacePositions = e.runTokenize(
		r.Text, nil, r.SpacePositions, forTransforming, false, true)
}

// runTokenizeHost keeps only alphanumerics and dots, compacting the buffer
// in place, and emits one token per dot-separated component.
func (e *Engine) runTokenizeHost(r *Request) {
	newLength := int32(0)
	lastDotPosition := int32(-1)

	for i := 0; i < len(r.Text); i++ {
		if vnlang.IsAlphanumeric(r.Text[i]) {
			r.Text[newLength] = r.Text[i]
			r.OriginalPos[newLength] = r.OriginalPos[i]
			newLength++
		} else if r.Text[i] == '.' {
			r.Tokens = append(r.Tokens, newToken(lastDotPosition+1, newLength))
			lastDotPosition = newLength
			r.Text[newLength] = r.Text[i]
			r.OriginalPos[newLength] = r.OriginalPos[i]
			newLength++
		}
	}
	r.OriginalPos[newLength] = r.OriginalPos[len(r.OriginalPos)-1]
	r.Tokens = append(r.Tokens, newToken(lastDotPosition+1, newLength))

	r.Text = r.Text[:newLength]
	r.OriginalPos = r.OriginalPos[:newLength+1]
}
