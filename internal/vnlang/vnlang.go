// Package vnlang holds the Vietnamese codepoint tables and the normalizer
// used by the tokenizer: case and diacritic folds over the BMP, NFD tone/hat
// mark merging, and the d/gi and i/y syllable transformation map.
package vnlang

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

// ErrDictNotFound is returned when an expected dictionary file is absent or
// unreadable.
var ErrDictNotFound = errors.New("vnlang: dictionary not found")

var (
	initMu   sync.Mutex
	initDone bool

	transformation map[string]string
)

// Init loads the alphabetic/numeric classification dictionaries and the
// transformation map from dictPath, then builds the fold tables. It is
// idempotent: once a call has succeeded, later calls return nil without
// re-reading anything. A failed call leaves the package uninitialized so a
// corrected path can be retried.
func Init(dictPath string) error {
	initMu.Lock()
	defer initMu.Unlock()
	if initDone {
		return nil
	}
	// Fold tables first so the file loaders see complete case mappings.
	initTables()
	if err := initAlphanumeric(dictPath); err != nil {
		return err
	}
	if err := initTransformer(dictPath); err != nil {
		return err
	}
	initDone = true
	return nil
}

// InitSimple builds the tables from the built-in ASCII and Vietnamese
// charsets without touching the filesystem. The transformation map stays
// empty. Subject to the same one-shot guard as Init.
func InitSimple() {
	initMu.Lock()
	defer initMu.Unlock()
	if initDone {
		return
	}
	initTables()
	initSimpleAlphanumeric()
	transformation = map[string]string{}
	initDone = true
}

func initTables() {
	initLowerUpper()
	initRootForms()
	initToneForms()
	initHatForms()
}

// initAlphanumeric reads the alphabetic and numeric files. Each starts with
// a count line, followed by lines of the form "UPPER cp LOWER cp".
func initAlphanumeric(dictPath string) error {
	if err := loadClassFile(dictPath+"/alphabetic", inAlphabet[:]); err != nil {
		return err
	}
	return loadClassFile(dictPath+"/numeric", inNumeric[:])
}

func loadClassFile(path string, class []bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrDictNotFound, path)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	remaining := -1
	for sc.Scan() && remaining != 0 {
		fields := strings.Fields(sc.Text())
		if remaining == -1 {
			if len(fields) == 0 {
				continue
			}
			n, err := strconv.Atoi(fields[0])
			if err != nil {
				return fmt.Errorf("vnlang: bad count in %s: %w", path, err)
			}
			remaining = n
			continue
		}
		remaining--
		if len(fields) < 4 {
			continue
		}
		upperCp, err1 := strconv.ParseUint(fields[1], 10, 32)
		lowerCp, err2 := strconv.ParseUint(fields[3], 10, 32)
		if err1 != nil || err2 != nil {
			continue
		}
		if upperCp >= tableSize || lowerCp >= tableSize {
			continue
		}
		class[upperCp] = true
		class[lowerCp] = true
		inAlphanumeric[upperCp] = true
		inAlphanumeric[lowerCp] = true
		if upperCp != lowerCp {
			upperOf[lowerCp] = uint32(upperCp)
			lowerOf[upperCp] = uint32(lowerCp)
		}
	}
	return sc.Err()
}

// initTransformer loads d_and_gi.txt and i_and_y.txt, each line "FROM TO".
func initTransformer(dictPath string) error {
	transformation = map[string]string{}
	for _, name := range []string{"d_and_gi.txt", "i_and_y.txt"} {
		f, err := os.Open(dictPath + "/" + name)
		if err != nil {
			return fmt.Errorf("%w: %s/%s", ErrDictNotFound, dictPath, name)
		}
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			fields := strings.Fields(sc.Text())
			if len(fields) < 2 {
				continue
			}
			transformation[LowerString(fields[0])] = LowerString(fields[1])
		}
		err = sc.Err()
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// Lower folds one codepoint to lowercase; identity outside the BMP.
func Lower(c uint32) uint32 {
	if c < tableSize {
		return lowerOf[c]
	}
	return c
}

// Upper folds one codepoint to uppercase; identity outside the BMP.
func Upper(c uint32) uint32 {
	if c < tableSize {
		return upperOf[c]
	}
	return c
}

// Root strips tone and hat marks from one codepoint; identity outside the BMP.
func Root(c uint32) uint32 {
	if c < tableSize {
		return rootOf[c]
	}
	return c
}

// LowerRoot combines Lower and Root in one table lookup.
func LowerRoot(c uint32) uint32 {
	if c < tableSize {
		return lowerRootOf[c]
	}
	return c
}

func IsAlphabetic(c uint32) bool {
	return c < tableSize && inAlphabet[c]
}

func IsDigit(c uint32) bool {
	return '0' <= c && c <= '9'
}

func IsAlphanumeric(c uint32) bool {
	return c < tableSize && inAlphanumeric[c]
}

// IsValid reports whether s is well-formed UTF-8.
func IsValid(s string) bool {
	return utf8.ValidString(s)
}

// GetTransformation returns the canonical spelling of a single syllable, or
// the syllable itself when no mapping exists.
func GetTransformation(s string) string {
	if t, ok := transformation[s]; ok {
		return t
	}
	return s
}

// GetTransformationString rewrites every space-separated syllable of s
// through the transformation map.
func GetTransformationString(s string) string {
	parts := strings.Split(s, " ")
	for i, p := range parts {
		parts[i] = GetTransformation(p)
	}
	return strings.Join(parts, " ")
}

// ToUTF decodes a UTF-8 string into codepoints. Decoding is unchecked: the
// caller is responsible for validating raw input once at the boundary.
func ToUTF(s string) []uint32 {
	codepoints := make([]uint32, 0, len(s))
	for _, r := range s {
		codepoints = append(codepoints, uint32(r))
	}
	return codepoints
}

// ToLowerUTF decodes and lowercases in one pass.
func ToLowerUTF(s string) []uint32 {
	codepoints := make([]uint32, 0, len(s))
	for _, r := range s {
		codepoints = append(codepoints, Lower(uint32(r)))
	}
	return codepoints
}

func mapCodepoints(text []uint32, fold func(uint32) uint32) []uint32 {
	res := make([]uint32, len(text))
	for i, c := range text {
		res[i] = fold(c)
	}
	return res
}

// LowerAll folds a codepoint buffer to lowercase.
func LowerAll(text []uint32) []uint32 { return mapCodepoints(text, Lower) }

// UpperAll folds a codepoint buffer to uppercase.
func UpperAll(text []uint32) []uint32 { return mapCodepoints(text, Upper) }

// RootAll strips tones and hats from a codepoint buffer.
func RootAll(text []uint32) []uint32 { return mapCodepoints(text, Root) }

// LowerRootAll lowercases and strips tones and hats.
func LowerRootAll(text []uint32) []uint32 { return mapCodepoints(text, LowerRoot) }

// LowerString folds a UTF-8 string to lowercase.
func LowerString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		b.WriteRune(rune(Lower(uint32(r))))
	}
	return b.String()
}

// LowerRootString folds a UTF-8 string to its lowercase root form.
func LowerRootString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		b.WriteRune(rune(LowerRoot(uint32(r))))
	}
	return b.String()
}

// String encodes a codepoint buffer back to UTF-8.
func String(text []uint32) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, c := range text {
		b.WriteRune(rune(c))
	}
	return b.String()
}

// StringRange encodes text[left:right] back to UTF-8, lowercased.
func StringRange(text []uint32, left, right int) string {
	var b strings.Builder
	for i := left; i < right; i++ {
		b.WriteRune(rune(Lower(text[i])))
	}
	return b.String()
}
