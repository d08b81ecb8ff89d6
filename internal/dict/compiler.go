// Package dict compiles the plain-text dictionaries into the three binary
// artifacts the tokenizer loads at startup: the multi-term trie, the
// syllable trie, and the nontone pair-score matrix.
package dict

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/vntok/vntok/internal/sparse"
	"github.com/vntok/vntok/internal/trie"
	"github.com/vntok/vntok/internal/varint"
	"github.com/vntok/vntok/internal/vnlang"
)

// Compiled artifact names under the output directory.
const (
	MultitermDump   = "multiterm_trie.dump"
	SyllableDump    = "syllable_trie.dump"
	NontonePairDump = "nontone_pair_freq.dump"
)

var (
	// ErrDictNotFound is returned when an input dictionary is absent.
	ErrDictNotFound = errors.New("dict: dictionary not found")
	// ErrDictMalformed is returned when an input dictionary is inconsistent.
	ErrDictMalformed = errors.New("dict: malformed dictionary")
)

// Pair bonus parameters: coefficient, length power, frequency power.
var pairParams = [3]float64{0.1, 0.994141, 0.19}

func pairScore(pairLen int32, pairFreq int) float32 {
	return float32(pairParams[0] *
		math.Pow(float64(pairLen), pairParams[1]) *
		math.Pow(float64(pairFreq), pairParams[2]))
}

// hardcoded special terms kept out of the rewrite rules, in addition to
// special_token.strong.
var specialTerms = []string{
	"vietnam+", "google+", "notepad++", "c#", "c++", "g++",
	"xbase++", "vc++", "k+", "g+", "16+", "18+",
}

// findCutPos locates the start of the trailing frequency: the character
// before the last digit run of the line, or -1 when the line has none.
func findCutPos(s string) int {
	i := len(s) - 1
	for i >= 0 && !isDigit(s[i]) {
		i--
	}
	for i >= 0 && isDigit(s[i]) {
		i--
	}
	return i
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func parseNumber(s string, from int) int32 {
	var num int64
	for from < len(s) && isDigit(s[from]) {
		num = num*10 + int64(s[from]-'0')
		from++
		if num > math.MaxInt32 {
			return math.MaxInt32
		}
	}
	return int32(num)
}

func openDict(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDictNotFound, path)
	}
	return f, nil
}

// loadVndicMultiterm ingests the main dictionary: each line is a term
// followed by its frequency. Every term is also inserted in lower-root form
// when different, and its syllables feed the syllable trie.
func loadVndicMultiterm(dictPath string, loadNontoneData bool, multiterm, syllable *trie.HashTrie) error {
	f, err := openDict(dictPath + "/vndic_multiterm")
	if err != nil {
		return err
	}
	defer f.Close()

	addSyllable := func(word string, freq int32) {
		syllable.AddSyllable(word, freq)
		if root := vnlang.LowerRootString(word); root != word {
			syllable.AddSyllable(root, freq)
		}
	}

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		cutPos := findCutPos(line)
		if cutPos == -1 {
			continue
		}
		freq := parseNumber(line, cutPos+1)
		word := line[:cutPos]

		multiterm.AddMultiterm(word, freq, true, false)
		if root := vnlang.LowerRootString(word); root != word {
			multiterm.AddMultiterm(root, freq, false, false)
		}
		if loadNontoneData {
			for _, syll := range strings.Split(word, " ") {
				if syll != "" {
					addSyllable(syll, freq)
				}
			}
		}
	}
	return sc.Err()
}

// loadCommonTerms injects measurement units that must never be split.
func loadCommonTerms(multiterm *trie.HashTrie) {
	for _, s := range []string{"m2", "m3", "km2"} {
		multiterm.AddMultiterm(s, math.MaxInt32, false, false)
	}
}

// LoadKeywords ingests keywords.freq, same schema as vndic_multiterm. The
// stock pipeline does not call it; it is exposed for builds that carry a
// keyword dictionary.
func LoadKeywords(dictPath string, multiterm *trie.HashTrie) error {
	f, err := openDict(dictPath + "/keywords.freq")
	if err != nil {
		return err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		cutPos := findCutPos(line)
		if cutPos == -1 {
			continue
		}
		multiterm.AddMultiterm(line[:cutPos], parseNumber(line, cutPos+1), false, false)
	}
	return sc.Err()
}

func loadAcronyms(dictPath string, loadNontoneData bool, multiterm, syllable *trie.HashTrie) error {
	f, err := openDict(dictPath + "/acronyms")
	if err != nil {
		return err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		freq := parseNumber(fields[1], 0)
		multiterm.AddMultiterm(fields[0], freq, false, false)
		if loadNontoneData {
			syllable.AddSyllable(fields[0], freq)
		}
	}
	return sc.Err()
}

func loadChemicalCompounds(dictPath string, multiterm *trie.HashTrie) error {
	return loadSpecialFile(dictPath+"/chemical_comp", multiterm)
}

func loadSpecialTerms(dictPath string, multiterm *trie.HashTrie) error {
	for _, term := range specialTerms {
		multiterm.AddMultiterm(term, math.MaxInt32, false, true)
	}
	return loadSpecialFile(dictPath+"/special_token.strong", multiterm)
}

// loadSpecialFile imports one term per whitespace-delimited token with
// saturated frequency and the special flag set.
func loadSpecialFile(path string, multiterm *trie.HashTrie) error {
	f, err := openDict(path)
	if err != nil {
		return err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		multiterm.AddMultiterm(sc.Text(), math.MaxInt32, false, true)
	}
	return sc.Err()
}

// loadNontonePairs assigns every nontone syllable its index, then decodes
// the varint-encoded sparse pair-frequency stream into a score matrix.
//
// Freq2NontoneUniFile is a whitespace-delimited list of unique syllables;
// position is index. nontone_pair_freq starts with the row count, then per
// row the number of non-zero pairs followed by (delta index, frequency)
// pairs, delta accumulating the column index.
func loadNontonePairs(dictPath string, syllable *trie.Syllable) (sparse.Matrix, error) {
	f, err := openDict(dictPath + "/Freq2NontoneUniFile")
	if err != nil {
		return nil, err
	}
	var syllableLength []int32
	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		syllableLength = append(syllableLength,
			syllable.UpdateIndex(sc.Text(), int32(len(syllableLength))))
	}
	if err := sc.Err(); err != nil {
		f.Close()
		return nil, err
	}
	f.Close()

	pf, err := openDict(dictPath + "/nontone_pair_freq")
	if err != nil {
		return nil, err
	}
	defer pf.Close()

	reader := varint.NewReader(pf)
	n, err := reader.Next()
	if err != nil {
		return nil, fmt.Errorf("%w: nontone_pair_freq: %v", ErrDictMalformed, err)
	}
	if n != len(syllableLength) {
		return nil, fmt.Errorf("%w: nontone term count mismatch: %d rows, %d syllables",
			ErrDictMalformed, n, len(syllableLength))
	}

	matrix := sparse.NewMatrix(n)
	for first := 0; first < n; first++ {
		pairs, err := reader.Next()
		if err != nil {
			return nil, fmt.Errorf("%w: nontone_pair_freq row %d: %v", ErrDictMalformed, first, err)
		}
		second := 0
		for i := 0; i < pairs; i++ {
			delta, err := reader.Next()
			if err != nil {
				return nil, fmt.Errorf("%w: nontone_pair_freq row %d: %v", ErrDictMalformed, first, err)
			}
			second += delta
			pairFreq, err := reader.Next()
			if err != nil {
				return nil, fmt.Errorf("%w: nontone_pair_freq row %d: %v", ErrDictMalformed, first, err)
			}
			if second >= n {
				return nil, fmt.Errorf("%w: nontone_pair_freq row %d: column %d out of range",
					ErrDictMalformed, first, second)
			}
			pairLen := syllableLength[first] + syllableLength[second]
			matrix.Set(int32(first), int32(second), pairScore(pairLen, pairFreq))
		}
	}
	return matrix, nil
}

// CompileAll reads every input dictionary under dictPath and writes the
// three compiled artifacts into outPath. vnlang must be initialized first.
func CompileAll(dictPath, outPath string, loadNontoneData bool) error {
	multitermHash := trie.NewHashTrie()
	syllableHash := trie.NewHashTrie()

	if err := loadVndicMultiterm(dictPath, loadNontoneData, multitermHash, syllableHash); err != nil {
		return err
	}
	loadCommonTerms(multitermHash)
	if err := loadAcronyms(dictPath, loadNontoneData, multitermHash, syllableHash); err != nil {
		return err
	}
	if err := loadChemicalCompounds(dictPath, multitermHash); err != nil {
		return err
	}
	if err := loadSpecialTerms(dictPath, multitermHash); err != nil {
		return err
	}

	multiterm := trie.BuildMultiterm(multitermHash)
	if err := multiterm.WriteFile(outPath + "/" + MultitermDump); err != nil {
		return err
	}

	syllable := trie.BuildSyllable(syllableHash)
	if loadNontoneData {
		matrix, err := loadNontonePairs(dictPath, syllable)
		if err != nil {
			return err
		}
		if err := matrix.WriteFile(outPath + "/" + NontonePairDump); err != nil {
			return err
		}
	}
	return syllable.WriteFile(outPath + "/" + SyllableDump)
}
