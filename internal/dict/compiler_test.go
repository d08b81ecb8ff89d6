package dict

import (
	"math"
	"os"
	"path/filepath"
	"testing"

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

func encodeVarints(values ...int) []byte {
	var buf []byte
	for _, v := range values {
		buf = append(buf, byte(v&0x7f))
		v >>= 7
		for v > 0 {
			buf = append(buf, byte(v&0x7f)|0x80)
			v >>= 7
		}
	}
	return buf
}

func writeTestDicts(t *testing.T, dir string, pairData []byte) {
	t.Helper()
	files := map[string]string{
		"vndic_multiterm":      "hà nội 1000\nhà 500\nnội 400\nhoc 200\nsinh 300\nnot a term line\n",
		"acronyms":             "tp 100\n",
		"chemical_comp":        "h2so4\n",
		"special_token.strong": "a.b.c\n",
		"Freq2NontoneUniFile":  "ha noi hoc sinh\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nontone_pair_freq"), pairData, 0o644))
}

func TestCompileAll(t *testing.T) {
	dictDir := t.TempDir()
	outDir := t.TempDir()
	// Four rows; only "hoc" (row 2) pairs with "sinh" (delta 3), freq 1000.
	writeTestDicts(t, dictDir, encodeVarints(4, 0, 0, 1, 3, 1000, 0))

	require.NoError(t, CompileAll(dictDir, outDir, true))

	multiterm, err := trie.ReadMultitermFile(filepath.Join(outDir, MultitermDump))
	require.NoError(t, err)
	for _, s := range []string{"hà nội", "ha noi", "hà", "nội", "tp", "m2", "m3", "km2"} {
		u, ok := multiterm.Walk(s)
		require.True(t, ok, "walk %q", s)
		assert.True(t, multiterm.IsEnding(u), s)
		assert.False(t, multiterm.IsSpecial(u), s)
	}
	for _, s := range []string{"h2so4", "a.b.c", "c++", "notepad++", "18+"} {
		u, ok := multiterm.Walk(s)
		require.True(t, ok, "walk %q", s)
		assert.True(t, multiterm.IsEnding(u), s)
		assert.True(t, multiterm.IsSpecial(u), s)
	}
	_, ok := multiterm.Walk("hà nộix")
	assert.False(t, ok)

	syllable, err := trie.ReadSyllableFile(filepath.Join(outDir, SyllableDump))
	require.NoError(t, err)
	wantIndex := map[string]int32{"ha": 0, "noi": 1, "hoc": 2, "sinh": 3}
	for s, idx := range wantIndex {
		u, ok := syllable.Walk(s)
		require.True(t, ok, s)
		assert.Equal(t, idx, syllable.Index(u), s)
	}
	// Toned syllables are in the trie but carry no nontone index.
	u, ok := syllable.Walk("hà")
	require.True(t, ok)
	assert.Equal(t, int32(-1), syllable.Index(u))

	matrix, err := sparse.ReadFile(filepath.Join(outDir, NontonePairDump))
	require.NoError(t, err)
	require.Len(t, matrix, 4)
	assert.InDelta(t, pairScore(3+4, 1000), matrix.Get(2, 3), 1e-6)
	assert.Equal(t, float32(0), matrix.Get(0, 1))
}

func TestCompileAllNoSticky(t *testing.T) {
	dictDir := t.TempDir()
	outDir := t.TempDir()
	writeTestDicts(t, dictDir, encodeVarints(4, 0, 0, 0, 0))

	require.NoError(t, CompileAll(dictDir, outDir, false))
	_, err := os.Stat(filepath.Join(outDir, MultitermDump))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, SyllableDump))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, NontonePairDump))
	assert.True(t, os.IsNotExist(err))
}

func TestCompileAllMissingDict(t *testing.T) {
	err := CompileAll(t.TempDir(), t.TempDir(), true)
	assert.ErrorIs(t, err, ErrDictNotFound)
}

func TestCompileAllRowCountMismatch(t *testing.T) {
	dictDir := t.TempDir()
	outDir := t.TempDir()
	// Three rows promised, four syllables listed.
	writeTestDicts(t, dictDir, encodeVarints(3, 0, 0, 0))

	err := CompileAll(dictDir, outDir, true)
	assert.ErrorIs(t, err, ErrDictMalformed)
}

func TestLoadKeywords(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keywords.freq"),
		[]byte("bóng đá 250\n"), 0o644))
	ht := trie.NewHashTrie()
	require.NoError(t, LoadKeywords(dir, ht))
	dt := trie.BuildMultiterm(ht)
	u, ok := dt.Walk("bóng đá")
	require.True(t, ok)
	assert.True(t, dt.IsEnding(u))

	assert.ErrorIs(t, LoadKeywords(t.TempDir(), ht), ErrDictNotFound)
}

func TestFindCutPos(t *testing.T) {
	for _, c := range []struct {
		line string
		pos  int
	}{
		{line: "hà nội 1000", pos: len("hà nội 1000") - 5},
		{line: "word 1", pos: len("word 1") - 2},
		{line: "no digits here", pos: -1},
		{line: "", pos: -1},
		{line: "42", pos: -1},
	} {
		assert.Equal(t, c.pos, findCutPos(c.line), "%q", c.line)
	}
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, int32(1000), parseNumber("x 1000", 2))
	assert.Equal(t, int32(0), parseNumber("abc", 0))
	assert.Equal(t, int32(math.MaxInt32), parseNumber("99999999999999999999", 0))
}
