package segmenter

import (
	"github.com/vntok/vntok/internal/trie"
	"github.com/vntok/vntok/internal/vnlang"
)

// domainFields are the generic TLDs that may appear mid-domain and trigger
// the leftward URL walk; domainEnds additionally cover country codes that
// only mark a domain ending.
var (
	domainFields = trie.NewStringSet(
		"com", "net", "org", "info", "gov", "edu", "biz")
	domainEnds = trie.NewStringSet(
		"com", "net", "org", "info", "gov", "edu", "biz",
		"vn", "jp", "kr", "us", "uk", "au", "sg", "cn", "ru", "pl", "ca")
)

// isDomainField reports whether text[from:to) is a generic TLD preceded by
// "<alphanumeric>.".
func isDomainField(text []uint32, from, to int32) bool {
	return to-from <= 4 && to-from >= 3 && from > 1 && text[from-1] == '.' &&
		vnlang.IsAlphanumeric(text[from-2]) && domainFields.Contains(text, int(from), int(to))
}

// isDomainEnd is the same test against the full TLD table.
func isDomainEnd(text []uint32, from, to int32) bool {
	return to-from <= 4 && to-from >= 2 && from > 1 && text[from-1] == '.' &&
		vnlang.IsAlphanumeric(text[from-2]) && domainEnds.Contains(text, int(from), int(to))
}

func azOnly(c uint32) bool {
	return 'a' <= c && c <= 'z'
}

func isOrdinalSuffix(a, b uint32) bool {
	return (a == 't' && b == 'h') || (a == 's' && b == 't') ||
		(a == 'n' && b == 'd') || (a == 'r' && b == 'd')
}

func isSpecialOperatorSign(c uint32) bool {
	return c == '^' || c == '+'
}

// isSmallNumberOrAzChar reports whether token is a digit run of at most six
// characters or a single lowercase a-z letter, the operands the operator
// rewrite accepts.
func isSmallNumberOrAzChar(text []uint32, token Token) bool {
	return (token.Type == TypeNumber && token.NormalizedEnd-token.NormalizedStart <= 6) ||
		(token.NormalizedEnd-token.NormalizedStart == 1 && azOnly(text[token.NormalizedStart]))
}

func findLastSpacePos(text []uint32, token Token) int32 {
	for i := token.NormalizedEnd - 1; i >= token.NormalizedStart; i-- {
		if text[i] == ' ' {
			return i
		}
	}
	return -1
}

func matchASCII(text []uint32, s string, from int) bool {
	if from+len(s) > len(text) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if text[from+i] != uint32(s[i]) {
			return false
		}
	}
	return true
}
