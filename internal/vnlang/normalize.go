package vnlang

// MergeToneHat tries to fold a combining tone or hat mark into the vowel
// before it. It returns the merged vowel and true, or prev unchanged and
// false when the pair does not combine.
func MergeToneHat(prev, cur uint32) (uint32, bool) {
	if prev >= tableSize || cur >= tableSize {
		return prev, false
	}
	if toneID[prev] >= 0 && toneFormsID[cur] >= 0 {
		return toneFormsUTF[toneID[prev]][toneFormsID[cur]], true
	}
	if hatID[prev] >= 0 && hatFormsID[cur] >= 0 {
		return hatFormsUTF[hatID[prev]][hatFormsID[cur]], true
	}
	return prev, false
}

// CanCarryToneHat reports whether c is a vowel shape that can still receive
// a tone or hat mark.
func CanCarryToneHat(c uint32) bool {
	return c < tableSize && (toneID[c] >= 0 || hatID[c] >= 0)
}

// IsToneHat reports whether c is a standalone combining tone or hat mark.
func IsToneHat(c uint32) bool {
	return c < tableSize && (toneFormsID[c] >= 0 || hatFormsID[c] >= 0)
}

// NormalizeNFD merges combining tone/hat marks into their preceding vowels.
// With removeDuplicateSpaces set, runs of spaces collapse to one.
func NormalizeNFD(text []uint32, removeDuplicateSpaces bool) []uint32 {
	if len(text) == 0 {
		return nil
	}
	res := make([]uint32, 0, len(text))
	res = append(res, text[0])
	for _, cur := range text[1:] {
		if merged, ok := MergeToneHat(res[len(res)-1], cur); ok {
			res[len(res)-1] = merged
			continue
		}
		if removeDuplicateSpaces && res[len(res)-1] == ' ' && cur == ' ' {
			continue
		}
		res = append(res, cur)
	}
	return res
}

// Normalize decodes original into lowercased codepoints with combining
// tone/hat marks merged into the preceding vowel. originalPos[i] is the byte
// offset in original where text[i] began; a final sentinel entry holds
// len(original). Mark merges do not push a new entry, so both slices stay
// parallel.
func Normalize(original string) (text []uint32, originalPos []int32) {
	text = make([]uint32, 0, len(original))
	originalPos = make([]int32, 0, len(original)+1)
	for i, r := range original {
		cur := Lower(uint32(r))
		if len(text) > 0 {
			if merged, ok := MergeToneHat(text[len(text)-1], cur); ok {
				text[len(text)-1] = merged
				continue
			}
		}
		originalPos = append(originalPos, int32(i))
		text = append(text, cur)
	}
	originalPos = append(originalPos, int32(len(original)))
	return text, originalPos
}
