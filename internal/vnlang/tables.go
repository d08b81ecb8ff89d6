package vnlang

// tableSize bounds every lookup table to the Basic Multilingual Plane.
// Codepoints at or above this are classified as unknown/non-alphanumeric and
// map to themselves under every fold.
const tableSize = 1 << 16

const (
	vnLowerCharset = "áàảãạâấầẩẫậăắằẳẵặéèẻẽẹêếềểễệíìỉĩịóòỏõọôốồổỗộơớờởỡợúùủũụưứừửữựýỳỷỹỵđđ"
	vnUpperCharset = "ÁÀẢÃẠÂẤẦẨẪẬĂẮẰẲẴẶÉÈẺẼẸÊẾỀỂỄỆÍÌỈĨỊÓÒỎÕỌÔỐỒỔỖỘƠỚỜỞỠỢÚÙỦŨỤƯỨỪỬỮỰÝỲỶỸỴĐÐ"
)

// Each group starts with the bare vowel; every later member folds to it.
var rootForms = [14]string{
	"aáàảãạâấầẩẫậăắằẳẵặ",
	"eéèẻẽẹêếềểễệ",
	"iíìỉĩị",
	"oóòỏõọôốồổỗộơớờởỡợ",
	"uúùủũụưứừửữự",
	"yýỳỷỹỵ",
	"dđđ",
	"AÁÀẢÃẠÂẤẦẨẪẬĂẮẰẲẴẶ",
	"EÉÈẺẼẸÊẾỀỂỄỆ",
	"IÍÌỈĨỊ",
	"OÓÒỎÕỌÔỐỒỔỖỘƠỚỜỞỠỢ",
	"UÚÙỦŨỤƯỨỪỬỮỰ",
	"YÝỲỶỸỴ",
	"DĐÐ",
}

// Each group is no-tone followed by the five toned shapes of one carrier.
var toneForms = [24]string{
	"aáàảãạ",
	"âấầẩẫậ",
	"ăắằẳẵặ",
	"eéèẻẽẹ",
	"êếềểễệ",
	"iíìỉĩị",
	"oóòỏõọ",
	"ôốồổỗộ",
	"ơớờởỡợ",
	"uúùủũụ",
	"ưứừửữự",
	"yýỳỷỹỵ",
	"AÁÀẢÃẠ",
	"ÂẤẦẨẪẬ",
	"ĂẮẰẲẴẶ",
	"EÉÈẺẼẸ",
	"ÊẾỀỂỄỆ",
	"IÍÌỈĨỊ",
	"OÓÒỎÕỌ",
	"ÔỐỒỔỖỘ",
	"ƠỚỜỞỠỢ",
	"UÚÙỦŨỤ",
	"ƯỨỪỬỮỰ",
	"YÝỲỶỸỴ",
}

// Each group gives the shapes of one carrier under bare/circumflex/breve/horn.
var hatForms = [24]string{
	"aâăa",
	"áấắá",
	"àầằà",
	"ảẩẳả",
	"ãẫẵã",
	"ạậặạ",
	"eêee",
	"éếéé",
	"èềèè",
	"ẻểẻẻ",
	"ẽễẽẽ",
	"ẹệẹẹ",
	"oôoơ",
	"óốóớ",
	"òồòờ",
	"ỏổỏở",
	"õỗõỡ",
	"ọộọợ",
	"uuuư",
	"úúúứ",
	"ùùùừ",
	"ủủủử",
	"ũũũữ",
	"ụụụự",
}

var (
	toneFormsUTF [24][]uint32
	hatFormsUTF  [24][]uint32

	toneFormsID [tableSize]int32
	hatFormsID  [tableSize]int32
	toneID      [tableSize]int32
	hatID       [tableSize]int32

	lowerOf     [tableSize]uint32
	upperOf     [tableSize]uint32
	rootOf      [tableSize]uint32
	lowerRootOf [tableSize]uint32

	inAlphabet     [tableSize]bool
	inNumeric      [tableSize]bool
	inAlphanumeric [tableSize]bool
)

func initLowerUpper() {
	for i := uint32(0); i < tableSize; i++ {
		lowerOf[i] = i
		upperOf[i] = i
	}
	for i := uint32(0); i < 26; i++ {
		lowerOf['A'+i] = 'a' + i
		upperOf['a'+i] = 'A' + i
	}
	lower := []rune(vnLowerCharset)
	upper := []rune(vnUpperCharset)
	for i := range lower {
		lowerOf[upper[i]] = uint32(lower[i])
		upperOf[lower[i]] = uint32(upper[i])
	}
}

func initRootForms() {
	for i := uint32(0); i < tableSize; i++ {
		rootOf[i] = i
		lowerRootOf[i] = lowerOf[i]
	}
	for _, group := range rootForms {
		members := []rune(group)
		root := uint32(members[0])
		for _, r := range members {
			rootOf[r] = root
			lowerRootOf[r] = lowerOf[root]
		}
	}
}

func initToneForms() {
	for i := range toneFormsID {
		toneFormsID[i] = -1
		toneID[i] = -1
	}
	for i, group := range toneForms {
		members := []rune(group)
		toneID[members[0]] = int32(i)
		toneFormsUTF[i] = toneFormsUTF[i][:0]
		for _, r := range members {
			toneFormsUTF[i] = append(toneFormsUTF[i], uint32(r))
		}
	}
	toneFormsID[0x301] = 1 // sắc
	toneFormsID[0x300] = 2 // huyền
	toneFormsID[0x309] = 3 // hỏi
	toneFormsID[0x303] = 4 // ngã
	toneFormsID[0x323] = 5 // nặng
}

func initHatForms() {
	for i := range hatFormsID {
		hatFormsID[i] = -1
		hatID[i] = -1
	}
	for i, group := range hatForms {
		members := []rune(group)
		hatID[members[0]] = int32(i)
		hatFormsUTF[i] = hatFormsUTF[i][:0]
		for _, r := range members {
			hatFormsUTF[i] = append(hatFormsUTF[i], uint32(r))
		}
	}
	hatFormsID[0x302] = 1 // â ê ô
	hatFormsID[0x306] = 2 // ă
	hatFormsID[0x31b] = 3 // ơ ư
}

func initSimpleAlphanumeric() {
	for i := uint32(0); i <= 9; i++ {
		inNumeric['0'+i] = true
		inAlphanumeric['0'+i] = true
	}
	for i := uint32(0); i < 26; i++ {
		inAlphabet['A'+i] = true
		inAlphabet['a'+i] = true
		inAlphanumeric['A'+i] = true
		inAlphanumeric['a'+i] = true
	}
	for _, r := range vnLowerCharset {
		inAlphabet[r] = true
		inAlphanumeric[r] = true
	}
	for _, r := range vnUpperCharset {
		inAlphabet[r] = true
		inAlphanumeric[r] = true
	}
}
