/*
Package kana holds the double-byte kana code tables used by the romaji
transliterator and the dictionary matcher.

Codes are Shift-JIS (code page 932) double-byte values with the lead byte in
the high half. All lookups are table driven and allocation free; a syllable
that spells out as two codes (e.g. "fa" → ふぁ, "kya" → きゃ) is returned as
a Seq of length 2.

----------------------------------------------------------------------

# BSD License

Copyright (c) h-o-soft

All rights reserved.

License information is available in the LICENSE file.
*/
package kana

// Code is a double-byte Shift-JIS code, lead byte in the high half.
type Code uint16

// FromBytes composes a code from its lead and trail byte.
func FromBytes(hi, lo byte) Code {
	return Code(hi)<<8 | Code(lo)
}

// High returns the lead byte.
func (c Code) High() byte { return byte(c >> 8) }

// Low returns the trail byte.
func (c Code) Low() byte { return byte(c) }

// Well-known single codes.
const (
	SmallTsu     Code = 0x82C1 // っ
	N            Code = 0x82F1 // ん
	ProlongMark  Code = 0x815B // ー
	Comma        Code = 0x8141 // 、
	Period       Code = 0x8142 // 。
	IdeoSpace    Code = 0x8140 // full-width space
	HiraganaBase Code = 0x82A0 // あ, origin of the dictionary slot index
)

// Seq is a sequence of one or two codes produced by a single lookup.
// The zero value is the empty sequence, meaning "no mapping".
type Seq struct {
	codes [2]Code
	n     int
}

func one(c Code) Seq    { return Seq{codes: [2]Code{c}, n: 1} }
func two(a, b Code) Seq { return Seq{codes: [2]Code{a, b}, n: 2} }

// Len is the number of codes, 0..2.
func (s Seq) Len() int { return s.n }

// At returns the i-th code.
func (s Seq) At(i int) Code { return s.codes[i] }

// Empty reports whether the lookup produced nothing.
func (s Seq) Empty() bool { return s.n == 0 }

var basic = [46]Code{
	0x82A0, 0x82A2, 0x82A4, 0x82A6, 0x82A8, // あいうえお
	0x82A9, 0x82AB, 0x82AD, 0x82AF, 0x82B1, // かきくけこ
	0x82B3, 0x82B5, 0x82B7, 0x82B9, 0x82BB, // さしすせそ
	0x82BD, 0x82BF, 0x82C2, 0x82C4, 0x82C6, // たちつてと
	0x82C8, 0x82C9, 0x82CA, 0x82CB, 0x82CC, // なにぬねの
	0x82CD, 0x82D0, 0x82D3, 0x82D6, 0x82D9, // はひふへほ
	0x82DC, 0x82DD, 0x82DE, 0x82DF, 0x82E0, // まみむめも
	0x82E2, 0x82E4, 0x82E6,                 // やゆよ
	0x82E7, 0x82E8, 0x82E9, 0x82EA, 0x82EB, // らりるれろ
	0x82ED, 0x82F0, 0x82F1,                 // わをん
}

var dakuten = [20]Code{
	0x82AA, 0x82AC, 0x82AE, 0x82B0, 0x82B2, // がぎぐげご
	0x82B4, 0x82B6, 0x82B8, 0x82BA, 0x82BC, // ざじずぜぞ
	0x82BE, 0x82C0, 0x82C3, 0x82C5, 0x82C7, // だぢづでど
	0x82CE, 0x82D1, 0x82D4, 0x82D7, 0x82DA, // ばびぶべぼ
}

var handakuten = [5]Code{
	0x82CF, 0x82D2, 0x82D5, 0x82D8, 0x82DB, // ぱぴぷぺぽ
}

var small = [9]Code{
	0x829F, 0x82A1, 0x82A3, 0x82A5, 0x82A7, // ぁぃぅぇぉ
	0x82E1, 0x82E3, 0x82E5,                 // ゃゅょ
	0x82C1,                                 // っ
}

const (
	smallYa = 5
	smallYu = 6
	smallYo = 7
)

// Index positions inside the basic table.
const (
	basicYRow = 35
	basicRRow = 38
	basicWa   = 43
	basicWo   = 44
)

// Rows reported by ConsonantRow.
const (
	RowNone = -1
	RowK    = 1
	RowS    = 2
	RowT    = 3
	RowN    = 4
	RowH    = 5
	RowM    = 6
	RowY    = 7
	RowR    = 8
	RowW    = 9
)

// Vowel returns the basic vowel code for a, i, u, e, o.
func Vowel(ch byte) (Code, bool) {
	v := VowelIndex(ch)
	if v < 0 {
		return 0, false
	}
	return basic[v], true
}

// VowelIndex maps a, i, u, e, o to 0..4 and everything else to -1.
func VowelIndex(ch byte) int {
	switch ch {
	case 'a':
		return 0
	case 'i':
		return 1
	case 'u':
		return 2
	case 'e':
		return 3
	case 'o':
		return 4
	}
	return -1
}

// ConsonantRow maps a consonant letter to its gojūon row. Voiced consonants
// (g, z, d, b, p, j) have no basic row and report RowNone.
func ConsonantRow(ch byte) int {
	switch ch {
	case 'k':
		return RowK
	case 's':
		return RowS
	case 't', 'c':
		return RowT
	case 'n':
		return RowN
	case 'h', 'f':
		return RowH
	case 'm':
		return RowM
	case 'y':
		return RowY
	case 'r':
		return RowR
	case 'w':
		return RowW
	}
	return RowNone
}

// IsVoiced reports the consonants that only exist in the dakuten and
// handakuten tables, plus j.
func IsVoiced(ch byte) bool {
	switch ch {
	case 'g', 'z', 'd', 'b', 'p', 'j':
		return true
	}
	return false
}

// IsConsonant reports whether ch starts a syllable in the romaji tables.
func IsConsonant(ch byte) bool {
	return ConsonantRow(ch) != RowNone || IsVoiced(ch)
}

// Basic looks up consonant+vowel in the plain gojūon table.
func Basic(consonant, vowel byte) Seq {
	row := ConsonantRow(consonant)
	v := VowelIndex(vowel)
	if row == RowNone || v < 0 {
		return Seq{}
	}
	switch row {
	case RowY:
		switch v {
		case 0:
			return one(basic[basicYRow])
		case 2:
			return one(basic[basicYRow+1])
		case 4:
			return one(basic[basicYRow+2])
		}
		return Seq{}
	case RowW:
		switch v {
		case 0:
			return one(basic[basicWa])
		case 1:
			return two(basic[2], small[1]) // うぃ
		case 3:
			return two(basic[2], small[3]) // うぇ
		case 4:
			return one(basic[basicWo])
		}
		return Seq{}
	case RowR:
		return one(basic[basicRRow+v])
	}
	return one(basic[(row-1)*5+5+v])
}

// Special covers the single-letter spellings that do not follow the row
// tables: si, ti, tu, hu and the f-row.
func Special(consonant, vowel byte) Seq {
	switch consonant {
	case 's':
		if vowel == 'i' {
			return one(0x82B5)
		}
	case 't':
		switch vowel {
		case 'i':
			return one(0x82BF)
		case 'u':
			return one(0x82C2)
		}
	case 'h':
		if vowel == 'u' {
			return one(0x82D3)
		}
	case 'f':
		switch vowel {
		case 'a':
			return two(0x82D3, small[0])
		case 'i':
			return two(0x82D3, small[1])
		case 'u':
			return one(0x82D3)
		case 'e':
			return two(0x82D3, small[3])
		case 'o':
			return two(0x82D3, small[4])
		}
	}
	return Seq{}
}

// Dakuten looks up g, z, d, b rows.
func Dakuten(consonant, vowel byte) Seq {
	v := VowelIndex(vowel)
	if v < 0 {
		return Seq{}
	}
	var base int
	switch consonant {
	case 'g':
		base = 0
	case 'z':
		base = 5
	case 'd':
		base = 10
	case 'b':
		base = 15
	default:
		return Seq{}
	}
	return one(dakuten[base+v])
}

// Handakuten looks up the p row.
func Handakuten(consonant, vowel byte) Seq {
	v := VowelIndex(vowel)
	if consonant != 'p' || v < 0 {
		return Seq{}
	}
	return one(handakuten[v])
}

// Syllable resolves consonant+vowel in priority order: irregular spellings,
// dakuten, handakuten, then the basic table.
func Syllable(consonant, vowel byte) Seq {
	if VowelIndex(vowel) < 0 {
		return Seq{}
	}
	if s := Special(consonant, vowel); !s.Empty() {
		return s
	}
	if s := Dakuten(consonant, vowel); !s.Empty() {
		return s
	}
	if s := Handakuten(consonant, vowel); !s.Empty() {
		return s
	}
	return Basic(consonant, vowel)
}

// J resolves the irregular j spellings: ji, ja, ju, jo, je.
func J(vowel byte) Seq {
	const ji Code = 0x82B6
	switch vowel {
	case 'i':
		return one(ji)
	case 'a':
		return two(ji, small[smallYa])
	case 'u':
		return two(ji, small[smallYu])
	case 'o':
		return two(ji, small[smallYo])
	case 'e':
		return two(ji, small[3])
	}
	return Seq{}
}

// Small returns the small kana selected after an x prefix.
func Small(ch byte) Seq {
	switch ch {
	case 'a':
		return one(small[0])
	case 'i':
		return one(small[1])
	case 'u':
		return one(small[2])
	case 'e':
		return one(small[3])
	case 'o':
		return one(small[4])
	case 'y':
		return one(small[smallYa])
	}
	return Seq{}
}

// SmallTsuCode is the x-prefixed "tu" spelling (xtu → っ).
func SmallTsuCode() Seq { return one(small[8]) }

func smallY(vowel byte) (Code, bool) {
	switch vowel {
	case 'a':
		return small[smallYa], true
	case 'u':
		return small[smallYu], true
	case 'o':
		return small[smallYo], true
	}
	return 0, false
}

// Youon combines the i-column kana of a consonant row with a small ya/yu/yo,
// e.g. k+a → きゃ.
func Youon(consonant, vowel byte) Seq {
	var base Code
	switch consonant {
	case 'k':
		base = basic[6]
	case 's':
		base = basic[11]
	case 't':
		base = basic[16]
	case 'n':
		base = basic[21]
	case 'h':
		base = basic[26]
	case 'f':
		base = basic[27]
	case 'm':
		base = basic[31]
	case 'r':
		base = basic[39]
	case 'g':
		base = dakuten[1]
	case 'z', 'j':
		base = dakuten[6]
	case 'd':
		base = dakuten[11]
	case 'b':
		base = dakuten[16]
	case 'p':
		base = handakuten[1]
	default:
		return Seq{}
	}
	y, ok := smallY(vowel)
	if !ok {
		return Seq{}
	}
	return two(base, y)
}

// Digraph returns the single kana spelled by a two-letter prefix
// (sh → し, ch → ち, ts → つ).
func Digraph(first, second byte) Seq {
	switch {
	case first == 's' && second == 'h':
		return one(0x82B5)
	case first == 'c' && second == 'h':
		return one(0x82BF)
	case first == 't' && second == 's':
		return one(0x82C2)
	}
	return Seq{}
}

// DigraphYouon spells sha/shu/sho and cha/chu/cho.
func DigraphYouon(first, second, vowel byte) Seq {
	if second != 'h' {
		return Seq{}
	}
	var base Code
	switch first {
	case 'c':
		base = 0x82BF
	case 's':
		base = 0x82B5
	default:
		return Seq{}
	}
	y, ok := smallY(vowel)
	if !ok {
		return Seq{}
	}
	return two(base, y)
}

// DH spells the dh digraph: dhi → でぃ, dha/dhu/dho → でゃ/でゅ/でょ,
// dhe → でぇ.
func DH(vowel byte) Seq {
	const de Code = 0x82C5
	switch vowel {
	case 'i':
		return two(de, small[1])
	case 'e':
		return two(de, small[3])
	}
	if y, ok := smallY(vowel); ok {
		return two(de, y)
	}
	return Seq{}
}

// Punctuation maps the three romaji punctuation keys.
func Punctuation(ch byte) (Code, bool) {
	switch ch {
	case '-':
		return ProlongMark, true
	case ',':
		return Comma, true
	case '.':
		return Period, true
	}
	return 0, false
}
