package dic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/h-o-soft/c64jp/ime/bank"
	"github.com/h-o-soft/c64jp/ime/kana"
)

// image assembles a dictionary image by hand.
type image struct {
	data []byte
}

func newImage() *image {
	data := make([]byte, DataOffset)
	copy(data, Magic)
	return &image{data: data}
}

// slot points the slot of the leading kana code at the current end of data.
func (im *image) slot(p Partition, code kana.Code, pageSize int) {
	pos := len(im.data)
	at := p.TableOffset() + (int(code)-int(kana.HiraganaBase))*SlotSize
	off := pos % pageSize
	im.data[at] = byte(off)
	im.data[at+1] = byte(off >> 8)
	im.data[at+2] = byte(pos / pageSize)
}

// entry appends one entry and returns the position of its header.
func (im *image) entry(first bool, key []byte, words ...[]byte) int {
	pos := len(im.data)
	skip := 1
	for _, w := range words {
		skip += len(w) + 1
	}
	if first {
		skip |= GroupStartFlag
	}
	im.data = append(im.data, byte(skip), byte(skip>>8))
	im.data = append(im.data, key...)
	im.data = append(im.data, 0, byte(len(words)))
	for _, w := range words {
		im.data = append(im.data, w...)
		im.data = append(im.data, 0)
	}
	return pos
}

func (im *image) end() {
	im.data = append(im.data, 0x00, 0x80)
}

var (
	keyAsa = []byte{0x82, 0xA0, 0x82, 0xB3} // あさ
	keyAi  = []byte{0x82, 0xA0, 0x82, 0xA2} // あい
	asa    = []byte{0x92, 0xA9}             // 朝
	ai     = []byte{0x88, 0xA4}             // 愛
	kaku   = []byte{0x8F, 0x91}             // 書
)

type collected struct {
	words     [][]byte
	okurigana []kana.Code
	limit     int
}

func (c *collected) AddCandidate(word []byte, okurigana kana.Code) bool {
	if c.limit > 0 && len(c.words) >= c.limit {
		return false
	}
	c.words = append(c.words, append([]byte(nil), word...))
	c.okurigana = append(c.okurigana, okurigana)
	return true
}

func sampleDictionary(pageSize int) (*Dictionary, *image) {
	im := newImage()
	im.slot(Nouns, 0x82A0, pageSize)
	im.entry(true, keyAsa, asa)
	im.entry(false, keyAi, ai)
	im.slot(Verbs, 0x82A9, pageSize)
	im.entry(true, []byte{0x82, 0xA9, 'k'}, kaku)
	im.end()
	return Open(bank.Split(im.data, 0, pageSize), Config{PageSize: pageSize}), im
}

func TestAvailable(t *testing.T) {
	requireT := require.New(t)
	d, _ := sampleDictionary(bank.DefaultPageSize)
	requireT.True(d.Available())

	blank := Open(bank.Split(make([]byte, 16), 0, 16), Config{PageSize: 16})
	requireT.False(blank.Available())

	var missing *Dictionary
	requireT.False(missing.Available())
}

func TestNounLookupSkipsMismatch(t *testing.T) {
	requireT := require.New(t)
	d, _ := sampleDictionary(bank.DefaultPageSize)

	m, ok := d.Lookup(keyAi, Nouns)
	requireT.True(ok)
	requireT.Equal(Nouns, m.Partition)
	requireT.Equal(4, m.Length)
	requireT.Equal(4, m.Consumed())

	c := &collected{}
	requireT.Equal(1, d.ReadCandidates(m, c))
	requireT.Equal([][]byte{ai}, c.words)
	requireT.Equal([]kana.Code{0}, c.okurigana)
}

func TestNounLookupPrefix(t *testing.T) {
	requireT := require.New(t)
	d, _ := sampleDictionary(bank.DefaultPageSize)

	key := append(append([]byte(nil), keyAsa...), 0x82, 0xA4) // あさう
	m, ok := d.Lookup(key, Nouns)
	requireT.True(ok)
	requireT.Equal(4, m.Length)

	_, ok = d.Lookup([]byte{0x82, 0xA0}, Nouns) // あ alone is shorter than every entry
	requireT.False(ok)
	_, ok = d.Lookup([]byte{0x82, 0xA9, 0x82, 0xA0}, Nouns) // empty slot
	requireT.False(ok)
	_, ok = d.Lookup([]byte{0x81, 0x42}, Nouns) // not hiragana
	requireT.False(ok)
	_, ok = d.Lookup([]byte{0x82}, Nouns)
	requireT.False(ok)
}

func TestSkipLandsOnNextHeader(t *testing.T) {
	requireT := require.New(t)
	d, im := sampleDictionary(bank.DefaultPageSize)

	first := DataOffset
	second := first + 2 + len(keyAsa) + 1 + 1 + len(asa) + 1
	r := d.reader(bank.FromLinear(first, 0, bank.DefaultPageSize))
	skip := int(r.word() & SkipMask)
	var key [MaxKeyLength + 1]byte
	n := r.cstring(&key)
	requireT.Equal(keyAsa, key[:n])
	r.skip(skip)
	requireT.NoError(r.err)
	requireT.Equal(bank.FromLinear(second, 0, bank.DefaultPageSize), r.at)
	requireT.Equal(byte(0), im.data[second+1]&0x80)
}

func TestVerbLookupWithOkurigana(t *testing.T) {
	requireT := require.New(t)
	d, _ := sampleDictionary(bank.DefaultPageSize)

	key := []byte{0x82, 0xA9, 0x82, 0xAD, 0x82, 0xA0} // かくあ
	m, ok := d.Lookup(key, Verbs)
	requireT.True(ok)
	requireT.Equal(Verbs, m.Partition)
	requireT.Equal(3, m.Length)
	requireT.Equal(4, m.Consumed())
	requireT.Equal(kana.Code(0x82AD), m.Okurigana)

	c := &collected{}
	requireT.Equal(1, d.ReadCandidates(m, c))
	requireT.Equal([][]byte{kaku}, c.words)
	requireT.Equal([]kana.Code{0x82AD}, c.okurigana)

	_, ok = d.Lookup([]byte{0x82, 0xA9, 0x82, 0xAE}, Verbs) // かぐ is not in the k row
	requireT.False(ok)
	_, ok = d.Lookup([]byte{0x82, 0xA9}, Verbs) // no okurigana
	requireT.False(ok)
}

func TestLookupAcrossBanks(t *testing.T) {
	requireT := require.New(t)
	const pageSize = 256
	d, _ := sampleDictionary(pageSize)
	requireT.True(d.Available())

	m, ok := d.Lookup(keyAi, Nouns)
	requireT.True(ok)
	requireT.Equal(4, m.Length)
	requireT.Equal(2, m.Candidates.Bank)
	c := &collected{}
	d.ReadCandidates(m, c)
	requireT.Equal([][]byte{ai}, c.words)
}

func TestReadCandidatesStopsWhenSinkIsFull(t *testing.T) {
	requireT := require.New(t)
	im := newImage()
	im.slot(Nouns, 0x82A0, bank.DefaultPageSize)
	im.entry(true, keyAi, ai, asa, kaku)
	im.end()
	d := Open(bank.Split(im.data, 0, bank.DefaultPageSize), Config{})

	m, ok := d.Lookup(keyAi, Nouns)
	requireT.True(ok)
	c := &collected{limit: 2}
	requireT.Equal(2, d.ReadCandidates(m, c))
	requireT.Equal([][]byte{ai, asa}, c.words)
}

func TestTruncatedImageIsNotFound(t *testing.T) {
	requireT := require.New(t)
	const pageSize = 4
	_, im := sampleDictionary(pageSize)
	cut := im.data[:DataOffset+4] // header and half a key
	d := Open(bank.Split(cut, 0, pageSize), Config{PageSize: pageSize})
	requireT.True(d.Available())
	_, ok := d.Lookup(keyAi, Nouns)
	requireT.False(ok)
}
