package dic

import (
	"bytes"

	"github.com/h-o-soft/c64jp/ime/bank"
	"github.com/h-o-soft/c64jp/ime/kana"
)

// Dictionary searches a dictionary image held by a Store.
type Dictionary struct {
	store Store
	cfg   Config
}

// Match is the result of a successful Lookup.
type Match struct {
	Partition  Partition
	Length     int         // bytes of the entry key, classifier letter included
	Candidates bank.Cursor // position of the candidate count byte
	Okurigana  kana.Code   // verb matches only
}

// Consumed is the number of key bytes a confirmed candidate replaces. A
// verb match also consumes its okurigana.
func (m Match) Consumed() int {
	if m.Partition == Verbs {
		return m.Length + 1
	}
	return m.Length
}

// CandidateSink receives candidate words from ReadCandidates. word is only
// valid during the call. AddCandidate returns false once the sink is full.
type CandidateSink interface {
	AddCandidate(word []byte, okurigana kana.Code) bool
}

// Open wraps store. It does not read anything; use Available to check the
// image.
func Open(store Store, cfg Config) *Dictionary {
	if cfg.PageSize <= 0 {
		cfg.PageSize = bank.DefaultPageSize
	}
	return &Dictionary{store: store, cfg: cfg}
}

// Config returns the paging configuration.
func (d *Dictionary) Config() Config { return d.cfg }

func (d *Dictionary) reader(at bank.Cursor) reader {
	return reader{store: d.store, at: at, pageSize: d.cfg.pageSize()}
}

// origin is the cursor of the magic.
func (d *Dictionary) origin() bank.Cursor {
	return bank.At(d.cfg.StartBank, 0)
}

// Available reports whether the image starts with the dictionary magic.
func (d *Dictionary) Available() bool {
	if d == nil || d.store == nil {
		return false
	}
	r := d.reader(d.origin())
	for i := 0; i < len(Magic); i++ {
		if r.byte() != Magic[i] || r.err != nil {
			return false
		}
	}
	return true
}

// Lookup searches partition p for the entry matching the longest possible
// prefix of key. key holds double-byte kana codes. Entries are stored
// longest first, so the first match wins.
func (d *Dictionary) Lookup(key []byte, p Partition) (Match, bool) {
	if d == nil || d.store == nil || len(key) < 2 {
		return Match{}, false
	}
	index := int(kana.FromBytes(key[0], key[1])) - int(kana.HiraganaBase)
	if index < 0 || index > MaxSlotIndex {
		return Match{}, false
	}
	r := d.reader(d.origin().Skip(p.TableOffset()+index*SlotSize, d.cfg.pageSize()))
	lo, hi, delta := r.byte(), r.byte(), r.byte()
	if r.err != nil {
		tracer().Errorf("reading %s slot %d: %v", p, index, r.err)
		return Match{}, false
	}
	if lo == 0 && hi == 0 && delta == 0 {
		return Match{}, false
	}
	r.at = bank.At(d.cfg.StartBank+int(delta), int(hi)<<8|int(lo))
	m, ok := d.searchGroup(&r, key, p)
	if r.err != nil {
		tracer().Errorf("searching %s slot %d: %v", p, index, r.err)
		return Match{}, false
	}
	return m, ok
}

// searchGroup walks the entry chain at r until a match or the start of the
// next slot group.
func (d *Dictionary) searchGroup(r *reader, key []byte, p Partition) (Match, bool) {
	var entry [MaxKeyLength + 1]byte
	skip := int(r.word() & SkipMask)
	for r.err == nil {
		n := r.cstring(&entry)
		if m, ok := matchEntry(entry[:n], key, p); ok && r.err == nil {
			m.Candidates = r.at
			return m, true
		}
		r.skip(skip)
		header := r.word()
		skip = int(header & SkipMask)
		if header&GroupStartFlag != 0 {
			break
		}
	}
	return Match{}, false
}

func matchEntry(entry, key []byte, p Partition) (Match, bool) {
	n := len(entry)
	if n == 0 {
		return Match{}, false
	}
	if p == Nouns {
		if len(key) >= n && bytes.Equal(key[:n], entry) {
			return Match{Partition: Nouns, Length: n}, true
		}
		return Match{}, false
	}
	stem := n - 1
	classifier := entry[stem]
	if !kana.IsClassifier(classifier) || len(key) < stem+2 {
		return Match{}, false
	}
	if !bytes.Equal(key[:stem], entry[:stem]) {
		return Match{}, false
	}
	okurigana := kana.FromBytes(key[stem], key[stem+1])
	if !kana.MatchesOkurigana(classifier, okurigana) {
		return Match{}, false
	}
	return Match{Partition: Verbs, Length: n, Okurigana: okurigana}, true
}

// ReadCandidates streams the candidate words of m into sink. Verb
// candidates carry the matched okurigana. It returns the number of words
// the sink accepted.
func (d *Dictionary) ReadCandidates(m Match, sink CandidateSink) int {
	if d == nil || d.store == nil {
		return 0
	}
	r := d.reader(m.Candidates)
	count := int(r.byte())
	var word [MaxKeyLength + 1]byte
	var okurigana kana.Code
	if m.Partition == Verbs {
		okurigana = m.Okurigana
	}
	added := 0
	for i := 0; i < count; i++ {
		n := r.cstring(&word)
		if r.err != nil {
			tracer().Errorf("reading candidate %d of %d: %v", i, count, r.err)
			break
		}
		if !sink.AddCandidate(word[:n], okurigana) {
			break
		}
		added++
	}
	return added
}
