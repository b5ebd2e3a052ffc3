/*
Package dicbuild compiles SKK dictionary entries into the binary image read
by package dic.

Entries are grouped by partition (verbs are headwords ending in an ASCII
classifier letter) and by leading kana. Inside a group the longest keys come
first, then keys in byte order, so the first match found by a search is the
longest one. Duplicate headwords are merged.
*/
package dicbuild

import (
	"bytes"
	"io"
	"slices"

	"github.com/derekparker/trie"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"

	"github.com/h-o-soft/c64jp/ime/bank"
	"github.com/h-o-soft/c64jp/ime/dic"
	"github.com/h-o-soft/c64jp/ime/kana"
	"github.com/h-o-soft/c64jp/ime/skk"
)

// tracer writes to trace with key 'ime.dicbuild'
func tracer() tracing.Trace {
	return tracing.Select("ime.dicbuild")
}

const (
	maxStringLength = dic.MaxKeyLength - 1 // longer strings lose their terminator on read
	maxCandidates   = 255
	maxBankDelta    = 255
)

// Config carries the paging of the generated image.
type Config struct {
	PageSize int // bank size, defaults to 8192
}

// Stats summarizes a build.
type Stats struct {
	Nouns             int // noun entries written
	Verbs             int // verb entries written
	Candidates        int
	Merged            int // duplicate headwords folded into an earlier entry
	Skipped           int // headwords that cannot be stored
	SkippedCandidates int
	Size              int // image size in bytes
}

// EntrySource yields SKK entries; skk.Reader implements it.
type EntrySource interface {
	Next() (skk.Entry, error)
}

type entry struct {
	key   []byte   // Shift-JIS headword
	words [][]byte // Shift-JIS candidates
	verb  bool
	slot  int
}

// skip is the distance from the end of the key to the next entry header.
func (e *entry) skip() int {
	return 1 + lo.SumBy(e.words, func(w []byte) int { return len(w) + 1 })
}

// Builder collects entries and renders the image.
type Builder struct {
	cfg     Config
	index   *trie.Trie // UTF-8 headword → *entry
	encoder *encoding.Encoder
	stats   Stats
}

// New creates an empty builder.
func New(cfg Config) *Builder {
	if cfg.PageSize <= 0 {
		cfg.PageSize = bank.DefaultPageSize
	}
	return &Builder{
		cfg:     cfg,
		index:   trie.New(),
		encoder: japanese.ShiftJIS.NewEncoder(),
	}
}

func (b *Builder) encode(s string) ([]byte, bool) {
	out, err := b.encoder.Bytes([]byte(s))
	if err != nil {
		return nil, false
	}
	return out, true
}

// Add registers a headword with its candidates. Headwords that cannot be
// stored are counted in Stats.Skipped and otherwise ignored.
func (b *Builder) Add(e skk.Entry) {
	key, ok := b.encode(e.Headword)
	if !ok || len(key) < 2 || len(key) > maxStringLength {
		b.stats.Skipped++
		tracer().Debugf("skipping headword %q: not storable", e.Headword)
		return
	}
	slot := int(kana.FromBytes(key[0], key[1])) - int(kana.HiraganaBase)
	if slot < 0 || slot >= dic.SlotCount {
		b.stats.Skipped++
		tracer().Debugf("skipping headword %q: does not start with hiragana", e.Headword)
		return
	}
	verb := e.IsVerb()
	if verb && len(key) < 3 {
		b.stats.Skipped++
		return
	}
	words := lo.FilterMap(lo.Uniq(e.Candidates), func(c string, _ int) ([]byte, bool) {
		w, ok := b.encode(c)
		if !ok || len(w) == 0 || len(w) > maxStringLength {
			b.stats.SkippedCandidates++
			return nil, false
		}
		return w, true
	})
	if len(words) == 0 {
		b.stats.Skipped++
		return
	}
	if node, found := b.index.Find(e.Headword); found {
		prev := node.Meta().(*entry)
		prev.words = mergeWords(prev.words, words)
		b.stats.Merged++
		return
	}
	b.index.Add(e.Headword, &entry{key: key, words: mergeWords(nil, words), verb: verb, slot: slot})
}

// mergeWords appends the words not yet present, keeping the candidate list
// within the limits of the count byte and the 15-bit skip field.
func mergeWords(dst, words [][]byte) [][]byte {
	size := 1 + lo.SumBy(dst, func(w []byte) int { return len(w) + 1 })
	for _, w := range words {
		if len(dst) >= maxCandidates || size+len(w)+1 > dic.SkipMask {
			break
		}
		if slices.ContainsFunc(dst, func(d []byte) bool { return bytes.Equal(d, w) }) {
			continue
		}
		dst = append(dst, w)
		size += len(w) + 1
	}
	return dst
}

// AddAll drains src.
func (b *Builder) AddAll(src EntrySource) error {
	for {
		e, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading dictionary source")
		}
		b.Add(e)
	}
}

// Stats returns the counters of the last Build, or of the entries added so
// far.
func (b *Builder) Stats() Stats { return b.stats }

// partition is the encoded entry data of one slot table.
type partition struct {
	data  []byte
	start [dic.SlotCount]int // offset of each slot group in data, -1 if empty
	count int
}

func encodePartition(entries []*entry) *partition {
	p := &partition{}
	bySlot := lo.GroupBy(entries, func(e *entry) int { return e.slot })
	for slot := 0; slot < dic.SlotCount; slot++ {
		group := bySlot[slot]
		if len(group) == 0 {
			p.start[slot] = -1
			continue
		}
		slices.SortFunc(group, func(x, y *entry) int {
			if len(x.key) != len(y.key) {
				return len(y.key) - len(x.key)
			}
			return bytes.Compare(x.key, y.key)
		})
		p.start[slot] = len(p.data)
		for i, e := range group {
			skip := e.skip()
			if i == 0 {
				skip |= dic.GroupStartFlag
			}
			p.data = append(p.data, byte(skip), byte(skip>>8))
			p.data = append(p.data, e.key...)
			p.data = append(p.data, 0, byte(len(e.words)))
			for _, w := range e.words {
				p.data = append(p.data, w...)
				p.data = append(p.data, 0)
			}
		}
		p.count += len(group)
	}
	return p
}

// Build renders the dictionary image.
func (b *Builder) Build() ([]byte, error) {
	entries := lo.Map(b.index.Keys(), func(k string, _ int) *entry {
		node, _ := b.index.Find(k)
		return node.Meta().(*entry)
	})
	byKind := lo.GroupBy(entries, func(e *entry) bool { return e.verb })

	var nouns, verbs *partition
	var g errgroup.Group
	g.Go(func() error {
		nouns = encodePartition(byKind[false])
		return nil
	})
	g.Go(func() error {
		verbs = encodePartition(byKind[true])
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	image := make([]byte, dic.DataOffset, dic.DataOffset+len(nouns.data)+len(verbs.data)+2)
	copy(image, dic.Magic)
	if err := b.writeSlots(image, dic.Nouns, nouns, dic.DataOffset); err != nil {
		return nil, err
	}
	if err := b.writeSlots(image, dic.Verbs, verbs, dic.DataOffset+len(nouns.data)); err != nil {
		return nil, err
	}
	image = append(image, nouns.data...)
	image = append(image, verbs.data...)
	image = append(image, 0x00, byte(dic.GroupStartFlag>>8)) // end of the last group

	b.stats.Nouns = nouns.count
	b.stats.Verbs = verbs.count
	b.stats.Candidates = lo.SumBy(entries, func(e *entry) int { return len(e.words) })
	b.stats.Size = len(image)
	tracer().Infof("dictionary image: %d nouns, %d verbs, %d candidates, %d bytes",
		b.stats.Nouns, b.stats.Verbs, b.stats.Candidates, b.stats.Size)
	return image, nil
}

func (b *Builder) writeSlots(image []byte, p dic.Partition, part *partition, base int) error {
	for slot, start := range part.start {
		if start < 0 {
			continue
		}
		at := bank.FromLinear(base+start, 0, b.cfg.PageSize)
		if at.Bank > maxBankDelta || at.Offset > 0xFFFF {
			return errors.Errorf("%s slot %d at bank %d offset %d does not fit a slot", p, slot, at.Bank, at.Offset)
		}
		pos := p.TableOffset() + slot*dic.SlotSize
		image[pos] = byte(at.Offset)
		image[pos+1] = byte(at.Offset >> 8)
		image[pos+2] = byte(at.Bank)
	}
	return nil
}

// WriteTo builds the image and writes it to w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	image, err := b.Build()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(image)
	return int64(n), errors.WithStack(err)
}
