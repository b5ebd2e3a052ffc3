package dic

import "github.com/h-o-soft/c64jp/ime/bank"

// Layout constants of the dictionary image.
const (
	Magic           = "DIC"
	HeaderSize      = 4   // magic plus one padding byte
	NounTableOffset = 4   // first noun slot
	VerbTableOffset = 250 // first verb slot
	SlotSize        = 3
	SlotCount       = 82 // slots written per table, あ..ん
	MaxSlotIndex    = 82 // largest slot index accepted by a lookup
	DataOffset      = VerbTableOffset + SlotCount*SlotSize
	MaxKeyLength    = 63 // longest string read from the image, terminator excluded
	GroupStartFlag  = 0x8000
	SkipMask        = 0x7FFF
)

// ErrOutOfRange reports a read outside of the dictionary image.
var ErrOutOfRange = bank.ErrOutOfRange

// Partition selects one of the two entry tables.
type Partition uint8

const (
	Nouns Partition = iota
	Verbs
)

func (p Partition) String() string {
	if p == Verbs {
		return "verbs"
	}
	return "nouns"
}

// TableOffset returns the offset of the first slot of p.
func (p Partition) TableOffset() int {
	if p == Verbs {
		return VerbTableOffset
	}
	return NounTableOffset
}

// Config carries the paging constants of a dictionary image.
type Config struct {
	StartBank int // bank holding the magic
	PageSize  int // bank size in bytes, defaults to 8192
}

func (c Config) pageSize() int {
	if c.PageSize <= 0 {
		return bank.DefaultPageSize
	}
	return c.PageSize
}
