/*
Package dic searches the paged kana-to-word dictionary.

The dictionary is a read-only image spread over fixed-size banks. It starts
with the magic "DIC", followed by two tables of 3-byte slots, one for nouns
at offset 4 and one for verbs at offset 250. A slot is indexed by the leading
hiragana of the key (code - 0x82A0) and holds (offsetLow, offsetHigh,
bankDelta); an all-zero slot means there are no entries for that kana.

A slot points to a chain of entries:

	skip     uint16 LE  bit 15 set on the first entry of each slot group
	key      []byte     null terminated, at most 63 bytes
	count    byte
	words    count null terminated Shift-JIS strings

skip is the number of bytes from the end of key to the next entry header, so
a mismatching entry is passed over without reading its candidates. A search
stops at the next header that carries bit 15.

Verb keys end in one ASCII classifier letter naming the conjugation row. A
verb entry matches when the bytes before the classifier prefix the key and
the kana following that prefix belongs to the classifier's row (the
okurigana).
*/
package dic

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ime.dic'
func tracer() tracing.Trace {
	return tracing.Select("ime.dic")
}
