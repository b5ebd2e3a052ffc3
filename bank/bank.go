/*
Package bank provides paged, read-only byte stores addressed by
(bank, offset) pairs.

A store behaves like a banked ROM: reading a byte returns the cursor of the
following byte, and the cursor wraps to offset 0 of the next bank once the
page boundary is reached. Two stores are available: Pages, an in-memory page
table, and File, a read-only memory mapping of an image on disk.
*/
package bank

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
)

// DefaultPageSize is the bank size of the cartridge layout, 8 KiB.
const DefaultPageSize = 8192

// ErrOutOfRange is returned for reads outside of the stored image.
var ErrOutOfRange = errors.New("bank: read outside of image")

// tracer writes to trace with key 'ime.bank'
func tracer() tracing.Trace {
	return tracing.Select("ime.bank")
}

// Cursor addresses one byte of a banked store.
type Cursor struct {
	Bank   int
	Offset int
}

// At creates a cursor.
func At(bank, offset int) Cursor {
	return Cursor{Bank: bank, Offset: offset}
}

// Next returns the cursor of the byte following c. Offsets wrap to the start
// of the next bank at pageSize.
func (c Cursor) Next(pageSize int) Cursor {
	c.Offset++
	if c.Offset >= pageSize {
		c.Offset = 0
		c.Bank++
	}
	return c
}

// Skip advances c by n bytes.
func (c Cursor) Skip(n, pageSize int) Cursor {
	linear := c.Offset + n
	c.Bank += linear / pageSize
	c.Offset = linear % pageSize
	return c
}

// Linear returns the flat byte position of c relative to startBank.
func (c Cursor) Linear(startBank, pageSize int) int {
	return (c.Bank-startBank)*pageSize + c.Offset
}

// FromLinear is the inverse of Linear.
func FromLinear(pos, startBank, pageSize int) Cursor {
	return Cursor{Bank: startBank + pos/pageSize, Offset: pos % pageSize}
}
