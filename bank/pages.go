package bank

import "github.com/pkg/errors"

// Pages is an in-memory banked image. It is a two-level table:
//   - top[bank] = page index (1..NumPages), or 0 meaning "bank absent".
//   - data is a flat array of NumPages*PageSize bytes.
//
// Reads are O(1) with two slice accesses.
type Pages struct {
	top      []int  // page index (1-based); 0 means none
	data     []byte // flat: NumPages*pageSize
	pageSize int
}

// NewPages creates an empty store with the given page size.
func NewPages(pageSize int) *Pages {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pages{pageSize: pageSize}
}

// Split distributes a flat image over consecutive banks, starting at
// startBank.
func Split(image []byte, startBank, pageSize int) *Pages {
	p := NewPages(pageSize)
	for pos := 0; pos < len(image); pos += p.pageSize {
		bank := startBank + pos/p.pageSize
		pi := p.EnsurePage(bank)
		base := (pi - 1) * p.pageSize
		copy(p.data[base:base+p.pageSize], image[pos:])
	}
	tracer().Debugf("split %d bytes into %d banks of %d bytes", len(image), p.NumPages(), p.pageSize)
	return p
}

// PageSize returns the bank size.
func (p *Pages) PageSize() int { return p.pageSize }

// NumPages returns the number of allocated pages.
func (p *Pages) NumPages() int { return len(p.data) / p.pageSize }

// EnsurePage ensures that the page for bank exists.
// Returns the 1-based page index.
func (p *Pages) EnsurePage(bank int) int {
	if bank < 0 {
		panic("bank: negative bank number")
	}
	if bank >= len(p.top) {
		p.top = append(p.top, make([]int, bank+1-len(p.top))...)
	}
	if pi := p.top[bank]; pi != 0 {
		return pi
	}
	p.data = append(p.data, make([]byte, p.pageSize)...)
	pi := p.NumPages()
	p.top[bank] = pi
	return pi
}

// Set stores one byte, allocating its bank on demand.
func (p *Pages) Set(at Cursor, b byte) {
	pi := p.EnsurePage(at.Bank)
	p.data[(pi-1)*p.pageSize+at.Offset] = b
}

// ReadByte returns the byte at the cursor and the cursor of the next byte.
func (p *Pages) ReadByte(at Cursor) (byte, Cursor, error) {
	if at.Bank < 0 || at.Bank >= len(p.top) || at.Offset < 0 || at.Offset >= p.pageSize {
		return 0, at, errors.Wrapf(ErrOutOfRange, "bank %d offset %d", at.Bank, at.Offset)
	}
	pi := p.top[at.Bank]
	if pi == 0 {
		return 0, at, errors.Wrapf(ErrOutOfRange, "bank %d not present", at.Bank)
	}
	return p.data[(pi-1)*p.pageSize+at.Offset], at.Next(p.pageSize), nil
}
