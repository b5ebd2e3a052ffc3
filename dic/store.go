package dic

import "github.com/h-o-soft/c64jp/ime/bank"

// Store is the paged byte-store collaborator. ReadByte returns the byte at
// a cursor and the cursor of the following byte, wrapping into the next bank
// at the page boundary.
//
// bank.Pages and bank.File implement Store.
type Store interface {
	ReadByte(at bank.Cursor) (byte, bank.Cursor, error)
}

// reader reads sequentially from a Store. The first error sticks; every
// read after it returns 0.
type reader struct {
	store    Store
	at       bank.Cursor
	pageSize int
	err      error
}

func (r *reader) byte() byte {
	if r.err != nil {
		return 0
	}
	b, next, err := r.store.ReadByte(r.at)
	if err != nil {
		r.err = err
		return 0
	}
	r.at = next
	return b
}

// word reads a little-endian uint16.
func (r *reader) word() uint16 {
	lo := r.byte()
	hi := r.byte()
	return uint16(hi)<<8 | uint16(lo)
}

// cstring reads a null-terminated string into buf and returns its length.
// At most MaxKeyLength bytes are read; a longer string is cut without
// consuming its terminator.
func (r *reader) cstring(buf *[MaxKeyLength + 1]byte) int {
	n := 0
	for n < MaxKeyLength {
		ch := r.byte()
		buf[n] = ch
		if ch == 0 {
			return n
		}
		n++
	}
	buf[n] = 0
	return n
}

func (r *reader) skip(n int) {
	r.at = r.at.Skip(n, r.pageSize)
}
