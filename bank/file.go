package bank

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// File is a dictionary image mapped read-only from disk. Bank startBank
// begins at file offset 0.
type File struct {
	data      []byte
	startBank int
	pageSize  int
}

// OpenFile maps the image at path. The returned function unmaps it and
// closes the file.
func OpenFile(path string, startBank, pageSize int) (*File, func(), error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, nil, errors.WithStack(err)
	}
	if info.Size() == 0 {
		_ = file.Close()
		return nil, nil, errors.Errorf("dictionary image %s is empty", path)
	}
	data, err := unix.Mmap(int(file.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		_ = file.Close()
		return nil, nil, errors.Wrapf(err, "mapping %s failed", path)
	}
	tracer().Infof("mapped %s: %d bytes, %d banks", path, len(data), (len(data)+pageSize-1)/pageSize)
	return &File{
			data:      data,
			startBank: startBank,
			pageSize:  pageSize,
		}, func() {
			_ = unix.Munmap(data)
			_ = file.Close()
		}, nil
}

// Size returns the image size in bytes.
func (f *File) Size() int { return len(f.data) }

// ReadByte returns the byte at the cursor and the cursor of the next byte.
func (f *File) ReadByte(at Cursor) (byte, Cursor, error) {
	if at.Bank < f.startBank || at.Offset < 0 || at.Offset >= f.pageSize {
		return 0, at, errors.Wrapf(ErrOutOfRange, "bank %d offset %d", at.Bank, at.Offset)
	}
	pos := at.Linear(f.startBank, f.pageSize)
	if pos >= len(f.data) {
		return 0, at, errors.Wrapf(ErrOutOfRange, "position %d beyond %d bytes", pos, len(f.data))
	}
	return f.data[pos], at.Next(f.pageSize), nil
}
