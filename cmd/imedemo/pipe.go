package main

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/h-o-soft/c64jp/ime"
)

// runPipe feeds every byte of r to an active engine and writes the
// confirmed text to w. A newline is a Return key; pending input is
// confirmed at the end of r.
func runPipe(e *ime.Engine, r io.Reader, w io.Writer) error {
	in := bufio.NewReader(r)
	out := bufio.NewWriter(w)
	if !e.Active() {
		e.Activate()
	}
	for {
		key, err := in.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.WithStack(err)
		}
		if key == '\n' {
			key = ime.KeyReturn
		}
		if err := emit(e, e.ProcessKey(key), out); err != nil {
			return err
		}
	}
	for len(e.Kana()) > 0 || len(e.Pending()) > 0 {
		if err := emit(e, e.ProcessKey(ime.KeyReturn), out); err != nil {
			return err
		}
	}
	return errors.WithStack(out.Flush())
}

func emit(e *ime.Engine, ev ime.Event, w *bufio.Writer) error {
	var err error
	switch ev {
	case ime.EventConfirmed:
		_, err = w.WriteString(decode(e.Output()))
		e.ClearOutput()
	case ime.EventKeyPassthrough:
		if e.PassthroughKey() == ime.KeyReturn {
			err = w.WriteByte('\n')
		}
	}
	return errors.WithStack(err)
}
