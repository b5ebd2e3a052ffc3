/*
Package ime is a romaji input method engine for double-byte Shift-JIS text.

The engine turns lower-case ASCII romaji into hiragana or katakana, keystroke
by keystroke, and converts the collected kana into words from a paged
dictionary (see package dic). It is driven by a single call per keystroke,
ProcessKey, which reports an Event to the host program:

	e := ime.New(ime.Config{Dictionary: dic.Open(store, dic.Config{})})
	e.Activate()
	for _, k := range []byte("aisuru ") {
		e.ProcessKey(k)
	}
	if e.ProcessKey(ime.KeyReturn) == ime.EventConfirmed {
		emit(e.Output())
		e.ClearOutput()
	}

All buffers are fixed-size arrays allocated with the Engine; processing a key
does not allocate. Buffers that run full silently drop further input.

An Engine is not safe for concurrent use.

----------------------------------------------------------------------

# BSD License

Copyright (c) h-o-soft

All rights reserved.

License information is available in the LICENSE file.
*/
package ime

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ime'
func tracer() tracing.Trace {
	return tracing.Select("ime")
}
