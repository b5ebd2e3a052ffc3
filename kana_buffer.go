package ime

import "github.com/h-o-soft/c64jp/ime/kana"

const (
	kanaBufferSize  = 64
	kanaBufferLimit = kanaBufferSize - 2 // appends stop here
)

// kanaBuffer holds the double-byte codes typed so far. Its length is always
// even.
type kanaBuffer struct {
	buf      [kanaBufferSize]byte
	n        int
	katakana bool // append maps hiragana to katakana
}

func (b *kanaBuffer) append(c kana.Code) {
	if b.n >= kanaBufferLimit {
		return
	}
	if b.katakana {
		c = kana.ToKatakana(c)
	}
	b.buf[b.n] = c.High()
	b.buf[b.n+1] = c.Low()
	b.n += 2
}

func (b *kanaBuffer) appendSeq(s kana.Seq) {
	for i := 0; i < s.Len(); i++ {
		b.append(s.At(i))
	}
}

// eraseLast removes the last code. It reports false on an empty buffer.
func (b *kanaBuffer) eraseLast() bool {
	if b.n < 2 {
		return false
	}
	b.n -= 2
	b.buf[b.n] = 0
	b.buf[b.n+1] = 0
	return true
}

// removePrefix drops the first n bytes and moves the rest to the front.
// n is rounded up to whole codes.
func (b *kanaBuffer) removePrefix(n int) {
	if n <= 0 {
		return
	}
	n += n & 1
	if n > b.n {
		n = b.n
	}
	rest := copy(b.buf[:], b.buf[n:b.n])
	clear(b.buf[rest:])
	b.n = rest
}

// remap rewrites the buffer to katakana or hiragana and sets the append
// mode accordingly.
func (b *kanaBuffer) remap(katakana bool) {
	b.katakana = katakana
	if katakana {
		kana.RemapKatakana(b.bytes())
	} else {
		kana.RemapHiragana(b.bytes())
	}
}

func (b *kanaBuffer) bytes() []byte { return b.buf[:b.n] }

func (b *kanaBuffer) len() int { return b.n }

func (b *kanaBuffer) clear() {
	clear(b.buf[:])
	b.n = 0
}
