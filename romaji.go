package ime

import "github.com/h-o-soft/c64jp/ime/kana"

// romajiState is the transliteration state. stateWaiting2nd follows s, c,
// t, f and d, which may start a digraph; stateYWaiting waits for the vowel
// of consonant+y or a digraph; stateSkipNext swallows the letter after "ts".
type romajiState uint8

const (
	stateEmpty romajiState = iota
	stateConsonant
	stateN
	stateSmallTsu
	stateWaiting2nd
	stateXPrefix
	stateYWaiting
	stateSkipNext
)

func (s romajiState) String() string {
	switch s {
	case stateConsonant:
		return "consonant"
	case stateN:
		return "n"
	case stateSmallTsu:
		return "small-tsu"
	case stateWaiting2nd:
		return "waiting-2nd"
	case stateXPrefix:
		return "x-prefix"
	case stateYWaiting:
		return "y-waiting"
	case stateSkipNext:
		return "skip-next"
	}
	return "empty"
}

const maxPending = 7

// romaji is the transliteration context. It keeps the letters typed since
// the last emitted kana and writes finished kana to out.
type romaji struct {
	state   romajiState
	last    byte // last consonant
	second  byte // second letter of a digraph (h, or s after t)
	pending [maxPending + 1]byte
	n       int
	out     *kanaBuffer
}

func (r *romaji) reset() {
	r.state = stateEmpty
	r.last = 0
	r.second = 0
	clear(r.pending[:])
	r.n = 0
}

func (r *romaji) letters() []byte { return r.pending[:r.n] }

func (r *romaji) emit(c kana.Code) { r.out.append(c) }

// done emits s and clears the context.
func (r *romaji) done(s kana.Seq) bool {
	r.out.appendSeq(s)
	r.reset()
	return true
}

func (r *romaji) reject() bool {
	r.reset()
	return false
}

// flush resolves a lone n to ん and clears the context. Other unfinished
// letters are dropped.
func (r *romaji) flush() {
	if r.state == stateN {
		r.emit(kana.N)
	}
	r.reset()
}

// transliterate feeds one lower-case ASCII key. It reports whether the key
// was accepted; a rejected key leaves an empty context behind.
func (r *romaji) transliterate(key byte) bool {
	if key < 0x20 || key > 0x7E {
		return false
	}
	if r.n >= maxPending {
		r.flush()
	}
	r.pending[r.n] = key
	r.n++
	switch r.state {
	case stateEmpty:
		return r.empty(key)
	case stateConsonant:
		return r.consonant(key)
	case stateN:
		return r.nasal(key)
	case stateSmallTsu:
		r.reset()
		return r.transliterate(key)
	case stateWaiting2nd:
		return r.waiting2nd(key)
	case stateXPrefix:
		return r.xPrefix(key)
	case stateYWaiting:
		return r.yWaiting(key)
	case stateSkipNext:
		r.reset()
		return true
	}
	return r.reject()
}

// startsDigraph reports consonants that may be followed by h (or t by s).
func startsDigraph(ch byte) bool {
	switch ch {
	case 's', 'c', 't', 'f', 'd':
		return true
	}
	return false
}

func (r *romaji) empty(key byte) bool {
	if c, ok := kana.Punctuation(key); ok {
		r.emit(c)
		r.reset()
		return true
	}
	if c, ok := kana.Vowel(key); ok {
		r.emit(c)
		r.reset()
		return true
	}
	switch key {
	case 'n':
		r.state, r.last = stateN, 'n'
		return true
	case 'x':
		r.state = stateXPrefix
		return true
	}
	if kana.IsConsonant(key) {
		r.state, r.last = stateConsonant, key
		if startsDigraph(key) {
			r.state = stateWaiting2nd
		}
		return true
	}
	return r.reject()
}

func (r *romaji) consonant(key byte) bool {
	if key == r.last && key != 'n' {
		r.emit(kana.SmallTsu)
		r.state = stateConsonant
		return true
	}
	if r.last == 'j' {
		if s := kana.J(key); !s.Empty() {
			return r.done(s)
		}
	} else if s := kana.Syllable(r.last, key); !s.Empty() {
		return r.done(s)
	}
	if key == 'y' {
		r.state = stateYWaiting
		return true
	}
	return r.reject()
}

// nasal handles the letter after a lone n. Anything that cannot extend the
// n emits ん and is replayed from an empty context.
func (r *romaji) nasal(key byte) bool {
	if key == 'n' {
		r.emit(kana.N)
		r.reset()
		return true
	}
	if (kana.ConsonantRow(key) != kana.RowNone && key != 'y') || kana.IsVoiced(key) {
		r.emit(kana.N)
		r.reset()
		return r.transliterate(key)
	}
	if s := kana.Basic('n', key); !s.Empty() {
		return r.done(s)
	}
	if key == 'y' {
		r.state = stateYWaiting
		return true
	}
	return r.reject()
}

func (r *romaji) waiting2nd(key byte) bool {
	if key == r.last {
		r.emit(kana.SmallTsu)
		return true
	}
	if key == 'h' {
		r.second = key
		r.state = stateYWaiting
		return true
	}
	if r.last == 't' && key == 's' {
		r.done(kana.Digraph('t', 's'))
		r.state = stateSkipNext
		return true
	}
	r.state = stateConsonant
	return r.consonant(key)
}

// xPrefix selects a small kana: xa xi xu xe xo xya, and xtu for っ.
func (r *romaji) xPrefix(key byte) bool {
	if r.last == 't' {
		if key == 'u' {
			return r.done(kana.SmallTsuCode())
		}
		return r.reject()
	}
	if key == 't' {
		r.last = 't'
		return true
	}
	if s := kana.Small(key); !s.Empty() {
		return r.done(s)
	}
	return r.reject()
}

func (r *romaji) yWaiting(key byte) bool {
	if r.second == 'h' {
		if kana.VowelIndex(key) < 0 {
			return r.reject()
		}
		var s kana.Seq
		switch {
		case r.last == 'd':
			s = kana.DH(key)
		case key == 'i':
			s = kana.Digraph(r.last, r.second)
		default:
			s = kana.DigraphYouon(r.last, r.second, key)
		}
		if !s.Empty() {
			return r.done(s)
		}
		return r.reject()
	}
	if s := kana.Youon(r.last, key); !s.Empty() {
		return r.done(s)
	}
	return r.reject()
}

// eraseLastInput removes the last pending letter and rebuilds the context
// from the letters left. Without pending letters it removes the last kana
// code instead.
func (r *romaji) eraseLastInput() bool {
	if r.n == 0 {
		if r.state == stateSkipNext {
			r.reset()
		}
		return r.out.eraseLast()
	}
	r.n--
	r.pending[r.n] = 0
	r.recalculate()
	return true
}

// recalculate derives the state from the pending letters alone.
func (r *romaji) recalculate() {
	switch {
	case r.n == 0:
		r.reset()
	case r.n == 1:
		r.fromLetter(r.pending[0])
	case r.n == 2:
		first, last := r.pending[0], r.pending[1]
		r.last, r.second = first, 0
		switch {
		case (first == 's' || first == 'c') && last == 'h', first == 't' && last == 's':
			r.state, r.second = stateYWaiting, last
		case first == 'x' && last == 't':
			r.state, r.last = stateXPrefix, 't'
		case last == 'y':
			r.state = stateYWaiting
		default:
			r.state = stateConsonant
		}
	default:
		ch := r.pending[r.n-1]
		r.reset()
		r.pending[0] = ch
		r.n = 1
		r.fromLetter(ch)
	}
}

func (r *romaji) fromLetter(ch byte) {
	r.last, r.second = ch, 0
	switch {
	case ch == 'n':
		r.state = stateN
	case ch == 'x':
		r.state, r.last = stateXPrefix, 0
	case startsDigraph(ch):
		r.state = stateWaiting2nd
	case kana.IsConsonant(ch):
		r.state = stateConsonant
	default:
		r.reset()
	}
}
