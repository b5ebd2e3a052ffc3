package ime

import (
	"github.com/h-o-soft/c64jp/ime/dic"
	"github.com/h-o-soft/c64jp/ime/kana"
)

const outputSize = 128

// KeySource is the input collaborator. PollKey returns 0 when no key is
// waiting.
type KeySource interface {
	PollKey() byte
}

// Display renders the engine state. Slices passed to it are only valid
// during the call.
type Display interface {
	ShowInput(kana, pending []byte)
	ShowCandidate(word []byte, index, total int)
	ShowMode(m Mode, active bool)
}

type nopDisplay struct{}

func (nopDisplay) ShowInput(_, _ []byte)            {}
func (nopDisplay) ShowCandidate(_ []byte, _, _ int) {}
func (nopDisplay) ShowMode(_ Mode, _ bool)          {}

// Config wires an Engine to its collaborators. Without a Dictionary, Space
// never starts a conversion.
type Config struct {
	Dictionary *dic.Dictionary
	Display    Display
}

// Engine is the input method state: transliteration context, kana buffer,
// candidate set and output buffer.
type Engine struct {
	active     bool
	mode       Mode
	romaji     romaji
	kana       kanaBuffer
	converting bool
	cands      CandidateSet
	key        [conversionKeySize]byte
	keyLen     int
	out        [outputSize]byte
	outLen     int
	hasOutput  bool
	pass       byte
	dict       *dic.Dictionary
	display    Display
}

// New creates an inactive engine in hiragana mode.
func New(cfg Config) *Engine {
	e := &Engine{
		dict:    cfg.Dictionary,
		display: cfg.Display,
	}
	if e.display == nil {
		e.display = nopDisplay{}
	}
	e.romaji.out = &e.kana
	if e.dict != nil && !e.dict.Available() {
		tracer().Infof("dictionary magic missing, conversion disabled")
	}
	return e
}

// Activate switches the engine on with a fresh input state.
func (e *Engine) Activate() {
	e.reset()
	e.active = true
	tracer().Debugf("activated in %s mode", e.mode)
	e.display.ShowMode(e.mode, true)
	e.refresh()
}

// Deactivate clears all state and switches the engine off.
func (e *Engine) Deactivate() Event {
	e.reset()
	e.active = false
	tracer().Debugf("deactivated")
	e.display.ShowMode(e.mode, false)
	return EventDeactivated
}

// Toggle flips activation, the way Commodore+Space does.
func (e *Engine) Toggle() Event {
	if e.active {
		return e.Deactivate()
	}
	e.Activate()
	return EventNone
}

// Active reports whether the engine consumes keys.
func (e *Engine) Active() bool { return e.active }

// SetMode switches the input mode. Pending romaji letters are dropped;
// switching between hiragana and katakana rewrites the kana buffer in place.
func (e *Engine) SetMode(m Mode) Event {
	e.mode = m
	e.romaji.reset()
	switch m {
	case Hiragana:
		e.kana.remap(false)
	case Katakana:
		e.kana.remap(true)
	default:
		e.kana.katakana = false
	}
	tracer().Debugf("mode %s", m)
	e.display.ShowMode(m, e.active)
	e.refresh()
	return EventModeChanged
}

// Mode returns the input mode.
func (e *Engine) Mode() Mode { return e.mode }

func (e *Engine) reset() {
	e.romaji.reset()
	e.kana.clear()
	e.cancelConversion()
	e.ClearOutput()
	e.pass = 0
}

// Poll reads one key from src and processes it.
func (e *Engine) Poll(src KeySource) Event {
	if !e.active {
		return EventNone
	}
	return e.ProcessKey(src.PollKey())
}

// ProcessKey advances the engine by one keystroke. Letters may be upper
// case; they are folded before transliteration.
//
// Return and backspace on an empty input are not consumed: ProcessKey
// reports EventKeyPassthrough and PassthroughKey holds the key.
func (e *Engine) ProcessKey(key byte) Event {
	if !e.active || key == 0 {
		return EventNone
	}
	e.ClearOutput()
	if key == KeyEscape {
		if e.converting {
			e.cancelConversion()
		} else {
			e.cancelInput()
		}
		e.refresh()
		return EventCancelled
	}
	isBackspace := key == KeyBackspace || key == KeyDelete
	if (isBackspace || key == KeyReturn) && e.romaji.n == 0 && e.kana.len() == 0 {
		e.pass = key
		return EventKeyPassthrough
	}
	switch {
	case key == KeyReturn:
		if e.converting {
			e.confirmConversion()
		} else {
			e.confirmInput()
		}
	case isBackspace:
		if e.converting {
			e.cancelConversion()
		}
		e.romaji.eraseLastInput()
	case key == KeySpace:
		e.space()
	case key == KeyPrevious:
		if !e.converting || e.mode == Katakana {
			return EventNone
		}
		e.cands.previous()
	case key >= 0x20 && key <= 0x7E:
		if e.converting {
			e.confirmConversion()
		}
		e.input(key)
	default:
		return EventNone
	}
	e.refresh()
	if e.hasOutput {
		return EventConfirmed
	}
	return EventNone
}

// space cycles candidates while converting. Otherwise, in hiragana mode, it
// starts a conversion and falls back to typing a space.
func (e *Engine) space() {
	if e.converting {
		e.cands.next()
		return
	}
	if e.mode == Hiragana {
		// A lone n becomes ん even when the lookup then fails; a failed
		// conversion otherwise leaves the input untouched.
		if e.romaji.state == stateN {
			e.romaji.flush()
		}
		if e.startConversion() {
			return
		}
	}
	e.input(KeySpace)
}

func (e *Engine) input(key byte) {
	if e.mode == FullwidthAlnum {
		if c, ok := kana.Fullwidth(key); ok {
			e.kana.append(c)
		}
		return
	}
	if key >= 'A' && key <= 'Z' {
		key += 'a' - 'A'
	}
	e.romaji.transliterate(key)
}

func (e *Engine) refresh() {
	if e.converting {
		word, _ := e.cands.Current()
		e.display.ShowCandidate(word, e.cands.Selected(), e.cands.Len())
		return
	}
	e.display.ShowInput(e.kana.bytes(), e.romaji.letters())
}

func (e *Engine) setOutput(b []byte) {
	e.outLen = copy(e.out[:], b)
	e.hasOutput = e.outLen > 0
}

// Output returns the text confirmed by the last key, as Shift-JIS bytes.
// The slice is overwritten by the next key.
func (e *Engine) Output() []byte {
	if !e.hasOutput {
		return nil
	}
	return e.out[:e.outLen]
}

// ClearOutput discards the confirmed text.
func (e *Engine) ClearOutput() {
	e.outLen = 0
	e.hasOutput = false
}

// PassthroughKey returns the key of the last EventKeyPassthrough.
func (e *Engine) PassthroughKey() byte { return e.pass }

// Converting reports whether candidates are being offered.
func (e *Engine) Converting() bool { return e.converting }

// Candidate returns the selected candidate while converting.
func (e *Engine) Candidate() ([]byte, bool) {
	if !e.converting {
		return nil, false
	}
	return e.cands.Current()
}

// CandidateIndex returns the selected index and the number of candidates.
func (e *Engine) CandidateIndex() (index, total int) {
	return e.cands.Selected(), e.cands.Len()
}

// Candidates exposes the candidate set of the running conversion.
func (e *Engine) Candidates() *CandidateSet { return &e.cands }

// Kana returns the kana buffer.
func (e *Engine) Kana() []byte { return e.kana.bytes() }

// Pending returns the romaji letters not yet turned into kana.
func (e *Engine) Pending() []byte { return e.romaji.letters() }
