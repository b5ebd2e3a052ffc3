package ime

import "github.com/h-o-soft/c64jp/ime/dic"

const conversionKeySize = 64

// startConversion looks the kana buffer up in both dictionary partitions and
// fills the candidate set. Candidates of the longer match come first; on a
// tie nouns come first. It leaves the engine untouched when nothing is
// found.
func (e *Engine) startConversion() bool {
	if e.kana.len() == 0 || !e.dict.Available() {
		return false
	}
	e.keyLen = copy(e.key[:], e.kana.bytes())
	key := e.key[:e.keyLen]

	verb, verbFound := e.dict.Lookup(key, dic.Verbs)
	noun, nounFound := e.dict.Lookup(key, dic.Nouns)
	if !verbFound && !nounFound {
		e.keyLen = 0
		return false
	}
	first, second := noun, verb
	firstFound, secondFound := nounFound, verbFound
	if verbFound && (!nounFound || verb.Length > noun.Length) {
		first, second = verb, noun
		firstFound, secondFound = verbFound, nounFound
	}
	e.cands.reset()
	if firstFound {
		e.cands.begin(first)
		e.dict.ReadCandidates(first, &e.cands)
	}
	if secondFound {
		e.cands.begin(second)
		e.dict.ReadCandidates(second, &e.cands)
	}
	if e.cands.Len() == 0 {
		e.cands.reset()
		e.keyLen = 0
		return false
	}
	e.converting = true
	return true
}

// confirmConversion outputs the selected candidate and removes the kana it
// replaces from the buffer. Trailing kana stay for the next conversion.
func (e *Engine) confirmConversion() {
	if e.converting {
		if word, ok := e.cands.Current(); ok {
			e.setOutput(word)
			m := e.cands.matchFor(e.cands.Selected())
			e.kana.removePrefix(m.Consumed())
		}
	}
	e.cancelConversion()
}

// cancelConversion drops the candidates and keeps the kana buffer.
func (e *Engine) cancelConversion() {
	e.converting = false
	e.cands.reset()
	e.keyLen = 0
}

// confirmInput outputs the whole kana buffer.
func (e *Engine) confirmInput() {
	e.romaji.flush()
	if e.kana.len() > 0 {
		e.setOutput(e.kana.bytes())
	}
	e.romaji.reset()
	e.kana.clear()
}

// cancelInput drops the kana buffer and pending romaji.
func (e *Engine) cancelInput() {
	e.romaji.reset()
	e.kana.clear()
}
