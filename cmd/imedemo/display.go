package main

import (
	"fmt"

	"golang.org/x/text/encoding/japanese"

	"github.com/h-o-soft/c64jp/ime"
)

// screen is the display collaborator of the engine. It keeps the last
// state shown as UTF-8 for rendering.
type screen struct {
	active     bool
	mode       ime.Mode
	kana       string
	pending    string
	converting bool
	candidate  string
	index      int
	total      int
}

func (s *screen) ShowInput(kana, pending []byte) {
	s.converting = false
	s.kana = decode(kana)
	s.pending = string(pending)
}

func (s *screen) ShowCandidate(word []byte, index, total int) {
	s.converting = true
	s.candidate = decode(word)
	s.index, s.total = index, total
}

func (s *screen) ShowMode(m ime.Mode, active bool) {
	s.mode, s.active = m, active
	if !active {
		s.kana, s.pending, s.converting = "", "", false
	}
}

// status renders the mode indicator, or nothing while the engine is off.
func (s *screen) status() string {
	if !s.active {
		return ""
	}
	return decode(s.mode.Label())
}

// line renders the text under composition.
func (s *screen) line() string {
	if !s.active {
		return ""
	}
	if s.converting {
		return fmt.Sprintf("%s (%d/%d)", s.candidate, s.index+1, s.total)
	}
	return s.kana + s.pending
}

// decode converts Shift-JIS bytes to UTF-8.
func decode(sjis []byte) string {
	if len(sjis) == 0 {
		return ""
	}
	s, err := japanese.ShiftJIS.NewDecoder().Bytes(sjis)
	if err != nil {
		return fmt.Sprintf("% X", sjis)
	}
	return string(s)
}
