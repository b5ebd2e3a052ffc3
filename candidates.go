package ime

import (
	"github.com/h-o-soft/c64jp/ime/dic"
	"github.com/h-o-soft/c64jp/ime/kana"
)

const (
	candidateArenaSize = 256
	maxCandidates      = 16
)

// candidateGroup records which dictionary match produced a run of
// candidates.
type candidateGroup struct {
	match dic.Match
	first int // index of the first candidate of the run
}

// CandidateSet keeps conversion candidates packed into one fixed arena.
// Each word is stored null terminated; offsets index the arena by candidate.
// Candidates of the partition with the longer match come first.
type CandidateSet struct {
	arena    [candidateArenaSize]byte
	offsets  [maxCandidates]int
	pos      int
	count    int
	groups   [2]candidateGroup
	ngroups  int
	selected int
}

func (s *CandidateSet) reset() {
	s.arena[0] = 0
	s.pos = 0
	s.count = 0
	s.ngroups = 0
	s.selected = 0
}

// begin starts a run of candidates read for m.
func (s *CandidateSet) begin(m dic.Match) {
	if s.ngroups == len(s.groups) {
		return
	}
	s.groups[s.ngroups] = candidateGroup{match: m, first: s.count}
	s.ngroups++
}

// AddCandidate stores one word, followed by okurigana when it is non-zero.
// It returns false once the set is full. A word whose okurigana does not
// fit is dropped.
func (s *CandidateSet) AddCandidate(word []byte, okurigana kana.Code) bool {
	if s.count >= maxCandidates || s.pos >= candidateArenaSize-1 {
		return false
	}
	start := s.pos
	n := copy(s.arena[start:candidateArenaSize-1], word)
	s.pos = start + n
	s.arena[s.pos] = 0
	s.pos++
	if okurigana != 0 {
		if s.pos >= candidateArenaSize-2 {
			s.pos = start
			s.arena[start] = 0
			return false
		}
		s.pos--
		s.arena[s.pos] = okurigana.High()
		s.arena[s.pos+1] = okurigana.Low()
		s.arena[s.pos+2] = 0
		s.pos += 3
	}
	s.offsets[s.count] = start
	s.count++
	return true
}

// Len returns the number of candidates.
func (s *CandidateSet) Len() int { return s.count }

// At returns candidate i without its terminator.
func (s *CandidateSet) At(i int) []byte {
	if i < 0 || i >= s.count {
		return nil
	}
	start := s.offsets[i]
	end := start
	for end < candidateArenaSize && s.arena[end] != 0 {
		end++
	}
	return s.arena[start:end]
}

// Selected returns the index of the current candidate.
func (s *CandidateSet) Selected() int { return s.selected }

// Current returns the selected candidate.
func (s *CandidateSet) Current() ([]byte, bool) {
	if s.count == 0 {
		return nil, false
	}
	return s.At(s.selected), true
}

// Partition reports which dictionary partition produced candidate i.
func (s *CandidateSet) Partition(i int) dic.Partition {
	return s.matchFor(i).Partition
}

func (s *CandidateSet) matchFor(i int) dic.Match {
	for g := s.ngroups - 1; g >= 0; g-- {
		if i >= s.groups[g].first {
			return s.groups[g].match
		}
	}
	return dic.Match{}
}

func (s *CandidateSet) next() {
	if s.count == 0 {
		return
	}
	s.selected++
	if s.selected >= s.count {
		s.selected = 0
	}
}

func (s *CandidateSet) previous() {
	if s.count == 0 {
		return
	}
	if s.selected == 0 {
		s.selected = s.count - 1
	} else {
		s.selected--
	}
}
