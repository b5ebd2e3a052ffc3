/*
Package skk reads SKK dictionary files.

An SKK dictionary is a line-oriented text file, traditionally EUC-JP
encoded:

	;; okuri-ari entries.
	かk /書/描/
	あい /愛/藍;植物/

The headword is separated from the candidate list by white space; candidates
are delimited by slashes and may carry an annotation after a semicolon.
Headwords ending in an ASCII letter are verb stems whose letter names the
conjugation row of the okurigana.
*/
package skk

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// tracer writes to trace with key 'ime.skk'
func tracer() tracing.Trace {
	return tracing.Select("ime.skk")
}

// Entry is one dictionary line.
type Entry struct {
	Headword   string
	Candidates []string
}

// IsVerb reports whether the headword ends in a conjugation classifier.
func (e Entry) IsVerb() bool {
	n := len(e.Headword)
	return n > 0 && e.Headword[n-1] < utf8.RuneSelf
}

// Reader streams entries from an SKK file.
type Reader struct {
	scanner *bufio.Scanner
	line    int
	skipped int
}

// NewReader reads an EUC-JP encoded dictionary.
func NewReader(r io.Reader) *Reader {
	return NewUTF8Reader(transform.NewReader(r, japanese.EUCJP.NewDecoder()))
}

// NewUTF8Reader reads a dictionary that is already UTF-8.
func NewUTF8Reader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{scanner: scanner}
}

// Skipped returns the number of malformed lines passed over so far.
func (r *Reader) Skipped() int { return r.skipped }

// Next returns the next entry. It returns io.EOF when exhausted.
// Comment lines and lines starting with an ASCII character are skipped.
func (r *Reader) Next() (Entry, error) {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimRight(r.scanner.Text(), " \t\r")
		if line == "" || line[0] < utf8.RuneSelf {
			continue // comments start with ';'
		}
		entry, ok := parseLine(line)
		if !ok {
			r.skipped++
			tracer().Debugf("skk line %d: no candidates", r.line)
			continue
		}
		return entry, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Entry{}, err
	}
	return Entry{}, io.EOF
}

func parseLine(line string) (Entry, bool) {
	cut := strings.IndexAny(line, " \t")
	if cut <= 0 {
		return Entry{}, false
	}
	head := line[:cut]
	rest := strings.TrimSpace(line[cut:])
	var candidates []string
	for _, part := range strings.Split(rest, "/") {
		if i := strings.IndexByte(part, ';'); i >= 0 {
			part = part[:i]
		}
		if part != "" {
			candidates = append(candidates, part)
		}
	}
	if len(candidates) == 0 {
		return Entry{}, false
	}
	return Entry{Headword: head, Candidates: candidates}, true
}

// ReadAll collects all remaining entries.
func (r *Reader) ReadAll() ([]Entry, error) {
	var entries []Entry
	for {
		e, err := r.Next()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return entries, err
		}
		entries = append(entries, e)
	}
}
