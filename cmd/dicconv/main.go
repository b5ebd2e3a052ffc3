// Command dicconv converts an SKK dictionary into the banked image read by
// the input method.
//
//	dicconv -input SKK-JISYO.S -output dic.bin -verify あい,かく
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/japanese"

	"github.com/h-o-soft/c64jp/ime/bank"
	"github.com/h-o-soft/c64jp/ime/dic"
	"github.com/h-o-soft/c64jp/ime/dic/dicbuild"
	"github.com/h-o-soft/c64jp/ime/internal/logger"
	"github.com/h-o-soft/c64jp/ime/kana"
	"github.com/h-o-soft/c64jp/ime/skk"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("dicconv")
	var (
		input     = fs.StringLong("input", "", "SKK dictionary file")
		output    = fs.StringLong("output", "dic.bin", "dictionary image to write")
		encoding  = fs.StringEnumLong("encoding", "SKK file encoding", "euc-jp", "utf-8")
		pageSize  = fs.Int64Long("page-size", bank.DefaultPageSize, "bank size in bytes")
		verify    = fs.StringLong("verify", "", "comma-separated hiragana words to look up in the written image")
		logLevel  = fs.StringLong("log-level", "info", "debug, info, warn or error")
		logFormat = fs.StringEnumLong("log-format", "log output format", "pretty", "json")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("IME")); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return errors.Wrap(err, "parsing flags")
	}
	log := logger.New(os.Stderr, *logLevel, *logFormat)

	if *input == "" {
		return errors.New("input is required")
	}
	if *pageSize <= 0 || *pageSize > 0x10000 {
		return errors.Errorf("page size %d out of range", *pageSize)
	}

	stats, err := convert(log, *input, *output, *encoding, int(*pageSize))
	if err != nil {
		return err
	}
	log.Info("dictionary written",
		"output", *output,
		"nouns", stats.Nouns,
		"verbs", stats.Verbs,
		"candidates", stats.Candidates,
		"merged", stats.Merged,
		"skipped", stats.Skipped,
		"skipped_candidates", stats.SkippedCandidates,
		"bytes", stats.Size,
		"banks", (stats.Size+int(*pageSize)-1)/int(*pageSize),
	)

	if *verify == "" {
		return nil
	}
	return verifyImage(log, *output, int(*pageSize), strings.Split(*verify, ","))
}

func convert(log *slog.Logger, input, output, encoding string, pageSize int) (dicbuild.Stats, error) {
	in, err := os.Open(input)
	if err != nil {
		return dicbuild.Stats{}, errors.WithStack(err)
	}
	defer in.Close()

	var src *skk.Reader
	if encoding == "utf-8" {
		src = skk.NewUTF8Reader(in)
	} else {
		src = skk.NewReader(in)
	}
	b := dicbuild.New(dicbuild.Config{PageSize: pageSize})
	if err := b.AddAll(src); err != nil {
		return dicbuild.Stats{}, errors.Wrapf(err, "reading %s", input)
	}
	log.Debug("source read", "ignored_lines", src.Skipped())

	out, err := os.Create(output)
	if err != nil {
		return dicbuild.Stats{}, errors.WithStack(err)
	}
	if _, err := b.WriteTo(out); err != nil {
		_ = out.Close()
		return dicbuild.Stats{}, errors.Wrapf(err, "writing %s", output)
	}
	if err := out.Close(); err != nil {
		return dicbuild.Stats{}, errors.WithStack(err)
	}
	return b.Stats(), nil
}

// candidates collects lookup results for printing.
type candidates struct {
	words []string
}

func (c *candidates) AddCandidate(word []byte, okurigana kana.Code) bool {
	w := append([]byte(nil), word...)
	if okurigana != 0 {
		w = append(w, okurigana.High(), okurigana.Low())
	}
	c.words = append(c.words, decode(w))
	return true
}

func decode(sjis []byte) string {
	s, err := japanese.ShiftJIS.NewDecoder().Bytes(sjis)
	if err != nil {
		return fmt.Sprintf("% X", sjis)
	}
	return string(s)
}

func verifyImage(log *slog.Logger, path string, pageSize int, words []string) error {
	file, unmap, err := bank.OpenFile(path, 0, pageSize)
	if err != nil {
		return err
	}
	defer unmap()
	d := dic.Open(file, dic.Config{PageSize: pageSize})
	if !d.Available() {
		return errors.Errorf("%s does not start with the dictionary magic", path)
	}
	log.Info("verifying", "image", path, "words", len(words))
	return lookupAll(d, words, os.Stdout)
}

func lookupAll(d *dic.Dictionary, words []string, w io.Writer) error {
	encoder := japanese.ShiftJIS.NewEncoder()
	for _, word := range words {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		key, err := encoder.Bytes([]byte(word))
		if err != nil {
			return errors.Wrapf(err, "encoding %q", word)
		}
		found := false
		for _, p := range []dic.Partition{dic.Verbs, dic.Nouns} {
			m, ok := d.Lookup(key, p)
			if !ok {
				continue
			}
			found = true
			c := &candidates{}
			d.ReadCandidates(m, c)
			fmt.Fprintf(w, "%s\t%s\tlength=%d\t%s\n", word, p, m.Length, strings.Join(c.words, "/"))
		}
		if !found {
			fmt.Fprintf(w, "%s\tnot found\n", word)
		}
	}
	return nil
}
