// Command imedemo runs the input method in a terminal.
//
// With a terminal on stdin it shows an editor line: ctrl+space switches the
// input method on and off, F1, F2 and F3 select hiragana, katakana and
// full-width input. Otherwise stdin is read as a key stream and the
// confirmed text is written to stdout.
package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/h-o-soft/c64jp/ime"
	"github.com/h-o-soft/c64jp/ime/bank"
	"github.com/h-o-soft/c64jp/ime/dic"
	"github.com/h-o-soft/c64jp/ime/dic/dicbuild"
	"github.com/h-o-soft/c64jp/ime/internal/logger"
	"github.com/h-o-soft/c64jp/ime/skk"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

type options struct {
	dictionary string
	skkFile    string
	encoding   string
	pageSize   int
	startBank  int
}

func mainE() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("imedemo")
	var (
		dictionary = fs.StringLong("dictionary", "", "dictionary image built by dicconv")
		skkFile    = fs.StringLong("skk", "", "SKK dictionary to convert in memory instead of an image")
		encoding   = fs.StringEnumLong("encoding", "SKK file encoding", "euc-jp", "utf-8")
		pageSize   = fs.Int64Long("page-size", bank.DefaultPageSize, "bank size in bytes")
		startBank  = fs.Int64Long("start-bank", 0, "bank holding the dictionary header")
		logLevel   = fs.StringLong("log-level", "warn", "debug, info, warn or error")
		logFormat  = fs.StringEnumLong("log-format", "log output format", "pretty", "json")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("IME")); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return errors.Wrap(err, "parsing flags")
	}
	log := logger.New(os.Stderr, *logLevel, *logFormat)

	d, closeDict, err := openDictionary(options{
		dictionary: *dictionary,
		skkFile:    *skkFile,
		encoding:   *encoding,
		pageSize:   int(*pageSize),
		startBank:  int(*startBank),
	})
	if err != nil {
		return err
	}
	defer closeDict()
	if !d.Available() {
		log.Warn("no dictionary, conversion disabled")
	} else {
		cfg := d.Config()
		log.Debug("dictionary ready", "start_bank", cfg.StartBank, "page_size", cfg.PageSize)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Debug("stdin is not a terminal, running in pipe mode")
		return runPipe(ime.New(ime.Config{Dictionary: d}), os.Stdin, os.Stdout)
	}

	s := &screen{}
	e := ime.New(ime.Config{Dictionary: d, Display: s})
	e.Activate()
	p := tea.NewProgram(newModel(e, s), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return errors.Wrap(err, "running terminal ui")
	}
	if m, ok := final.(model); ok && m.text.Len() > 0 {
		fmt.Println(m.text.String())
	}
	return nil
}

// openDictionary maps an image, converts an SKK file, or returns a
// dictionary without store when neither is given.
func openDictionary(opt options) (*dic.Dictionary, func(), error) {
	cfg := dic.Config{StartBank: opt.startBank, PageSize: opt.pageSize}
	switch {
	case opt.dictionary != "":
		file, unmap, err := bank.OpenFile(opt.dictionary, opt.startBank, opt.pageSize)
		if err != nil {
			return nil, nil, err
		}
		return dic.Open(file, cfg), unmap, nil

	case opt.skkFile != "":
		in, err := os.Open(opt.skkFile)
		if err != nil {
			return nil, nil, errors.WithStack(err)
		}
		defer in.Close()
		var src *skk.Reader
		if opt.encoding == "utf-8" {
			src = skk.NewUTF8Reader(in)
		} else {
			src = skk.NewReader(in)
		}
		b := dicbuild.New(dicbuild.Config{PageSize: opt.pageSize})
		if err := b.AddAll(src); err != nil {
			return nil, nil, errors.Wrapf(err, "reading %s", opt.skkFile)
		}
		image, err := b.Build()
		if err != nil {
			return nil, nil, err
		}
		return dic.Open(bank.Split(image, opt.startBank, opt.pageSize), cfg), func() {}, nil
	}
	return dic.Open(nil, cfg), func() {}, nil
}
