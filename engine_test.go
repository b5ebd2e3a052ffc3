package ime

import (
	"bytes"
	"strings"
	"testing"

	"github.com/h-o-soft/c64jp/ime/bank"
	"github.com/h-o-soft/c64jp/ime/dic"
	"github.com/h-o-soft/c64jp/ime/dic/dicbuild"
	"github.com/h-o-soft/c64jp/ime/skk"
)

const testEntries = `あい /愛/藍/
あ /亜/
かk /書/
`

var (
	sjisAi   = []byte{0x88, 0xA4} // 愛
	sjisAi2  = []byte{0x97, 0x95} // 藍
	sjisKaku = []byte{0x8F, 0x91} // 書
)

func testDictionary(t *testing.T) *dic.Dictionary {
	t.Helper()
	b := dicbuild.New(dicbuild.Config{})
	if err := b.AddAll(skk.NewUTF8Reader(strings.NewReader(testEntries))); err != nil {
		t.Fatal(err)
	}
	image, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return dic.Open(bank.Split(image, 0, bank.DefaultPageSize), dic.Config{})
}

func activeEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e := New(cfg)
	e.Activate()
	return e
}

// typeKeys feeds s and returns the event of the last key.
func typeKeys(e *Engine, s string) Event {
	ev := EventNone
	for i := 0; i < len(s); i++ {
		ev = e.ProcessKey(s[i])
	}
	return ev
}

func TestInactiveEngineIgnoresKeys(t *testing.T) {
	e := New(Config{})
	if ev := e.ProcessKey('a'); ev != EventNone {
		t.Fatalf("expected none, have %s", ev)
	}
	if len(e.Kana()) != 0 {
		t.Fatalf("inactive engine buffered % X", e.Kana())
	}
	if ev := e.Toggle(); ev != EventNone || !e.Active() {
		t.Fatalf("toggle should activate")
	}
	if ev := e.Toggle(); ev != EventDeactivated || e.Active() {
		t.Fatalf("second toggle should deactivate, have %s", ev)
	}
}

func TestConvertAndConfirm(t *testing.T) {
	e := activeEngine(t, Config{Dictionary: testDictionary(t)})
	typeKeys(e, "ai")
	if ev := e.ProcessKey(KeySpace); ev != EventNone {
		t.Fatalf("space: expected none, have %s", ev)
	}
	if !e.Converting() {
		t.Fatalf("expected conversion to start")
	}
	if i, n := e.CandidateIndex(); i != 0 || n != 2 {
		t.Fatalf("expected candidate 0 of 2, have %d of %d", i, n)
	}
	e.ProcessKey(KeySpace)
	if word, _ := e.Candidate(); !bytes.Equal(word, sjisAi2) {
		t.Fatalf("expected second candidate, have % X", word)
	}
	e.ProcessKey(KeyPrevious)
	if word, _ := e.Candidate(); !bytes.Equal(word, sjisAi) {
		t.Fatalf("expected first candidate, have % X", word)
	}
	if ev := e.ProcessKey(KeyReturn); ev != EventConfirmed {
		t.Fatalf("return: expected confirmed, have %s", ev)
	}
	if !bytes.Equal(e.Output(), sjisAi) {
		t.Fatalf("expected 愛, have % X", e.Output())
	}
	if e.Converting() || len(e.Kana()) != 0 {
		t.Fatalf("expected empty input state, have kana % X", e.Kana())
	}
}

func TestConfirmKeepsUnmatchedTail(t *testing.T) {
	e := activeEngine(t, Config{Dictionary: testDictionary(t)})
	typeKeys(e, "aiu ")
	if !e.Converting() {
		t.Fatalf("expected conversion to start")
	}
	e.ProcessKey(KeyReturn)
	if !bytes.Equal(e.Output(), sjisAi) {
		t.Fatalf("expected 愛, have % X", e.Output())
	}
	if !bytes.Equal(e.Kana(), codes(0x82A4)) {
		t.Fatalf("expected う to remain, have % X", e.Kana())
	}
}

func TestVerbConversionConsumesOkurigana(t *testing.T) {
	e := activeEngine(t, Config{Dictionary: testDictionary(t)})
	typeKeys(e, "kaku ")
	if !e.Converting() {
		t.Fatalf("expected conversion to start")
	}
	want := append(append([]byte(nil), sjisKaku...), 0x82, 0xAD) // 書く
	if word, _ := e.Candidate(); !bytes.Equal(word, want) {
		t.Fatalf("expected 書く, have % X", word)
	}
	e.ProcessKey(KeyReturn)
	if !bytes.Equal(e.Output(), want) {
		t.Fatalf("expected 書く, have % X", e.Output())
	}
	if len(e.Kana()) != 0 {
		t.Fatalf("okurigana should be consumed, have % X", e.Kana())
	}
}

func TestTypingConfirmsConversion(t *testing.T) {
	e := activeEngine(t, Config{Dictionary: testDictionary(t)})
	typeKeys(e, "ai ")
	if ev := e.ProcessKey('a'); ev != EventConfirmed {
		t.Fatalf("expected confirmed, have %s", ev)
	}
	if !bytes.Equal(e.Output(), sjisAi) || !bytes.Equal(e.Kana(), codes(0x82A0)) {
		t.Fatalf("have output % X, kana % X", e.Output(), e.Kana())
	}
}

func TestEscape(t *testing.T) {
	e := activeEngine(t, Config{Dictionary: testDictionary(t)})
	typeKeys(e, "ai ")
	if ev := e.ProcessKey(KeyEscape); ev != EventCancelled {
		t.Fatalf("expected cancelled, have %s", ev)
	}
	if e.Converting() || !bytes.Equal(e.Kana(), codes(0x82A0, 0x82A2)) {
		t.Fatalf("cancelling a conversion should keep the kana, have % X", e.Kana())
	}
	e.ProcessKey(KeyEscape)
	if len(e.Kana()) != 0 {
		t.Fatalf("cancelling input should clear the kana, have % X", e.Kana())
	}
	e.cancelConversion()
	e.cancelConversion()
	if e.Converting() {
		t.Fatalf("double cancel left the engine converting")
	}
}

func TestBackspaceCancelsConversion(t *testing.T) {
	e := activeEngine(t, Config{Dictionary: testDictionary(t)})
	typeKeys(e, "ai ")
	e.ProcessKey(KeyDelete)
	if e.Converting() || !bytes.Equal(e.Kana(), codes(0x82A0)) {
		t.Fatalf("expected あ in input state, have % X", e.Kana())
	}
}

func TestPassthrough(t *testing.T) {
	e := activeEngine(t, Config{})
	for _, key := range []byte{KeyReturn, KeyBackspace, KeyDelete} {
		if ev := e.ProcessKey(key); ev != EventKeyPassthrough {
			t.Fatalf("key %d: expected passthrough, have %s", key, ev)
		}
		if e.PassthroughKey() != key {
			t.Fatalf("expected passthrough key %d, have %d", key, e.PassthroughKey())
		}
	}
	e.ProcessKey('k')
	if ev := e.ProcessKey(KeyBackspace); ev != EventNone {
		t.Fatalf("backspace with pending letters should be consumed, have %s", ev)
	}
}

func TestReturnResolvesN(t *testing.T) {
	e := activeEngine(t, Config{})
	typeKeys(e, "kan")
	if ev := e.ProcessKey(KeyReturn); ev != EventConfirmed {
		t.Fatalf("expected confirmed, have %s", ev)
	}
	if !bytes.Equal(e.Output(), codes(0x82A9, 0x82F1)) {
		t.Fatalf("expected かん, have % X", e.Output())
	}
}

func TestNoDictionary(t *testing.T) {
	e := activeEngine(t, Config{})
	typeKeys(e, "ai ")
	if e.Converting() {
		t.Fatalf("conversion without dictionary")
	}
	blank := dic.Open(bank.Split(make([]byte, 64), 0, 64), dic.Config{PageSize: 64})
	e = activeEngine(t, Config{Dictionary: blank})
	typeKeys(e, "ai ")
	if e.Converting() {
		t.Fatalf("conversion with a blank image")
	}
}

func TestKatakanaMode(t *testing.T) {
	e := activeEngine(t, Config{Dictionary: testDictionary(t)})
	typeKeys(e, "ka")
	if ev := e.SetMode(Katakana); ev != EventModeChanged {
		t.Fatalf("expected mode change, have %s", ev)
	}
	if !bytes.Equal(e.Kana(), codes(0x834A)) {
		t.Fatalf("expected カ, have % X", e.Kana())
	}
	typeKeys(e, "a")
	if !bytes.Equal(e.Kana(), codes(0x834A, 0x8341)) {
		t.Fatalf("expected カア, have % X", e.Kana())
	}
	e.ProcessKey(KeySpace)
	if e.Converting() {
		t.Fatalf("katakana mode should not convert")
	}
	e.SetMode(Hiragana)
	if !bytes.Equal(e.Kana(), codes(0x82A9, 0x82A0)) {
		t.Fatalf("expected かあ, have % X", e.Kana())
	}
}

func TestFullwidthMode(t *testing.T) {
	e := activeEngine(t, Config{})
	e.SetMode(FullwidthAlnum)
	typeKeys(e, "A1 ")
	want := codes(0x8260, 0x8250, 0x8140)
	if !bytes.Equal(e.Kana(), want) {
		t.Fatalf("expected Ａ１ and an ideographic space, have % X", e.Kana())
	}
	e.ProcessKey(KeyReturn)
	if !bytes.Equal(e.Output(), want) {
		t.Fatalf("got % X, want % X", e.Output(), want)
	}
}

type recordingDisplay struct {
	inputs     int
	candidates int
	modes      []Mode
}

func (d *recordingDisplay) ShowInput(_, _ []byte)            { d.inputs++ }
func (d *recordingDisplay) ShowCandidate(_ []byte, _, _ int) { d.candidates++ }
func (d *recordingDisplay) ShowMode(m Mode, _ bool)          { d.modes = append(d.modes, m) }

type scriptedKeys struct {
	keys []byte
}

func (s *scriptedKeys) PollKey() byte {
	if len(s.keys) == 0 {
		return 0
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k
}

func TestPollAndDisplay(t *testing.T) {
	d := &recordingDisplay{}
	e := New(Config{Dictionary: testDictionary(t), Display: d})
	src := &scriptedKeys{keys: []byte("ai \r")}
	if ev := e.Poll(src); ev != EventNone || len(src.keys) != 4 {
		t.Fatalf("inactive engine should not poll")
	}
	e.Activate()
	var last Event
	for len(src.keys) > 0 {
		last = e.Poll(src)
	}
	if last != EventConfirmed {
		t.Fatalf("expected confirmed, have %s", last)
	}
	if ev := e.Poll(src); ev != EventNone {
		t.Fatalf("no key should yield none, have %s", ev)
	}
	if d.candidates == 0 || d.inputs == 0 || len(d.modes) != 1 {
		t.Fatalf("display not driven: %+v", d)
	}
}

func TestModeChangeDropsPendingRomaji(t *testing.T) {
	e := activeEngine(t, Config{})
	typeKeys(e, "kan")
	e.SetMode(FullwidthAlnum)
	if len(e.Pending()) != 0 {
		t.Fatalf("pending letters survived the mode change: %q", e.Pending())
	}
	typeKeys(e, "1")
	e.ProcessKey(KeyBackspace)
	if !bytes.Equal(e.Kana(), codes(0x82A9)) {
		t.Fatalf("backspace should erase １, have % X", e.Kana())
	}
	typeKeys(e, "1")
	e.ProcessKey(KeyReturn)
	if want := codes(0x82A9, 0x8250); !bytes.Equal(e.Output(), want) {
		t.Fatalf("got % X, want % X", e.Output(), want)
	}
}

func TestLongerPartitionMatchComesFirst(t *testing.T) {
	b := dicbuild.New(dicbuild.Config{})
	if err := b.AddAll(skk.NewUTF8Reader(strings.NewReader("か /蚊/\nかk /書/\n"))); err != nil {
		t.Fatal(err)
	}
	image, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	d := dic.Open(bank.Split(image, 0, bank.DefaultPageSize), dic.Config{})
	kaku := append(append([]byte(nil), sjisKaku...), 0x82, 0xAD) // 書く
	ka := []byte{0x89, 0xE1}                                    // 蚊

	tests := []struct {
		spaces int
		output []byte
		rest   []byte
	}{
		{0, kaku, nil},
		{1, ka, codes(0x82AD)},
	}
	for _, tt := range tests {
		e := activeEngine(t, Config{Dictionary: d})
		typeKeys(e, "kaku ")
		if i, n := e.CandidateIndex(); i != 0 || n != 2 {
			t.Fatalf("expected candidate 0 of 2, have %d of %d", i, n)
		}
		if e.Candidates().Partition(0) != dic.Verbs || e.Candidates().Partition(1) != dic.Nouns {
			t.Fatalf("verb match is longer and should come first")
		}
		for i := 0; i < tt.spaces; i++ {
			e.ProcessKey(KeySpace)
		}
		e.ProcessKey(KeyReturn)
		if !bytes.Equal(e.Output(), tt.output) {
			t.Fatalf("candidate %d: got % X, want % X", tt.spaces, e.Output(), tt.output)
		}
		if !bytes.Equal(e.Kana(), tt.rest) {
			t.Fatalf("candidate %d: kana left % X, want % X", tt.spaces, e.Kana(), tt.rest)
		}
	}
}
