package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/h-o-soft/c64jp/ime"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)

	modeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	composeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Underline(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type keyMap struct {
	Toggle    key.Binding
	Hiragana  key.Binding
	Katakana  key.Binding
	Fullwidth key.Binding
	Previous  key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Hiragana, k.Katakana, k.Fullwidth, k.Previous, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Toggle: key.NewBinding(
		key.WithKeys("ctrl+@", "ctrl+space"),
		key.WithHelp("ctrl+space", "ime on/off"),
	),
	Hiragana: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "hiragana"),
	),
	Katakana: key.NewBinding(
		key.WithKeys("f2"),
		key.WithHelp("f2", "katakana"),
	),
	Fullwidth: key.NewBinding(
		key.WithKeys("f3"),
		key.WithHelp("f3", "full-width"),
	),
	Previous: key.NewBinding(
		key.WithKeys("up", "shift+tab"),
		key.WithHelp("↑", "previous candidate"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

type model struct {
	engine *ime.Engine
	screen *screen
	text   *strings.Builder
	help   help.Model
	width  int
}

func newModel(e *ime.Engine, s *screen) model {
	return model{
		engine: e,
		screen: s,
		text:   &strings.Builder{},
		help:   help.New(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Toggle):
			m.engine.Toggle()
			return m, nil
		case key.Matches(msg, keys.Hiragana):
			m.engine.SetMode(ime.Hiragana)
			return m, nil
		case key.Matches(msg, keys.Katakana):
			m.engine.SetMode(ime.Katakana)
			return m, nil
		case key.Matches(msg, keys.Fullwidth):
			m.engine.SetMode(ime.FullwidthAlnum)
			return m, nil
		}
		m.press(msg)
	}
	return m, nil
}

// keyCode maps a terminal key to the key code of the engine. It returns 0
// for keys the engine does not understand.
func keyCode(msg tea.KeyMsg) byte {
	switch msg.Type {
	case tea.KeyEnter:
		return ime.KeyReturn
	case tea.KeyBackspace:
		return ime.KeyBackspace
	case tea.KeyEsc:
		return ime.KeyEscape
	case tea.KeySpace:
		return ime.KeySpace
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && msg.Runes[0] >= 0x20 && msg.Runes[0] <= 0x7E {
			return byte(msg.Runes[0])
		}
	}
	if key.Matches(msg, keys.Previous) {
		return ime.KeyPrevious
	}
	return 0
}

func (m model) press(msg tea.KeyMsg) {
	if !m.engine.Active() {
		m.edit(msg)
		return
	}
	code := keyCode(msg)
	switch m.engine.ProcessKey(code) {
	case ime.EventConfirmed:
		m.text.WriteString(decode(m.engine.Output()))
		m.engine.ClearOutput()
	case ime.EventKeyPassthrough:
		m.edit(msg)
	case ime.EventNone:
		if code == 0 {
			m.edit(msg)
		}
	}
}

// edit applies a key the input method did not consume to the text.
func (m model) edit(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		m.text.WriteByte('\n')
	case tea.KeyBackspace:
		s := []rune(m.text.String())
		if len(s) > 0 {
			m.text.Reset()
			m.text.WriteString(string(s[:len(s)-1]))
		}
	case tea.KeySpace:
		m.text.WriteByte(' ')
	case tea.KeyRunes:
		m.text.WriteString(string(msg.Runes))
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("IME demo"))
	b.WriteString("\n")
	b.WriteString(m.text.String())
	if line := m.screen.line(); line != "" {
		b.WriteString(composeStyle.Render(line))
	}
	b.WriteString("\n")
	if list := candidateList(m.engine); list != "" {
		b.WriteString(dimStyle.Render(list))
	}
	b.WriteString("\n")
	if status := m.screen.status(); status != "" {
		b.WriteString(modeStyle.Render(status))
	} else {
		b.WriteString(dimStyle.Render("IME off"))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

// candidateList renders all candidates of the running conversion, the
// selected one in brackets.
func candidateList(e *ime.Engine) string {
	if !e.Converting() {
		return ""
	}
	set := e.Candidates()
	words := make([]string, set.Len())
	for i := range words {
		words[i] = decode(set.At(i))
		if i == set.Selected() {
			words[i] = "[" + words[i] + "]"
		}
	}
	return strings.Join(words, " ")
}
