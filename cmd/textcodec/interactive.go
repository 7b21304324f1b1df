package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/textcodec/mutf8"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Width(10).
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// inspection is everything the inspector shows for one input.
type inspection struct {
	raw      []byte
	utf8     bool
	units    []uint16
	repaired []byte
	mutf8    []byte
}

func inspect(raw []byte) inspection {
	encoded, _ := mutf8.Encoding.NewEncoder().Bytes(raw)
	return inspection{
		raw:      raw,
		utf8:     mutf8.LooksLikeUTF8(raw),
		units:    utf16Units(raw, 0),
		repaired: mutf8.Repair(append([]byte(nil), raw...)),
		mutf8:    encoded,
	}
}

// parseEscapes turns \xNN sequences into raw bytes so invalid and MUTF-8
// input can be typed. Everything else is taken literally.
func parseEscapes(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && (s[i+1] == 'x' || s[i+1] == 'X') {
			if v, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
				out = append(out, byte(v))
				i += 3
				continue
			}
		}
		out = append(out, s[i])
	}
	return out
}

type interactiveModel struct {
	input  textinput.Model
	result inspection
}

func newInteractiveModel() *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = `text, \xC0\x80 for raw bytes`
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()
	return &interactiveModel{input: ti, result: inspect(nil)}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.result = inspect(parseEscapes(m.input.Value()))
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("MUTF-8 Inspector"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	r := m.result
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("bytes", fmt.Sprintf("% X", r.raw))
	if r.utf8 {
		row("sniff", resultStyle.Render("utf-8"))
	} else {
		row("sniff", errorStyle.Render("not utf-8"))
	}
	row("utf-16", formatUnits(r.units))
	row("repaired", fmt.Sprintf("%q", r.repaired))
	row("mutf-8", fmt.Sprintf("% X", r.mutf8))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("type to inspect • esc quit"))
	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
