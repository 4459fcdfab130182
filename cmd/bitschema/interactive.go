package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/bitschema/codec"
	"github.com/wippyai/bitschema/component"
	"github.com/wippyai/bitschema/schema"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelect modelState = iota
	stateInput
	stateResult
)

type structInfo struct {
	handler codec.Handler
	name    string
	wit     string
	offsets string
	size    uint32
	align   uint32
}

type interactiveModel struct {
	err      error
	compiler *schema.Compiler
	filename string
	status   string
	encoded  string
	decoded  string
	structs  []structInfo
	input    textinput.Model
	selected int
	size     int
	fullMask bool
	state    modelState
}

func newInteractiveModel(filename string, compiler *schema.Compiler, lib *schema.Library, size int) (*interactiveModel, error) {
	m := &interactiveModel{filename: filename, compiler: compiler, size: size, state: stateSelect}
	if err := m.load(lib); err != nil {
		return nil, err
	}
	return m, nil
}

// load replaces the structure list with the contents of lib.
func (m *interactiveModel) load(lib *schema.Library) error {
	defs, err := component.Define(lib)
	if err != nil {
		return err
	}
	structs := make([]structInfo, 0, lib.Len())
	for i, name := range lib.Names() {
		h, _ := lib.Get(name)
		info := structInfo{handler: h, name: name, wit: component.FormatDef(defs[i])}
		if l, err := component.Layout(h); err == nil {
			info.size, info.align = l.Size, l.Align
			info.offsets = formatOffsets(h, l.Offsets)
		}
		structs = append(structs, info)
	}
	m.structs = structs
	if m.selected >= len(structs) {
		m.selected = max(len(structs)-1, 0)
	}
	return nil
}

// reload recompiles the schema file. An unchanged file is served from the
// compiler's cache.
func (m *interactiveModel) reload() {
	m.err, m.status = nil, ""
	text, err := os.ReadFile(m.filename)
	if err != nil {
		m.err = err
		return
	}
	lib, err := m.compiler.Compile(string(text))
	if err != nil {
		m.err = err
		return
	}
	if err := m.load(lib); err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("reloaded %d structures", lib.Len())
}

// formatOffsets labels canonical ABI offsets with field names for maps and
// element indices for tuples.
func formatOffsets(h codec.Handler, offsets []uint32) string {
	if len(offsets) == 0 {
		return ""
	}
	labels := make([]string, len(offsets))
	for i, off := range offsets {
		label := strconv.Itoa(i)
		if mp, ok := h.(*codec.Map); ok && i < len(mp.Fields()) {
			label = mp.Fields()[i].Key
		}
		labels[i] = label + "@" + strconv.FormatUint(uint64(off), 10)
	}
	return strings.Join(labels, " ")
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInput {
				return m, tea.Quit
			}

		case "r":
			if m.state == stateSelect {
				m.reload()
				return m, nil
			}

		case "up", "k":
			if m.state == stateSelect && m.selected > 0 {
				m.selected--
				return m, nil
			}

		case "down", "j":
			if m.state == stateSelect && m.selected < len(m.structs)-1 {
				m.selected++
				return m, nil
			}

		case "ctrl+f":
			if m.state == stateInput {
				m.fullMask = !m.fullMask
				return m, nil
			}

		case "enter":
			switch m.state {
			case stateSelect:
				if len(m.structs) > 0 {
					m.prepareInput()
					m.state = stateInput
				}
				return m, textinput.Blink
			case stateInput:
				m.encode()
				m.state = stateResult
				return m, nil
			case stateResult:
				m.state = stateInput
				return m, nil
			}

		case "esc":
			switch m.state {
			case stateInput:
				m.state = stateSelect
			case stateResult:
				m.state = stateInput
			}
			return m, nil
		}
	}

	if m.state == stateInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// prepareInput starts the value editor prefilled with the structure's empty value.
func (m *interactiveModel) prepareInput() {
	s := m.structs[m.selected]
	ti := textinput.New()
	ti.Prompt = "value: "
	ti.Width = 60
	if empty, err := formatValue(s.handler.Empty(), formatJSON); err == nil {
		ti.Placeholder = empty
		ti.SetValue(empty)
	}
	ti.Focus()
	m.input = ti
	m.err = nil
	m.encoded, m.decoded = "", ""
}

func (m *interactiveModel) encode() {
	m.encoded, m.decoded, m.err = "", "", nil
	h := m.structs[m.selected].handler
	v, err := parseValue(m.input.Value())
	if err != nil {
		m.err = err
		return
	}
	var mask *codec.Mask
	if m.fullMask {
		mask = h.FullMask()
	}
	out, err := encodeValue(h, v, mask, m.size)
	if err != nil {
		m.err = err
		return
	}
	m.encoded = fmt.Sprintf("%x", out)
	back, err := decodeHex(h, m.encoded)
	if err != nil {
		m.err = err
		return
	}
	m.decoded, m.err = formatValue(back, formatJSON)
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("bitschema"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	if m.state == stateSelect {
		switch {
		case m.err != nil:
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n\n")
		case m.status != "":
			b.WriteString(resultStyle.Render(m.status))
			b.WriteString("\n\n")
		}
	}

	if len(m.structs) == 0 {
		b.WriteString("No structures declared.\n\n")
		b.WriteString(helpStyle.Render("r reload • q quit"))
		return b.String()
	}

	s := m.structs[m.selected]
	switch m.state {
	case stateSelect:
		b.WriteString("Select a structure:\n\n")
		for i, st := range m.structs {
			line := fmt.Sprintf("%s %s", st.name, typeStyle.Render(fmt.Sprintf("(%d bytes)", st.handler.ByteCount())))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		m.writeDetails(&b, s)
		b.WriteString(helpStyle.Render("↑/↓ select • enter edit value • r reload • q quit"))

	case stateInput:
		m.writeDetails(&b, s)
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		mask := "off"
		if m.fullMask {
			mask = "on"
		}
		b.WriteString(helpStyle.Render("enter encode • ctrl+f full mask (" + mask + ") • esc back"))

	case stateResult:
		m.writeDetails(&b, s)
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString("encoded: ")
			b.WriteString(resultStyle.Render(m.encoded))
			b.WriteString("\ndecoded: ")
			b.WriteString(resultStyle.Render(m.decoded))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter edit • esc back • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) writeDetails(b *strings.Builder, s structInfo) {
	fmt.Fprintf(b, "descriptor: %s\n", typeStyle.Render(s.handler.Descriptor()))
	fmt.Fprintf(b, "byte count: %d\n", s.handler.ByteCount())
	fmt.Fprintf(b, "canonical ABI: size %d, align %d\n", s.size, s.align)
	if s.offsets != "" {
		fmt.Fprintf(b, "offsets: %s\n", s.offsets)
	}
	b.WriteString("\n")
	b.WriteString(s.wit)
	b.WriteString("\n\n")
}

func runInteractive(filename string, compiler *schema.Compiler, lib *schema.Library, size int) error {
	model, err := newInteractiveModel(filename, compiler, lib, size)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
