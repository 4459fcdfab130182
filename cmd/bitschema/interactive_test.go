package main

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/bitschema/schema"
)

func newTestModel(t *testing.T) *interactiveModel {
	t.Helper()
	lib, err := schema.Parse(deviceSchema)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, err := newInteractiveModel("device.bsch", schema.NewCompiler(1), lib, 0)
	if err != nil {
		t.Fatalf("newInteractiveModel: %v", err)
	}
	return m
}

func press(m *interactiveModel, keys ...tea.KeyMsg) {
	for _, k := range keys {
		m.Update(k)
	}
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestInteractiveSelect(t *testing.T) {
	m := newTestModel(t)
	if len(m.structs) != 4 {
		t.Fatalf("structs = %d, want 4", len(m.structs))
	}
	if m.structs[0].size != 3 || m.structs[0].align != 1 {
		t.Errorf("Version layout = %d/%d, want 3/1", m.structs[0].size, m.structs[0].align)
	}

	press(m, keyUp)
	if m.selected != 0 {
		t.Errorf("selected = %d after up at top, want 0", m.selected)
	}
	press(m, keyDown, keyDown, keyDown, keyDown)
	if m.selected != 3 {
		t.Errorf("selected = %d, want 3", m.selected)
	}

	view := m.View()
	for _, want := range []string{"Device", "descriptor:", "record device {", "offsets: version@0 label@4"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestInteractiveOffsets(t *testing.T) {
	m := newTestModel(t)
	want := []string{"major@0 minor@1 patch@2", "", "0@0 1@8", "version@0 label@4"}
	for i, s := range m.structs {
		if s.offsets != want[i] {
			t.Errorf("%s offsets = %q, want %q", s.name, s.offsets, want[i])
		}
	}
	if !strings.Contains(m.View(), "offsets: major@0 minor@1 patch@2") {
		t.Error("view does not show Version offsets")
	}
}

func TestInteractiveReload(t *testing.T) {
	path := writeFile(t, "device.bsch", deviceSchema)
	compiler := schema.NewCompiler(4)
	lib, err := compiler.Compile(deviceSchema)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	m, err := newInteractiveModel(path, compiler, lib, 0)
	if err != nil {
		t.Fatalf("newInteractiveModel: %v", err)
	}
	press(m, keyDown, keyDown, keyDown)

	keyR := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
	press(m, keyR)
	if m.err != nil {
		t.Fatalf("reload: %v", m.err)
	}
	if hits, misses := compiler.Stats(); hits != 1 || misses != 1 {
		t.Errorf("Stats() = %d, %d, want 1, 1", hits, misses)
	}
	if m.selected != 3 {
		t.Errorf("selected = %d after reload, want 3", m.selected)
	}

	if err := os.WriteFile(path, []byte("Only = u8;"), 0o644); err != nil {
		t.Fatal(err)
	}
	press(m, keyR)
	if len(m.structs) != 1 || m.structs[0].name != "Only" {
		t.Fatalf("structs after reload = %+v", m.structs)
	}
	if m.selected != 0 {
		t.Errorf("selected = %d, want 0", m.selected)
	}
	if !strings.Contains(m.View(), "reloaded 1 structures") {
		t.Error("view does not show reload status")
	}

	if err := os.WriteFile(path, []byte("Bad = ;"), 0o644); err != nil {
		t.Fatal(err)
	}
	press(m, keyR)
	if m.err == nil {
		t.Fatal("expected reload error")
	}
	if len(m.structs) != 1 {
		t.Errorf("structs = %d after failed reload, want 1", len(m.structs))
	}
	if !strings.Contains(m.View(), "Error:") {
		t.Error("view does not show the reload error")
	}
}

func TestInteractiveEncode(t *testing.T) {
	m := newTestModel(t)
	press(m, keyEnter)
	if m.state != stateInput {
		t.Fatalf("state = %d, want input", m.state)
	}
	if got := m.input.Value(); got != `{"major":0,"minor":0,"patch":0}` {
		t.Errorf("prefill = %q", got)
	}

	m.input.SetValue(`{"major": 1, "minor": 2, "patch": 3}`)
	press(m, keyEnter)
	if m.state != stateResult {
		t.Fatalf("state = %d, want result", m.state)
	}
	if m.err != nil {
		t.Fatalf("err = %v", m.err)
	}
	if m.encoded != "010203" {
		t.Errorf("encoded = %q, want 010203", m.encoded)
	}
	if m.decoded != `{"major":1,"minor":2,"patch":3}` {
		t.Errorf("decoded = %q", m.decoded)
	}

	press(m, keyEsc, keyEsc)
	if m.state != stateSelect {
		t.Errorf("state = %d after esc esc, want select", m.state)
	}
}

func TestInteractiveFullMask(t *testing.T) {
	m := newTestModel(t)
	press(m, keyDown, keyEnter)
	m.input.SetValue(`[true, false]`)
	press(m, tea.KeyMsg{Type: tea.KeyCtrlF}, keyEnter)
	if m.encoded != "030100" {
		t.Errorf("encoded = %q, want 030100", m.encoded)
	}
}

func TestInteractiveEncodeError(t *testing.T) {
	m := newTestModel(t)
	press(m, keyEnter)
	m.input.SetValue(`{"major": "x"}`)
	press(m, keyEnter)
	if m.err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(m.View(), "Error:") {
		t.Error("view does not show the error")
	}
}
