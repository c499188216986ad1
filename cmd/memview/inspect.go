package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/memview"
	"github.com/wippyai/memview/host"
	"github.com/wippyai/memview/host/native"
	"github.com/wippyai/memview/target"
	"github.com/wippyai/memview/transcoder"
)

type styles struct {
	title    lipgloss.Style
	field    lipgloss.Style
	typ      lipgloss.Style
	offset   lipgloss.Style
	selected lipgloss.Style
	value    lipgloss.Style
	err      lipgloss.Style
	help     lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain, plain}
	}
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		field:    lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		typ:      lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		offset:   lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")),
		value:    lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")),
		err:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

// row is one member of the inspected value.
type row struct {
	name   string
	typ    string
	value  string
	offset int
	ptr    *native.Ptr
}

type inspector struct {
	view     *target.View
	typ      host.Type
	desc     *transcoder.Descriptor
	styles   styles
	err      error
	input    textinput.Model
	rows     []row
	history  []memview.Address
	addr     memview.Address
	selected int
	loaded   bool
}

type readMsg struct {
	err  error
	rows []row
	addr memview.Address
}

func newInspector(v *target.View, t host.Type, d *transcoder.Descriptor, color bool) *inspector {
	ti := textinput.New()
	ti.Prompt = "addr: "
	ti.Placeholder = "0x0"
	ti.Width = 24
	ti.Focus()
	return &inspector{view: v, typ: t, desc: d, styles: newStyles(color), input: ti}
}

func (m *inspector) Init() tea.Cmd {
	return textinput.Blink
}

func (m *inspector) read(addr memview.Address) tea.Cmd {
	return func() tea.Msg {
		v, err := m.view.Read(addr, m.typ)
		if err != nil {
			return readMsg{err: err, addr: addr}
		}
		return readMsg{rows: rowsOf(m.desc, v), addr: addr}
	}
}

// rowsOf lists the members of v with their byte offsets.
func rowsOf(d *transcoder.Descriptor, v host.Value) []row {
	mk := func(name string, off int, fd *transcoder.Descriptor, fv any) row {
		r := row{name: name, offset: off, typ: typeLabel(fd), value: formatValue(fv)}
		if p, ok := fv.(*native.Ptr); ok {
			r.ptr = p
			r.value = native.FormatValue(p)
		}
		return r
	}

	rec, ok := v.(*native.Record)
	if d.Kind != transcoder.KindStructure || !ok {
		return []row{mk("value", 0, d, v)}
	}

	var rows []row
	for i, off := range d.Offsets() {
		f := d.Fields[i]
		fv, _ := rec.Get(f.Name)
		rows = append(rows, mk(f.Name, off, f.Desc, fv))
	}
	for _, o := range d.Overlays {
		fv, _ := rec.Get(o.Name)
		rows = append(rows, mk(o.Name, o.Offset, o.Desc, fv))
	}
	return rows
}

func (m *inspector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			addr, err := parseAddress(strings.TrimSpace(m.input.Value()))
			if err != nil {
				m.err = err
				return m, nil
			}
			m.history = nil
			return m, m.read(addr)

		case "up":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down":
			if m.selected < len(m.rows)-1 {
				m.selected++
			}
			return m, nil

		case "pgdown", "pgup":
			if !m.loaded {
				return m, nil
			}
			step := memview.Address(max(m.desc.Size(), 1))
			next := m.addr + step
			if msg.String() == "pgup" {
				if m.addr < step {
					return m, nil
				}
				next = m.addr - step
			}
			return m, m.read(next)

		case "ctrl+f":
			// follow a pointer row when it targets the inspected type
			if m.selected < len(m.rows) {
				if p := m.rows[m.selected].ptr; p != nil && !p.IsNull() && p.Target() == m.typ {
					m.history = append(m.history, m.addr)
					return m, m.read(memview.Address(p.Addr()))
				}
			}
			return m, nil

		case "ctrl+b":
			if n := len(m.history); n > 0 {
				prev := m.history[n-1]
				m.history = m.history[:n-1]
				return m, m.read(prev)
			}
			return m, nil
		}

	case readMsg:
		m.err = msg.err
		if msg.err == nil {
			m.rows = msg.rows
			m.addr = msg.addr
			m.loaded = true
			m.selected = min(m.selected, max(len(m.rows)-1, 0))
			m.input.SetValue(fmt.Sprintf("%#x", uint64(msg.addr)))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *inspector) View() string {
	var b strings.Builder
	st := m.styles

	b.WriteString(st.title.Render("memview"))
	b.WriteString(" ")
	b.WriteString(st.typ.Render(typeLabel(m.desc)))
	b.WriteString(fmt.Sprintf(" (%#x bytes)\n\n", m.desc.Size()))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(st.err.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	if m.loaded {
		width := 0
		for _, r := range m.rows {
			width = max(width, len(r.name))
		}
		for i, r := range m.rows {
			line := fmt.Sprintf("%s %s %s = %s",
				st.offset.Render(fmt.Sprintf("+%#06x", r.offset)),
				st.field.Render(fmt.Sprintf("%-*s", width, r.name)),
				st.typ.Render(r.typ),
				st.value.Render(r.value))
			if i == m.selected {
				b.WriteString(st.selected.Render("> ") + line)
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(st.help.Render("enter read • ↑/↓ select • pgup/pgdown step • ctrl+f follow • ctrl+b back • esc quit"))
	return b.String()
}

func runInspector(m *inspector) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
