package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/polaroid/pkg/errors"
	"github.com/matzehuels/polaroid/pkg/export"
	"github.com/matzehuels/polaroid/pkg/layout"
	"github.com/matzehuels/polaroid/pkg/metadata"
	"github.com/matzehuels/polaroid/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// FieldListModel - Interactive field visibility
// =============================================================================

// exportDoneMsg carries the outcome of an export started from the list.
type exportDoneMsg struct {
	res *pipeline.Result
	err error
}

// FieldListModel is the bubbletea model for toggling field visibility and
// exporting. Toggles made while an export runs do not affect that export.
type FieldListModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	sink   export.Sink

	Cursor    int
	Exporting bool
	Exported  *pipeline.Result
	Status    string
}

// NewFieldListModel creates a list over the fields of runner.
func NewFieldListModel(ctx context.Context, runner *pipeline.Runner, sink export.Sink) FieldListModel {
	return FieldListModel{ctx: ctx, runner: runner, sink: sink}
}

func (m FieldListModel) Init() tea.Cmd {
	return nil
}

func (m FieldListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	fields := metadata.Fields()
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(fields)-1 {
				m.Cursor++
			}
		case " ", "enter", "x":
			if err := m.runner.Toggle(fields[m.Cursor].String()); err != nil {
				m.Status = err.Error()
			}
		case "e":
			if m.Exporting {
				m.Status = "export already in progress"
				return m, nil
			}
			m.Exporting = true
			m.Status = "exporting..."
			return m, m.export()
		}
	case exportDoneMsg:
		m.Exporting = false
		switch {
		case errors.Is(msg.err, errors.ErrCodeExportInFlight):
			m.Status = "export already in progress"
		case msg.err != nil:
			m.Status = "export failed: " + errors.UserMessage(msg.err)
		default:
			m.Exported = msg.res
			m.Status = fmt.Sprintf("exported %s (%d bytes)", msg.res.File, msg.res.Bytes)
		}
	}
	return m, nil
}

func (m FieldListModel) export() tea.Cmd {
	ctx, runner, sink := m.ctx, m.runner, m.sink
	return func() tea.Msg {
		res, err := runner.Export(ctx, sink)
		return exportDoneMsg{res: res, err: err}
	}
}

func (m FieldListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Caption Fields"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  e export  q quit"))
	b.WriteString("\n\n")

	md := m.runner.Metadata()
	display := m.runner.Display()
	for i, f := range metadata.Fields() {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		check := "[ ]"
		if display.Visible(f) {
			check = "[x]"
		}
		value := md.Get(f)
		if value == "" {
			value = "—"
		}
		line := fmt.Sprintf("%s%s %-16s %s", cursor, check, f.Label(), value)

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case !display.Visible(f) || md.Get(f) == "":
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderCaption(layout.Assemble(md, display)))
	b.WriteString("\n")
	if m.Status != "" {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(m.Status))
		b.WriteString("\n")
	}
	return b.String()
}

// runInteractive shows the field list until the user quits. It returns the
// last successful export, if any.
func runInteractive(ctx context.Context, runner *pipeline.Runner, sink export.Sink) (*pipeline.Result, error) {
	p := tea.NewProgram(NewFieldListModel(ctx, runner, sink), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("interactive: %w", err)
	}
	return final.(FieldListModel).Exported, nil
}
