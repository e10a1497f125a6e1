package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/plotplan/plotplan/pkg/diagram"
	"github.com/plotplan/plotplan/pkg/errors"
	"github.com/plotplan/plotplan/pkg/plot"
)

// Form styles
var (
	formSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	formNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	formDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	formEditStyle     = lipgloss.NewStyle().Foreground(colorYellow)
	formPanelStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// =============================================================================
// FormModel - Interactive plot editing
// =============================================================================

// formRow is one selectable row of the form: either a numeric field or one of
// the two visibility toggles.
type formRow struct {
	field  plot.Field
	toggle string // "parking" or "staircase" for toggle rows, empty otherwise
	label  string
}

// formRows returns the rows in display order: numeric fields first, then the
// two toggles.
func formRows() []formRow {
	var rows []formRow
	for _, f := range plot.Fields() {
		rows = append(rows, formRow{field: f, label: f.String()})
	}
	rows = append(rows,
		formRow{toggle: "parking", label: "show_parking"},
		formRow{toggle: "staircase", label: "show_staircase"},
	)
	return rows
}

// ExportFunc writes the current plot somewhere (a PNG file, a JSON file) and
// returns a short status message. Injected by the form command so the model
// stays free of pipeline wiring.
type ExportFunc func(p plot.Plot) (string, error)

// FormModel is the bubbletea model for interactive plot editing.
// Every edit recomputes metrics and the diagram layout, so the side panels
// always reflect the current inputs.
type FormModel struct {
	Plot   plot.Plot
	Rows   []formRow
	Cursor int

	// Editing state: when editing, keystrokes go into Buffer until enter
	// commits. A buffer that fails to parse commits as zero.
	Editing bool
	Buffer  string

	Status string

	ExportPNG  ExportFunc
	ExportJSON ExportFunc
}

// NewFormModel creates a form model starting from p.
func NewFormModel(p plot.Plot) FormModel {
	return FormModel{
		Plot: p,
		Rows: formRows(),
	}
}

func (m FormModel) Init() tea.Cmd {
	return nil
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.Editing {
		return m.updateEditing(key)
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Rows)-1 {
			m.Cursor++
		}
	case "enter":
		row := m.Rows[m.Cursor]
		if row.toggle != "" {
			m = m.flipToggle(row.toggle)
			break
		}
		m.Editing = true
		m.Buffer = ""
		m.Status = ""
	case " ":
		if row := m.Rows[m.Cursor]; row.toggle != "" {
			m = m.flipToggle(row.toggle)
		}
	case "e":
		m = m.export(m.ExportPNG)
	case "s":
		m = m.export(m.ExportJSON)
	}
	return m, nil
}

// updateEditing handles keystrokes while a numeric field is being edited.
func (m FormModel) updateEditing(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.Editing = false
		m.Buffer = ""
	case "enter":
		m.Plot = m.Plot.Set(m.Rows[m.Cursor].field, parseFieldValue(m.Buffer))
		m.Editing = false
		m.Buffer = ""
	case "backspace":
		if len(m.Buffer) > 0 {
			m.Buffer = m.Buffer[:len(m.Buffer)-1]
		}
	default:
		if s := key.String(); len(s) == 1 && (s[0] >= '0' && s[0] <= '9' || s[0] == '.') {
			m.Buffer += s
		}
	}
	return m, nil
}

// parseFieldValue converts an edit buffer to a field value.
// Malformed input coerces to zero rather than erroring - the form keeps
// rendering with whatever the inputs currently are.
func parseFieldValue(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func (m FormModel) flipToggle(which string) FormModel {
	switch which {
	case "parking":
		m.Plot.ShowParking = !m.Plot.ShowParking
	case "staircase":
		m.Plot.ShowStaircase = !m.Plot.ShowStaircase
	}
	return m
}

func (m FormModel) export(fn ExportFunc) FormModel {
	if fn == nil {
		return m
	}
	msg, err := fn(m.Plot)
	if err != nil {
		m.Status = StyleWarning.Render(err.Error())
		return m
	}
	m.Status = StyleSuccess.Render(msg)
	return m
}

func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Plot Form"))
	b.WriteString("\n")
	b.WriteString(formDimStyle.Render("↑/↓ navigate  ⏎ edit/toggle  e export png  s save json  q quit"))
	b.WriteString("\n\n")

	form := m.renderForm()
	side := lipgloss.JoinVertical(lipgloss.Left,
		formPanelStyle.Render(m.renderMetrics()),
		formPanelStyle.Render(m.renderPreview()),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, form, "  ", side))

	if m.Status != "" {
		b.WriteString("\n")
		b.WriteString(m.Status)
	}
	b.WriteString("\n")

	return b.String()
}

// renderForm renders the field list with the cursor and edit buffer.
func (m FormModel) renderForm() string {
	var b strings.Builder
	for i, row := range m.Rows {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		var value string
		switch {
		case row.toggle == "parking":
			value = checkbox(m.Plot.ShowParking)
		case row.toggle == "staircase":
			value = checkbox(m.Plot.ShowStaircase)
		case m.Editing && i == m.Cursor:
			value = formEditStyle.Render(m.Buffer + "▏")
		default:
			value = formatFieldValue(m.Plot.Get(row.field))
		}

		line := fmt.Sprintf("%s%-16s %s", cursor, row.label, value)
		if i == m.Cursor {
			b.WriteString(formSelectedStyle.Render(line))
		} else {
			b.WriteString(formNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderMetrics renders the live metrics panel.
func (m FormModel) renderMetrics() string {
	metrics := plot.Compute(m.Plot)
	var b strings.Builder
	b.WriteString(StyleHighlight.Render("Metrics"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "plot area      %s\n", StyleNumber.Render(fmt.Sprintf("%.1f m²", metrics.PlotArea)))
	fmt.Fprintf(&b, "buildable      %s\n", StyleNumber.Render(fmt.Sprintf("%.1f × %.1f m", metrics.BuildableWidth, metrics.BuildableLength)))
	fmt.Fprintf(&b, "ground floor   %s\n", StyleNumber.Render(fmt.Sprintf("%.1f m²", metrics.GroundFloorArea)))
	fmt.Fprintf(&b, "built-up       %s\n", StyleNumber.Render(fmt.Sprintf("%.1f m²", metrics.TotalBuiltUpArea)))
	fmt.Fprintf(&b, "coverage       %s\n", StyleNumber.Render(fmt.Sprintf("%.2f %%", metrics.GroundCoverage)))
	fmt.Fprintf(&b, "FAR            %s", StyleNumber.Render(fmt.Sprintf("%.2f", metrics.FloorAreaRatio)))
	return b.String()
}

// renderPreview renders a compact layout summary so edits show their effect
// on the diagram without leaving the terminal.
func (m FormModel) renderPreview() string {
	var b strings.Builder
	b.WriteString(StyleHighlight.Render("Diagram"))
	b.WriteString("\n")

	d, err := diagram.Build(m.Plot, diagram.Options{})
	if err != nil {
		if errors.Is(err, errors.ErrCodeInvalidDimensions) {
			b.WriteString(StyleWarning.Render("no diagram producible"))
			b.WriteString("\n")
			b.WriteString(formDimStyle.Render("plot and road dimensions are zero"))
			return b.String()
		}
		b.WriteString(StyleWarning.Render(err.Error()))
		return b.String()
	}

	fmt.Fprintf(&b, "scale   %s px/m\n", StyleNumber.Render(fmt.Sprintf("%.2f", d.Scale)))
	fmt.Fprintf(&b, "canvas  %s px\n", StyleNumber.Render(fmt.Sprintf("%.0f × %.0f", d.Width, d.Height)))

	parts := make([]string, 0, len(d.Rects))
	for _, r := range d.Rects {
		parts = append(parts, string(r.Kind))
	}
	fmt.Fprintf(&b, "shapes  %s", formDimStyle.Render(strings.Join(parts, ", ")))
	return b.String()
}

func checkbox(on bool) string {
	if on {
		return StyleSuccess.Render("[x]")
	}
	return formDimStyle.Render("[ ]")
}

// formatFieldValue trims trailing zeros for clean display.
func formatFieldValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
