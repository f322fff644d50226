package report

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thatsimonsguy/pompput-sizer/internal/model"
)

var (
	Primary = lipgloss.Color("#06B6D4") // Cyan
	Warning = lipgloss.Color("#F59E0B") // Amber
	Danger  = lipgloss.Color("#EF4444") // Red
	Muted   = lipgloss.Color("#6B7280") // Gray

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Width(36)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	dangerStyle = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted).
			Padding(1, 2)
)

// RenderStyled writes the report as a bordered terminal panel.
func (r Report) RenderStyled(w io.Writer) error {
	var rows []string
	title := r.Title
	if r.Design != "" {
		title += " · " + r.Design
	}
	rows = append(rows, titleStyle.Render(title))

	for _, l := range r.Lines {
		value := formatFixed(l.Value, l.Decimals)
		if l.Unit != "" {
			value += " " + l.Unit
		}
		style := valueStyle
		if l.Key == "switch_on_level" && r.Result.Buffer.SafetyViolated {
			style = dangerStyle
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(l.Label), style.Render(value)))
	}

	if len(r.Advisories) > 0 {
		rows = append(rows, "")
		for _, a := range r.Advisories {
			style := warningStyle
			if a.Kind == model.AdvisorySafety {
				style = dangerStyle
			}
			rows = append(rows, style.Render("⚠ "+a.Message))
		}
	}

	_, err := io.WriteString(w, panelStyle.Render(strings.Join(rows, "\n"))+"\n")
	return err
}
