package display

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sweeney/plant-monitor/internal/health"
	"github.com/sweeney/plant-monitor/internal/status"
)

var (
	colorLabel = lipgloss.Color("252")
	colorValue = lipgloss.Color("51")
	colorGood  = lipgloss.Color("41")
	colorWarn  = lipgloss.Color("220")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true)
	styleLabel  = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleValue  = lipgloss.NewStyle().Foreground(colorValue)
	styleGood   = lipgloss.NewStyle().Foreground(colorGood).Bold(true)
	styleAtRisk = lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	stylePanel  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

// Console renders a styled panel to a terminal, redrawn in place each tick.
type Console struct {
	w     io.Writer
	lines int // lines written by the previous frame, for cursor rewind
}

// NewConsole creates a renderer writing to w (normally os.Stdout).
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Render draws the four readings, the health verdict and the pump state.
func (c *Console) Render(snap status.Snapshot) {
	rows := []string{
		styleTitle.Render(snap.PlantName),
		row("Moisture", fmt.Sprintf("%5.1f %%", snap.Moisture)),
		row("Light", fmt.Sprintf("%5.1f %%", snap.Light)),
		row("Temperature", fmt.Sprintf("%5.1f °C", snap.Temperature)),
		row("Humidity", fmt.Sprintf("%5.1f %%", snap.Humidity)),
		healthRow(snap.Health),
		row("Pump", pumpLabel(snap.PumpOn)),
		styleDim.Render(fmt.Sprintf("tick %d · uptime %s", snap.Counts.Ticks, snap.Uptime().Truncate(time.Second))),
	}

	panel := stylePanel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	if c.lines > 0 {
		// rewind over the previous frame
		fmt.Fprintf(c.w, "\033[%dA\033[J", c.lines)
	}
	fmt.Fprintln(c.w, panel)
	c.lines = lipgloss.Height(panel) + 1
}

func row(label, value string) string {
	return styleLabel.Render(label) + styleValue.Render(value)
}

func healthRow(res health.Result) string {
	if res.Status == health.StatusGood {
		return styleLabel.Render("Health") + styleGood.Render(string(res.Status))
	}
	s := styleLabel.Render("Health") + styleAtRisk.Render(string(res.Status))
	if res.Reason != "" {
		s += styleDim.Render(" · " + res.Reason)
	}
	return s
}

func pumpLabel(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
