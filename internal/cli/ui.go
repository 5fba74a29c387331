package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/chartkit/pkg/pipeline"
)

// stdout receives command output. Logs and the spinner go to stderr.
var stdout io.Writer = os.Stdout

// Palette, as ANSI 256 colors.
var (
	colorAccent  = lipgloss.Color("36")
	colorOK      = lipgloss.Color("35")
	colorWarn    = lipgloss.Color("220")
	colorLink    = lipgloss.Color("75")
	colorText    = lipgloss.Color("255")
	colorMuted   = lipgloss.Color("245")
	colorSubtle  = lipgloss.Color("240")
	borderSubtle = lipgloss.NewStyle().Foreground(colorSubtle)
)

// Styles shared by the commands.
var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleLink    = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	StyleDim     = lipgloss.NewStyle().Foreground(colorSubtle)
	StyleValue   = lipgloss.NewStyle().Foreground(colorText)
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleOK      = lipgloss.NewStyle().Foreground(colorOK)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCommand = lipgloss.NewStyle().Foreground(colorLink)
	styleKey     = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleHeader  = lipgloss.NewStyle().Foreground(colorMuted).Bold(true).Padding(0, 1)
	styleCell    = lipgloss.NewStyle().Padding(0, 1)
)

const (
	markOK     = "✓"
	markWarn   = "!"
	markInfo   = "›"
	markFile   = "→"
	markSwatch = "■"
)

func status(mark string, style lipgloss.Style, msg string) {
	fmt.Fprintln(stdout, style.Render(mark)+" "+msg)
}

func printSuccess(format string, args ...any) {
	status(markOK, styleOK, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(markWarn, StyleWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(markInfo, styleMuted, fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written artifact.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(markFile)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// printStats summarizes a render: item count, where each format came from
// and the render time.
func printStats(r *pipeline.Result) {
	fmt.Fprintln(stdout, "  "+statsLine(r))
}

func statsLine(r *pipeline.Result) string {
	var parts []string
	if r.Stats.Items > 0 {
		parts = append(parts, fmt.Sprintf("%d items", r.Stats.Items))
	}
	switch {
	case r.CacheInfo.RenderHit:
		parts = append(parts, styleOK.Render("cached"))
	case len(r.CacheInfo.Hits) > 0:
		hits := slices.Clone(r.CacheInfo.Hits)
		slices.Sort(hits)
		parts = append(parts, styleOK.Render("cached "+strings.Join(hits, ",")))
		parts = append(parts, styleMuted.Render(r.Stats.RenderTime.Round(time.Millisecond).String()))
	default:
		parts = append(parts, styleMuted.Render("fresh "+r.Stats.RenderTime.Round(time.Millisecond).String()))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

// renderTable formats rows under headers with a rounded border.
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderSubtle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		}).
		Render()
}

// swatch renders a color sample followed by its value. Only hex colors get
// a sample; scheme names and CSS keywords are shown as text.
func swatch(color string) string {
	if !strings.HasPrefix(color, "#") {
		return color
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(markSwatch) + " " + color
}

// formatBytes renders a byte count with a binary unit.
func formatBytes(n int) string {
	switch {
	case n < 1<<10:
		return fmt.Sprintf("%d B", n)
	case n < 1<<20:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	}
}

// formatRelativeTime renders t relative to now for listings.
func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
