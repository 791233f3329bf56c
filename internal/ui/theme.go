package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/comitanigiacomo/summit-resolutions/internal/core/domain"
)

const (
	IconSummit = "⛰️"
	IconPlus   = "➕"
	IconDone   = "✅"
	IconOpen   = "⬜"
	IconFire   = "🔥"
	IconTrash  = "🗑️"
	IconStats  = "📊"
	IconWarn   = "⚠️"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func Error(msg string) string {
	return Bad.Render(IconWarn + " " + msg)
}

// ProgressBar draws pct (0-100) as a fixed-width bar.
func ProgressBar(pct, width int) string {
	if width <= 0 {
		width = 20
	}
	pct = max(0, min(100, pct))
	filled := pct * width / 100

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := Warn
	if pct >= 100 {
		style = Good
	}
	return style.Render(bar) + Muted.Render(fmt.Sprintf(" %3d%%", pct))
}

func TypeBadge(t domain.GoalType) string {
	switch t {
	case domain.GoalTypeDaily:
		return H2.Render("daily")
	case domain.GoalTypeMonthly:
		return Warn.Render("monthly")
	default:
		return Muted.Render(string(t))
	}
}

// GoalLine renders one goal for list output.
func GoalLine(v domain.GoalView) string {
	icon := IconOpen
	if v.Complete {
		icon = IconDone
	}

	count := fmt.Sprintf("%d", v.Count)
	if v.Target != nil {
		count = fmt.Sprintf("%d/%d", v.Count, *v.Target)
	}

	line := fmt.Sprintf("%s %s %s %s %s",
		icon,
		Muted.Render(ShortID(v.ID)),
		Key.Render(v.Title),
		TypeBadge(v.Type),
		count,
	)
	if v.Progress != nil {
		line += "  " + ProgressBar(*v.Progress, 10)
	}
	if v.DueDate != "" {
		line += Muted.Render("  due " + v.DueDate)
	}
	return line
}

// ShortID is the id prefix shown in lists; any unique prefix is accepted back.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
