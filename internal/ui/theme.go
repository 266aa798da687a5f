package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/EricA1019/gamified-checklist/internal/model"
)

// Checklist theme. Kept intentionally small: reusable styles and a few
// emojis.

const (
	IconSparkle = "✨"
	IconDone    = "✅"
	IconPending = "⭕"
	IconDaily   = "🔁"
	IconQuest   = "🗺️"
	IconBolt    = "⚡"
	IconFlame   = "🔥"
	IconTrophy  = "🏆"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconUndo    = "↩️"
	IconTrash   = "🗑️"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
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

// KindIcon picks the marker for a task kind.
func KindIcon(kind model.Kind) string {
	if kind == model.KindQuest {
		return IconQuest
	}
	return IconDaily
}

// DoneIcon marks completion state.
func DoneIcon(completed bool) string {
	if completed {
		return IconDone
	}
	return IconPending
}
