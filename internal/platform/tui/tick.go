// Package tui provides the Bubble Tea viewers for gridsim: an animated
// simulation player and a browser for the run ledger.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance the animation.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends one tick message after
// the interval for the given rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate < 1 {
		tickRate = 1
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
