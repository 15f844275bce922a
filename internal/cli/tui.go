package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"habitkit/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	model, err := tui.New(ctx.Store)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI crashed: %w", err)
	}
	return nil
}
