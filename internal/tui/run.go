package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/basket/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the rule browser and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, rules []model.AssociationRule, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	programOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}
	if cfg.Input != nil {
		programOpts = append(programOpts, tea.WithInput(cfg.Input))
	}
	if cfg.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(cfg.Output))
	}

	p := tea.NewProgram(newModel(rules, cfg), programOpts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("rule browser failed: %w", err)
	}
	return nil
}
