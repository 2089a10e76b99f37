package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/easy-style/internal/common"
	"github.com/Veraticus/easy-style/internal/model"
	"github.com/Veraticus/easy-style/internal/styling"
	"github.com/Veraticus/easy-style/internal/tui/themes"
)

// Outcome is what the user decided in the selector.
type Outcome struct {
	Products  []model.Product
	Confirmed bool
}

type runConfig struct {
	input  io.Reader
	output io.Writer
	theme  themes.Theme
	alt    bool
}

// Option configures SelectProducts.
type Option func(*runConfig)

// WithIO overrides the terminal streams.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(c *runConfig) {
		c.input, c.output = in, out
	}
}

// WithTheme overrides the color scheme.
func WithTheme(t themes.Theme) Option {
	return func(c *runConfig) { c.theme = t }
}

// WithAltScreen runs the selector in the terminal's alternate screen.
func WithAltScreen() Option {
	return func(c *runConfig) { c.alt = true }
}

// SelectProducts lets the user pick products from the session's result.
func SelectProducts(ctx context.Context, session *styling.Session, opts ...Option) (Outcome, error) {
	if _, ok := session.Result(); !ok {
		return Outcome{}, common.ErrNoResult
	}

	cfg := runConfig{theme: themes.Default}
	for _, opt := range opts {
		opt(&cfg)
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.input != nil {
		programOpts = append(programOpts, tea.WithInput(cfg.input))
	}
	if cfg.output != nil {
		programOpts = append(programOpts, tea.WithOutput(cfg.output))
	}
	if cfg.alt {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(NewModel(session, cfg.theme), programOpts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return Outcome{}, ctx.Err()
		}
		return Outcome{}, fmt.Errorf("product selector failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return Outcome{}, fmt.Errorf("unexpected model type %T", final)
	}
	if !m.Confirmed() {
		return Outcome{}, nil
	}
	return Outcome{Products: m.Selected(), Confirmed: true}, nil
}
