package tui

import (
	"io"

	"github.com/Veraticus/basket/internal/cli"
	"github.com/Veraticus/basket/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme  themes.Theme
	Input  io.Reader
	Output io.Writer
	Title  string
	SortBy cli.SortKey
	Width  int
	Height int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Title:  "Association Rules",
		SortBy: cli.SortByLift,
		Width:  100,
		Height: 24,
	}
}

// WithTheme sets the color theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithTitle sets the header shown above the table.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
	}
}

// WithSort sets the initial sort key.
func WithSort(key cli.SortKey) Option {
	return func(c *Config) {
		c.SortBy = key
	}
}

// WithIO replaces the terminal input and output.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(c *Config) {
		c.Input = in
		c.Output = out
	}
}
