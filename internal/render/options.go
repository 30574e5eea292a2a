// Package render turns markdown into styled terminal output and holds the
// colour palettes used by the chat interface.
package render

import (
	"os"

	"github.com/diogo/medilingua/internal/config"
)

// Options configures the markdown renderer
type Options struct {
	// Width is the word-wrap column
	Width int

	// Style is a built-in style name or a path to a glamour JSON style
	Style string

	EnableEmoji      bool
	PreserveNewLines bool
}

// DefaultOptions returns the options used when no configuration is available
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            StyleDark,
		EnableEmoji:      false,
		PreserveNewLines: true,
	}
}

// OptionsFromConfig builds options from the markdown section of the config.
// GLAMOUR_STYLE wins over the configured style.
func OptionsFromConfig(md config.MarkdownConfig) Options {
	opts := DefaultOptions()
	if md.Style != "" {
		opts.Style = md.Style
	}
	opts.EnableEmoji = md.EnableEmoji
	opts.PreserveNewLines = md.PreserveNewLines

	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}
	return opts
}

// WithWidth returns a copy with the given wrap width
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns a copy with the given style
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}
