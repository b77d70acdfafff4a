package ui

import (
	"github.com/charmbracelet/huh"
)

// SelectOption represents a single option in a Select prompt.
type SelectOption[T comparable] struct {
	Label string
	Value T
}

// Select displays a selection prompt and returns the chosen value.
func Select[T comparable](title string, options []SelectOption[T]) (T, error) {
	var result T

	huhOpts := make([]huh.Option[T], len(options))
	for i, opt := range options {
		huhOpts[i] = huh.NewOption(opt.Label, opt.Value)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[T]().
				Title(title).
				Options(huhOpts...).
				Value(&result),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return result, err
	}
	return result, nil
}

// InputOption configures an Input prompt.
type InputOption func(*inputConfig)

type inputConfig struct {
	placeholder string
	validate    func(string) error
}

// WithPlaceholder sets the placeholder text for an Input prompt.
func WithPlaceholder(placeholder string) InputOption {
	return func(c *inputConfig) {
		c.placeholder = placeholder
	}
}

// WithValidation rejects values for which fn returns an error.
func WithValidation(fn func(string) error) InputOption {
	return func(c *inputConfig) {
		c.validate = fn
	}
}

// Input displays a single text input prompt and returns the entered value.
func Input(title string, opts ...InputOption) (string, error) {
	cfg := inputConfig{}
	for _, o := range opts {
		o(&cfg)
	}

	var result string
	input := huh.NewInput().
		Title(title).
		Value(&result)

	if cfg.placeholder != "" {
		input = input.Placeholder(cfg.placeholder)
	}
	if cfg.validate != nil {
		input = input.Validate(cfg.validate)
	}

	form := huh.NewForm(
		huh.NewGroup(input),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return result, nil
}
