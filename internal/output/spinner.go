package output

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// SpinnerOption configures a spinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title   string
	enabled bool
}

// WithTitle sets the spinner title.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// WithSpinner forces the spinner on or off. By default it is shown only
// when stdout is a terminal.
func WithSpinner(enabled bool) SpinnerOption {
	return func(c *spinnerConfig) {
		c.enabled = enabled
	}
}

// RunWithSpinner runs action while a spinner is shown and returns the
// action's error. If the spinner stops before the action finishes, for
// example because the user pressed ctrl+c, the action's context is
// cancelled and RunWithSpinner waits for it to return.
func RunWithSpinner(ctx context.Context, action func(context.Context) error, opts ...SpinnerOption) error {
	cfg := &spinnerConfig{
		title:   "Working...",
		enabled: IsTTY(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	actionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !cfg.enabled {
		return action(actionCtx)
	}

	var actionErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		actionErr = action(actionCtx)
	}()

	spinnerErr := spinner.New().
		Title(cfg.title).
		Action(func() { <-done }).
		Run()

	select {
	case <-done:
	default:
		cancel()
		<-done
	}

	if actionErr != nil {
		return actionErr
	}
	if spinnerErr != nil {
		return fmt.Errorf("spinner error: %w", spinnerErr)
	}
	return nil
}
