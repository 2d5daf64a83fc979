package host

import (
	"context"
	"errors"

	"github.com/aretw0/autoquote/pkg/domain"
	"github.com/aretw0/autoquote/pkg/quote"
)

// Submission is the outcome of a submit event.
type Submission struct {
	// Text replaces the content of the input field.
	Text string
	// Send is false when the host must cancel the submission.
	Send bool
	// Toggled is true when the input was the toggle command.
	Toggled bool
	// Enabled is the extension state after the submission.
	Enabled bool
}

// Composer handles the chat input on submit.
type Composer struct {
	settings *SettingsManager
	opts     options
}

// NewComposer creates a composer backed by settings.
func NewComposer(settings *SettingsManager, opts ...Option) *Composer {
	return &Composer{settings: settings, opts: newOptions(opts)}
}

// Submit interprets raw as typed by the user. The toggle command flips the
// enabled state, clears the input and cancels the send. Otherwise the input
// is rewritten when the extension is enabled and passed through when it is not.
func (c *Composer) Submit(ctx context.Context, raw string) (Submission, error) {
	input, err := SanitizeInput(raw)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInputTooLarge):
			c.opts.metrics.observeRejected("size")
		case errors.Is(err, domain.ErrInvalidUTF8):
			c.opts.metrics.observeRejected("utf8")
		}
		return Submission{}, err
	}

	if _, ok := quote.InterpretCommand(input); ok {
		enabled, err := c.settings.Toggle(ctx)
		if err != nil {
			return Submission{}, err
		}
		c.opts.logger.Info("toggled via command", "command", quote.ToggleCommand, "enabled", enabled)
		return Submission{Send: false, Toggled: true, Enabled: enabled}, nil
	}

	s, err := c.settings.Load(ctx)
	if err != nil {
		return Submission{}, err
	}
	if !s.Enabled {
		c.opts.logger.Debug("disabled, input left unchanged")
		return Submission{Text: input, Send: true, Enabled: false}, nil
	}

	out := quote.RewriteInput(input, s.AsteriskEnabled)
	c.opts.metrics.observeRewrite()
	c.opts.logger.Debug("input rewritten", "input", input, "output", out)
	return Submission{Text: out, Send: true, Enabled: true}, nil
}
