package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/aretw0/autoquote"
	"github.com/aretw0/autoquote/internal/presentation/tui"
	"github.com/muesli/termenv"
)

// RunPreview reads one message per line, submits it and shows how the chat
// would display the result. The "//aq" command toggles the extension as it
// would in the chat input.
func RunPreview(ctx context.Context, opts Options, popts PreviewOptions, in io.Reader, out io.Writer) error {
	s, err := newSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	render, err := previewRenderer(ctx, s, popts, out)
	if err != nil {
		return err
	}

	if popts.Interactive {
		tui.PrintBanner(out, autoquote.Version)
		printSystemMessage(out, "Type a message, %q to toggle, Ctrl+D to quit.", "//aq")
	}

	scanner := bufio.NewScanner(in)
	for {
		if popts.Interactive {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			return nil
		}

		sub, err := s.ext.Submit(ctx, scanner.Text())
		if err != nil {
			s.logger.Warn("input rejected", "err", err)
			printSystemMessage(out, "Rejected: %v", err)
			continue
		}
		if sub.Toggled {
			printSystemMessage(out, "AutoQuote %s", enabledLabel(sub.Enabled))
			continue
		}

		rendered, err := render(sub.Text)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, rendered)
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

func previewRenderer(ctx context.Context, s *session, popts PreviewOptions, out io.Writer) (func(string) (string, error), error) {
	if popts.Markdown {
		return tui.NewRenderer(popts.Style)
	}

	profile := termenv.Ascii
	if popts.Interactive {
		profile = termenv.NewOutput(out).EnvColorProfile()
	}

	// Settings are read per message so a toggle of the styling shows at once.
	return func(text string) (string, error) {
		settings, err := s.ext.Settings(ctx)
		if err != nil {
			return "", err
		}
		return tui.NewPreview(profile, settings).Render(text), nil
	}, nil
}
