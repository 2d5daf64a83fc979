package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// RunRewrite rewrites the arguments joined by spaces, or all of in when there
// are none, and prints the text the chat would receive.
func RunRewrite(ctx context.Context, opts Options, args []string, in io.Reader, out io.Writer) error {
	s, err := newSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	raw := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		raw = strings.TrimSuffix(string(data), "\n")
	}

	sub, err := s.ext.Submit(ctx, raw)
	if err != nil {
		return err
	}
	if sub.Toggled {
		printSystemMessage(out, "AutoQuote %s", enabledLabel(sub.Enabled))
		return nil
	}
	fmt.Fprintln(out, sub.Text)
	return nil
}

func enabledLabel(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
