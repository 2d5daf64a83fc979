package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/autoquote"
	"github.com/aretw0/autoquote/internal/presentation/tui"
	"github.com/aretw0/autoquote/pkg/adapters/fswatch"
)

// WatchOptions configures the watch command.
type WatchOptions struct {
	Settle time.Duration
	Reload time.Duration
	Quiet  bool
}

// RunWatch decorates every .html paragraph file in dir and keeps decorating
// new files until ctx is done. Settings changed by other commands are picked
// up every Reload interval.
func RunWatch(ctx context.Context, opts Options, wopts WatchOptions, dir string, out io.Writer) error {
	logger := createLogger(opts.Debug)

	page, err := fswatch.NewPage(dir,
		fswatch.WithLogger(logger),
		fswatch.WithSettle(wopts.Settle),
	)
	if err != nil {
		return err
	}

	s, err := newSession(ctx, opts, autoquote.WithPage(page))
	if err != nil {
		return err
	}
	defer s.Close()

	if !wopts.Quiet {
		tui.PrintBanner(out, autoquote.Version)
	}

	if err := s.ext.Start(ctx); err != nil {
		return fmt.Errorf("failed to start decorating %s: %w", dir, err)
	}
	logger.Info("watching", "dir", dir)
	if !wopts.Quiet {
		printSystemMessage(out, "Watching '%s'. Press Ctrl+C to stop.", dir)
	}

	reload := wopts.Reload
	if reload <= 0 {
		reload = 2 * time.Second
	}
	ticker := time.NewTicker(reload)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if !wopts.Quiet {
				printSystemMessage(out, "Stopped watching '%s'.", dir)
			}
			return nil
		case <-ticker.C:
			s.ext.Reload()
		}
	}
}
