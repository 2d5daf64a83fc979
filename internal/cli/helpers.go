package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/autoquote"
	"github.com/aretw0/autoquote/internal/logging"
	"github.com/aretw0/autoquote/pkg/host"
	"github.com/aretw0/autoquote/pkg/ports"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// Unlike signal.NotifyContext it remembers which signal arrived.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-sc.Context.Done():
		}
		sc.stop.Do(func() {
			signal.Stop(sc.sigCh)
		})
	}()

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger.
// Without --debug only warnings and errors reach Stderr.
func createLogger(debug bool) *slog.Logger {
	return logging.New(logging.Level(debug))
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// session bundles what a command needs: the store, the extension over it and
// the optional metrics written on Close.
type session struct {
	opts       Options
	logger     *slog.Logger
	store      ports.SettingsStore
	metrics    *host.Metrics
	ext        *autoquote.Extension
	closeStore func() error
}

func newSession(ctx context.Context, opts Options, extra ...autoquote.Option) (*session, error) {
	logger := createLogger(opts.Debug)

	store, closeStore, err := openStore(ctx, opts, logger)
	if err != nil {
		return nil, err
	}

	s := &session{
		opts:       opts,
		logger:     logger,
		store:      store,
		closeStore: closeStore,
	}
	if opts.MetricsFile != "" {
		s.metrics = host.NewMetrics()
	}

	extOpts := []autoquote.Option{
		autoquote.WithStore(store),
		autoquote.WithLogger(logger),
		autoquote.WithMetrics(s.metrics),
	}
	if opts.Name != "" {
		extOpts = append(extOpts, autoquote.WithName(opts.Name))
	}
	s.ext = autoquote.New(append(extOpts, extra...)...)
	return s, nil
}

// Close releases the store and writes the metrics file, if one was requested.
func (s *session) Close() {
	s.ext.Close()
	if err := s.metrics.WriteToTextfile(s.opts.MetricsFile); err != nil {
		s.logger.Error("failed to write metrics", "path", s.opts.MetricsFile, "err", err)
	}
	if err := s.closeStore(); err != nil {
		s.logger.Warn("failed to close store", "err", err)
	}
}
