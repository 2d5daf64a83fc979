package host

import (
	"log/slog"

	"github.com/aretw0/autoquote/internal/logging"
	"github.com/aretw0/autoquote/pkg/domain"
)

// DefaultName is the key the settings are stored under.
const DefaultName = domain.ExtensionName

type options struct {
	logger  *slog.Logger
	metrics *Metrics
	name    string
}

// Option configures the host components.
type Option func(*options)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records activity in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithName sets the name the settings are stored under.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger: logging.NewNop(),
		name:   DefaultName,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
