package supervisor

import (
	"go.uber.org/zap"

	"github.com/launchforge/launchkit"
	"github.com/launchforge/launchkit/internal/ring"
)

// Default supervisor configuration values.
const (
	defaultScannerBuffer = 1 << 20 // 1 MB max output line
)

// Options holds resolved construction-time configuration for a Supervisor.
type Options struct {
	// BufferCap is the ring buffer capacity (and live feed channel
	// buffer) in records.
	BufferCap int

	// ScannerBuffer is the maximum output line size in bytes.
	ScannerBuffer int

	// Handlers are the typed lifecycle/output callbacks.
	Handlers launchkit.Handlers

	// Logger defaults to zap.NewNop().
	Logger *zap.Logger
}

// Option configures a Supervisor at construction time.
type Option func(*Options)

// WithBufferCap sets the output ring buffer capacity in records.
// Values <= 0 are ignored.
func WithBufferCap(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.BufferCap = n
		}
	}
}

// WithScannerBuffer sets the maximum output line size in bytes.
// Values <= 0 are ignored.
func WithScannerBuffer(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.ScannerBuffer = n
		}
	}
}

// WithHandlers sets the typed event callbacks.
func WithHandlers(h launchkit.Handlers) Option {
	return func(o *Options) {
		o.Handlers = h
	}
}

// WithLogger sets the supervisor logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *Options) {
		if log != nil {
			o.Logger = log
		}
	}
}

func resolveOptions(opts ...Option) Options {
	o := Options{
		BufferCap:     ring.DefaultCapacity,
		ScannerBuffer: defaultScannerBuffer,
		Logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
