package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// ExitCode is the status used when the grace period expires.
const ExitCode = 130

// Handler handles graceful shutdown.
type Handler struct {
	timeout time.Duration
	signals []os.Signal
	exit    func(int)

	mu    sync.Mutex
	hooks []func(context.Context) error
	ran   bool
	err   error
	done  chan struct{}
}

// Option configures a Handler.
type Option func(*Handler)

// WithSignals replaces the signals that trigger shutdown.
func WithSignals(sig ...os.Signal) Option {
	return func(h *Handler) {
		h.signals = sig
	}
}

// WithExit replaces os.Exit.
func WithExit(exit func(int)) Option {
	return func(h *Handler) {
		h.exit = exit
	}
}

// NewHandler creates a new shutdown handler. timeout bounds both the grace
// period after a signal and the time given to hooks.
func NewHandler(timeout time.Duration, opts ...Option) *Handler {
	h := &Handler{
		timeout: timeout,
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		exit:    os.Exit,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// OnShutdown registers a shutdown hook.
// Hooks are called in reverse order of registration.
func (h *Handler) OnShutdown(hook func(context.Context) error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook)
}

// Notify returns a copy of parent that is cancelled on the first signal.
// If Shutdown has not been called within the timeout after that signal,
// the hooks run and the process exits with ExitCode. stop releases the
// signal handler.
func (h *Handler) Notify(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, h.signals...)

	stopped := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(stopped)
			cancel()
		})
	}

	go func() {
		select {
		case <-sigCh:
		case <-stopped:
			return
		case <-h.done:
			return
		}
		cancel()

		select {
		case <-h.done:
		case <-time.After(h.timeout):
			if h.run() {
				h.exit(ExitCode)
			}
		}
	}()

	return ctx, stop
}

// Shutdown runs the hooks once and returns the last hook error. Later
// calls return the same error.
func (h *Handler) Shutdown() error {
	h.run()
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// run executes the hooks and reports whether this call did so.
func (h *Handler) run() bool {
	h.mu.Lock()
	if h.ran {
		h.mu.Unlock()
		<-h.done
		return false
	}
	h.ran = true
	hooks := make([]func(context.Context) error, len(h.hooks))
	copy(hooks, h.hooks)
	h.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	var lastErr error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			lastErr = err
		}
	}

	h.mu.Lock()
	h.err = lastErr
	h.mu.Unlock()
	close(h.done)
	return true
}

// Done returns a channel that closes when shutdown is complete.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}

type ctxKey struct{}

// WithHandler attaches h to ctx so commands can register hooks.
func WithHandler(ctx context.Context, h *Handler) context.Context {
	return context.WithValue(ctx, ctxKey{}, h)
}

// FromContext returns the handler attached to ctx, if any.
func FromContext(ctx context.Context) (*Handler, bool) {
	if ctx == nil {
		return nil, false
	}
	h, ok := ctx.Value(ctxKey{}).(*Handler)
	return h, ok
}
