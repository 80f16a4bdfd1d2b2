package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/urfave/cli/v2"

	"github.com/fretehub/fretehub-go/internal/cli/config"
	"github.com/fretehub/fretehub-go/internal/cli/connection"
	"github.com/fretehub/fretehub-go/internal/cli/output"
	"github.com/fretehub/fretehub-go/internal/cli/prompt"
	"github.com/fretehub/fretehub-go/internal/infra/buildinfo"
	"github.com/fretehub/fretehub-go/internal/infra/shutdown"
	"github.com/fretehub/fretehub-go/internal/infra/tlsroots"
	"github.com/fretehub/fretehub-go/internal/session"
	"github.com/fretehub/fretehub-go/internal/storage"
	"github.com/fretehub/fretehub-go/internal/telemetry/logger"
	"github.com/fretehub/fretehub-go/internal/telemetry/metric"
)

const runtimeKey = "runtime"

// Runtime holds what commands share during one invocation, or across all
// lines of a shell.
type Runtime struct {
	owner      *cli.App
	configPath string
	flags      *GlobalFlags

	logger   logger.Logger
	metrics  *metric.Registry
	engine   *storage.BadgerEngine
	store    *session.Store
	prompter *prompt.Prompter
	out      io.Writer
	errw     io.Writer

	mu      sync.RWMutex
	cfg     *config.CLIConfig
	client  *connection.HTTPClient
	printer *output.Printer
	inShell bool

	closeOnce sync.Once
}

func newRuntime(c *cli.Context, flags *GlobalFlags) (*Runtime, error) {
	cfg, err := config.Load(flags.ConfigPath, flags.Overrides)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	rt := &Runtime{
		owner:      c.App,
		configPath: flags.ConfigPath,
		flags:      flags,
		metrics:    metric.NewRegistry(),
		out:        writerOr(c.App.Writer, os.Stdout),
		errw:       writerOr(c.App.ErrWriter, os.Stderr),
	}
	if rt.configPath == "" {
		rt.configPath = config.DefaultConfigPath()
	}

	rt.logger, err = logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: rt.errw,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	var in io.Reader = os.Stdin
	if c.App.Reader != nil {
		in = c.App.Reader
	}
	rt.prompter = prompt.New(in, rt.out)

	if err := rt.openStore(cfg); err != nil {
		return nil, err
	}

	info := buildinfo.Get()
	collector := metric.NewCollector(rt.store.IsAuthenticated, info.Version, info.Commit)
	if err := rt.metrics.RegisterCollector(collector); err != nil {
		rt.Close()
		return nil, fmt.Errorf("register collector: %w", err)
	}

	if err := rt.apply(cfg); err != nil {
		rt.Close()
		return nil, err
	}

	if h, ok := shutdown.FromContext(c.Context); ok {
		h.OnShutdown(func(context.Context) error { return rt.Close() })
	}

	rt.logger.Debug("runtime ready",
		"server", cfg.Server,
		"session_backend", cfg.Session.Backend,
		"config", rt.configPath,
	)
	return rt, nil
}

func writerOr(w, def io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return def
}

// openStore creates the session store for the configured backend. The
// badger engine is shared by every origin; each origin gets its own
// namespace inside it.
func (rt *Runtime) openStore(cfg *config.CLIConfig) error {
	var st session.Storage

	if cfg.Session.Backend == config.BackendBadger {
		engine, err := storage.NewBadgerEngine(storage.DefaultKVConfig(cfg.Session.Dir), logger.Slog(rt.logger))
		if err != nil {
			return fmt.Errorf("open session store: %w", err)
		}
		rt.engine = engine.RegisterMetrics(rt.metrics.Registerer())

		var opts []session.KVOption
		if cfg.Session.Encrypt {
			cipher, err := session.NewCipherFromKeyFile(cfg.Session.KeyFile)
			if err != nil {
				engine.Close()
				return fmt.Errorf("open session key: %w", err)
			}
			opts = append(opts, session.WithCipher(cipher))
		}
		st = session.NewKVStorage(engine, cfg.Server, opts...)
	}

	rt.store = session.NewStore(st,
		session.WithLogger(rt.logger),
		session.WithEventRecorder(rt.metrics),
	)
	return nil
}

// apply installs cfg: log level, output format and a client built from
// the transport settings.
func (rt *Runtime) apply(cfg *config.CLIConfig) error {
	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}

	tlsConfig, err := tlsroots.ClientConfig(tlsroots.ClientOptions{
		CAFile:     cfg.TLS.CAFile,
		CertFile:   cfg.TLS.CertFile,
		KeyFile:    cfg.TLS.KeyFile,
		ServerName: cfg.TLS.ServerName,
	})
	if err != nil {
		return fmt.Errorf("tls: %w", err)
	}

	client := connection.NewHTTPClient(cfg.Server,
		connection.WithTimeout(cfg.RequestTimeout()),
		connection.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		connection.WithTLSConfig(tlsConfig),
		connection.WithRecorder(rt.metrics),
	)

	if err := logger.SetLevel(rt.logger, cfg.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.cfg = cfg
	rt.client = client
	rt.printer = output.NewPrinter(rt.out, rt.errw, format)
	return nil
}

// Reload applies a reloaded configuration. The session store stays bound
// to the server and backend it was opened with.
func (rt *Runtime) Reload(cfg *config.CLIConfig) error {
	current := rt.Config()
	if connection.NormalizeServer(cfg.Server) != connection.NormalizeServer(current.Server) ||
		cfg.Session != current.Session {
		return errRestartRequired
	}
	return rt.apply(cfg)
}

var errRestartRequired = errors.New("server and session settings take effect after a restart")

// bind returns ctx carrying the session store and logger.
func (rt *Runtime) bind(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = session.NewContext(ctx, rt.store)
	return logger.WithLogger(ctx, rt.logger)
}

// Config returns the active configuration.
func (rt *Runtime) Config() *config.CLIConfig {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.cfg
}

// Client returns the API client.
func (rt *Runtime) Client() *connection.HTTPClient {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.client
}

// Printer returns the output printer.
func (rt *Runtime) Printer() *output.Printer {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.printer
}

// Store returns the session store.
func (rt *Runtime) Store() *session.Store {
	return rt.store
}

// Metrics returns the metrics registry.
func (rt *Runtime) Metrics() *metric.Registry {
	return rt.metrics
}

// Logger returns the runtime logger.
func (rt *Runtime) Logger() logger.Logger {
	return rt.logger
}

// Prompter returns the interactive prompter.
func (rt *Runtime) Prompter() *prompt.Prompter {
	return rt.prompter
}

// ConfigPath returns the configuration file in use.
func (rt *Runtime) ConfigPath() string {
	return rt.configPath
}

// CanPrompt reports whether missing values may be asked for.
func (rt *Runtime) CanPrompt() bool {
	return !rt.flags.NoInput
}

// Close releases the session engine. It is safe to call more than once.
func (rt *Runtime) Close() error {
	var err error
	rt.closeOnce.Do(func() {
		if rt.engine != nil {
			err = rt.engine.Close()
		}
	})
	return err
}

func lookupRuntime(c *cli.Context) (*Runtime, bool) {
	rt, ok := c.App.Metadata[runtimeKey].(*Runtime)
	return rt, ok
}

// GetRuntime retrieves the runtime from context.
func GetRuntime(c *cli.Context) *Runtime {
	rt, ok := lookupRuntime(c)
	if !ok {
		panic("command: runtime not initialized")
	}
	return rt
}
