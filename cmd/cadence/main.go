package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/odvcencio/cadence/pkg/config"
	"github.com/odvcencio/cadence/pkg/errors"
	"github.com/odvcencio/cadence/pkg/observability"
	"github.com/odvcencio/cadence/pkg/ui/backend"
	"github.com/odvcencio/cadence/pkg/ui/backend/sim"
	tcellbackend "github.com/odvcencio/cadence/pkg/ui/backend/tcell"
	"github.com/odvcencio/cadence/pkg/ui/compose"
	"github.com/odvcencio/cadence/pkg/ui/runtime"
	"github.com/odvcencio/cadence/pkg/ui/theme"
)

// Version information - set via ldflags during build
var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

type options struct {
	configPath string
	headless   bool
	ticks      int
	version    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("cadence", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to config file")
	fs.BoolVar(&opts.headless, "headless", false, "render to an in-memory screen and print the final frame")
	fs.IntVar(&opts.ticks, "ticks", 0, "stop after this many ticks (headless default from config)")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.ticks < 0 {
		return nil, fmt.Errorf("-ticks must be >= 0, got %d", opts.ticks)
	}
	return opts, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func isInteractiveTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) &&
		term.IsTerminal(int(os.Stdout.Fd()))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return 2
	}
	if opts.version {
		fmt.Fprintf(stdout, "cadence %s (%s)\n", version, commit)
		return 0
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	for _, w := range cfg.ValidationWarnings() {
		fmt.Fprintf(stderr, "Warning: %s\n", w)
	}

	headless := opts.headless || cfg.UI.Backend == config.BackendSim || !isInteractiveTerminal()

	logOut, closeLog, err := openLog(cfg.Telemetry.LogFile, headless, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	runID := uuid.NewString()
	logger := observability.NewLoggerTo(logOut, "cadence", observability.ParseLevel(cfg.Telemetry.LogLevel)).
		WithRun(runID)

	if cfg.Telemetry.Tracing {
		shutdown, err := startTracing(cfg.Telemetry.TraceFile, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer shutdown()
	}

	var server *observability.Server
	if cfg.Telemetry.MetricsAddr != "" {
		server = observability.NewServer(cfg.Telemetry.MetricsAddr, logger)
		if err := server.Start(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	var be backend.Backend
	var th *theme.Theme
	maxTicks := opts.ticks
	if headless {
		be = sim.New(cfg.UI.SimWidth, cfg.UI.SimHeight)
		th = theme.Resolve(themeName(cfg.UI.Theme), termenv.ANSI, true)
		if maxTicks == 0 {
			maxTicks = cfg.UI.HeadlessTicks
		}
	} else {
		tb, err := tcellbackend.New()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		be = tb
		th = theme.Detect(cfg.UI.Theme)
	}

	devs, err := openDevices(cfg.Devices, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer devs.Close()

	root := buildTree(th, be, cfg.UI.TickRate, devs)

	app, err := runtime.NewApp(runtime.AppConfig[compose.Unit]{
		Backend:     be,
		Root:        root,
		Flow:        cfg.Flow(),
		Logger:      logger,
		RefreshRate: cfg.UI.RefreshRate,
		MaxTicks:    maxTicks,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger.Info("cadence starting",
		"version", version,
		"headless", headless,
		"focusable", app.Plan().Focus.Names(),
	)
	if server != nil {
		server.SetReady(true)
	}

	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}

	if headless {
		fmt.Fprintln(stdout, app.Frame())
	}
	logger.Info("cadence stopped", "ticks", app.Ticks(), "frames", app.Frames())
	return 0
}

// exitCode maps an error code to a process exit status.
func exitCode(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeContract:
		return 3
	case errors.ErrCodeBackend:
		return 4
	default:
		return 1
	}
}

// themeName keeps the configured palette but never queries a terminal that
// is not there.
func themeName(name string) string {
	if name == "" || name == "auto" {
		return "ansi"
	}
	return name
}

// openLog picks the log destination. An interactive screen owns the
// terminal, so without a log file logs are discarded there.
func openLog(path string, headless bool, stderr io.Writer) (io.Writer, func(), error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "open log file").
				WithContext("path", path)
		}
		return f, func() { _ = f.Close() }, nil
	}
	if headless {
		return stderr, func() {}, nil
	}
	return io.Discard, func() {}, nil
}

func startTracing(path string, stderr io.Writer) (func(), error) {
	var w io.Writer = stderr
	var f *os.File
	if path != "" {
		var err error
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "open trace file").
				WithContext("path", path)
		}
		w = f
	}
	tp, err := observability.NewTracerProvider("cadence", version, w)
	if err != nil {
		if f != nil {
			_ = f.Close()
		}
		return nil, err
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
		if f != nil {
			_ = f.Close()
		}
	}, nil
}
