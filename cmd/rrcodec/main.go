// Command rrcodec encodes media files into log streams and inspects
// existing streams.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/config"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/logger"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/logtypes"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/metrics"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/observability"
)

var version = "0.1.0"

// app holds what the persistent flags resolve to for one invocation.
type app struct {
	configPath  string
	logLevel    string
	compression string
	trace       bool
	metricsAddr string

	cfg           *config.Config
	log           *zap.Logger
	stopTracing   observability.ShutdownFunc
	metricsServer *http.Server
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "rrcodec",
		Short:         "rrcodec - encode and inspect log streams",
		Long:          `rrcodec wraps media files into AssetVideo chunks, writes them as compressed log streams, and decodes existing streams into JSON summaries.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to a YAML configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the configuration")
	flags.StringVar(&a.compression, "compression", "", "Payload compression (off, lz4, zstd); overrides the configuration")
	flags.BoolVar(&a.trace, "trace", false, "Export OpenTelemetry spans to stderr")
	flags.StringVar(&a.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while running")

	root.AddCommand(
		newVersionCmd(),
		newEncodeCmd(a),
		newInspectCmd(a),
		newConfigCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rrcodec v%s\n", version)
			fmt.Fprintf(out, "Stream format: %s\n", logtypes.CurrentVersion)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.compression != "" {
		cfg.Encoding.Compression = strings.ToLower(a.compression)
	}
	if a.trace {
		cfg.Tracing.Enabled = true
	}
	if a.metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Address = a.metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.log, err = logger.New(cfg.Logging)
	if err != nil {
		return err
	}
	a.log = a.log.With(zap.String("component", "rrcodec"), zap.String("command", cmd.Name()))

	a.stopTracing, err = observability.InitTracing(cfg.Tracing, version, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		a.metricsServer = &http.Server{
			Addr:              cfg.Metrics.Address,
			Handler:           metrics.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				a.log.Warn("metrics endpoint stopped", zap.Error(err))
			}
		}()
		a.log.Info("serving metrics", zap.String("address", cfg.Metrics.Address))
	}
	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			a.log.Warn("failed to stop metrics endpoint", zap.Error(err))
		}
	}
	if a.stopTracing != nil {
		if err := a.stopTracing(ctx); err != nil {
			a.log.Warn("failed to flush spans", zap.Error(err))
		}
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
	return nil
}
