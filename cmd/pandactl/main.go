// Command pandactl talks to the device service from a workstation or from
// the device shell.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danmuck/pandalink/internal/client"
	"github.com/danmuck/pandalink/internal/config"
	"github.com/danmuck/pandalink/internal/logging"
	"github.com/danmuck/pandalink/internal/observability"
	"github.com/danmuck/pandalink/internal/protocol"
	"github.com/danmuck/pandalink/internal/protocol/session"
	"github.com/spf13/cobra"
)

const (
	exitOK         = 0
	exitOther      = 1
	exitConnection = 2
	exitRemote     = 3
)

var (
	Version = "0.1.0"

	flagConfig   string
	flagTCP      string
	flagAbstract string
	flagTimeout  time.Duration
	flagLogLevel string
	flagMetrics  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "pandactl:", err)
	}
	os.Exit(exitCode(err))
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pandactl",
		Short:         "Query and drive a device through its panda service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			observability.InitLogger("pandactl")
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "TOML config file")
	pf.StringVar(&flagTCP, "tcp", "", "connect over TCP to host:port")
	pf.StringVar(&flagAbstract, "abstract", "", "connect to an abstract socket name")
	pf.DurationVar(&flagTimeout, "timeout", 30*time.Second, "overall deadline for the command")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level override")
	pf.StringVar(&flagMetrics, "metrics-addr", "", "serve prometheus metrics at host:port/metrics while the command runs")
	root.MarkFlagsMutuallyExclusive("tcp", "abstract")

	root.AddCommand(
		newWiFiCmd(),
		newStorageCmd(),
		newAppsCmd(),
		newNotificationsCmd(),
		newCPUCmd(),
		newMemoryCmd(),
		newBatteryCmd(),
		newNetstatsCmd(),
		newFPSStressCmd(),
		newImageCmd("screenshot", "Save a screenshot as PNG", (*client.Client).Screenshot),
		newImageCmd("wallpaper", "Save the current wallpaper as PNG", (*client.Client).Wallpaper),
		newClipboardCmd(),
		newConfigCmd(),
		newForwardCmd(),
	)
	return root
}

// exitCode maps an error onto the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case protocol.IsRemote(err):
		return exitRemote
	case errors.Is(err, errDial),
		errors.Is(err, protocol.ErrConnectionClosed),
		errors.Is(err, protocol.ErrTimeout):
		return exitConnection
	default:
		return exitOther
	}
}

var errDial = errors.New("pandactl: connect failed")

// loadConfig resolves the config file and flag overrides.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	switch {
	case flagTCP != "":
		cfg.Client.Session.Network = session.NetworkTCP
		cfg.Client.Session.Address = flagTCP
	case flagAbstract != "":
		cfg.Client.Session.Network = session.NetworkAbstract
		cfg.Client.Session.Address = flagAbstract
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// withClient connects, runs fn under the --timeout deadline and closes.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, c *client.Client) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logging.SetLevel(cfg.LogLevel)

	if flagMetrics != "" {
		metrics, err := observability.StartMetricsServer(flagMetrics)
		if err != nil {
			return fmt.Errorf("metrics listener: %w", err)
		}
		defer metrics.Close()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if flagTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagTimeout)
		defer cancel()
	}

	c, err := client.Connect(ctx, cfg.Client)
	if err != nil {
		return fmt.Errorf("%w: %w", errDial, err)
	}
	defer c.Close()
	return fn(ctx, c)
}
