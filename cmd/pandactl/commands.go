package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/danmuck/pandalink/internal/client"
	"github.com/danmuck/pandalink/internal/config"
	"github.com/danmuck/pandalink/internal/protocol/imagestream"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newWiFiCmd() *cobra.Command {
	var scan bool
	cmd := &cobra.Command{
		Use:   "wifi",
		Short: "Show Wi-Fi state, connection and saved networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c *client.Client) error {
				state, err := c.WiFiState(ctx)
				if err != nil {
					return err
				}
				conn, err := c.WiFiInfo(ctx)
				if err != nil {
					return err
				}
				saved, err := c.WiFiConfigured(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				renderWiFi(out, state, conn, saved)
				if !scan {
					return nil
				}
				networks, err := c.WiFiScan(ctx)
				if err != nil {
					return err
				}
				renderScan(out, networks)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&scan, "scan", false, "also list scan results")
	return cmd
}

func newStorageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "storage",
		Short: "List mounted storage volumes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c *client.Client) error {
				volumes, err := c.StorageList(ctx)
				if err != nil {
					return err
				}
				renderStorage(cmd.OutOrStdout(), volumes)
				return nil
			})
		},
	}
}

func newAppsCmd() *cobra.Command {
	var system, nonLaunchable bool
	var iconSize uint32
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List installed applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := client.AppsThirdParty
			if system {
				flags |= client.AppsSystem
			}
			if nonLaunchable {
				flags |= client.AppsNonLaunchable
			}
			return withClient(cmd, func(ctx context.Context, c *client.Client) error {
				inv, err := c.AppList(ctx, flags, iconSize)
				if err != nil {
					return err
				}
				renderApps(cmd.OutOrStdout(), inv)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&system, "system", false, "include system packages")
	cmd.Flags().BoolVar(&nonLaunchable, "all", false, "include packages without a launcher entry")
	cmd.Flags().Uint32Var(&iconSize, "icon-size", 0, "icon edge in pixels, 0 skips icons")
	return cmd
}

func newNotificationsCmd() *cobra.Command {
	var clearAfter bool
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List active notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c *client.Client) error {
				entries, err := c.Notifications(ctx)
				if err != nil {
					return err
				}
				renderNotifications(cmd.OutOrStdout(), entries)
				if clearAfter {
					return c.ClearNotifications(ctx)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&clearAfter, "clear", false, "dismiss all clearable notifications after listing")
	return cmd
}

func newCPUCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cpu",
		Short: "Show CPU and GPU load, frequencies and temperature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c *client.Client) error {
				var snap cpuSnapshot
				var err error
				if snap.Usage, err = c.CPUUsage(ctx); err != nil {
					return err
				}
				if snap.Cores, err = c.CPUCoreUsage(ctx); err != nil {
					return err
				}
				if snap.FreqKHz, err = c.CPUFrequencies(ctx); err != nil {
					return err
				}
				if snap.Temperature, err = c.CPUTemperature(ctx); err != nil {
					return err
				}
				if snap.GPU, err = c.GPUUsage(ctx); err != nil {
					return err
				}
				renderCPU(cmd.OutOrStdout(), snap)
				return nil
			})
		},
	}
}

func newMemoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "memory <pid>",
		Short: "Show memory usage of a process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := parseU32("pid", args[0])
			if err != nil {
				return err
			}
			return withClient(cmd, func(ctx context.Context, c *client.Client) error {
				usage, err := c.MemoryUsage(ctx, pid)
				if err != nil {
					return err
				}
				renderMemory(cmd.OutOrStdout(), pid, usage)
				return nil
			})
		},
	}
}

func newBatteryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "battery",
		Short: "Show battery state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c *client.Client) error {
				supported, err := c.BatterySupported(ctx)
				if err != nil {
					return err
				}
				if !supported {
					fmt.Fprintln(cmd.OutOrStdout(), "battery metrics not supported on this device")
					return nil
				}
				info, err := c.BatteryInfo(ctx)
				if err != nil {
					return err
				}
				renderBattery(cmd.OutOrStdout(), info)
				return nil
			})
		},
	}
}

func newNetstatsCmd() *cobra.Command {
	var pkg string
	cmd := &cobra.Command{
		Use:   "netstats [uid]",
		Short: "Show network traffic totals, per uid or per package",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c *client.Client) error {
				out := cmd.OutOrStdout()
				switch {
				case pkg != "":
					traffic, err := c.NetworkUsageForPackage(ctx, pkg)
					if err != nil {
						return err
					}
					renderPackageTraffic(out, pkg, traffic)
				case len(args) == 1:
					uid, err := parseU32("uid", args[0])
					if err != nil {
						return err
					}
					usage, err := c.NetworkUsage(ctx, uid)
					if err != nil {
						return err
					}
					renderNetworkUsage(out, usage)
				default:
					total, err := c.NetworkUsageTotal(ctx)
					if err != nil {
						return err
					}
					renderTraffic(out, "total", total)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&pkg, "package", "", "report traffic for a package name")
	return cmd
}

type imageFetch func(c *client.Client, ctx context.Context) (imagestream.Image, error)

func newImageCmd(use, short string, fetch imageFetch) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <out.png>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c *client.Client) error {
				img, err := fetch(c, ctx)
				if err != nil {
					return err
				}
				if bad := img.Corrupt(); len(bad) > 0 {
					log.Warn().Strs("chunks", bad).Msg("image chunks failed checksum")
				}
				if err := os.WriteFile(args[0], img.Raw, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %d chunks)\n",
					args[0], humanize.Bytes(uint64(len(img.Raw))), len(img.Chunks))
				return nil
			})
		},
	}
}

func newClipboardCmd() *cobra.Command {
	var set, mimeType string
	cmd := &cobra.Command{
		Use:   "clipboard",
		Short: "Print the clipboard, or replace it with --set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c *client.Client) error {
				out := cmd.OutOrStdout()
				if cmd.Flags().Changed("set") {
					return c.SetClipboard(ctx, mimeType, []byte(set))
				}
				content, err := c.Clipboard(ctx)
				if err != nil {
					return err
				}
				if content == nil {
					fmt.Fprintln(out, "(clipboard empty)")
					return nil
				}
				fmt.Fprintf(out, "%s (%s)\n%s\n", content.MIMEType, humanize.Bytes(uint64(len(content.Data))), content.Data)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&set, "set", "", "text to place on the clipboard")
	cmd.Flags().StringVar(&mimeType, "mime", "text/plain", "mime type used with --set")
	return cmd
}

func newConfigCmd() *cobra.Command {
	var kind string
	var force bool
	cmd := &cobra.Command{
		Use:   "config-init <path>",
		Short: "Write a starter config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteTemplate(args[0], kind, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s config to %s\n", kind, args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "tcp", "template kind: tcp|abstract")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func parseU32(name, raw string) (uint32, error) {
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return uint32(v), nil
}
