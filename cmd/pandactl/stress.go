package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/danmuck/pandalink/internal/client"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errProfilingRefused = errors.New("pandactl: service refused to start profiling")

type stressOptions struct {
	Count    int
	Interval time.Duration
	Pause    time.Duration
}

func newFPSStressCmd() *cobra.Command {
	opts := stressOptions{Count: 1000, Interval: time.Second, Pause: 10 * time.Millisecond}
	cmd := &cobra.Command{
		Use:   "fps-stress",
		Short: "Start profiling, pull FPS repeatedly and summarize the samples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c *client.Client) error {
				return runFPSStress(ctx, c, opts, cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().IntVar(&opts.Count, "count", opts.Count, "number of FPS samples")
	cmd.Flags().DurationVar(&opts.Interval, "interval", opts.Interval, "profiling interval")
	cmd.Flags().DurationVar(&opts.Pause, "sleep", opts.Pause, "pause between pulls")
	return cmd
}

func runFPSStress(ctx context.Context, c *client.Client, opts stressOptions, out io.Writer) error {
	ok, err := c.StartProfiling(ctx, opts.Interval)
	if err != nil {
		return err
	}
	if !ok {
		return errProfilingRefused
	}

	fps := hdrhistogram.New(1, 1000, 3)
	seen := make(map[uint32]struct{})
	for i := 0; i < opts.Count; i++ {
		v, err := c.FPS(ctx)
		if err != nil {
			return err
		}
		if err := fps.RecordValue(int64(v)); err != nil {
			log.Warn().Uint32("fps", v).Err(err).Msg("fps sample out of range")
		}
		seen[v] = struct{}{}
		if opts.Pause > 0 && i+1 < opts.Count {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(opts.Pause):
			}
		}
	}

	if _, err := c.StopProfiling(ctx); err != nil {
		return err
	}
	return renderStress(out, fps, seen, c.Stats()["fps"])
}

func renderStress(out io.Writer, fps *hdrhistogram.Histogram, seen map[uint32]struct{}, latency client.LatencySummary) error {
	if fps.TotalCount() == 0 {
		fmt.Fprintln(out, "No FPS samples collected")
		return nil
	}
	uniques := make([]uint32, 0, len(seen))
	for v := range seen {
		uniques = append(uniques, v)
	}
	slices.Sort(uniques)
	more := ""
	if len(uniques) > 10 {
		uniques, more = uniques[:10], " ..."
	}

	fmt.Fprintln(out, "=== FPS Stress Test ===")
	fmt.Fprintf(out, "Samples        : %d\n", fps.TotalCount())
	fmt.Fprintf(out, "Min / Max      : %d / %d\n", fps.Min(), fps.Max())
	fmt.Fprintf(out, "Mean / Median  : %.2f / %d\n", fps.Mean(), fps.ValueAtQuantile(50))
	fmt.Fprintf(out, "P99            : %d\n", fps.ValueAtQuantile(99))
	fmt.Fprintf(out, "Unique values  : %d -> %v%s\n", len(seen), uniques, more)
	fmt.Fprintf(out, "Pull latency   : p50 %v  p99 %v  max %v\n", latency.P50, latency.P99, latency.Max)
	return nil
}
