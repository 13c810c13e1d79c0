package client

import (
	"context"
	"time"

	"github.com/danmuck/pandalink/internal/protocol"
	"github.com/danmuck/pandalink/internal/protocol/records"
)

func (c *Client) CPUUsage(ctx context.Context) (float32, error) {
	return Do(ctx, c, Query(CmdCPUUsage, records.DecodeF32))
}

func (c *Client) CPUCoreUsage(ctx context.Context) ([]float32, error) {
	return Do(ctx, c, Query(CmdCPUCoreUsage, listOf(records.DecodeF32)))
}

// CPUFrequencies returns per-core frequencies in kHz.
func (c *Client) CPUFrequencies(ctx context.Context) ([]uint32, error) {
	return Do(ctx, c, Query(CmdCPUFreq, listOf(records.DecodeU32)))
}

func (c *Client) GPUUsage(ctx context.Context) (records.GPUUsage, error) {
	return Do(ctx, c, Query(CmdGPUUsage, records.DecodeGPUUsage))
}

func (c *Client) FPS(ctx context.Context) (uint32, error) {
	return Do(ctx, c, Query(CmdFPS, records.DecodeU32))
}

func (c *Client) MemoryUsage(ctx context.Context, pid uint32) (records.MemoryUsage, error) {
	return Do(ctx, c, Op[records.MemoryUsage]{
		Cmd:   CmdMemoryUsage,
		Args:  func(w *protocol.Writer) { w.WriteU32(pid) },
		Reply: records.DecodeMemoryUsage,
	})
}

func (c *Client) CPUTemperature(ctx context.Context) (float32, error) {
	return Do(ctx, c, Query(CmdCPUTemperature, records.DecodeF32))
}

func (c *Client) ThreadCPUUsage(ctx context.Context, pid, tid uint32) (float32, error) {
	return Do(ctx, c, Op[float32]{
		Cmd: CmdThreadCPUUsage,
		Args: func(w *protocol.Writer) {
			w.WriteU32(pid)
			w.WriteU32(tid)
		},
		Reply: records.DecodeF32,
	})
}

func (c *Client) StartProfiling(ctx context.Context, interval time.Duration) (bool, error) {
	return Do(ctx, c, Op[bool]{
		Cmd:   CmdProfilingStart,
		Args:  func(w *protocol.Writer) { w.WriteU32(uint32(interval.Milliseconds())) },
		Reply: readOK,
	})
}

func (c *Client) StopProfiling(ctx context.Context) (bool, error) {
	return Do(ctx, c, Query(CmdProfilingStop, readOK))
}

func (c *Client) BatteryInfo(ctx context.Context) (records.BatteryInfo, error) {
	return Do(ctx, c, Query(CmdBatteryInfo, records.DecodeBatteryInfo))
}

func (c *Client) BatteryLevel(ctx context.Context) (uint32, error) {
	return Do(ctx, c, Query(CmdBatteryLevel, records.DecodeU32))
}

func (c *Client) BatterySupported(ctx context.Context) (bool, error) {
	return Do(ctx, c, Query(CmdBatterySupported, readBool))
}

func (c *Client) NetworkUsage(ctx context.Context, uid uint32) (records.NetworkUsage, error) {
	return Do(ctx, c, Op[records.NetworkUsage]{
		Cmd:   CmdNetworkUsage,
		Args:  func(w *protocol.Writer) { w.WriteU32(uid) },
		Reply: records.DecodeNetworkUsage,
	})
}

func (c *Client) NetworkUsageTotal(ctx context.Context) (records.Traffic, error) {
	return Do(ctx, c, Query(CmdNetworkUsageTotal, records.DecodeTraffic))
}

func (c *Client) NetworkUsageForPackage(ctx context.Context, pkg string) (records.PackageTraffic, error) {
	return Do(ctx, c, Op[records.PackageTraffic]{
		Cmd:   CmdNetworkUsagePackage,
		Args:  func(w *protocol.Writer) { w.WriteString(pkg) },
		Reply: records.DecodePackageTraffic,
	})
}
