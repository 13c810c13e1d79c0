package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/danmuck/pandalink/internal/client"
	"github.com/danmuck/pandalink/internal/protocol/records"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

func newTable(out io.Writer, header ...string) *tablewriter.Table {
	tw := tablewriter.NewWriter(out)
	tw.SetHeader(header)
	tw.SetBorder(true)
	tw.SetAutoWrapText(false)
	return tw
}

func u32(v uint32) string { return strconv.FormatUint(uint64(v), 10) }

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func kb(v uint64) string { return humanize.IBytes(v * 1024) }

func renderWiFi(out io.Writer, state client.WiFiState, conn records.CurrentConnection, saved []records.ConfiguredNetwork) {
	fmt.Fprintf(out, "Wi-Fi: %s\n", state)
	if conn.SSID != "" {
		fmt.Fprintf(out, "Connected: %s (%s) id=%d link=%d Mbps rssi=%d dBm\n",
			conn.SSID, conn.BSSID, conn.NetworkID, conn.LinkSpeed, conn.RSSI)
	}
	tw := newTable(out, "ID", "SSID")
	for _, n := range saved {
		tw.Append([]string{strconv.Itoa(int(n.NetworkID)), n.SSID})
	}
	tw.Render()
}

func renderScan(out io.Writer, networks []records.NetworkEntry) {
	tw := newTable(out, "SSID", "BSSID", "MHz", "Standard", "Level")
	for _, n := range networks {
		tw.Append([]string{n.SSID, n.BSSID, u32(n.FrequencyMHz), u32(n.Standard), u32(n.SignalLevel)})
	}
	tw.Render()
}

func renderStorage(out io.Writer, volumes []records.StorageVolume) {
	tw := newTable(out, "Kind", "Label", "Path")
	for _, v := range volumes {
		tw.Append([]string{v.Kind.String(), v.Label, v.Path})
	}
	tw.Render()
}

func renderApps(out io.Writer, inv client.AppInventory) {
	tw := newTable(out, "Package", "Label", "Version", "Target SDK", "APK", "Data", "Launchable", "Updated")
	for _, a := range inv.Apps {
		updated := "-"
		if a.Details.UpdatedAt > 0 {
			updated = humanize.Time(time.Unix(int64(a.Details.UpdatedAt), 0))
		}
		tw.Append([]string{
			a.Package,
			a.Label,
			fmt.Sprintf("%s (%d)", a.VersionName, a.VersionCode),
			u32(a.Details.TargetSDK),
			humanize.Bytes(a.Details.APKSize),
			humanize.Bytes(a.Details.DataSize),
			yesNo(a.CanLaunch),
			updated,
		})
	}
	tw.Render()
	fmt.Fprintf(out, "%s packages\n", humanize.Comma(int64(len(inv.Apps))))
}

func renderNotifications(out io.Writer, entries []records.NotificationEntry) {
	tw := newTable(out, "Key", "Package", "Title", "Text", "Posted", "Actions")
	for _, n := range entries {
		actions := make([]string, 0, len(n.Actions))
		for _, a := range n.Actions {
			title := a.Title
			if a.RequiresInput {
				title += "*"
			}
			actions = append(actions, title)
		}
		tw.Append([]string{
			n.Key,
			n.Package,
			n.Title,
			n.Text,
			humanize.Time(time.UnixMilli(int64(n.PostedAtMillis))),
			strings.Join(actions, ", "),
		})
	}
	tw.Render()
}

type cpuSnapshot struct {
	Usage       float32
	Cores       []float32
	FreqKHz     []uint32
	Temperature float32
	GPU         records.GPUUsage
}

func renderCPU(out io.Writer, s cpuSnapshot) {
	fmt.Fprintf(out, "CPU %.1f%%  temp %.1f°C  GPU %.1f%% @ %d MHz\n",
		s.Usage, s.Temperature, s.GPU.Usage, s.GPU.FreqKHz/1000)
	tw := newTable(out, "Core", "Usage", "Freq")
	for i := 0; i < max(len(s.Cores), len(s.FreqKHz)); i++ {
		usage, freq := "-", "-"
		if i < len(s.Cores) {
			usage = fmt.Sprintf("%.1f%%", s.Cores[i])
		}
		if i < len(s.FreqKHz) {
			freq = fmt.Sprintf("%d MHz", s.FreqKHz[i]/1000)
		}
		tw.Append([]string{strconv.Itoa(i), usage, freq})
	}
	tw.Render()
}

func renderMemory(out io.Writer, pid uint32, m records.MemoryUsage) {
	tw := newTable(out, "PID", "PSS", "Private dirty", "Shared dirty")
	tw.Append([]string{u32(pid), kb(m.PSSKB), kb(m.PrivateDirtyKB), kb(m.SharedDirtyKB)})
	tw.Render()
}

func renderBattery(out io.Writer, b records.BatteryInfo) {
	tw := newTable(out, "Level", "Current", "Voltage", "Charging", "Sampled")
	tw.Append([]string{
		fmt.Sprintf("%d%%", b.Level),
		fmt.Sprintf("%d mA", b.CurrentMA),
		fmt.Sprintf("%.2f V", float64(b.VoltageMV)/1000),
		yesNo(b.Charging),
		humanize.Time(time.UnixMilli(int64(b.TimestampMS))),
	})
	tw.Render()
}

func renderTraffic(out io.Writer, label string, t records.Traffic) {
	tw := newTable(out, "Scope", "RX", "TX")
	tw.Append([]string{label, humanize.Bytes(t.RxBytes), humanize.Bytes(t.TxBytes)})
	tw.Render()
}

func renderNetworkUsage(out io.Writer, u records.NetworkUsage) {
	tw := newTable(out, "Scope", "RX", "TX")
	for _, row := range []struct {
		label string
		t     records.Traffic
	}{{"total", u.Total}, {"wifi", u.WiFi}, {"mobile", u.Mobile}} {
		tw.Append([]string{row.label, humanize.Bytes(row.t.RxBytes), humanize.Bytes(row.t.TxBytes)})
	}
	tw.Render()
}

func renderPackageTraffic(out io.Writer, pkg string, t records.PackageTraffic) {
	renderTraffic(out, fmt.Sprintf("%s (uid %d)", pkg, t.UID), t.Traffic)
}
