package client

import (
	"context"
	"fmt"

	"github.com/danmuck/pandalink/internal/protocol"
	"github.com/danmuck/pandalink/internal/protocol/records"
)

// WiFiState is the radio state reported by wifi_state.
type WiFiState uint32

const (
	WiFiDisabling WiFiState = iota
	WiFiDisabled
	WiFiEnabling
	WiFiEnabled
	WiFiUnknown
)

func (s WiFiState) String() string {
	switch s {
	case WiFiDisabling:
		return "DISABLING"
	case WiFiDisabled:
		return "DISABLED"
	case WiFiEnabling:
		return "ENABLING"
	case WiFiEnabled:
		return "ENABLED"
	case WiFiUnknown:
		return "UNKNOWN"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint32(s))
	}
}

func (c *Client) WiFiState(ctx context.Context) (WiFiState, error) {
	return Do(ctx, c, Query(CmdWiFiState, func(r *protocol.Reader) (WiFiState, error) {
		v, err := r.ReadU32()
		return WiFiState(v), err
	}))
}

func (c *Client) SetWiFiEnabled(ctx context.Context, enabled bool) error {
	_, err := Do(ctx, c, Notify(CmdWiFiSetEnabled, func(w *protocol.Writer) { w.WriteBool(enabled) }))
	return err
}

func (c *Client) WiFiScan(ctx context.Context) ([]records.NetworkEntry, error) {
	return Do(ctx, c, Query(CmdWiFiScan, listOf(records.DecodeNetworkEntry)))
}

func (c *Client) WiFiInfo(ctx context.Context) (records.CurrentConnection, error) {
	return Do(ctx, c, Query(CmdWiFiInfo, records.DecodeCurrentConnection))
}

func (c *Client) WiFiConfigured(ctx context.Context) ([]records.ConfiguredNetwork, error) {
	return Do(ctx, c, Query(CmdWiFiConfigured, listOf(records.DecodeConfiguredNetwork)))
}

func (c *Client) WiFiConnect(ctx context.Context, networkID uint32) error {
	_, err := Do(ctx, c, Notify(CmdWiFiConnect, func(w *protocol.Writer) { w.WriteU32(networkID) }))
	return err
}

func (c *Client) WiFiAdd(ctx context.Context, ssid, password string, autoJoin bool) error {
	_, err := Do(ctx, c, Notify(CmdWiFiAdd, func(w *protocol.Writer) {
		w.WriteString(ssid)
		w.WriteString(password)
		w.WriteBool(autoJoin)
	}))
	return err
}

func (c *Client) WiFiSetAutoJoin(ctx context.Context, networkID uint32, autoJoin bool) error {
	_, err := Do(ctx, c, Notify(CmdWiFiSetAutoJoin, func(w *protocol.Writer) {
		w.WriteU32(networkID)
		w.WriteBool(autoJoin)
	}))
	return err
}

func (c *Client) WiFiRemove(ctx context.Context, networkID uint32) error {
	_, err := Do(ctx, c, Notify(CmdWiFiRemove, func(w *protocol.Writer) { w.WriteU32(networkID) }))
	return err
}
