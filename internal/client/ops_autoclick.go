package client

import (
	"context"
	"time"

	"github.com/danmuck/pandalink/internal/protocol"
	"github.com/danmuck/pandalink/internal/protocol/records"
)

func readBool(r *protocol.Reader) (bool, error) { return r.ReadBool() }

func textWithTimeout(text string, timeout time.Duration) func(w *protocol.Writer) {
	return func(w *protocol.Writer) {
		w.WriteString(text)
		w.WriteU32(uint32(timeout.Milliseconds()))
	}
}

// ClickText taps the first element containing text, waiting up to timeout
// for it to appear.
func (c *Client) ClickText(ctx context.Context, text string, timeout time.Duration) (bool, error) {
	return Do(ctx, c, Op[bool]{Cmd: CmdClickText, Args: textWithTimeout(text, timeout), Reply: readBool})
}

func (c *Client) ClickExactText(ctx context.Context, text string, timeout time.Duration) (bool, error) {
	return Do(ctx, c, Op[bool]{Cmd: CmdClickExactText, Args: textWithTimeout(text, timeout), Reply: readBool})
}

func (c *Client) ClickAt(ctx context.Context, x, y uint32) (bool, error) {
	return Do(ctx, c, Op[bool]{
		Cmd: CmdClickAt,
		Args: func(w *protocol.Writer) {
			w.WriteU32(x)
			w.WriteU32(y)
		},
		Reply: readBool,
	})
}

func (c *Client) ClickableTexts(ctx context.Context) ([]string, error) {
	return Do(ctx, c, Query(CmdClickableTexts, listOf(records.DecodeString)))
}

// StartMonitor watches the screen for keywords and clicks them as they show.
func (c *Client) StartMonitor(ctx context.Context, keywords []string) (bool, error) {
	return Do(ctx, c, Op[bool]{
		Cmd: CmdMonitorStart,
		Args: func(w *protocol.Writer) {
			w.WriteU32(uint32(len(keywords)))
			for _, k := range keywords {
				w.WriteString(k)
			}
		},
		Reply: readBool,
	})
}

func (c *Client) StopMonitor(ctx context.Context) (bool, error) {
	return Do(ctx, c, Query(CmdMonitorStop, readBool))
}

func (c *Client) MonitorStatus(ctx context.Context) (records.MonitorStatus, error) {
	return Do(ctx, c, Query(CmdMonitorStatus, records.DecodeMonitorStatus))
}

func (c *Client) PressBack(ctx context.Context) (bool, error) {
	return Do(ctx, c, Query(CmdPressBack, readBool))
}

func (c *Client) PressHome(ctx context.Context) (bool, error) {
	return Do(ctx, c, Query(CmdPressHome, readBool))
}

func (c *Client) HasText(ctx context.Context, text string) (bool, error) {
	return Do(ctx, c, Op[bool]{
		Cmd:   CmdHasText,
		Args:  func(w *protocol.Writer) { w.WriteString(text) },
		Reply: readBool,
	})
}
