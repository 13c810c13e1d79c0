package client

import (
	"context"

	"github.com/danmuck/pandalink/internal/protocol"
	"github.com/danmuck/pandalink/internal/protocol/records"
)

// notificationAck is written once the whole listing has been read. The
// service blocks on it before serving the next command.
var notificationAck = []byte{0}

// Notifications lists active notifications and acknowledges the listing,
// including when it is empty.
func (c *Client) Notifications(ctx context.Context) ([]records.NotificationEntry, error) {
	return Do(ctx, c, Op[[]records.NotificationEntry]{
		Cmd:   CmdNotifications,
		Reply: listOf(records.DecodeNotificationEntry),
		Ack:   notificationAck,
	})
}

func (c *Client) CancelNotification(ctx context.Context, key string) error {
	_, err := Do(ctx, c, Notify(CmdNotificationCancel, func(w *protocol.Writer) { w.WriteString(key) }))
	return err
}

// OpenNotification fires the notification's content intent.
func (c *Client) OpenNotification(ctx context.Context, key string) error {
	_, err := Do(ctx, c, Notify(CmdNotificationOpen, func(w *protocol.Writer) {
		w.WriteString(key)
		w.WriteU32(0)
	}))
	return err
}

// NotificationAction fires action index of the notification. input is sent
// as the remote-input reply and ignored by actions that take none.
func (c *Client) NotificationAction(ctx context.Context, key string, index uint32, input string) error {
	_, err := Do(ctx, c, Notify(CmdNotificationOpen, func(w *protocol.Writer) {
		w.WriteString(key)
		w.WriteU32(1)
		w.WriteU32(index)
		w.WriteString(input)
	}))
	return err
}

func (c *Client) ClearNotifications(ctx context.Context) error {
	_, err := Do(ctx, c, Notify(CmdNotificationsClear, nil))
	return err
}
