package client

import (
	"context"

	"github.com/danmuck/pandalink/internal/protocol"
	"github.com/danmuck/pandalink/internal/protocol/imagestream"
	"github.com/danmuck/pandalink/internal/protocol/records"
)

// App list filter bits.
const (
	AppsSystem        uint32 = 1
	AppsThirdParty    uint32 = 2
	AppsNonLaunchable uint32 = 4
)

// AppInventory is the app_list reply. DefaultIcon is sent once up front and
// stands in for apps whose own icon blob is empty.
type AppInventory struct {
	DefaultIcon []byte
	Apps        []records.AppRecord
}

func listOf[T any](decode records.DecodeFunc[T]) func(r *protocol.Reader) ([]T, error) {
	return func(r *protocol.Reader) ([]T, error) {
		return records.DecodeList(r, decode)
	}
}

func decodeAppInventory(r *protocol.Reader) (AppInventory, error) {
	icon, err := r.ReadBytes()
	if err != nil {
		return AppInventory{}, err
	}
	apps, err := records.DecodeList(r, records.DecodeAppRecord)
	if err != nil {
		return AppInventory{}, err
	}
	return AppInventory{DefaultIcon: icon, Apps: apps}, nil
}

func (c *Client) CreateVirtualDisplay(ctx context.Context) error {
	_, err := Do(ctx, c, Query(CmdCreateVirtualDisplay, readStatus))
	return err
}

// Initialize asks the service to warm its caches. There is no reply.
func (c *Client) Initialize(ctx context.Context) error {
	_, err := Do(ctx, c, Notify(CmdInitialize, nil))
	return err
}

func (c *Client) AppList(ctx context.Context, flags, iconSize uint32) (AppInventory, error) {
	return Do(ctx, c, Op[AppInventory]{
		Cmd: CmdAppList,
		Args: func(w *protocol.Writer) {
			w.WriteU32(flags)
			w.WriteU32(iconSize)
		},
		Reply: decodeAppInventory,
	})
}

func (c *Client) APKPath(ctx context.Context, pkg string) (records.APKLocation, error) {
	return Do(ctx, c, Op[records.APKLocation]{
		Cmd:   CmdAPKPath,
		Args:  func(w *protocol.Writer) { w.WriteString(pkg) },
		Reply: records.DecodeAPKLocation,
	})
}

func (c *Client) CameraStatus(ctx context.Context, cameraID uint32) (uint32, error) {
	return Do(ctx, c, Op[uint32]{
		Cmd:   CmdCameraStatus,
		Args:  func(w *protocol.Writer) { w.WriteU32(cameraID) },
		Reply: records.DecodeU32,
	})
}

func (c *Client) CameraList(ctx context.Context) ([]records.Camera, error) {
	return Do(ctx, c, Query(CmdCameraList, listOf(records.DecodeCamera)))
}

func (c *Client) LaunchApp(ctx context.Context, pkg string, displayID uint32) error {
	_, err := Do(ctx, c, Op[Empty]{
		Cmd: CmdLaunchApp,
		Args: func(w *protocol.Writer) {
			w.WriteString(pkg)
			w.WriteU32(displayID)
		},
		Reply: readStatus,
	})
	return err
}

func (c *Client) StorageList(ctx context.Context) ([]records.StorageVolume, error) {
	return Do(ctx, c, Query(CmdStorageList, listOf(records.DecodeStorageVolume)))
}

// Clipboard returns nil content when the clipboard is empty.
func (c *Client) Clipboard(ctx context.Context) (*records.ClipboardContent, error) {
	return Do(ctx, c, Query(CmdClipboardGet, records.DecodeClipboard))
}

func (c *Client) SetClipboard(ctx context.Context, mimeType string, data []byte) error {
	_, err := Do(ctx, c, Op[Empty]{
		Cmd: CmdClipboardSet,
		Args: func(w *protocol.Writer) {
			w.WriteString(mimeType)
			w.WriteBytes(data)
		},
		Reply: readStatus,
	})
	return err
}

func (c *Client) Screenshot(ctx context.Context) (imagestream.Image, error) {
	return Do(ctx, c, Query(CmdScreenshot, imagestream.Decode))
}

func (c *Client) Wallpaper(ctx context.Context) (imagestream.Image, error) {
	return Do(ctx, c, Query(CmdWallpaper, imagestream.Decode))
}
