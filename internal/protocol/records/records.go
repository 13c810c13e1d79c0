// Package records holds the structured values the service returns and the
// decoders that build them from primitive reads. Every decoder reads fields
// in wire order and returns a zero value on any error; partially read
// records are never handed back.
package records

import "fmt"

// NetworkEntry is one Wi-Fi scan result.
type NetworkEntry struct {
	SSID         string
	BSSID        string
	FrequencyMHz uint32
	Standard     uint32
	SignalLevel  uint32
}

// CurrentConnection is the active Wi-Fi association.
type CurrentConnection struct {
	SSID      string
	BSSID     string
	NetworkID int32
	LinkSpeed uint32
	RSSI      int32
}

// ConfiguredNetwork is a saved Wi-Fi configuration.
type ConfiguredNetwork struct {
	NetworkID int32
	SSID      string
}

type VolumeKind uint32

const (
	VolumeInternal VolumeKind = 0
	VolumeSDCard   VolumeKind = 1
	VolumeUSB      VolumeKind = 2
)

func (k VolumeKind) String() string {
	switch k {
	case VolumeInternal:
		return "internal"
	case VolumeSDCard:
		return "sdcard"
	case VolumeUSB:
		return "usb"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(k))
	}
}

type StorageVolume struct {
	Kind  VolumeKind
	Label string
	Path  string
}

// AppRecord is one installed package. The wire record carries more fields
// than callers usually need; they are kept in Details.
type AppRecord struct {
	Package     string
	Label       string
	VersionName string
	VersionCode uint64
	CanLaunch   bool
	Icon        []byte
	Details     AppDetails
}

type AppDetails struct {
	InstalledAt uint32
	UpdatedAt   uint32
	LastUsedAt  uint32
	Installer   string
	CPUArch     string
	TargetSDK   uint32
	MinSDK      uint32
	Flags       uint32
	HasSplits   bool
	APKSize     uint64
	DataSize    uint64
	CacheSize   uint64
}

type NotificationAction struct {
	Title         string
	RequiresInput bool
}

type NotificationEntry struct {
	Key            string
	Package        string
	Title          string
	Text           string
	PostedAtMillis uint64
	Clearable      bool
	Actions        []NotificationAction
}

type APKFile struct {
	Path string
	Size uint64
}

type APKLocation struct {
	Base   APKFile
	Splits []APKFile
}

type Camera struct {
	ID         string
	LensFacing uint32
	Width      uint32
	Height     uint32
}

type MemoryUsage struct {
	PSSKB          uint64
	PrivateDirtyKB uint64
	SharedDirtyKB  uint64
}

type GPUUsage struct {
	Usage   float32
	FreqKHz uint32
}

type BatteryInfo struct {
	CurrentMA   int32
	VoltageMV   uint32
	Level       uint32
	Charging    bool
	TimestampMS uint64
}

type Traffic struct {
	RxBytes uint64
	TxBytes uint64
}

type NetworkUsage struct {
	Total  Traffic
	WiFi   Traffic
	Mobile Traffic
}

type PackageTraffic struct {
	UID uint32
	Traffic
}

type MonitorStatus struct {
	Running  bool
	Keywords []string
}

type ClipboardContent struct {
	MIMEType string
	Data     []byte
}
