package records

import "github.com/danmuck/pandalink/internal/protocol"

// DecodeFunc reads one record from r.
type DecodeFunc[T any] func(r *protocol.Reader) (T, error)

// DecodeList reads a u32 count followed by that many records. A zero count
// yields an empty, non-nil slice.
func DecodeList[T any](r *protocol.Reader, decode DecodeFunc[T]) ([]T, error) {
	n, err := r.ReadCount()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, min(n, 256))
	for i := 0; i < n; i++ {
		v, err := decode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func DecodeString(r *protocol.Reader) (string, error) { return r.ReadString() }

func DecodeU32(r *protocol.Reader) (uint32, error) { return r.ReadU32() }

func DecodeF32(r *protocol.Reader) (float32, error) { return r.ReadF32() }

func DecodeNetworkEntry(r *protocol.Reader) (NetworkEntry, error) {
	var e NetworkEntry
	var err error
	if e.SSID, err = r.ReadString(); err != nil {
		return NetworkEntry{}, err
	}
	if e.BSSID, err = r.ReadString(); err != nil {
		return NetworkEntry{}, err
	}
	if e.FrequencyMHz, err = r.ReadU32(); err != nil {
		return NetworkEntry{}, err
	}
	if e.Standard, err = r.ReadU32(); err != nil {
		return NetworkEntry{}, err
	}
	if e.SignalLevel, err = r.ReadU32(); err != nil {
		return NetworkEntry{}, err
	}
	return e, nil
}

func DecodeCurrentConnection(r *protocol.Reader) (CurrentConnection, error) {
	var c CurrentConnection
	var err error
	if c.SSID, err = r.ReadString(); err != nil {
		return CurrentConnection{}, err
	}
	if c.BSSID, err = r.ReadString(); err != nil {
		return CurrentConnection{}, err
	}
	if c.NetworkID, err = r.ReadI32(); err != nil {
		return CurrentConnection{}, err
	}
	if c.LinkSpeed, err = r.ReadU32(); err != nil {
		return CurrentConnection{}, err
	}
	if c.RSSI, err = r.ReadI32(); err != nil {
		return CurrentConnection{}, err
	}
	return c, nil
}

func DecodeConfiguredNetwork(r *protocol.Reader) (ConfiguredNetwork, error) {
	id, err := r.ReadI32()
	if err != nil {
		return ConfiguredNetwork{}, err
	}
	ssid, err := r.ReadString()
	if err != nil {
		return ConfiguredNetwork{}, err
	}
	return ConfiguredNetwork{NetworkID: id, SSID: ssid}, nil
}

func DecodeStorageVolume(r *protocol.Reader) (StorageVolume, error) {
	kind, err := r.ReadU32()
	if err != nil {
		return StorageVolume{}, err
	}
	label, err := r.ReadString()
	if err != nil {
		return StorageVolume{}, err
	}
	path, err := r.ReadString()
	if err != nil {
		return StorageVolume{}, err
	}
	return StorageVolume{Kind: VolumeKind(kind), Label: label, Path: path}, nil
}

// DecodeAppRecord reads the full per-package record of the app list reply,
// icon blob last.
func DecodeAppRecord(r *protocol.Reader) (AppRecord, error) {
	var a AppRecord
	d := &a.Details
	steps := []func() error{
		func() (err error) { a.Package, err = r.ReadString(); return },
		func() (err error) { a.VersionName, err = r.ReadString(); return },
		func() (err error) { a.VersionCode, err = r.ReadU64(); return },
		func() (err error) { a.Label, err = r.ReadString(); return },
		func() (err error) { d.InstalledAt, err = r.ReadU32(); return },
		func() (err error) { d.UpdatedAt, err = r.ReadU32(); return },
		func() (err error) { d.LastUsedAt, err = r.ReadU32(); return },
		func() (err error) { d.Installer, err = r.ReadString(); return },
		func() (err error) { d.CPUArch, err = r.ReadString(); return },
		func() (err error) { d.TargetSDK, err = r.ReadU32(); return },
		func() (err error) { d.MinSDK, err = r.ReadU32(); return },
		func() (err error) { d.Flags, err = r.ReadU32(); return },
		func() (err error) { d.HasSplits, err = r.ReadBool(); return },
		func() (err error) { a.CanLaunch, err = r.ReadBool(); return },
		func() (err error) { d.APKSize, err = r.ReadU64(); return },
		func() (err error) { d.DataSize, err = r.ReadU64(); return },
		func() (err error) { d.CacheSize, err = r.ReadU64(); return },
		func() (err error) { a.Icon, err = r.ReadBytes(); return },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return AppRecord{}, err
		}
	}
	return a, nil
}

func DecodeNotificationAction(r *protocol.Reader) (NotificationAction, error) {
	title, err := r.ReadString()
	if err != nil {
		return NotificationAction{}, err
	}
	needsInput, err := r.ReadBool()
	if err != nil {
		return NotificationAction{}, err
	}
	return NotificationAction{Title: title, RequiresInput: needsInput}, nil
}

// DecodeNotificationEntry reads one notification including its nested
// action list.
func DecodeNotificationEntry(r *protocol.Reader) (NotificationEntry, error) {
	var n NotificationEntry
	var err error
	if n.Key, err = r.ReadString(); err != nil {
		return NotificationEntry{}, err
	}
	if n.Package, err = r.ReadString(); err != nil {
		return NotificationEntry{}, err
	}
	if n.Title, err = r.ReadString(); err != nil {
		return NotificationEntry{}, err
	}
	if n.Text, err = r.ReadString(); err != nil {
		return NotificationEntry{}, err
	}
	if n.PostedAtMillis, err = r.ReadU64(); err != nil {
		return NotificationEntry{}, err
	}
	if n.Clearable, err = r.ReadBool(); err != nil {
		return NotificationEntry{}, err
	}
	if n.Actions, err = DecodeList(r, DecodeNotificationAction); err != nil {
		return NotificationEntry{}, err
	}
	return n, nil
}

func DecodeAPKFile(r *protocol.Reader) (APKFile, error) {
	path, err := r.ReadString()
	if err != nil {
		return APKFile{}, err
	}
	size, err := r.ReadU64()
	if err != nil {
		return APKFile{}, err
	}
	return APKFile{Path: path, Size: size}, nil
}

func DecodeAPKLocation(r *protocol.Reader) (APKLocation, error) {
	base, err := DecodeAPKFile(r)
	if err != nil {
		return APKLocation{}, err
	}
	splits, err := DecodeList(r, DecodeAPKFile)
	if err != nil {
		return APKLocation{}, err
	}
	return APKLocation{Base: base, Splits: splits}, nil
}

func DecodeCamera(r *protocol.Reader) (Camera, error) {
	var c Camera
	var err error
	if c.ID, err = r.ReadString(); err != nil {
		return Camera{}, err
	}
	if c.LensFacing, err = r.ReadU32(); err != nil {
		return Camera{}, err
	}
	if c.Width, err = r.ReadU32(); err != nil {
		return Camera{}, err
	}
	if c.Height, err = r.ReadU32(); err != nil {
		return Camera{}, err
	}
	return c, nil
}

func DecodeMemoryUsage(r *protocol.Reader) (MemoryUsage, error) {
	var m MemoryUsage
	var err error
	if m.PSSKB, err = r.ReadU64(); err != nil {
		return MemoryUsage{}, err
	}
	if m.PrivateDirtyKB, err = r.ReadU64(); err != nil {
		return MemoryUsage{}, err
	}
	if m.SharedDirtyKB, err = r.ReadU64(); err != nil {
		return MemoryUsage{}, err
	}
	return m, nil
}

func DecodeGPUUsage(r *protocol.Reader) (GPUUsage, error) {
	usage, err := r.ReadF32()
	if err != nil {
		return GPUUsage{}, err
	}
	freq, err := r.ReadU32()
	if err != nil {
		return GPUUsage{}, err
	}
	return GPUUsage{Usage: usage, FreqKHz: freq}, nil
}

func DecodeBatteryInfo(r *protocol.Reader) (BatteryInfo, error) {
	var b BatteryInfo
	var err error
	if b.CurrentMA, err = r.ReadI32(); err != nil {
		return BatteryInfo{}, err
	}
	if b.VoltageMV, err = r.ReadU32(); err != nil {
		return BatteryInfo{}, err
	}
	if b.Level, err = r.ReadU32(); err != nil {
		return BatteryInfo{}, err
	}
	if b.Charging, err = r.ReadBool(); err != nil {
		return BatteryInfo{}, err
	}
	if b.TimestampMS, err = r.ReadU64(); err != nil {
		return BatteryInfo{}, err
	}
	return b, nil
}

func DecodeTraffic(r *protocol.Reader) (Traffic, error) {
	rx, err := r.ReadU64()
	if err != nil {
		return Traffic{}, err
	}
	tx, err := r.ReadU64()
	if err != nil {
		return Traffic{}, err
	}
	return Traffic{RxBytes: rx, TxBytes: tx}, nil
}

func DecodeNetworkUsage(r *protocol.Reader) (NetworkUsage, error) {
	var u NetworkUsage
	var err error
	if u.Total, err = DecodeTraffic(r); err != nil {
		return NetworkUsage{}, err
	}
	if u.WiFi, err = DecodeTraffic(r); err != nil {
		return NetworkUsage{}, err
	}
	if u.Mobile, err = DecodeTraffic(r); err != nil {
		return NetworkUsage{}, err
	}
	return u, nil
}

func DecodePackageTraffic(r *protocol.Reader) (PackageTraffic, error) {
	uid, err := r.ReadU32()
	if err != nil {
		return PackageTraffic{}, err
	}
	t, err := DecodeTraffic(r)
	if err != nil {
		return PackageTraffic{}, err
	}
	return PackageTraffic{UID: uid, Traffic: t}, nil
}

func DecodeMonitorStatus(r *protocol.Reader) (MonitorStatus, error) {
	running, err := r.ReadBool()
	if err != nil {
		return MonitorStatus{}, err
	}
	keywords, err := DecodeList(r, DecodeString)
	if err != nil {
		return MonitorStatus{}, err
	}
	return MonitorStatus{Running: running, Keywords: keywords}, nil
}

// DecodeClipboard reads the clipboard reply. Its leading i32 is both the
// mime string length and a flag: -1 means empty, anything lower is an error
// code followed by a message.
func DecodeClipboard(r *protocol.Reader) (*ClipboardContent, error) {
	flag, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	if flag == -1 {
		return nil, nil
	}
	if flag < -1 {
		return nil, r.ReadRemoteError(flag)
	}
	mime, err := r.ReadStringBody(uint32(flag))
	if err != nil {
		return nil, err
	}
	data, err := r.ReadBytes()
	if err != nil {
		return nil, err
	}
	return &ClipboardContent{MIMEType: mime, Data: data}, nil
}
