package client

import "fmt"

// Command is the u32 code that opens every request.
type Command uint32

const (
	CmdCreateVirtualDisplay Command = 0
	CmdInitialize           Command = 1

	CmdAppList      Command = 10
	CmdAPKPath      Command = 11
	CmdCameraStatus Command = 12
	CmdCameraList   Command = 13
	CmdLaunchApp    Command = 14

	CmdStorageList Command = 20

	CmdWiFiState       Command = 50
	CmdWiFiSetEnabled  Command = 51
	CmdWiFiScan        Command = 52
	CmdWiFiInfo        Command = 53
	CmdWiFiConfigured  Command = 54
	CmdWiFiConnect     Command = 55
	CmdWiFiAdd         Command = 56
	CmdWiFiSetAutoJoin Command = 57
	CmdWiFiRemove      Command = 58

	CmdClipboardGet Command = 70
	CmdClipboardSet Command = 71

	CmdNotifications      Command = 80
	CmdNotificationCancel Command = 81
	CmdNotificationOpen   Command = 82
	CmdNotificationsClear Command = 83

	CmdWallpaper  Command = 90
	CmdScreenshot Command = 120

	CmdClickText      Command = 110
	CmdClickExactText Command = 111
	CmdClickAt        Command = 112
	CmdClickableTexts Command = 113
	CmdMonitorStart   Command = 114
	CmdMonitorStop    Command = 115
	CmdMonitorStatus  Command = 116
	CmdPressBack      Command = 117
	CmdPressHome      Command = 118
	CmdHasText        Command = 119

	CmdCPUUsage       Command = 200
	CmdCPUCoreUsage   Command = 201
	CmdCPUFreq        Command = 202
	CmdGPUUsage       Command = 203
	CmdFPS            Command = 204
	CmdMemoryUsage    Command = 205
	CmdCPUTemperature Command = 206
	CmdThreadCPUUsage Command = 207
	CmdProfilingStart Command = 208
	CmdProfilingStop  Command = 209

	CmdBatteryInfo      Command = 220
	CmdBatteryLevel     Command = 221
	CmdBatterySupported Command = 222

	CmdNetworkUsage        Command = 230
	CmdNetworkUsageTotal   Command = 231
	CmdNetworkUsagePackage Command = 232
)

var commandNames = map[Command]string{
	CmdCreateVirtualDisplay: "create_virtual_display",
	CmdInitialize:           "initialize",
	CmdAppList:              "app_list",
	CmdAPKPath:              "apk_path",
	CmdCameraStatus:         "camera_status",
	CmdCameraList:           "camera_list",
	CmdLaunchApp:            "launch_app",
	CmdStorageList:          "storage_list",
	CmdWiFiState:            "wifi_state",
	CmdWiFiSetEnabled:       "set_wifi_enabled",
	CmdWiFiScan:             "wifi_scan",
	CmdWiFiInfo:             "wifi_info",
	CmdWiFiConfigured:       "wifi_configured",
	CmdWiFiConnect:          "wifi_connect",
	CmdWiFiAdd:              "wifi_add",
	CmdWiFiSetAutoJoin:      "wifi_set_auto_join",
	CmdWiFiRemove:           "wifi_remove",
	CmdClipboardGet:         "clipboard_get",
	CmdClipboardSet:         "clipboard_set",
	CmdNotifications:        "notifications",
	CmdNotificationCancel:   "notification_cancel",
	CmdNotificationOpen:     "notification_open",
	CmdNotificationsClear:   "notifications_clear",
	CmdWallpaper:            "wallpaper",
	CmdScreenshot:           "screenshot",
	CmdClickText:            "click_text",
	CmdClickExactText:       "click_exact_text",
	CmdClickAt:              "click_at",
	CmdClickableTexts:       "clickable_texts",
	CmdMonitorStart:         "monitor_start",
	CmdMonitorStop:          "monitor_stop",
	CmdMonitorStatus:        "monitor_status",
	CmdPressBack:            "press_back",
	CmdPressHome:            "press_home",
	CmdHasText:              "has_text",
	CmdCPUUsage:             "cpu_usage",
	CmdCPUCoreUsage:         "cpu_core_usage",
	CmdCPUFreq:              "cpu_freq",
	CmdGPUUsage:             "gpu_usage",
	CmdFPS:                  "fps",
	CmdMemoryUsage:          "memory_usage",
	CmdCPUTemperature:       "cpu_temperature",
	CmdThreadCPUUsage:       "thread_cpu_usage",
	CmdProfilingStart:       "profiling_start",
	CmdProfilingStop:        "profiling_stop",
	CmdBatteryInfo:          "battery_info",
	CmdBatteryLevel:         "battery_level",
	CmdBatterySupported:     "battery_supported",
	CmdNetworkUsage:         "network_usage",
	CmdNetworkUsageTotal:    "network_usage_total",
	CmdNetworkUsagePackage:  "network_usage_package",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("cmd_%d", uint32(c))
}

// Known reports whether c is in the command table.
func (c Command) Known() bool {
	_, ok := commandNames[c]
	return ok
}
