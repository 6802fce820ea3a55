//go:build darwin

package inspect

import (
	"os/exec"
	"strings"

	"github.com/ryanelliottsmith/netperf/pkg/types"
)

const airportPath = "/System/Library/PrivateFrameworks/Apple80211.framework/Versions/Current/Resources/airport"

func inspect() ([]types.InterfaceInfo, error) {
	out, err := baseInterfaces()
	if err != nil {
		return nil, err
	}

	wifi := currentWifi()
	wifiName := wifiDeviceName()

	for i := range out {
		info := &out[i]

		if isWifiInterface(info.Name, wifiName, wifi) {
			info.Kind = types.InterfaceWireless
			if wifi.SSID != "" {
				info.SSID = wifi.SSID
				info.SignalDBM = wifi.RSSI
				if wifi.TxRateMbps > 0 {
					info.SpeedMbps = wifi.TxRateMbps
				}
			}
			// Only one associated network; don't attach it twice.
			wifi = airportInfo{}
			continue
		}

		if strings.HasPrefix(info.Name, "en") && info.SpeedMbps == 0 {
			info.SpeedMbps = mediaSpeed(info.Name)
		}
	}
	return out, nil
}

// isWifiInterface prefers the hardware-port mapping; the name heuristic
// only applies when networksetup gave no answer, so a wired en0 on a
// multi-port machine is never mislabeled.
func isWifiInterface(name, wifiName string, wifi airportInfo) bool {
	if wifiName != "" {
		return name == wifiName
	}
	return wifi.SSID != "" && strings.HasPrefix(name, "en")
}

func currentWifi() airportInfo {
	out, err := exec.Command(airportPath, "-I").Output()
	if err != nil {
		return airportInfo{}
	}
	return parseAirportOutput(string(out))
}

// wifiDeviceName asks networksetup which device backs the Wi-Fi
// hardware port.
func wifiDeviceName() string {
	out, err := exec.Command("networksetup", "-listallhardwareports").Output()
	if err != nil {
		return ""
	}
	return parseWifiDevice(string(out))
}

func mediaSpeed(name string) int {
	out, err := exec.Command("networksetup", "-getmedia", name).Output()
	if err != nil {
		return 0
	}
	return parseMediaSpeed(string(out))
}
