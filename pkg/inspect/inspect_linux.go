//go:build linux

package inspect

import (
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ryanelliottsmith/netperf/pkg/types"
	"github.com/vishvananda/netlink"
)

func inspect() ([]types.InterfaceInfo, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, err
	}

	signals := wirelessSignals()

	var out []types.InterfaceInfo
	for _, link := range links {
		attrs := link.Attrs()
		if attrs.Flags&net.FlagLoopback != 0 || attrs.Flags&net.FlagUp == 0 {
			continue
		}

		info := types.InterfaceInfo{
			Name:       attrs.Name,
			MACAddress: attrs.HardwareAddr.String(),
			MTU:        attrs.MTU,
		}

		addrs, err := netlink.AddrList(link, netlink.FAMILY_ALL)
		if err == nil {
			for _, a := range addrs {
				if a.IPNet != nil {
					info.Addresses = append(info.Addresses, a.IPNet.String())
				}
			}
		}
		if len(info.Addresses) == 0 {
			continue
		}

		if isWireless(attrs.Name) {
			info.Kind = types.InterfaceWireless
			info.SSID = currentSSID(attrs.Name)
			if level, ok := signals[attrs.Name]; ok {
				signal := level
				info.SignalDBM = &signal
			}
		} else {
			info.Kind = classifyKind(attrs.Name)
		}

		info.SpeedMbps = linkSpeed(attrs.Name)
		out = append(out, info)
	}
	return out, nil
}

// isWireless checks for the sysfs wireless directory, which only
// wireless PHYs expose.
func isWireless(name string) bool {
	_, err := os.Stat(filepath.Join("/sys/class/net", name, "wireless"))
	return err == nil
}

// linkSpeed reads the negotiated speed from sysfs. Virtual and wireless
// links report -1 or nothing at all; both come back as 0 (unknown).
func linkSpeed(name string) int {
	raw, err := readSysfs(filepath.Join("/sys/class/net", name, "speed"))
	if err != nil {
		return 0
	}
	speed, err := strconv.Atoi(raw)
	if err != nil || speed < 0 {
		return 0
	}
	return speed
}

func wirelessSignals() map[string]int {
	data, err := os.ReadFile("/proc/net/wireless")
	if err != nil {
		return nil
	}
	return parseProcWireless(string(data))
}

func currentSSID(name string) string {
	out, err := exec.Command("iwgetid", "-r", name).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
