// Package inspect captures a snapshot of the host's active network
// interfaces. Platform specifics live behind build tags; any property
// that cannot be determined is left absent, never treated as an error.
package inspect

import (
	"net"
	"os"
	"strings"

	"github.com/ryanelliottsmith/netperf/pkg/types"
)

// Inspect enumerates active (up, non-loopback, addressed) interfaces
// with whatever link properties the platform exposes.
func Inspect() ([]types.InterfaceInfo, error) {
	return inspect()
}

// baseInterfaces builds the snapshot from the standard library alone,
// for platforms without a richer source.
func baseInterfaces() ([]types.InterfaceInfo, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var out []types.InterfaceInfo
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}
		info := types.InterfaceInfo{
			Name:       iface.Name,
			Kind:       classifyKind(iface.Name),
			MACAddress: iface.HardwareAddr.String(),
			MTU:        iface.MTU,
		}
		addrs, err := iface.Addrs()
		if err == nil {
			for _, a := range addrs {
				info.Addresses = append(info.Addresses, a.String())
			}
		}
		if len(info.Addresses) == 0 {
			continue
		}
		out = append(out, info)
	}
	return out, nil
}

// readSysfs returns the trimmed contents of a sysfs/procfs file.
func readSysfs(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
