package inspect

import (
	"testing"

	"github.com/ryanelliottsmith/netperf/pkg/types"
)

func TestClassifyKind(t *testing.T) {
	cases := []struct {
		name string
		want types.InterfaceKind
	}{
		{"eth0", types.InterfaceWired},
		{"eno1", types.InterfaceWired},
		{"enp3s0", types.InterfaceWired},
		{"en0", types.InterfaceWired},
		{"wlan0", types.InterfaceWireless},
		{"wlp2s0", types.InterfaceWireless},
		{"wifi0", types.InterfaceWireless},
		{"tun0", types.InterfaceUnknown},
		{"docker0", types.InterfaceUnknown},
	}

	for _, c := range cases {
		if got := classifyKind(c.name); got != c.want {
			t.Errorf("classifyKind(%q) = %s, want %s", c.name, got, c.want)
		}
	}
}

func TestParseProcWireless(t *testing.T) {
	content := `Inter-| sta-|   Quality        |   Discarded packets               | Missed | WE
 face | tus | link level noise |  nwid  crypt   frag  retry   misc | beacon | 22
 wlan0: 0000   54.  -56.  -256        0      0      0      0      0        0
 wlp2s0: 0000   70.  -40.  -256        0      0      0      0      0        0
`

	signals := parseProcWireless(content)

	if len(signals) != 2 {
		t.Fatalf("Expected 2 interfaces, got %d", len(signals))
	}
	if signals["wlan0"] != -56 {
		t.Errorf("Expected wlan0 level -56, got %d", signals["wlan0"])
	}
	if signals["wlp2s0"] != -40 {
		t.Errorf("Expected wlp2s0 level -40, got %d", signals["wlp2s0"])
	}
}

func TestParseProcWireless_Empty(t *testing.T) {
	content := `Inter-| sta-|   Quality        |   Discarded packets               | Missed | WE
 face | tus | link level noise |  nwid  crypt   frag  retry   misc | beacon | 22
`
	if signals := parseProcWireless(content); len(signals) != 0 {
		t.Errorf("Expected no signals, got %v", signals)
	}
}

func TestParseAirportOutput(t *testing.T) {
	output := `     agrCtlRSSI: -55
     agrExtRSSI: 0
    agrCtlNoise: -94
          state: running
        op mode: station
     lastTxRate: 867
        maxRate: 1300
           SSID: HomeNet
            BSSID: aa:bb:cc:dd:ee:ff
        channel: 44,80
`

	info := parseAirportOutput(output)

	if info.SSID != "HomeNet" {
		t.Errorf("Expected SSID HomeNet, got %q", info.SSID)
	}
	if info.RSSI == nil || *info.RSSI != -55 {
		t.Errorf("Expected RSSI -55, got %v", info.RSSI)
	}
	if info.TxRateMbps != 867 {
		t.Errorf("Expected tx rate 867, got %d", info.TxRateMbps)
	}
}

func TestParseAirportOutput_NotAssociated(t *testing.T) {
	info := parseAirportOutput("AirPort: Off\n")
	if info.SSID != "" {
		t.Errorf("Expected empty SSID, got %q", info.SSID)
	}
	if info.RSSI != nil {
		t.Errorf("Expected nil RSSI, got %v", info.RSSI)
	}
}

func TestParseWifiDevice(t *testing.T) {
	// Wired en0 comes first; the Wi-Fi port must still win.
	output := `Hardware Port: Ethernet
Device: en0
Ethernet Address: aa:bb:cc:00:11:22

Hardware Port: Wi-Fi
Device: en1
Ethernet Address: aa:bb:cc:00:11:33

Hardware Port: Thunderbolt Bridge
Device: bridge0
Ethernet Address: aa:bb:cc:00:11:44
`
	if got := parseWifiDevice(output); got != "en1" {
		t.Errorf("Expected en1 as the Wi-Fi device, got %q", got)
	}
}

func TestParseWifiDevice_NoWifiPort(t *testing.T) {
	output := `Hardware Port: Ethernet
Device: en0
Ethernet Address: aa:bb:cc:00:11:22
`
	if got := parseWifiDevice(output); got != "" {
		t.Errorf("Expected empty device without a Wi-Fi port, got %q", got)
	}
}

func TestParseMediaSpeed(t *testing.T) {
	output := `Current: 1000baseT <full-duplex>
Active: 1000baseT <full-duplex>
`
	if got := parseMediaSpeed(output); got != 1000 {
		t.Errorf("Expected 1000 Mbps, got %d", got)
	}

	if got := parseMediaSpeed("Current: autoselect\nActive: autoselect\n"); got != 0 {
		t.Errorf("Expected 0 for autoselect, got %d", got)
	}
}
