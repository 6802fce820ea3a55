package types

type InterfaceKind string

const (
	InterfaceWired    InterfaceKind = "wired"
	InterfaceWireless InterfaceKind = "wireless"
	InterfaceUnknown  InterfaceKind = "unknown"
)

// InterfaceInfo is an immutable snapshot of one active network
// interface, captured once at run start. Optional properties stay at
// their zero value (or nil) when the platform cannot report them.
type InterfaceInfo struct {
	Name       string        `json:"name"`
	Kind       InterfaceKind `json:"kind"`
	MACAddress string        `json:"mac_address,omitempty"`
	MTU        int           `json:"mtu,omitempty"`
	Addresses  []string      `json:"addresses,omitempty"`
	// SpeedMbps is the negotiated link speed; 0 means unknown.
	SpeedMbps int    `json:"speed_mbps,omitempty"`
	SSID      string `json:"ssid,omitempty"`
	// SignalDBM is nil when no signal reading is available, so an
	// absent reading is never confused with 0 dBm.
	SignalDBM *int `json:"signal_dbm,omitempty"`
}
