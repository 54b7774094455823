package asset

// Asset represents a single entry of the monitored asset inventory
type Asset struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	Criticality     string `json:"criticality"`
	IPAddress       string `json:"ip_address,omitempty"`
	OperatingSystem string `json:"operating_system,omitempty"`
	Location        string `json:"location,omitempty"`
	Status          string `json:"status"`
	LastScanned     int64  `json:"last_scanned,omitempty"`
	CreatedAt       int64  `json:"created_at"`
}

// Asset types
const (
	TypeServer        = "server"
	TypeWorkstation   = "workstation"
	TypeNetworkDevice = "network_device"
	TypeSoftware      = "software"
)

// Asset statuses
const (
	StatusActive         = "active"
	StatusInactive       = "inactive"
	StatusDecommissioned = "decommissioned"
)
