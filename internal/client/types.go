package client

// VersionInfo represents the response from /api/version.
type VersionInfo struct {
	Version string `json:"version"`
	Hash    string `json:"hash"`
}

// PublicSettings represents the public site settings from /api/public.
// The endpoint returns an open-ended mapping; only the displayed keys
// are decoded.
type PublicSettings struct {
	Sitename    string `json:"sitename"`
	Description string `json:"description"`
	Theme       string `json:"theme"`
}

// NodeInfo represents one monitored host's static metadata from
// /api/nodes.
type NodeInfo struct {
	ID        string `json:"id"`
	UUID      string `json:"uuid"`
	Name      string `json:"name"`
	Region    string `json:"region"`
	OS        string `json:"os"`
	CPUName   string `json:"cpu_name"`
	CPUCores  int    `json:"cpu_cores"`
	MemTotal  int64  `json:"mem_total"`
	DiskTotal int64  `json:"disk_total"`
	// UpdatedAt is the last report time in ISO 8601, possibly without an
	// explicit UTC offset.
	UpdatedAt string `json:"updated_at"`

	// Billing metadata, carried through for completeness.
	Price        float64 `json:"price"`
	BillingCycle int     `json:"billing_cycle"`
	ExpiredAt    string  `json:"expired_at"`
}
