package model

// MetricNotAvailable is the sentinel for a numeric display field with
// no reading. Formatters render it as a placeholder.
const MetricNotAvailable = -1

// NodeRecord holds display-ready data for one node, merged from a
// realtime sample and the static node list. String fields are empty
// when unknown; numeric fields carry MetricNotAvailable.
type NodeRecord struct {
	ID   string
	UUID string

	Name     string
	Region   string
	OS       string
	CPUName  string
	CPUCores int

	CPUUsage float64 // percent

	MemTotalGB float64
	MemUsedGB  float64
	MemPercent float64

	DiskTotalGB float64
	DiskUsedGB  float64
	DiskPercent float64

	// Pre-formatted network strings, e.g. "1.0 MB/s" / "2.35 GB".
	NetUpSpeed   string
	NetDownSpeed string
	TrafficUp    string
	TrafficDown  string

	Uptime string // e.g. "3天 4小时"

	Load1  float64
	Load5  float64
	Load15 float64
}

// NewNodeRecord returns a record with every metric marked unavailable.
func NewNodeRecord() NodeRecord {
	return NodeRecord{
		CPUUsage:    MetricNotAvailable,
		MemTotalGB:  MetricNotAvailable,
		MemUsedGB:   MetricNotAvailable,
		MemPercent:  MetricNotAvailable,
		DiskTotalGB: MetricNotAvailable,
		DiskUsedGB:  MetricNotAvailable,
		DiskPercent: MetricNotAvailable,
		Load1:       MetricNotAvailable,
		Load5:       MetricNotAvailable,
		Load15:      MetricNotAvailable,
	}
}
