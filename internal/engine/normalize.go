package engine

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dm/komari-go/internal/client"
	"github.com/dm/komari-go/internal/format"
	"github.com/dm/komari-go/internal/model"
)

const (
	// maxNodes caps how many nodes one realtime report covers.
	maxNodes = 10

	// onlineWindow is the freshness window for the online flag. A node
	// whose last report is exactly this old counts as offline.
	onlineWindow = 600 * time.Second

	// displayOffset shifts timestamps into the panel audience's zone.
	displayOffset = 8 * time.Hour

	displayTimeLayout = "2006-01-02 15:04:05"
)

// mergeFields are the static attributes backfilled into a realtime
// candidate when the candidate's own value is absent. A present
// candidate value is never overwritten.
var mergeFields = []string{
	"name", "region", "os", "cpu_name", "cpu_cores", "mem_total", "disk_total",
}

// Normalize reconciles one realtime payload with the static node list
// into at most 10 display-ready records.
//
// The payload is either an array of node objects, or an object with an
// "online" identifier array plus a "data" mapping. Individual elements
// may themselves be JSON-encoded strings; an element that fails to
// parse degrades to a placeholder record instead of aborting the rest.
func Normalize(payload any, static []client.NodeInfo) []model.NodeRecord {
	index := indexStatic(static)

	var records []model.NodeRecord
	for _, cand := range candidates(payload) {
		records = append(records, buildRecord(cand, index))
	}
	return records
}

// indexStatic maps both uuid and id to the static record so candidates
// can resolve by either key.
func indexStatic(static []client.NodeInfo) map[string]client.NodeInfo {
	index := make(map[string]client.NodeInfo, len(static)*2)
	for _, n := range static {
		if n.UUID != "" {
			index[n.UUID] = n
		}
		if n.ID != "" {
			index[n.ID] = n
		}
	}
	return index
}

// candidates extracts up to maxNodes node objects from a realtime
// payload of either supported shape. Unknown shapes yield nothing.
func candidates(payload any) []map[string]any {
	switch p := payload.(type) {
	case []any:
		var out []map[string]any
		for _, elem := range p {
			if len(out) == maxNodes {
				break
			}
			out = append(out, decodeCandidate(elem))
		}
		return out

	case map[string]any:
		online, _ := p["online"].([]any)
		data, _ := p["data"].(map[string]any)

		var out []map[string]any
		for _, elem := range online {
			if len(out) == maxNodes {
				break
			}
			id := asString(elem)
			entry, ok := data[id]
			if !ok {
				out = append(out, map[string]any{"uuid": id})
				continue
			}
			cand := decodeCandidate(entry)
			if asString(cand["uuid"]) == "" && asString(cand["id"]) == "" {
				cand["uuid"] = id
			}
			out = append(out, cand)
		}
		return out
	}
	return nil
}

// decodeCandidate turns one payload element into a node object. String
// elements are re-parsed as JSON; a parse failure leaves an empty
// object so the element renders with placeholders.
func decodeCandidate(elem any) map[string]any {
	switch v := elem.(type) {
	case map[string]any:
		return v
	case string:
		var m map[string]any
		if err := json.Unmarshal([]byte(v), &m); err != nil || m == nil {
			return map[string]any{}
		}
		return m
	}
	return map[string]any{}
}

// buildRecord merges static metadata into one candidate and derives the
// display fields. Each derivation is independent; a missing or mistyped
// source leaves the field unavailable.
func buildRecord(cand map[string]any, index map[string]client.NodeInfo) model.NodeRecord {
	if static, ok := lookupStatic(cand, index); ok {
		backfill(cand, staticFields(static))
	}

	rec := model.NewNodeRecord()
	rec.UUID = asString(cand["uuid"])
	rec.ID = asString(cand["id"])
	rec.Name = asString(cand["name"])
	rec.Region = asString(cand["region"])
	rec.OS = asString(cand["os"])
	rec.CPUName = asString(cand["cpu_name"])
	if cores, ok := asNumber(cand["cpu_cores"]); ok {
		rec.CPUCores = int(cores)
	}

	if cpu := subObject(cand, "cpu"); cpu != nil {
		if usage, ok := asNumber(cpu["usage"]); ok {
			rec.CPUUsage = usage
		}
	}

	deriveCapacity(cand, "ram", "mem_total", &rec.MemUsedGB, &rec.MemTotalGB, &rec.MemPercent)
	deriveCapacity(cand, "disk", "disk_total", &rec.DiskUsedGB, &rec.DiskTotalGB, &rec.DiskPercent)

	if net := subObject(cand, "network"); net != nil {
		if up, ok := asNumber(net["up"]); ok {
			rec.NetUpSpeed = format.Speed(up)
		}
		if down, ok := asNumber(net["down"]); ok {
			rec.NetDownSpeed = format.Speed(down)
		}
		if totalUp, ok := asNumber(net["totalUp"]); ok {
			rec.TrafficUp = format.Traffic(totalUp)
		}
		if totalDown, ok := asNumber(net["totalDown"]); ok {
			rec.TrafficDown = format.Traffic(totalDown)
		}
	}

	if uptime, ok := asNumber(cand["uptime"]); ok {
		rec.Uptime = format.Uptime(int64(uptime))
	}

	if load := subObject(cand, "load"); load != nil {
		if l1, ok := asNumber(load["load1"]); ok {
			rec.Load1 = l1
		}
		if l5, ok := asNumber(load["load5"]); ok {
			rec.Load5 = l5
		}
		if l15, ok := asNumber(load["load15"]); ok {
			rec.Load15 = l15
		}
	}

	return rec
}

// lookupStatic resolves a candidate's static record by uuid first, id
// second.
func lookupStatic(cand map[string]any, index map[string]client.NodeInfo) (client.NodeInfo, bool) {
	if uuid := asString(cand["uuid"]); uuid != "" {
		if n, ok := index[uuid]; ok {
			return n, true
		}
	}
	if id := asString(cand["id"]); id != "" {
		if n, ok := index[id]; ok {
			return n, true
		}
	}
	return client.NodeInfo{}, false
}

// staticFields exposes the backfillable attributes under their wire
// names.
func staticFields(n client.NodeInfo) map[string]any {
	return map[string]any{
		"name":       n.Name,
		"region":     n.Region,
		"os":         n.OS,
		"cpu_name":   n.CPUName,
		"cpu_cores":  n.CPUCores,
		"mem_total":  n.MemTotal,
		"disk_total": n.DiskTotal,
	}
}

// backfill copies static values into cand for every merge field whose
// candidate value is absent or falsy. Present values win.
func backfill(cand, static map[string]any) {
	for _, key := range mergeFields {
		if falsy(cand[key]) && !falsy(static[key]) {
			cand[key] = static[key]
		}
	}
}

// deriveCapacity fills the used/total/percent triple for ram or disk.
// With numeric used and total (total > 0) all three are set; otherwise
// a known static total still yields total-GB alone.
func deriveCapacity(cand map[string]any, key, staticKey string, usedGB, totalGB, percent *float64) {
	if obj := subObject(cand, key); obj != nil {
		used, uok := asNumber(obj["used"])
		total, tok := asNumber(obj["total"])
		if uok && tok && total > 0 {
			*usedGB = format.GB(used)
			*totalGB = format.GB(total)
			*percent = used / total * 100
			return
		}
	}
	if total, ok := asNumber(cand[staticKey]); ok && total > 0 {
		*totalGB = format.GB(total)
	}
}

// IsOnline reports whether a last-update timestamp is within the 600s
// freshness window of now. Absent or unparsable timestamps are offline.
func IsOnline(updatedAt string, now time.Time) bool {
	t, err := parseTimestamp(updatedAt)
	if err != nil {
		return false
	}
	return now.Sub(t) < onlineWindow
}

// DisplayTime renders a last-update timestamp shifted by the fixed +8h
// display offset. Unparsable input is returned raw with its separators
// normalized.
func DisplayTime(updatedAt string) string {
	t, err := parseTimestamp(updatedAt)
	if err != nil {
		return strings.NewReplacer("T", " ", "Z", "").Replace(updatedAt)
	}
	return t.UTC().Add(displayOffset).Format(displayTimeLayout)
}

// timestampLayouts covers upstream variants; offsets absent from the
// source are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", s)
}

// subObject returns cand[key] when it is a JSON object.
func subObject(cand map[string]any, key string) map[string]any {
	obj, _ := cand[key].(map[string]any)
	return obj
}

// asNumber coerces the numeric types that reach us from decoded JSON
// and from static backfill values.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// falsy mirrors the merge rule: nil, empty string, zero number and
// false all count as absent.
func falsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	}
	if n, ok := asNumber(v); ok {
		return n == 0
	}
	return false
}
