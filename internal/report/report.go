// Package report builds the user-facing text reports. Every entry
// point returns either display-ready text or an error whose message is
// itself display-ready; nothing here panics on missing data.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dm/komari-go/internal/client"
	"github.com/dm/komari-go/internal/engine"
	"github.com/dm/komari-go/internal/format"
	"github.com/dm/komari-go/internal/model"
)

const (
	placeholderDash    = "-"
	placeholderUnknown = "未知"
	noDataLine         = "暂无数据"
)

// Nodes fetches the static node list and renders it.
func Nodes(ctx context.Context, c *client.Client) (string, error) {
	nodes, err := c.GetNodes(ctx)
	if err != nil {
		return "", displayError(err)
	}
	if len(nodes) == 0 {
		return "", client.ErrNoNodes
	}
	return RenderNodeList(nodes, time.Now()), nil
}

// Realtime collects one realtime snapshot and renders it. The static
// node list is fetched first so realtime samples can be enriched; that
// fetch is best effort and its failure is deliberately ignored.
func Realtime(ctx context.Context, c *client.Client) (string, error) {
	static, _ := c.GetNodes(ctx)

	payload, err := c.CollectRealtime(ctx)
	if err != nil {
		return "", displayError(err)
	}
	return RenderRealtime(engine.Normalize(payload, static)), nil
}

// Settings fetches and renders the public site settings.
func Settings(ctx context.Context, c *client.Client) (string, error) {
	settings, err := c.GetPublicSettings(ctx)
	if err != nil {
		return "", displayError(err)
	}
	return RenderSettings(settings), nil
}

// Version fetches and renders the panel version.
func Version(ctx context.Context, c *client.Client) (string, error) {
	version, err := c.GetVersion(ctx)
	if err != nil {
		return "", displayError(err)
	}
	return RenderVersion(version), nil
}

// RenderNodeList renders the static node list, one block per node. The
// online icon follows the 600s freshness rule evaluated against now.
func RenderNodeList(nodes []client.NodeInfo, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "服务器列表(共 %d 台):\n", len(nodes))

	for _, n := range nodes {
		icon := "🔴"
		if engine.IsOnline(n.UpdatedAt, now) {
			icon = "🟢"
		}
		fmt.Fprintf(&b, "%s [%s] %s\n", icon, orUnknown(n.Region), orDash(n.Name))
		fmt.Fprintf(&b, "  系统: %s\n", orDash(n.OS))
		fmt.Fprintf(&b, "  CPU: %s (%d核)\n", orDash(n.CPUName), n.CPUCores)
		fmt.Fprintf(&b, "  内存: %s\n", format.GBString(float64(n.MemTotal)))
		fmt.Fprintf(&b, "  硬盘: %s\n", format.GBString(float64(n.DiskTotal)))
		fmt.Fprintf(&b, "  更新: %s\n", orDash(engine.DisplayTime(n.UpdatedAt)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderRealtime renders normalized realtime records. Absent fields
// drop their lines; a snapshot with no usable nodes renders a single
// placeholder line under the header.
func RenderRealtime(records []model.NodeRecord) string {
	var b strings.Builder
	b.WriteString("实时状态:\n")

	lines := 0
	for _, r := range records {
		fmt.Fprintf(&b, "[%s] %s\n", orUnknown(r.Region), orDash(r.Name))
		lines++
		if r.OS != "" {
			fmt.Fprintf(&b, "  系统: %s\n", r.OS)
		}
		if r.CPUUsage != model.MetricNotAvailable {
			fmt.Fprintf(&b, "  CPU: %s\n", format.Percent(r.CPUUsage))
		}
		b.WriteString(capacityLine("内存", r.MemUsedGB, r.MemTotalGB, r.MemPercent))
		b.WriteString(capacityLine("硬盘", r.DiskUsedGB, r.DiskTotalGB, r.DiskPercent))
		if r.NetUpSpeed != "" || r.NetDownSpeed != "" {
			fmt.Fprintf(&b, "  网络: ↑ %s ↓ %s\n", orDash(r.NetUpSpeed), orDash(r.NetDownSpeed))
		}
		if r.TrafficUp != "" || r.TrafficDown != "" {
			fmt.Fprintf(&b, "  流量: ↑ %s ↓ %s\n", orDash(r.TrafficUp), orDash(r.TrafficDown))
		}
		if r.Uptime != "" {
			fmt.Fprintf(&b, "  在线时长: %s\n", r.Uptime)
		}
		if r.Load1 != model.MetricNotAvailable {
			fmt.Fprintf(&b, "  负载: %.2f/%.2f/%.2f\n", r.Load1, zeroIfAbsent(r.Load5), zeroIfAbsent(r.Load15))
		}
	}
	if lines == 0 {
		b.WriteString(noDataLine + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// capacityLine renders one used/total GB line, or just the total when
// only capacity is known. Nothing is rendered when both are absent.
func capacityLine(label string, usedGB, totalGB, percent float64) string {
	switch {
	case usedGB != model.MetricNotAvailable && totalGB != model.MetricNotAvailable:
		return fmt.Sprintf("  %s: %.2f GB / %.2f GB (%.2f%%)\n", label, usedGB, totalGB, percent)
	case totalGB != model.MetricNotAvailable:
		return fmt.Sprintf("  %s: %.2f GB\n", label, totalGB)
	}
	return ""
}

// RenderSettings renders the three public settings lines.
func RenderSettings(s *client.PublicSettings) string {
	return fmt.Sprintf("站点名称: %s\n站点描述: %s\n主题: %s",
		orUnknown(s.Sitename), orUnknown(s.Description), orUnknown(s.Theme))
}

// RenderVersion renders the single version line.
func RenderVersion(v *client.VersionInfo) string {
	return fmt.Sprintf("Komari %s (%s)", orDash(v.Version), orDash(v.Hash))
}

// displayError maps internal errors onto the user-facing message set.
// Known kinds already carry display text; anything else is a transport
// failure and keeps its underlying message.
func displayError(err error) error {
	var statusErr *client.StatusError
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrNoBaseURL):
		return client.ErrNoBaseURL
	case errors.Is(err, client.ErrRealtimeTimeout):
		return client.ErrRealtimeTimeout
	case errors.As(err, &statusErr):
		return statusErr
	case errors.As(err, &apiErr):
		return apiErr
	}
	return fmt.Errorf("请求出错:%v", err)
}

func orDash(s string) string {
	if s == "" {
		return placeholderDash
	}
	return s
}

func orUnknown(s string) string {
	if s == "" {
		return placeholderUnknown
	}
	return s
}

func zeroIfAbsent(v float64) float64 {
	if v == model.MetricNotAvailable {
		return 0
	}
	return v
}
