package tui

import (
	"time"

	"github.com/dm/komari-go/internal/report"
)

// OverviewMsg delivers a refreshed set of reports to the TUI.
type OverviewMsg struct {
	Overview  report.Overview
	FetchedAt time.Time
}

// TickMsg triggers the next scheduled refresh.
type TickMsg time.Time
