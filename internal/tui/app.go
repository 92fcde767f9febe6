package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dm/komari-go/internal/client"
	"github.com/dm/komari-go/internal/report"
)

// section identifies one of the four report tabs.
type section int

const (
	sectionNodes section = iota
	sectionRealtime
	sectionSettings
	sectionVersion
	sectionCount
)

var sectionTitles = [sectionCount]string{"节点", "实时", "设置", "版本"}

// fetchBudget bounds one full overview refresh; the realtime socket
// alone may take its whole 3s window.
const fetchBudget = 15 * time.Second

// App is the root Bubble Tea model for watch mode.
type App struct {
	client   *client.Client
	interval time.Duration

	overview    report.Overview
	active      section
	fetching    bool // true while a fetchCmd goroutine is in-flight
	lastUpdated time.Time

	spin spinner.Model

	width, height int
	showHelp      bool
}

// NewApp creates a watch-mode App with the given panel client and
// refresh interval.
func NewApp(c *client.Client, interval time.Duration) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &App{
		client:   c,
		interval: interval,
		spin:     sp,
		fetching: true, // Init() always issues an immediate fetchCmd
	}
}

// Init implements tea.Model. Starts the first refresh immediately.
func (app *App) Init() tea.Cmd {
	return tea.Batch(fetchCmd(app.client), app.spin.Tick)
}

// Update implements tea.Model — the single state-mutation entry point.
func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		app.width = msg.Width
		app.height = msg.Height

	case OverviewMsg:
		app.fetching = false
		app.overview = msg.Overview
		app.lastUpdated = msg.FetchedAt
		return app, tickCmd(app.interval)

	case TickMsg:
		if app.fetching {
			return app, nil
		}
		app.fetching = true
		return app, fetchCmd(app.client)

	case spinner.TickMsg:
		var cmd tea.Cmd
		app.spin, cmd = app.spin.Update(msg)
		return app, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return app, tea.Quit
		case key.Matches(msg, keys.Refresh):
			if app.fetching {
				return app, nil
			}
			app.fetching = true
			return app, fetchCmd(app.client)
		case key.Matches(msg, keys.Tab):
			app.active = (app.active + 1) % sectionCount
		case key.Matches(msg, keys.ShiftTab):
			app.active = (app.active + sectionCount - 1) % sectionCount
		case key.Matches(msg, keys.Help):
			app.showHelp = !app.showHelp
		}
	}

	return app, nil
}

// View implements tea.Model.
func (app *App) View() string {
	var parts []string
	parts = append(parts, app.renderHeader())
	parts = append(parts, app.renderTabs())
	parts = append(parts, app.activeText())
	parts = append(parts, app.renderFooter())
	return strings.Join(parts, "\n")
}

func (app *App) renderHeader() string {
	width := app.width
	if width <= 0 {
		width = 80
	}

	left := app.client.BaseURL()
	right := ""
	if app.fetching {
		right = app.spin.View() + " 刷新中"
	} else if !app.lastUpdated.IsZero() {
		right = "更新于 " + app.lastUpdated.Format("15:04:05")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return StyleHeader.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func (app *App) renderTabs() string {
	var tabs []string
	for s := section(0); s < sectionCount; s++ {
		label := sectionTitles[s]
		if s == app.active {
			tabs = append(tabs, StyleTab.Render("["+label+"]"))
		} else {
			tabs = append(tabs, StyleTabInactive.Render(" "+label+" "))
		}
	}
	return strings.Join(tabs, " ")
}

func (app *App) activeText() string {
	var text string
	switch app.active {
	case sectionNodes:
		text = app.overview.Nodes
	case sectionRealtime:
		text = app.overview.Realtime
	case sectionSettings:
		text = app.overview.Settings
	case sectionVersion:
		text = app.overview.Version
	}
	if text == "" {
		text = StyleDim.Render("加载中...")
	}
	return text
}

func (app *App) renderFooter() string {
	width := app.width
	if width <= 0 {
		width = 80
	}
	text := "? for help"
	if app.showHelp {
		text = helpText
	}
	return StyleDim.Width(width).Render(text)
}

// fetchCmd refreshes all reports off the update loop.
func fetchCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchBudget)
		defer cancel()
		return OverviewMsg{
			Overview:  report.FetchOverview(ctx, c),
			FetchedAt: time.Now(),
		}
	}
}

// tickCmd schedules the next refresh.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
