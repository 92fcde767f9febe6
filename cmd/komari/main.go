package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dm/komari-go/internal/client"
	"github.com/dm/komari-go/internal/report"
	"github.com/dm/komari-go/internal/tui"
)

// parsePanelURI validates a Komari panel URI and returns it without a
// trailing slash. Returns an error if the URI is invalid or has an
// unsupported scheme.
func parsePanelURI(panelURI string) (string, error) {
	u, err := url.Parse(panelURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %q: %w", panelURI, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q (must be http or https)", u.Scheme)
	}

	if u.Hostname() == "" {
		return "", fmt.Errorf("invalid URI %q: host is required", panelURI)
	}

	return u.String(), nil
}

// reportFunc maps a report name to its entry point.
var reportFuncs = map[string]func(context.Context, *client.Client) (string, error){
	"nodes":    report.Nodes,
	"status":   report.Realtime,
	"settings": report.Settings,
	"version":  report.Version,
}

func main() {
	var (
		token    = flag.String("token", "", "API token (sent as bearer header and session cookie)")
		watch    = flag.Bool("watch", false, "interactive watch mode, refreshed periodically")
		interval = flag.Duration("interval", 30*time.Second, "watch mode refresh interval (e.g. 10s, 1m)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: komari [--token t] [--watch] [--interval 30s] <panel-uri> [nodes|status|settings|version]\n\n")
		fmt.Fprintf(os.Stderr, "examples:\n")
		fmt.Fprintf(os.Stderr, "  komari https://panel.example.com\n")
		fmt.Fprintf(os.Stderr, "  komari --token s3cret https://panel.example.com status\n")
		fmt.Fprintf(os.Stderr, "  komari --watch --interval 10s https://panel.example.com\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *interval <= 0 {
		fmt.Fprintln(os.Stderr, "error: --interval must be positive")
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: panel URI is required")
		flag.Usage()
		os.Exit(1)
	}
	if len(args) > 2 {
		fmt.Fprintf(os.Stderr, "error: unexpected argument %q\n", args[2])
		flag.Usage()
		os.Exit(1)
	}

	baseURL, err := parsePanelURI(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	c, err := client.New(client.Config{
		BaseURL: baseURL,
		Token:   *token,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *watch {
		if _, err := tea.NewProgram(tui.NewApp(c, *interval), tea.WithAltScreen()).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	name := "nodes"
	if len(args) == 2 {
		name = args[1]
	}
	run, ok := reportFuncs[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "error: unknown report %q\n", name)
		flag.Usage()
		os.Exit(1)
	}

	text, err := run(context.Background(), c)
	if err != nil {
		// The error message is the report for the caller's chat surface.
		fmt.Println(err.Error())
		return
	}
	fmt.Println(text)
}
