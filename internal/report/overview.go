package report

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dm/komari-go/internal/client"
)

// Overview holds the rendered text of every report section. A section
// that failed carries its error message instead, so the overview is
// always fully populated.
type Overview struct {
	Nodes    string
	Realtime string
	Settings string
	Version  string
}

// FetchOverview refreshes all four reports concurrently. Used by watch
// mode, where one slow section must not starve the others; each core
// call is still a single attempt.
func FetchOverview(ctx context.Context, c *client.Client) Overview {
	var o Overview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		o.Nodes = textOrError(Nodes(gctx, c))
		return nil
	})
	g.Go(func() error {
		o.Realtime = textOrError(Realtime(gctx, c))
		return nil
	})
	g.Go(func() error {
		o.Settings = textOrError(Settings(gctx, c))
		return nil
	})
	g.Go(func() error {
		o.Version = textOrError(Version(gctx, c))
		return nil
	})
	_ = g.Wait()

	return o
}

// textOrError collapses an entry point's result into its display text:
// the report on success, the error message otherwise.
func textOrError(text string, err error) string {
	if err != nil {
		return err.Error()
	}
	return text
}
