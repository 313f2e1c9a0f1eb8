package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/edgebet/edgebet-cli/internal/client/live"
)

// Live streams edge updates until interrupted:
//
//	live [league...]
func (a *App) Live(ctx context.Context, args []string) error {
	streamCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	stream := live.NewStream(a.config.WSURL, args, a.session, a.log)
	go stream.Run(streamCtx)

	fmt.Fprintln(a.out, "Streaming live edges (Ctrl+C to stop)...")
	for u := range stream.Updates() {
		renderUpdate(a.out, u.Edge)
	}

	fmt.Fprintln(a.out, "Live stream stopped.")
	return nil
}
