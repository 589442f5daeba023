package main

import (
	"context"
	"log/slog"
	"pricewise-backend/lib/restyutil"
	"pricewise-backend/lib/serpapi"
	"pricewise-backend/lib/serviceutil"
	"pricewise-backend/lib/telemetry"
)

func InitTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	if verbose {
		slog.DebugContext(ctx, "verbose logging enabled")
	}

	err := telemetry.SetupFromEnv(ctx, "pricewise-server")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	go func() {
		<-ctx.Done()
		telemetry.Shutdown(context.Background())
	}()
	telemetry.InstrumentPerfStats(ctx)

	if !verbose {
		return
	}

	serpapi.SetRestyInstrumentOutput(
		restyutil.NewFilesystemOutput(".dev/resty/serpapi"),
	)
}
