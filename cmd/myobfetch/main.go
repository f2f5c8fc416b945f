package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"3tcapital/myob_attachments/internal/adapters/invoice/myob"
	"3tcapital/myob_attachments/internal/adapters/storage/local"
	"3tcapital/myob_attachments/internal/application/fetcher"
	"3tcapital/myob_attachments/internal/core/invoice"
	"3tcapital/myob_attachments/internal/infrastructure/cli"
	"3tcapital/myob_attachments/internal/infrastructure/config"
	ctxutil "3tcapital/myob_attachments/internal/infrastructure/context"
	infrahttp "3tcapital/myob_attachments/internal/infrastructure/http"
	"3tcapital/myob_attachments/internal/infrastructure/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "myobfetch: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	log := logger.New(cfg.App.Name, cfg.Log.Level, cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One correlation ID per run, carried on every outbound request.
	ctx = ctxutil.WithRunID(ctx, ctxutil.NewRunID())

	apiClient := infrahttp.NewTracedClient(&infrahttp.TracedClientConfig{
		Timeout:    cfg.MYOB.APITimeout,
		LogHeaders: cfg.Trace.LogHeaders,
	}, log, "myob")

	// Attachment content can be large; pre-signed fetches get their own
	// client with a longer timeout.
	downloadClient := infrahttp.NewTracedClient(&infrahttp.TracedClientConfig{
		Timeout:    cfg.MYOB.DownloadTimeout,
		LogHeaders: cfg.Trace.LogHeaders,
	}, log, "attachment_storage")

	outputDirDefault := cfg.Output.Dir

	root := cli.NewRootCommand(cli.Dependencies{
		NewFetcher: func(credentials invoice.Credentials, outputDir string) cli.Fetcher {
			if outputDir == "" {
				outputDir = outputDirDefault
			}
			provider := myob.NewClient(cfg.MYOB.BaseURL, credentials, apiClient, downloadClient, log)
			store := local.NewStore(outputDir, log)
			return fetcher.NewService(provider, store, log)
		},
		Output: os.Stdout,
	})
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	return root.ExecuteContext(ctx)
}
