// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/H0llyW00dzZ/x509-client/src/cli"
	"github.com/H0llyW00dzZ/x509-client/src/logger"
	verpkg "github.com/H0llyW00dzZ/x509-client/src/version"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

func main() {
	// Create CLI logger
	log := logger.NewCLILogger()

	// Set up signal handling using signal.NotifyContext for cleaner cancellation
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, log, func(ctx context.Context) error {
		return cli.Execute(ctx, version, log)
	}))
}

// run waits for execute to finish and maps the outcome to an exit code:
// 0 on success, 1 on failure and 130 when ctx is cancelled by a signal.
func run(ctx context.Context, log logger.Logger, execute func(context.Context) error) int {
	// Channel to signal completion
	done := make(chan error, 1)

	go func() {
		done <- execute(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Println("Operation cancelled by signal. Exiting...")
				return 130
			}
			log.Printf("Error: %v", err)
			return 1
		}
		return 0
	case <-ctx.Done():
		log.Println("Operation cancelled by signal. Exiting...")
		// Give the CLI a moment to clean up
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
		return 130 // Standard exit code for SIGINT
	}
}
