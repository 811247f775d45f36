package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/studytrack/internal/replay"
	"github.com/okian/studytrack/pkg/logger"
)

const defaultTimeout = 10 * time.Second

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		file    = flag.String("file", "", "JSON file with submissions")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help || *file == "" {
		replay.ShowHelp(os.Stdout)
		if !*help {
			os.Exit(2)
		}
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := replay.Run(ctx, &replay.Config{
		BaseURL: *baseURL,
		File:    *file,
		Timeout: *timeout,
	})
	if err != nil {
		os.Stderr.WriteString("Replay failed: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
	if summary.Failed > 0 {
		stop()
		os.Exit(1)
	}
}
