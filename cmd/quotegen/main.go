package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/diewo77/go-quotations/internal/config"
	ierr "github.com/diewo77/go-quotations/internal/errors"
	"github.com/diewo77/go-quotations/internal/logger"
)

var (
	configFlag   = flag.String("config", "", "Config file (yaml, json or toml)")
	formFlag     = flag.String("form", "", "Form file to pre-fill the quotation with")
	generateFlag = flag.Bool("generate", false, "Generate the quotation and exit instead of starting a session")
	noOpenFlag   = flag.Bool("no-open", false, "Do not open the generated PDF")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(2)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(2)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(cfg, log, Options{FormFile: *formFlag, NoOpen: *noOpenFlag})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", ierr.DisplayMessage(err))
		os.Exit(1)
	}

	if *generateFlag {
		err = app.GenerateOnce(ctx, os.Stdout)
	} else {
		err = app.Session(os.Stdout).Run(ctx, os.Stdin)
	}
	if err != nil && ctx.Err() == nil {
		log.Errorw("quotegen failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s\n", ierr.DisplayMessage(err))
		os.Exit(1)
	}
}
