package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"recipe-finder/internal/fetch"
	"recipe-finder/internal/pantry"
	"recipe-finder/internal/session"
	"recipe-finder/internal/shared/config"
	"recipe-finder/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()

	fs := flag.NewFlagSet("pantry", flag.ExitOnError)
	baseURL := fs.String("api", cfg.RecipeAPIURL, "Recipe API base URL")
	origin := fs.String("origin", cfg.RecipeAPIOrigin, "Origin header sent with generate requests (optional)")
	timeout := fs.Duration("timeout", cfg.RecipeAPITimeout, "Request timeout (0 = none)")
	verbose := fs.Bool("v", false, "Log requests to stderr")
	_ = fs.Parse(os.Args[1:])

	// The console owns stdout.
	if *verbose {
		telemetry.SetOutput(os.Stderr)
		telemetry.SetLevel(cfg.LogLevel)
	} else {
		telemetry.SetOutput(io.Discard)
	}

	client, err := fetch.NewClient(*baseURL, fetch.Options{
		Origin:  *origin,
		Timeout: *timeout,
	})
	if err != nil {
		exitErr(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sess := session.New(client)
	defer sess.Close()

	if err := pantry.New(sess, os.Stdin, os.Stdout).Run(ctx); err != nil {
		exitErr(fmt.Sprintf("read input: %v", err))
	}
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
