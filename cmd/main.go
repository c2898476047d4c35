package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/takak2166/sitedata/internal/config"
	"github.com/takak2166/sitedata/internal/errors"
	"github.com/takak2166/sitedata/internal/logger"
)

// CLI is the command line of sitedata. Connection settings come from the
// environment (see internal/config); flags only select what to fetch.
type CLI struct {
	EnvFile  []string `name:"env-file" help:"Dotenv files to load before reading the environment" default:".env"`
	LogLevel string   `name:"log-level" help:"Override LOG_LEVEL (debug, info, warn, error)"`

	Chapters ChaptersCmd `cmd:"" help:"List active chapters"`
	Pages    PagesCmd    `cmd:"" help:"List all pages"`
	Page     PageCmd     `cmd:"" help:"Show a single page"`
	Posts    PostsCmd    `cmd:"" help:"List all blog posts"`
	Post     PostCmd     `cmd:"" help:"Show a single blog post"`
	Tags     TagsCmd     `cmd:"" help:"List blog tags with usage counts"`
	JSON     JSONCmd     `cmd:"" name:"json" help:"Show the data of a named JSON blob"`
	Form     FormCmd     `cmd:"" help:"Bind a sign-up form against the current chapters"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("sitedata"),
		kong.Description("Fetch and normalize site content from the headless CMS."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(cli.EnvFile...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}

	// stdout is reserved for JSON results
	logger.SetOutput(os.Stderr)
	if err := logger.Init(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	app := NewApp(cfg, reg, os.Stdout)

	kctx.BindTo(ctx, (*context.Context)(nil))
	runErr := kctx.Run(app)

	if cfg.MetricsTextfile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsTextfile, reg); err != nil {
			logger.Error("Failed to write metrics", err, map[string]interface{}{
				"path": cfg.MetricsTextfile,
			})
		}
	}

	if runErr != nil {
		logger.Error("Command failed", runErr, map[string]interface{}{
			"command": kctx.Command(),
		})
		stop()
		if errors.IsNotFound(runErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
