package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/ratonica/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "ratonica",
		Usage:   "vintage fashion similarity search",
		Version: version.Version,
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "env",
						Usage:   "config environment (config/{env}.yaml)",
						Sources: cli.EnvVars("ENV"),
						Value:   "local",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "explicit config file path, overrides --env lookup",
					},
					&cli.StringFlag{
						Name:  "dotenv",
						Usage: "dotenv file loaded before the config",
						Value: ".env",
					},
				},
				Action: serveAction,
			},
			{
				Name:  "search",
				Usage: "run one search and print the result as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "type",
						Usage: "query type: text, url or image",
						Value: "text",
					},
					&cli.StringFlag{
						Name:     "content",
						Usage:    "search text, listing URL or image data URL",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "redis",
						Usage:   "redis:// URI; saves the search to that history store",
						Sources: cli.EnvVars("REDIS_URI"),
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "save the result to history and print its id",
					},
					&cli.BoolFlag{
						Name:  "fast",
						Usage: "skip the simulated analyze and search latency",
					},
					&cli.IntFlag{
						Name:  "seed",
						Usage: "random seed for ids and scores (0 = time-based)",
					},
				},
				Action: searchAction,
			},
			{
				Name:  "version",
				Usage: "print build information",
				Action: func(_ context.Context, cmd *cli.Command) error {
					_, err := fmt.Fprintln(cmd.Root().Writer, version.String())
					return err
				},
			},
		},
	}
}
