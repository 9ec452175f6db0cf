// Package main provides the CLI entry point for captionbox.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %s", err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:            "captionbox",
		Usage:           l10n.T("Overlay text captions onto images"),
		Description:     l10n.T("captionbox fits text into rectangles on an image, choosing the largest font size that fits, and serves this over HTTP."),
		Version:         version,
		HideHelpCommand: true,
		Commands: []*cli.Command{
			serveCommand(),
			renderCommand(),
			fontsCommand(),
			versionCommand(),
		},
	}
}

// commonFlags are accepted by every command that loads configuration.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      "config",
			Aliases:   []string{"c"},
			Usage:     l10n.T("YAML configuration file"),
			EnvVars:   []string{"CAPTIONBOX_CONFIG"},
			TakesFile: true,
			Category:  l10n.T("Configuration"),
		},
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			EnvVars:  []string{"CAPTIONBOX_LOG_LEVEL"},
			Category: l10n.T("Logging"),
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"q"},
			Usage:    l10n.T("Suppress all log output"),
			Category: l10n.T("Logging"),
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:        "serve",
		Usage:       l10n.T("Start the HTTP server"),
		Description: l10n.T("Serve POST / for caption requests and GET /healthz for health checks."),
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:     "addr",
				Aliases:  []string{"a"},
				Usage:    l10n.T("Listen address (default: :8000)"),
				EnvVars:  []string{"CAPTIONBOX_ADDR"},
				Category: l10n.T("Server"),
			},
			&cli.BoolFlag{
				Name:     "allow-private",
				Usage:    l10n.T("Allow fetching images from private and loopback addresses"),
				Category: l10n.T("Server"),
			},
		),
		Action: runServe,
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:        "render",
		Usage:       l10n.T("Caption a single image locally"),
		Description: l10n.T("Run the caption pipeline on an image file or URL and write the result to a file."),
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:      "image",
				Aliases:   []string{"i"},
				Usage:     l10n.T("Source image file or URL (required)"),
				Required:  true,
				TakesFile: true,
				Category:  l10n.T("Input and Output"),
			},
			&cli.StringFlag{
				Name:      "boxes",
				Aliases:   []string{"b"},
				Usage:     l10n.T("Caption boxes as a JSON or YAML file (required)"),
				Required:  true,
				TakesFile: true,
				Category:  l10n.T("Input and Output"),
			},
			&cli.StringFlag{
				Name:      "output",
				Aliases:   []string{"o"},
				Usage:     l10n.T("Output file path (required)"),
				Required:  true,
				TakesFile: true,
				Category:  l10n.T("Input and Output"),
			},
			&cli.StringFlag{
				Name:     "format",
				Aliases:  []string{"f"},
				Usage:    l10n.T("Output format (png, jpeg, b64/png, b64/jpeg); inferred from the output extension by default"),
				Category: l10n.T("Input and Output"),
			},
			&cli.BoolFlag{
				Name:     "allow-private",
				Usage:    l10n.T("Allow fetching images from private and loopback addresses"),
				Value:    true,
				Category: l10n.T("Input and Output"),
			},
			&cli.StringFlag{
				Name:      "summary",
				Aliases:   []string{"s"},
				Usage:     l10n.T("Write a Markdown summary of the run to this path"),
				TakesFile: true,
				Category:  l10n.T("Input and Output"),
			},
			&cli.BoolFlag{
				Name:     "debug",
				Aliases:  []string{"d"},
				Usage:    l10n.T("Save intermediate images and layouts"),
				Category: l10n.T("Debug"),
			},
			&cli.StringFlag{
				Name:      "debug-dir",
				Usage:     l10n.T("Directory for debug output"),
				TakesFile: true,
				Category:  l10n.T("Debug"),
			},
		),
		Action: runRender,
	}
}

func fontsCommand() *cli.Command {
	return &cli.Command{
		Name:   "fonts",
		Usage:  l10n.T("List font selectors and where they were loaded from"),
		Flags:  commonFlags(),
		Action: runFonts,
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, l10n.F("captionbox version %s", version))
			return nil
		},
	}
}
