package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/nvnieuwk/biofmt/biofmt_api"
	cli "github.com/urfave/cli/v2"
)

func main() {
	validLevels := []string{"off", "basic", "strict"}
	settingsFlags := []cli.Flag{
		&cli.StringFlag{
			Name:     "config",
			Aliases:  []string{"c"},
			Usage:    "Settings file (YAML) with the validation and lsp settings",
			Category: "Optional",
		},
		&cli.StringFlag{
			Name:     "level",
			Aliases:  []string{"l"},
			Usage:    "The validation level. Must be one of: " + strings.Join(validLevels, ", "),
			Category: "Optional",
			Action: func(c *cli.Context, input string) error {
				if slices.Contains(validLevels, input) {
					return nil
				}
				return cli.Exit("Invalid level '"+input+"', must be one of: "+strings.Join(validLevels, ", "), 2)
			},
		},
		&cli.IntFlag{
			Name:     "max-diagnostics",
			Aliases:  []string{"m"},
			Usage:    "The maximum amount of diagnostics reported per file",
			Category: "Optional",
		},
		&cli.IntFlag{
			Name:     "viewport",
			Usage:    "The amount of lines validated per file, counted from the end of the header for VCF files",
			Category: "Optional",
		},
		&cli.StringFlag{
			Name:     "format",
			Aliases:  []string{"f"},
			Usage:    "The format of the input files, derived from the file extension by default",
			Category: "Optional",
		},
	}

	app := &cli.App{
		Name:            "biofmt",
		Usage:           "Diagnostics for tab-delimited genomics files",
		HideHelpCommand: true,
		Version:         "0.1.0dev",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:     "verbose",
				Aliases:  []string{"v"},
				Usage:    "Log debug messages",
				Category: "Optional",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Validate files and report their diagnostics",
				ArgsUsage: "FILE...",
				Flags: append(slices.Clone(settingsFlags), &cli.BoolFlag{
					Name:     "json",
					Usage:    "Write the diagnostics as JSON",
					Category: "Optional",
				}),
				Action: func(Cctx *cli.Context) error {
					settings, err := biofmt_api.SettingsFromFlags(Cctx)
					if err != nil {
						return cli.Exit(err.Error(), 2)
					}
					return biofmt_api.ExecuteValidate(Cctx, settings, biofmt_api.NewLogger(Cctx.Bool("verbose")))
				},
			},
			{
				Name:      "watch",
				Usage:     "Validate files again every time they are written",
				ArgsUsage: "FILE...",
				Flags:     settingsFlags,
				Action: func(Cctx *cli.Context) error {
					settings, err := biofmt_api.SettingsFromFlags(Cctx)
					if err != nil {
						return cli.Exit(err.Error(), 2)
					}
					return biofmt_api.ExecuteWatch(Cctx, settings, biofmt_api.NewLogger(Cctx.Bool("verbose")))
				},
			},
			{
				Name:      "header",
				Usage:     "Write the parsed header of a VCF file as YAML",
				ArgsUsage: "FILE",
				Action: func(Cctx *cli.Context) error {
					return biofmt_api.ExecuteHeader(Cctx, biofmt_api.NewLogger(Cctx.Bool("verbose")))
				},
			},
			{
				Name:      "decode",
				Usage:     "Decode the FORMAT values of every sample on a VCF data line",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "line",
						Aliases:  []string{"n"},
						Usage:    "The 1-based line number of the data line",
						Required: true,
						Category: "Required",
					},
					&cli.BoolFlag{
						Name:     "summary",
						Aliases:  []string{"s"},
						Usage:    "Write a labeled summary of every value",
						Category: "Optional",
					},
					&cli.StringFlag{
						Name:     "sample",
						Usage:    "Only decode the sample with this name",
						Category: "Optional",
					},
				},
				Action: func(Cctx *cli.Context) error {
					return biofmt_api.ExecuteDecode(Cctx, biofmt_api.NewLogger(Cctx.Bool("verbose")))
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.New(os.Stderr, "", 0).Fatal(err)
	}
}
