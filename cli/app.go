// Package cli contains all business logic needed by the markerviz CLI command.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	flagConfig         = "config"
	flagDebug          = "debug"
	flagMarkers        = "markers"
	flagUpdatedScaling = "updated-scaling"
	flagLayer          = "layer"
	flagLoadModels     = "load-models"
	flagStrict         = "strict"
	flagScaling        = "scaling"
	flagFormat         = "format"

	formatJSON  = "json"
	formatTable = "table"
)

func newApp() *cli.App {
	return &cli.App{
		Name:            "markerviz",
		Usage:           "turn pose markers into draw batches",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "classify",
				Usage:     "classify a JSON array of markers and print the outline, model and arrow batches",
				UsageText: "markerviz classify [--markers FILE] [--updated-scaling] [--layer N] [--format json|table]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    flagMarkers,
						Aliases: []string{"m"},
						Usage:   "read markers from `FILE` instead of stdin",
					},
					&cli.BoolFlag{
						Name:  flagUpdatedScaling,
						Usage: "size outline buffers with the updated scaling preset, overriding the config",
					},
					&cli.IntFlag{
						Name:  flagLayer,
						Usage: "layer index copied onto every batch",
					},
					&cli.BoolFlag{
						Name:  flagLoadModels,
						Usage: "load the vehicle meshes referenced by the batches from the configured model source",
					},
					&cli.BoolFlag{
						Name:  flagStrict,
						Usage: "fail instead of skipping markers with an invalid orientation",
					},
					&cli.StringFlag{
						Name:  flagFormat,
						Value: formatJSON,
						Usage: "output format, json or table",
					},
				},
				Action: ClassifyAction,
			},
			{
				Name:      "outline",
				Usage:     "print the vehicle outline, optionally scaled into an outline buffer",
				UsageText: "markerviz outline [--scaling original|updated]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagScaling,
						Usage: "scaling preset to apply; the baseline outline is printed when unset",
					},
				},
				Action: OutlineAction,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of per-topic marker settings",
				Action: SchemaAction,
			},
		},
	}
}

// NewApp returns a new app with the CLI function, usage string, flags, and subcommands.
func NewApp(out, errOut io.Writer) *cli.App {
	app := newApp()
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
