package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"gridder/common"
	"gridder/expand"
	"gridder/misc"
	"gridder/state"
)

const expandHelp = `%s
SOURCE:
    style sheets to expand, one of:
        "[path/]file.css"                - single style sheet
        "[path/]directory"               - every .css and .pcss file below directory
        "[path/]archive.zip[/path/in]"   - style sheets inside zip archive, optionally under path
        "-"                              - style sheet read from STDIN

DESTINATION:
    single style sheet: output file or existing directory, STDOUT if absent
    directory or archive: output directory, if absent results are put next
    to sources (next to archive) with extension from output.extension
`

const dumpconfigHelp = `%s
DESTINATION:
    file to write configuration to, STDOUT if absent

Without --default prints configuration in effect: embedded defaults with
values from configuration file on top.
`

func newApp() *cli.Command {
	return &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "expands grid shorthand (grid, span, align, gutter, reset, bleed) in CSS style sheets",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML, or TOML when named *.toml)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log everything and pack logs, configuration and style sheets into report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "expand",
				Usage:        "Expands grid shorthand in style sheets",
				OnUsageError: usageErrorHandler,
				Action:       expand.Run,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "columns", Usage: "number of grid `COLUMNS`, overrides configuration"},
					&cli.StringFlag{Name: "mode", Usage: "default layout `MODE`, one of: " + strings.Join(common.ModeNames(), ", ")},
					&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "replace existing output files"},
				},
				ArgsUsage:          "SOURCE [DESTINATION]",
				CustomHelpTemplate: fmt.Sprintf(expandHelp, cli.CommandHelpTemplate),
			},
			{
				Name:         "dumpconfig",
				Usage:        "Dumps default or active configuration as YAML",
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output embedded default configuration"},
				},
				ArgsUsage:          "[DESTINATION]",
				CustomHelpTemplate: fmt.Sprintf(dumpconfigHelp, cli.CommandHelpTemplate),
			},
		},
	}
}

func main() {
	// interrupt stops processing between style sheets
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	err := newApp().Run(ctx, os.Args)
	stop()
	if err != nil {
		if !errWasHandled {
			fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
		}
		os.Exit(1)
	}
}
