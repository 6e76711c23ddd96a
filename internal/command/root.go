package command

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/bornholm/feedsearch/internal/config"
	"github.com/bornholm/feedsearch/internal/logx"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Main(name string, version string, usage string, commands ...*cli.Command) {
	app := NewApp(name, version, usage, commands...)

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// NewApp returns the command line application. Logging is configured from
// the global flags before any command runs.
func NewApp(name string, version string, usage string, commands ...*cli.Command) *cli.App {
	app := &cli.App{
		Name:           name,
		Usage:          usage,
		Version:        version,
		Commands:       commands,
		Before:         setupLogging,
		ExitErrHandler: logError,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				EnvVars: []string{"FEEDSEARCH_DEBUG"},
				Usage:   "Print errors with their stack trace",
			},
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{"FEEDSEARCH_LOG_LEVEL"},
				Usage:   "Logging level (debug, info, warn or error)",
				Value:   "info",
			},
		},
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	return app
}

func setupLogging(ctx *cli.Context) error {
	level, err := config.ParseLogLevel(ctx.String("log-level"))
	if err != nil {
		return errors.WithStack(err)
	}

	handler := slog.NewTextHandler(ctx.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	})

	slog.SetDefault(slog.New(logx.ContextHandler{Handler: handler}))

	return nil
}

func logError(ctx *cli.Context, err error) {
	if err == nil {
		return
	}

	if ctx.Bool("debug") {
		slog.ErrorContext(ctx.Context, fmt.Sprintf("%+v", err))
		return
	}

	slog.ErrorContext(ctx.Context, err.Error())
}
