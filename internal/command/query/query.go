package query

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/bornholm/feedsearch/internal/command/common"
	"github.com/bornholm/feedsearch/pkg/ui"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.yaml.in/yaml/v3"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func Search() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search once and print the results",
		ArgsUsage: "[term]",
		Flags: append(common.SearchFlags(),
			&cli.StringFlag{
				Name:    "format",
				Value:   formatText,
				Aliases: []string{"f"},
				EnvVars: []string{"FEEDSEARCH_FORMAT"},
				Usage:   "Output format (text or json)",
			},
			&cli.BoolFlag{
				Name:    "save",
				Aliases: []string{"s"},
				EnvVars: []string{"FEEDSEARCH_SAVE"},
				Usage:   "Save the results as a markdown document",
			},
			&cli.StringFlag{
				Name:      "output",
				Value:     "",
				Aliases:   []string{"o"},
				EnvVars:   []string{"FEEDSEARCH_OUTPUT"},
				TakesFile: true,
				Usage:     "Filename of the saved document, default to slug of the term",
			},
		),
		Action: func(cliCtx *cli.Context) error {
			conf, err := common.Config(cliCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			format := cliCtx.String("format")
			if format != formatText && format != formatJSON {
				return errors.Errorf("unknown format '%s'", format)
			}

			client, err := common.NewClient(conf)
			if err != nil {
				return errors.Wrap(err, "could not create search client")
			}

			ctx := cliCtx.Context

			controller := ui.NewController(client, ui.WithSeed(conf.Seed))

			var task *ui.Task
			term := conf.Seed

			if cliCtx.Args().Present() {
				term = cliCtx.Args().First()
				bar := ui.NewSearchBar(conf.Seed, func(ctx context.Context, query string) {
					task = controller.Search(ctx, query)
				})
				bar.SetText(term)
				bar.Submit(ctx)
			} else {
				task = controller.Mount(ctx)
			}

			outcome, err := task.Wait(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			state := controller.State()

			slog.DebugContext(ctx, "search done", slog.String("term", term), slog.String("outcome", outcome.Kind.String()))

			if err := render(cliCtx.App.Writer, format, state); err != nil {
				return errors.WithStack(err)
			}

			if !cliCtx.Bool("save") || state.View() != ui.ViewResults {
				return nil
			}

			output := cliCtx.String("output")
			if output == "" {
				output = slug.Make(term) + ".md"
			}

			document, err := Document(term, time.Now(), state)
			if err != nil {
				return errors.Wrap(err, "could not build document")
			}

			if err := os.WriteFile(output, document, 0644); err != nil {
				return errors.Wrapf(err, "failed to write document")
			}

			slog.InfoContext(ctx, "results written", slog.String("output", output))

			return nil
		},
	}
}

func render(w io.Writer, format string, state ui.State) error {
	if format == formatJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(state); err != nil {
			return errors.WithStack(err)
		}

		return nil
	}

	return ui.RenderText(w, state)
}

type documentMetadata struct {
	Term       string    `yaml:"term"`
	SearchedAt time.Time `yaml:"searchedAt"`
	Results    int       `yaml:"results"`
}

// Document returns the results of a search as markdown with a yaml front
// matter.
func Document(term string, searchedAt time.Time, state ui.State) ([]byte, error) {
	var buff bytes.Buffer

	if _, err := io.WriteString(&buff, "---\n"); err != nil {
		return nil, errors.WithStack(err)
	}

	encoder := yaml.NewEncoder(&buff)
	metadata := documentMetadata{
		Term:       term,
		SearchedAt: searchedAt,
		Results:    len(state.Results),
	}
	if err := encoder.Encode(metadata); err != nil {
		return nil, errors.Wrapf(err, "failed write document metadata")
	}

	if err := encoder.Close(); err != nil {
		return nil, errors.WithStack(err)
	}

	if _, err := io.WriteString(&buff, "---\n\n"); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := ui.RenderResultsText(&buff, state.Results); err != nil {
		return nil, errors.WithStack(err)
	}

	return buff.Bytes(), nil
}
