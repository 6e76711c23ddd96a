package common

import (
	"net/http"

	"github.com/bornholm/feedsearch/internal/config"
	"github.com/bornholm/feedsearch/pkg/search/api"
	"github.com/bornholm/feedsearch/pkg/ui"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// SearchFlags are the flags of every command talking to the search api.
func SearchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "api-url",
			Value:   api.DefaultEndpoint,
			Aliases: []string{"u"},
			EnvVars: []string{"FEEDSEARCH_API_URL"},
			Usage:   "The search api endpoint",
		},
		&cli.StringFlag{
			Name:    "seed",
			Value:   ui.DefaultSeed,
			EnvVars: []string{"FEEDSEARCH_SEED"},
			Usage:   "The search term used for the initial search",
		},
	}
}

func Config(ctx *cli.Context) (config.Config, error) {
	conf := config.Config{
		APIURL:   ctx.String("api-url"),
		Seed:     ctx.String("seed"),
		Address:  ctx.String("address"),
		LogLevel: ctx.String("log-level"),
	}

	if err := conf.Validate(); err != nil {
		return config.Config{}, errors.Wrap(err, "invalid configuration")
	}

	return conf, nil
}

// NewClient returns a search api client. The underlying http client has no
// timeout: a search waits for the transport to resolve or fail.
func NewClient(conf config.Config) (*api.Client, error) {
	client, err := api.NewClient(&http.Client{}, conf.APIURL)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return client, nil
}
