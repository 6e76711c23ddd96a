package main

import (
	"github.com/bornholm/feedsearch/internal/command"
	"github.com/bornholm/feedsearch/internal/command/query"
	"github.com/bornholm/feedsearch/internal/command/schema"
	"github.com/bornholm/feedsearch/internal/command/serve"
)

var version = "dev"

func main() {
	command.Main(
		"feedsearch",
		version,
		"Search feeds through a remote search api",
		serve.Serve(),
		query.Search(),
		schema.Schema(),
	)
}
