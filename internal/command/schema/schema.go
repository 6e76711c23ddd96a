package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// record is the shape of one item of a search api response.
type record struct {
	Title       string `json:"title" jsonschema:"description=Title of the matching entry"`
	Description string `json:"description" jsonschema:"description=Summary of the entry (may contain HTML)"`
	Source      string `json:"source" jsonschema:"description=Feed or site the entry comes from"`
	Date        string `json:"date" jsonschema:"description=Publication date"`
}

// ResponseSchema returns the JSON Schema of the response expected from the
// search api: an array of records. Unknown fields are allowed and passed
// through, see search.Result.Get.
func ResponseSchema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}

	item := reflector.Reflect(&record{})
	item.Version = ""

	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "Search response",
		Description: "Response body of GET <api-url>?q=<term>",
		Type:        "array",
		Items:       item,
	}
}

func Schema() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the JSON Schema of the response expected from the search api",
		Action: func(cliCtx *cli.Context) error {
			data, err := json.MarshalIndent(ResponseSchema(), "", "  ")
			if err != nil {
				return errors.WithStack(err)
			}

			if _, err := fmt.Fprintln(cliCtx.App.Writer, string(data)); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	}
}
