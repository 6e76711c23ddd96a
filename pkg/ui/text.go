package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/bornholm/feedsearch/pkg/search"
	"github.com/pkg/errors"
)

// RenderResultsText writes the results as markdown. Feed descriptions often
// carry HTML fragments, they are converted to markdown.
func RenderResultsText(w io.Writer, results []search.Result) error {
	var sb strings.Builder

	if len(results) == 0 {
		sb.WriteString(messageNoResults + "\n")
	} else {
		conv := converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		)

		sb.WriteString(fmt.Sprintf("# %s (%d)\n\n", messageResultsHeader, len(results)))

		for _, r := range results {
			description, err := conv.ConvertString(r.Description)
			if err != nil {
				return errors.Wrapf(err, "could not convert description of result %d", r.ID)
			}

			sb.WriteString(fmt.Sprintf("## %d. %s\n\n", r.ID, r.Title))
			if description = strings.TrimSpace(description); description != "" {
				sb.WriteString(description + "\n\n")
			}
			sb.WriteString(fmt.Sprintf("*%s* | %s\n\n", r.Source, r.Date))
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// RenderText writes the state the same way the page does, with the same
// precedence between loading, error and results.
func RenderText(w io.Writer, state State) error {
	switch state.View() {
	case ViewLoading:
		if _, err := io.WriteString(w, messageLoading+"\n"); err != nil {
			return errors.WithStack(err)
		}
	case ViewError:
		if _, err := io.WriteString(w, state.Error+"\n"); err != nil {
			return errors.WithStack(err)
		}
	default:
		if err := RenderResultsText(w, state.Results); err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}
