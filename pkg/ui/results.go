package ui

import (
	"html/template"
	"io"

	"github.com/bornholm/feedsearch/pkg/search"
	"github.com/pkg/errors"
)

var templates = template.Must(template.New("results").Parse(`
{{- if eq (len .Results) 0 -}}
<div class="no-results">{{ .NoResults }}</div>
{{- else -}}
<div class="results-container">
<h2>{{ .Header }} ({{ len .Results }})</h2>
<div class="results-list">
{{- range .Results }}
<div class="result-item" data-id="{{ .ID }}">
<h3>{{ .Title }}</h3>
<p class="description">{{ .Description }}</p>
<div class="metadata"><span class="source">{{ .Source }}</span><span class="date">{{ .Date }}</span></div>
</div>
{{- end }}
</div>
</div>
{{- end -}}
`))

type resultsData struct {
	Results   []search.Result
	Header    string
	NoResults string
}

func newResultsData(results []search.Result) resultsData {
	return resultsData{
		Results:   results,
		Header:    messageResultsHeader,
		NoResults: messageNoResults,
	}
}

// RenderResults writes the HTML list of results in the given order, or the
// empty-state indicator when there is none.
func RenderResults(w io.Writer, results []search.Result) error {
	if err := templates.ExecuteTemplate(w, "results", newResultsData(results)); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
