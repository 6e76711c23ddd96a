package ui

import (
	"html/template"
	"io"

	"github.com/pkg/errors"
)

var pageTemplate = template.Must(template.Must(templates.Clone()).New("page").Parse(`<!DOCTYPE html>
<html lang="zh"><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width,initial-scale=1">
{{- if .Loading }}
<meta http-equiv="refresh" content="1">
{{- end }}
<title>{{ .Title }}</title>
<style>
body{font-family:system-ui,sans-serif;max-width:800px;margin:2rem auto;padding:0 1rem;color:#222;background:#fafafa}
.search-bar{display:flex;gap:.5rem;margin-bottom:1.5rem}
.search-bar input{flex:1;padding:.5rem}
.result-item{background:#fff;border:1px solid #e0e0e0;border-radius:6px;padding:1rem;margin-bottom:1rem}
.metadata{font-size:.8rem;color:#666;display:flex;gap:1rem}
.error{color:#b00020}
.no-results,.loading{color:#999;font-style:italic}
</style></head><body>
<div class="app-container">
<header><h1>{{ .Title }}</h1></header>
<main>
<form class="search-bar" method="post" action="{{ .Action }}">
<input type="text" name="q" value="{{ .Text }}" placeholder="{{ .Placeholder }}">
<button type="submit">{{ .Submit }}</button>
</form>
{{- if .Loading }}
<div class="loading">{{ .LoadingMessage }}</div>
{{- else if .Error }}
<div class="error">{{ .Error }}</div>
{{- else }}
{{ template "results" .Results }}
{{- end }}
</main>
<footer><p>{{ .Footer }}</p></footer>
</div>
</body></html>
`))

type pageData struct {
	Title          string
	Placeholder    string
	Submit         string
	Footer         string
	LoadingMessage string
	Action         string
	Text           string
	Loading        bool
	Error          string
	Results        resultsData
}

// RenderPage writes the full page for the given input text and state. The
// form posts to action.
func RenderPage(w io.Writer, action string, text string, state State) error {
	data := pageData{
		Title:          messageTitle,
		Placeholder:    messagePlaceholder,
		Submit:         messageSubmit,
		Footer:         messageFooter,
		LoadingMessage: messageLoading,
		Action:         action,
		Text:           text,
	}

	switch state.View() {
	case ViewLoading:
		data.Loading = true
	case ViewError:
		data.Error = state.Error
	default:
		data.Results = newResultsData(state.Results)
	}

	if err := pageTemplate.ExecuteTemplate(w, "page", data); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
