package query

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bornholm/feedsearch/pkg/search"
	"github.com/bornholm/feedsearch/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestDocument(t *testing.T) {
	searchedAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	state := ui.State{
		Results: search.Number([]search.Result{
			{Title: "A", Description: "d", Source: "s", Date: "2023-01-01"},
			{Title: "B", Description: "e", Source: "t", Date: "2023-01-02"},
		}),
	}

	document, err := Document("中国", searchedAt, state)
	require.NoError(t, err)

	parts := strings.SplitN(string(document), "---\n", 3)
	require.Len(t, parts, 3)
	assert.Empty(t, parts[0])

	var metadata documentMetadata
	require.NoError(t, yaml.Unmarshal([]byte(parts[1]), &metadata))
	assert.Equal(t, "中国", metadata.Term)
	assert.Equal(t, 2, metadata.Results)
	assert.True(t, searchedAt.Equal(metadata.SearchedAt))

	assert.Contains(t, parts[2], "## 1. A")
	assert.Contains(t, parts[2], "## 2. B")
}

func TestRender(t *testing.T) {
	state := ui.State{Results: search.Number([]search.Result{{Title: "A"}})}

	var buff bytes.Buffer
	require.NoError(t, render(&buff, formatJSON, state))
	assert.JSONEq(t, `{"results":[{"id":1,"title":"A","description":"","source":"","date":""}],"loading":false}`, buff.String())

	buff.Reset()
	require.NoError(t, render(&buff, formatText, ui.State{Error: "boom"}))
	assert.Equal(t, "boom\n", buff.String())
}
