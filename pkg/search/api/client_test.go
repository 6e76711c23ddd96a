package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.Client(), server.URL+"/api/search")
	require.NoError(t, err)

	return client, server
}

func TestClientSearch(t *testing.T) {
	var gotQuery string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"title":"A","description":"d","source":"s","date":"2023-01-01","link":"https://example.com/a"},
			{"title":"B","description":"e","source":"t","date":"2023-01-02"}
		]`))
	})

	results, err := client.Search(context.Background(), "中国")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	assert.Equal(t, "中国", gotQuery)
	require.Len(t, results, 2, spew.Sdump(results))

	assert.Equal(t, "A", results[0].Title)
	assert.Equal(t, "d", results[0].Description)
	assert.Equal(t, "s", results[0].Source)
	assert.Equal(t, "2023-01-01", results[0].Date)
	assert.Equal(t, "https://example.com/a", results[0].Get("link").String())
	assert.Equal(t, "B", results[1].Title)

	// Identifiers are assigned by the caller
	assert.Zero(t, results[0].ID)
}

func TestClientSearchHTTPError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	results, err := client.Search(context.Background(), "x")
	require.Error(t, err)
	assert.Nil(t, results)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr), "%+v", err)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "Internal Server Error", httpErr.StatusText)
}

func TestClientSearchMalformed(t *testing.T) {
	bodies := map[string]string{
		"invalid json":  `[{"title":`,
		"not an array":  `{"title":"A"}`,
		"not an object": `[{"title":"A"}, 42]`,
		"plain text":    `not json at all`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			_, err := client.Search(context.Background(), "x")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedResponse), "%+v", err)
		})
	}
}

func TestClientSearchEmptyArray(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	results, err := client.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestClientSearchTransportError(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.Search(context.Background(), "x")
	require.Error(t, err)

	var httpErr *HTTPError
	assert.False(t, errors.As(err, &httpErr))
	assert.NotEmpty(t, err.Error())
}

func TestSearchURL(t *testing.T) {
	client, err := NewClient(nil, "http://localhost:8080/api/search?ignored=1")
	require.NoError(t, err)

	tests := map[string]string{
		"a b&c":       "http://localhost:8080/api/search?q=a%20b%26c",
		"中国":          "http://localhost:8080/api/search?q=%E4%B8%AD%E5%9B%BD",
		"":            "http://localhost:8080/api/search?q=",
		"1+1=2":       "http://localhost:8080/api/search?q=1%2B1%3D2",
		"it's (a)!*~": "http://localhost:8080/api/search?q=it's%20(a)!*~",
		"%21":         "http://localhost:8080/api/search?q=%2521",
	}

	for term, expected := range tests {
		assert.Equal(t, expected, client.SearchURL(term).String(), "term %q", term)
	}
}

func TestNewClientInvalidEndpoint(t *testing.T) {
	_, err := NewClient(nil, "/api/search")
	assert.Error(t, err)

	_, err = NewClient(nil, "http://[::1")
	assert.Error(t, err)
}
