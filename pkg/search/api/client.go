package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bornholm/feedsearch/pkg/search"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const DefaultEndpoint = "http://localhost:8080/api/search"

var ErrMalformedResponse = errors.New("malformed response body")

// HTTPError is returned when the backend answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	StatusText string
}

func (e *HTTPError) Error() string {
	return "unexpected response http status " + strconv.Itoa(e.StatusCode) + " " + e.StatusText
}

type Client struct {
	client   *http.Client
	endpoint *url.URL
}

// Search implements search.Client.
func (c *Client) Search(ctx context.Context, term string) ([]search.Result, error) {
	searchURL := c.SearchURL(term)

	slog.DebugContext(ctx, "executing search", slog.String("url", searchURL.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer res.Body.Close()

	ok := res.StatusCode >= http.StatusOK && res.StatusCode < http.StatusMultipleChoices
	if !ok {
		return nil, errors.WithStack(&HTTPError{
			StatusCode: res.StatusCode,
			StatusText: statusText(res),
		})
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	results, err := Parse(body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return results, nil
}

// SearchURL returns the endpoint with the term as its only query parameter.
// The term is escaped the way a browser's encodeURIComponent does it.
func (c *Client) SearchURL(term string) *url.URL {
	u := *c.endpoint
	u.RawQuery = "q=" + escape(term)
	return &u
}

// Parse decodes a response body made of a JSON array of objects. Identifiers
// are left unset.
func Parse(body []byte) ([]search.Result, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.Wrap(ErrMalformedResponse, "invalid json")
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, errors.Wrapf(ErrMalformedResponse, "expected an array, got %s", parsed.Type)
	}

	items := parsed.Array()
	results := make([]search.Result, 0, len(items))

	for i, item := range items {
		if !item.IsObject() {
			return nil, errors.Wrapf(ErrMalformedResponse, "item %d is not an object", i)
		}

		results = append(results, search.Result{
			Title:       item.Get("title").String(),
			Description: item.Get("description").String(),
			Source:      item.Get("source").String(),
			Date:        item.Get("date").String(),
			Raw:         item.Raw,
		})
	}

	return results, nil
}

func statusText(res *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(res.Status, strconv.Itoa(res.StatusCode)))
	if text == "" {
		text = http.StatusText(res.StatusCode)
	}

	return text
}

// componentUnescaper restores the characters encodeURIComponent leaves as
// they are but url.QueryEscape encodes.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escape(term string) string {
	return componentUnescaper.Replace(url.QueryEscape(term))
}

func NewClient(client *http.Client, endpoint string) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse endpoint '%s'", endpoint)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("endpoint '%s' must be an absolute url", endpoint)
	}

	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		client:   client,
		endpoint: u,
	}, nil
}

var _ search.Client = &Client{}
