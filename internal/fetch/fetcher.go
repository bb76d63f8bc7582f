// Package fetch retrieves suggestion markup for a query from the configured
// endpoint.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Marker headers identifying a request as a suggestion fetch, so server-side
// routing can distinguish it from a full-page request.
const (
	HeaderAcceptVariant      = "Accept-Variant"
	HeaderAcceptVariantValue = "Autocomplete"
	HeaderRequestedWith      = "X-Requested-With"
	HeaderRequestedWithValue = "XMLHttpRequest"
)

// FetchError is returned when the endpoint answers with a non-success status.
type FetchError struct {
	StatusCode int
}

func (e FetchError) Error() string {
	return fmt.Sprintf("suggestion fetch failed with status %d", e.StatusCode)
}

// Fetcher retrieves suggestion markup for a query string.
type Fetcher interface {
	Fetch(ctx context.Context, query string) (string, error)
}

// HTTPFetcher issues GET requests against a fixed endpoint, appending the
// query under a configured parameter name while preserving any parameters
// already present on the endpoint URL. It does not retry and relies on the
// caller's context for cancellation.
type HTTPFetcher struct {
	endpoint   string
	queryParam string
	client     *http.Client
}

// NewHTTPFetcher creates a fetcher for the given endpoint. A nil client
// falls back to http.DefaultClient.
func NewHTTPFetcher(endpoint, queryParam string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{
		endpoint:   endpoint,
		queryParam: queryParam,
		client:     client,
	}
}

// Fetch performs the GET request and returns the response body as text.
func (f *HTTPFetcher) Fetch(ctx context.Context, query string) (string, error) {
	requestURL, err := f.buildURL(query)
	if err != nil {
		return "", err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("build suggestion request: %w", err)
	}
	request.Header.Set(HeaderAcceptVariant, HeaderAcceptVariantValue)
	request.Header.Set(HeaderRequestedWith, HeaderRequestedWithValue)

	response, err := f.client.Do(request)
	if err != nil {
		return "", fmt.Errorf("suggestion request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("read suggestion response: %w", err)
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return "", FetchError{StatusCode: response.StatusCode}
	}
	return string(body), nil
}

// buildURL parses the endpoint, appends queryParam=query to its existing
// query string, and serializes it back.
func (f *HTTPFetcher) buildURL(query string) (string, error) {
	u, err := url.Parse(f.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint %q: %w", f.endpoint, err)
	}
	params := u.Query()
	params.Add(f.queryParam, query)
	u.RawQuery = params.Encode()
	return u.String(), nil
}
