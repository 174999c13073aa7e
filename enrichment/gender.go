package enrichment

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// genderClient infers gender via genderize.io. The name is sent as given.
type genderClient struct {
	httpClient *http.Client
	baseURL    string
}

type genderizeResult struct {
	Gender *string `json:"gender"`
}

func (c *genderClient) Lookup(ctx context.Context, name string) (string, error) {
	params := url.Values{}
	params.Set("name", name)

	var res genderizeResult
	if err := getJSON(ctx, c.httpClient, c.baseURL, params, &res); err != nil {
		return "", err
	}
	if res.Gender == nil {
		return "", fmt.Errorf("%w: no gender inferred for %q", ErrUnavailable, name)
	}
	return *res.Gender, nil
}

func (c *genderClient) LookupBatch(ctx context.Context, names []string) ([]string, error) {
	var res []genderizeResult
	if err := getJSON(ctx, c.httpClient, c.baseURL, batchParams(names), &res); err != nil {
		return nil, err
	}
	if len(res) != len(names) {
		return nil, fmt.Errorf("%w: got %d gender results for %d names", ErrUnavailable, len(res), len(names))
	}

	out := make([]string, len(res))
	for i, r := range res {
		if r.Gender != nil {
			out[i] = *r.Gender
		}
	}
	return out, nil
}
