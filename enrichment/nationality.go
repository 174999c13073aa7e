package enrichment

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// nationalityClient infers a country code via nationalize.io. The provider
// returns candidate countries ranked by probability; only the top candidate
// is used.
type nationalityClient struct {
	httpClient *http.Client
	baseURL    string
}

type nationalizeResult struct {
	Country []struct {
		CountryID string `json:"country_id"`
	} `json:"country"`
}

func (c *nationalityClient) Lookup(ctx context.Context, name string) (string, error) {
	params := url.Values{}
	params.Set("name", name)

	var res nationalizeResult
	if err := getJSON(ctx, c.httpClient, c.baseURL, params, &res); err != nil {
		return "", err
	}
	if len(res.Country) == 0 {
		return "", fmt.Errorf("%w: no nationality inferred for %q", ErrUnavailable, name)
	}
	return res.Country[0].CountryID, nil
}

func (c *nationalityClient) LookupBatch(ctx context.Context, names []string) ([]string, error) {
	var res []nationalizeResult
	if err := getJSON(ctx, c.httpClient, c.baseURL, batchParams(names), &res); err != nil {
		return nil, err
	}
	if len(res) != len(names) {
		return nil, fmt.Errorf("%w: got %d nationality results for %d names", ErrUnavailable, len(res), len(names))
	}

	out := make([]string, len(res))
	for i, r := range res {
		if len(r.Country) > 0 {
			out[i] = r.Country[0].CountryID
		}
	}
	return out, nil
}
