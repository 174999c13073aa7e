package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/0End-Of-Light0/test-work-public/config"
)

// Attribute selects which demographic field a lookup infers. Values double as
// the lower-cased field names used on the create path.
type Attribute string

const (
	AttributeAge         Attribute = "age"
	AttributeGender      Attribute = "gender"
	AttributeNationality Attribute = "nationality"
)

// ErrUnavailable wraps every provider failure: transport errors, non-200
// statuses, undecodable bodies and empty/null results. Callers decide whether
// the condition is fatal; no retries happen here.
var ErrUnavailable = errors.New("enrichment provider unavailable")

// AttributeClient is implemented once per inference provider. LookupBatch
// must issue a single bundled request and return one value per input name,
// in input order; names the provider could not resolve map to "".
type AttributeClient interface {
	Lookup(ctx context.Context, name string) (string, error)
	LookupBatch(ctx context.Context, names []string) ([]string, error)
}

// Gateway routes lookups to the per-attribute provider clients.
type Gateway struct {
	clients map[Attribute]AttributeClient
}

// NewGateway wires the three public providers using endpoints and timeout
// from config. The shared http.Client bounds every provider call.
func NewGateway(cfg config.Config) *Gateway {
	httpClient := &http.Client{Timeout: cfg.EnrichmentTimeout}
	return &Gateway{
		clients: map[Attribute]AttributeClient{
			AttributeAge:         &ageClient{httpClient: httpClient, baseURL: cfg.AgifyURL},
			AttributeGender:      &genderClient{httpClient: httpClient, baseURL: cfg.GenderizeURL},
			AttributeNationality: &nationalityClient{httpClient: httpClient, baseURL: cfg.NationalizeURL},
		},
	}
}

// Lookup infers a single attribute value for one full name.
func (g *Gateway) Lookup(ctx context.Context, attr Attribute, name string) (string, error) {
	client, ok := g.clients[attr]
	if !ok {
		return "", fmt.Errorf("unknown enrichment attribute %q", attr)
	}
	return client.Lookup(ctx, name)
}

// LookupBatch infers one attribute for many names with a single provider call.
func (g *Gateway) LookupBatch(ctx context.Context, attr Attribute, names []string) ([]string, error) {
	client, ok := g.clients[attr]
	if !ok {
		return nil, fmt.Errorf("unknown enrichment attribute %q", attr)
	}
	return client.LookupBatch(ctx, names)
}

// getJSON performs a GET with query parameters and decodes the JSON body into
// out, normalizing every failure mode onto ErrUnavailable.
func getJSON(ctx context.Context, client *http.Client, baseURL string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: building request for %s: %v", ErrUnavailable, baseURL, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: requesting %s: %v", ErrUnavailable, baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d from %s", ErrUnavailable, resp.StatusCode, baseURL)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response from %s: %v", ErrUnavailable, baseURL, err)
	}
	return nil
}

// batchParams builds the repeated name[] query parameter all three providers
// use for bundled lookups.
func batchParams(names []string) url.Values {
	params := url.Values{}
	for _, name := range names {
		params.Add("name[]", name)
	}
	return params
}
