package enrichment

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	iuliia "github.com/mehanizm/iuliia-go"
)

// ageClient infers age from a first name via agify.io. The provider only
// understands Latin-script names, so Cyrillic first names are transliterated
// before the call.
type ageClient struct {
	httpClient *http.Client
	baseURL    string
}

type agifyResult struct {
	Age *int `json:"age"`
}

func (c *ageClient) Lookup(ctx context.Context, name string) (string, error) {
	params := url.Values{}
	params.Set("name", latinizeFirstName(name))

	var res agifyResult
	if err := getJSON(ctx, c.httpClient, c.baseURL, params, &res); err != nil {
		return "", err
	}
	if res.Age == nil {
		return "", fmt.Errorf("%w: no age inferred for %q", ErrUnavailable, name)
	}
	return strconv.Itoa(*res.Age), nil
}

func (c *ageClient) LookupBatch(ctx context.Context, names []string) ([]string, error) {
	prepared := make([]string, len(names))
	for i, name := range names {
		prepared[i] = latinizeFirstName(name)
	}

	var res []agifyResult
	if err := getJSON(ctx, c.httpClient, c.baseURL, batchParams(prepared), &res); err != nil {
		return nil, err
	}
	if len(res) != len(names) {
		return nil, fmt.Errorf("%w: got %d age results for %d names", ErrUnavailable, len(res), len(names))
	}

	out := make([]string, len(res))
	for i, r := range res {
		if r.Age != nil {
			out[i] = strconv.Itoa(*r.Age)
		}
	}
	return out, nil
}

// latinizeFirstName extracts the first whitespace-separated token of a full
// name and transliterates it when it contains Cyrillic letters.
func latinizeFirstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return fullName
	}
	first := fields[0]
	for _, r := range first {
		if unicode.Is(unicode.Cyrillic, r) {
			return iuliia.Wikipedia.Translate(first)
		}
	}
	return first
}
