package realstonks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"stockmail/internal/dataset"
	"stockmail/internal/provider"
)

// ErrEmptySymbol is returned for a blank symbol before any request is made.
var ErrEmptySymbol = errors.New("empty symbol")

const maxBodyBytes = 1 << 20

// Fetch performs one GET for symbol. A non-2xx status, an empty body or a
// body that is not a non-empty JSON object yields ok=false with a nil error.
// Network faults and unreadable 2xx bodies are returned as errors.
func (c *Client) Fetch(ctx context.Context, symbol string) (provider.Quote, bool, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return provider.Quote{}, false, ErrEmptySymbol
	}

	endpoint := c.baseURL + "/" + url.PathEscape(symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return provider.Quote{}, false, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()
	if c.host != "" {
		req.Header.Set("X-RapidAPI-Host", c.host)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return provider.Quote{}, false, fmt.Errorf("performing request for %s: %w", symbol, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxBodyBytes))
		c.log.Warn("quote unavailable", "symbol", symbol, "status", res.StatusCode)
		return provider.Quote{}, false, nil
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return provider.Quote{}, false, fmt.Errorf("reading response for %s: %w", symbol, err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		c.log.Warn("quote response empty", "symbol", symbol)
		return provider.Quote{}, false, nil
	}
	if !gjson.ValidBytes(body) {
		return provider.Quote{}, false, fmt.Errorf("decoding response for %s: invalid json", symbol)
	}

	fields := parseFields(gjson.ParseBytes(body))
	if len(fields) == 0 {
		c.log.Warn("quote response has no fields", "symbol", symbol)
		return provider.Quote{}, false, nil
	}
	c.log.Debug("quote fetched", "symbol", symbol, "fields", len(fields))
	return provider.Quote{Symbol: symbol, Fields: fields}, true, nil
}

// parseFields returns the top-level members of an object in document order.
// Anything other than an object yields no fields.
func parseFields(doc gjson.Result) []dataset.Field {
	if !doc.IsObject() {
		return nil
	}
	var fields []dataset.Field
	doc.ForEach(func(key, value gjson.Result) bool {
		fields = append(fields, dataset.Field{Key: key.String(), Value: fieldValue(value)})
		return true
	})
	return fields
}

// fieldValue maps a JSON value onto the dynamic cell types of a dataset row.
// Nested objects and arrays are kept as their raw JSON text.
func fieldValue(v gjson.Result) any {
	switch v.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return v.Float()
	case gjson.String:
		return v.String()
	default:
		return v.Raw
	}
}
