package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// SearchPath is the document search endpoint, relative to the API root.
const SearchPath = "documents/search-results/"

// resultsKey is the key of the record array in the response envelope.
const resultsKey = "results"

// reserved lists the parameters the client always sets itself.
var reserved = map[string]bool{
	ParamInstance:    true,
	ParamUser:        true,
	ParamIncludeText: true,
	ParamCacheBuster: true,
}

// SearchURL builds the request URL for a search without sending it.
func (c *Client) SearchURL(params RequestParameters) (string, error) {
	u, err := url.Parse(c.baseURL + "/" + SearchPath)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}

	query := make(url.Values, len(params.Extra)+4)
	for k, vs := range params.Extra {
		if reserved[k] {
			continue
		}
		query[k] = append([]string(nil), vs...)
	}
	query.Set(ParamInstance, params.Instance)
	query.Set(ParamUser, params.User)
	query.Set(ParamIncludeText, strconv.FormatBool(params.IncludeText))
	if c.cacheBusting {
		query.Set(ParamCacheBuster, strconv.FormatInt(c.now().UnixMilli(), 10))
	}
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// Search fetches the document search results for params.
//
// Any transport, status or parse failure is returned as an error matching
// ErrFetchFailed and no records are returned. A response without a
// "results" key yields an empty ResultSet.
func (c *Client) Search(ctx context.Context, params RequestParameters) (ResultSet, error) {
	rs, _, err := c.SearchWithURL(ctx, params)
	return rs, err
}

// SearchWithURL is Search that also returns the URL the request was sent to.
// The URL is empty when the parameters are invalid.
func (c *Client) SearchWithURL(ctx context.Context, params RequestParameters) (rs ResultSet, searchURL string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	if err := params.Validate(); err != nil {
		return nil, "", err
	}

	searchURL, err = c.SearchURL(params)
	if err != nil {
		return nil, "", &NetworkError{URL: c.baseURL, Err: err}
	}

	body, err := c.get(ctx, searchURL)
	if err != nil {
		return nil, searchURL, fmt.Errorf("searching documents in instance %q: %w", params.Instance, err)
	}

	records, err := DecodeResults(body)
	if err != nil {
		return nil, searchURL, fmt.Errorf("searching documents in instance %q: %w", params.Instance, err)
	}

	if c.validator != nil {
		for i, r := range records {
			if verr := c.validator.Validate(map[string]any(r)); verr != nil {
				return nil, searchURL, fmt.Errorf("searching documents in instance %q: %w",
					params.Instance, &ParseError{Index: i, Err: verr})
			}
		}
	}

	return records, searchURL, nil
}

// DecodeResults parses a search response body into records.
//
// The body must be a JSON object. A missing or null "results" key yields an
// empty set; any other non-array value, or a non-object element, is a
// ParseError.
func DecodeResults(body []byte) (ResultSet, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &ParseError{Index: -1, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if envelope == nil {
		return nil, &ParseError{Index: -1, Err: errors.New("response is not a JSON object")}
	}

	raw, ok := envelope[resultsKey]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return ResultSet{}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ParseError{Index: -1, Err: fmt.Errorf("%q is not an array: %w", resultsKey, err)}
	}

	records := make(ResultSet, 0, len(items))
	for i, item := range items {
		var r Record
		if err := json.Unmarshal(item, &r); err != nil {
			return nil, &ParseError{Index: i, Err: fmt.Errorf("record is not an object: %w", err)}
		}
		if r == nil {
			return nil, &ParseError{Index: i, Err: errors.New("record is null")}
		}
		records = append(records, r)
	}

	return records, nil
}
