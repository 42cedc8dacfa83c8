package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Query parameter names sent on every search.
const (
	ParamInstance    = "instance"
	ParamUser        = "user"
	ParamIncludeText = "include_text"
	ParamCacheBuster = "_dc"
)

// Record is one document search result. Its fields are defined by the
// server's document model.
type Record map[string]any

// ResultSet holds the records of one search in server order.
type ResultSet []Record

// Decode maps the records into v, which must be a pointer to a slice of the
// caller's document type.
func (rs ResultSet) Decode(v any) error {
	data, err := json.Marshal(rs)
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding records: %w", err)
	}
	return nil
}

// RequestParameters contains the parameters of one search.
type RequestParameters struct {
	// Instance identifies the document corpus to search. Required.
	Instance string
	// User is the name of the user searching. Required.
	User string
	// IncludeText asks the server to include full document text in each record.
	IncludeText bool
	// Extra holds per-query parameters such as search terms. Keys that
	// collide with the fixed parameters above are ignored.
	Extra url.Values
}

// Validate checks that the identity parameters are present.
func (p RequestParameters) Validate() error {
	if strings.TrimSpace(p.Instance) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidParameters, ParamInstance)
	}
	if strings.TrimSpace(p.User) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidParameters, ParamUser)
	}
	return nil
}
