// Package client provides a Go SDK for the WordSeer document search API.
//
// The WordSeer API serves document search results for one instance (a
// tenant's document corpus) at a fixed endpoint:
//
//	GET <api-root>/documents/search-results/?instance=<id>&user=<name>&include_text=false
//
// The response body is a JSON object whose "results" array holds one record
// per matching document. This package builds the request, sends it and
// decodes the records. It keeps no state between calls: every search returns
// a fresh ResultSet and nothing is cached.
//
// # Quick Start
//
//	c, err := client.New(client.WithBaseURL("http://localhost:8000/api/"))
//	results, err := c.Search(ctx, client.RequestParameters{
//	    Instance: "shakespeare",
//	    User:     "alice",
//	    Extra:    url.Values{"search": {"love"}},
//	})
//
// Instance and User are required. IncludeText is false unless set; the
// server then leaves the full document text out of each record.
//
// # Records
//
// The field schema of a record belongs to the server's document model, so
// records are returned as generic JSON objects. Decode them into your own
// type with ResultSet.Decode:
//
//	var docs []MyDocument
//	err := results.Decode(&docs)
//
// To reject records that don't match a model, configure a schema. Either
// reflect one from a Go type or pass a JSON Schema document:
//
//	c, err := client.New(client.WithRecordModel[MyDocument]())
//	c, err := client.New(client.WithRecordSchema(schemaJSON))
//
// # Errors
//
// Every failed fetch satisfies errors.Is(err, client.ErrFetchFailed). Use
// errors.As to tell the cause apart:
//
//   - *NetworkError: the request could not be sent or the response not read
//   - *HTTPStatusError: the server answered with a non-2xx status
//   - *ParseError: the body is not JSON or does not have the expected shape
//
// Failed searches never return partial results, and nothing is retried.
package client
