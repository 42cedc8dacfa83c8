package config

import (
	"fmt"
	"net/http"
	"os"

	"github.com/usestring/wordseer-mcp/pkg/client"
)

// ClientOptions translates the configuration into search client options.
// It reads RECORD_SCHEMA_FILE when set.
func (c *Config) ClientOptions() ([]client.Option, error) {
	opts := []client.Option{
		client.WithBaseURL(c.APIRoot),
		client.WithHTTPClient(&http.Client{Timeout: c.HTTPClientTimeout}),
	}
	if c.RateLimitRPS > 0 {
		opts = append(opts, client.WithRateLimit(c.RateLimitRPS, c.RateLimitBurst))
	}
	if c.CacheBusting {
		opts = append(opts, client.WithCacheBusting())
	}
	if c.RecordSchemaFile != "" {
		raw, err := os.ReadFile(c.RecordSchemaFile)
		if err != nil {
			return nil, fmt.Errorf("reading record schema: %w", err)
		}
		opts = append(opts, client.WithRecordSchema(raw))
	}
	return opts, nil
}
