package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/usestring/wordseer-mcp/internal/config"
	"github.com/usestring/wordseer-mcp/internal/logging"
	"github.com/usestring/wordseer-mcp/internal/query"
	"github.com/usestring/wordseer-mcp/internal/session"
	"github.com/usestring/wordseer-mcp/pkg/client"
)

type searchFlags struct {
	params      []string
	includeText bool
	instance    string
	user        string
	expression  string
	json        bool
}

func newSearchCmd() *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run one document search",
		Long: `Runs one document search against the WordSeer API and prints the records.

Search parameters are passed with --param key=value and may repeat.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, f)
		},
	}

	cmd.Flags().StringArrayVarP(&f.params, "param", "p", nil, "search parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&f.includeText, "include-text", false, "include full document text")
	cmd.Flags().StringVar(&f.instance, "instance", "", "instance to search (default $WORDSEER_INSTANCE)")
	cmd.Flags().StringVar(&f.user, "user", "", "user to search as (default $WORDSEER_USER)")
	cmd.Flags().StringVarP(&f.expression, "jq", "q", "", "jq expression applied to each record")
	cmd.Flags().BoolVar(&f.json, "json", false, "output results as JSON")
	return cmd
}

func runSearch(cmd *cobra.Command, f searchFlags) error {
	ctx := cmd.Context()

	extra, err := parseParams(f.params)
	if err != nil {
		return err
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.Format = cfg.LogFormat
	cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return err
	}
	defer cleanup()

	var engine *query.Engine
	if f.expression != "" {
		engine = query.NewEngine()
		if err := engine.ValidateExpression(f.expression); err != nil {
			return err
		}
	}

	opts, err := cfg.ClientOptions()
	if err != nil {
		return err
	}
	c, err := client.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	identity := session.Override{
		Base:       session.Static{InstanceID: cfg.Instance, User: cfg.User},
		InstanceID: f.instance,
		User:       f.user,
	}
	params, err := session.Resolve(ctx, identity, f.includeText, extra)
	if err != nil {
		return err
	}

	rs, err := c.Search(ctx, params)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if engine != nil {
		records := make([]any, len(rs))
		for i, r := range rs {
			records[i] = map[string]any(r)
		}
		result, err := engine.Query(records, f.expression, 0)
		if err != nil {
			return err
		}
		for _, e := range result.Errors {
			cmd.PrintErrln(e)
		}
		return printValues(cmd, result.Values, f.json)
	}

	values := make([]any, len(rs))
	for i, r := range rs {
		values[i] = r
	}
	return printValues(cmd, values, f.json)
}

// parseParams turns repeated key=value flags into query values.
func parseParams(raw []string) (url.Values, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	values := make(url.Values, len(raw))
	for _, kv := range raw {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --param %q: expected key=value", kv)
		}
		values.Add(k, v)
	}
	return values, nil
}

func printValues(cmd *cobra.Command, values []any, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(values) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}
	for i, v := range values {
		line, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal result %d: %w", i, err)
		}
		fmt.Fprintf(out, "  [%d] %s\n", i+1, line)
	}
	return nil
}
