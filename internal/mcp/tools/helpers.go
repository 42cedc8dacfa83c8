// Package tools contains MCP tool implementations for WordSeer document search.
package tools

// resultLimit applies the configured default and cap to a requested limit.
func (d *Deps) resultLimit(requested int) int {
	if requested <= 0 {
		return d.Config.DefaultResultLimit
	}
	if requested > d.Config.MaxResultLimit {
		return d.Config.MaxResultLimit
	}
	return requested
}

// recordMaps converts records to plain maps for JSON output and jq input.
func recordMaps(records []map[string]any) []any {
	out := make([]any, len(records))
	for i, r := range records {
		out[i] = r
	}
	return out
}
