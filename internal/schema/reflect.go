package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Reflect returns the JSON Schema of the Go type T as JSON.
//
// The schema is inlined (no $defs), allows properties T does not declare,
// and requires every field whose json tag lacks omitempty.
func Reflect[T any]() ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference:            true,
		ExpandedStruct:            true,
		AllowAdditionalProperties: true,
	}
	s := r.Reflect(new(T))

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema for %T: %w", *new(T), err)
	}
	return data, nil
}
