package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers a tool after CheckOutputSchema accepts its output type.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	CheckOutputSchema[Out](t.Name)
	sdkmcp.AddTool(srv, t, h)
}

// CheckOutputSchema panics if tool output of type T can marshal to JSON that
// the SDK's inferred schema rejects.
//
// The inferred schema types slices as "array" and maps (records included)
// as "object", but a nil slice or map marshals as null. Every slice or map
// field reachable from T, including fields of structs nested behind
// pointers and slice elements such as BatchResult.Result, must therefore
// carry omitzero or omitempty. The zero value of T is validated against the
// schema as a final check.
func CheckOutputSchema[T any](toolName string) {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	if paths := nullableFields(rt, rt.Name(), map[reflect.Type]bool{}); len(paths) > 0 {
		panic(fmt.Sprintf(
			"AddTool %q: output type %s has slice or map fields that marshal as null when nil: %s\n"+
				"  Fix: tag them omitzero, or always set them to empty values",
			toolName, rt, strings.Join(paths, ", "),
		))
	}

	schema, err := jsonschema.ForType(rt, &jsonschema.ForOptions{})
	if err != nil {
		return // the SDK reports inference errors itself
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return
	}

	data, err := json.Marshal(reflect.Zero(rt).Interface())
	if err != nil {
		return
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return
	}
	if err := resolved.Validate(&v); err != nil {
		panic(fmt.Sprintf("AddTool %q: zero value of output type %s fails schema validation: %v\n  JSON: %s",
			toolName, rt, err, data))
	}
}

// nullableFields returns the paths of slice and map struct fields reachable
// from t that have no omitzero or omitempty option.
func nullableFields(t reflect.Type, path string, visited map[reflect.Type]bool) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return nullableFields(t.Elem(), path+"[]", visited)
	case reflect.Map:
		return nullableFields(t.Elem(), path+"[value]", visited)
	case reflect.Struct:
	default:
		return nil
	}

	if visited[t] {
		return nil
	}
	visited[t] = true
	defer delete(visited, t)

	var found []string
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, omittable, skip := jsonField(f)
		if skip {
			continue
		}

		fieldPath := path + "." + name
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			fieldPath = path
		}

		switch f.Type.Kind() {
		case reflect.Slice, reflect.Map:
			if !omittable {
				found = append(found, fieldPath)
			}
		}
		found = append(found, nullableFields(f.Type, fieldPath, visited)...)
	}
	return found
}

// jsonField reads the json tag of f: its output name, whether an empty value
// is omitted, and whether the field is skipped entirely.
func jsonField(f reflect.StructField) (name string, omittable, skip bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitzero" || opt == "omitempty" {
			omittable = true
		}
	}
	return name, omittable, false
}
