package runner

import (
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// validateInput checks a raw tool input against the tool's declared schema
// before the handler ever sees it: required properties must be present and
// provided properties must match their declared primitive type. Nested
// constraints are left to the handler's own unmarshalling.
func validateInput(schema anthropic.ToolInputSchemaParam, input json.RawMessage) error {
	var got map[string]any
	if len(input) > 0 {
		if err := json.Unmarshal(input, &got); err != nil {
			return fmt.Errorf("input is not a JSON object: %w", err)
		}
	}

	for _, name := range schema.Required {
		if _, ok := got[name]; !ok {
			return fmt.Errorf("missing required property %q", name)
		}
	}

	props, ok := schema.Properties.(*orderedmap.OrderedMap[string, *jsonschema.Schema])
	if !ok || props == nil {
		return nil
	}
	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		val, present := got[pair.Key]
		if !present {
			continue
		}
		if err := checkType(pair.Value.Type, val); err != nil {
			return fmt.Errorf("property %q: %w", pair.Key, err)
		}
	}
	return nil
}

// checkType verifies that a decoded JSON value matches a JSON Schema primitive
// type name. An empty type name accepts anything.
func checkType(typeName string, val any) error {
	switch typeName {
	case "":
		return nil
	case "string":
		if _, ok := val.(string); !ok {
			return fmt.Errorf("expected string, got %T", val)
		}
	case "number":
		if _, ok := val.(float64); !ok {
			return fmt.Errorf("expected number, got %T", val)
		}
	case "integer":
		f, ok := val.(float64)
		if !ok || f != float64(int64(f)) {
			return fmt.Errorf("expected integer, got %v", val)
		}
	case "boolean":
		if _, ok := val.(bool); !ok {
			return fmt.Errorf("expected boolean, got %T", val)
		}
	case "object":
		if _, ok := val.(map[string]any); !ok {
			return fmt.Errorf("expected object, got %T", val)
		}
	case "array":
		if _, ok := val.([]any); !ok {
			return fmt.Errorf("expected array, got %T", val)
		}
	case "null":
		if val != nil {
			return fmt.Errorf("expected null, got %T", val)
		}
	}
	return nil
}
