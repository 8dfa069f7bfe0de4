package ingest

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/huangsam/outrank/schema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// defaultPrinter formats schema validation messages.
var defaultPrinter = message.NewPrinter(language.English)

var (
	problemSchema  = sync.OnceValue(func() *jsonschema.Schema { return mustCompileSchema("problem.schema.json") })
	criteriaSchema = sync.OnceValue(func() *jsonschema.Schema { return mustCompileSchema("criteria.schema.json") })
)

// SchemaError lists every schema violation found in a document.
type SchemaError struct {
	Problems []string // "/location: message"
}

func (e *SchemaError) Error() string {
	return "schema validation failed: " + strings.Join(e.Problems, "; ")
}

func mustCompileSchema(name string) *jsonschema.Schema {
	raw, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		panic(fmt.Sprintf("missing embedded %s: %v", name, err))
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}
	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// decodeYAML validates data against sch and then decodes it.
func decodeYAML(data []byte, sch *jsonschema.Schema) (*schema.ProblemSpec, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if err := validateInstance(sch, toJSONCompatible(doc)); err != nil {
		return nil, err
	}

	var spec schema.ProblemSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return &spec, nil
}

// decodeJSON validates data against sch and then decodes it.
func decodeJSON(data []byte, sch *jsonschema.Schema) (*schema.ProblemSpec, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	if err := validateInstance(sch, doc); err != nil {
		return nil, err
	}

	var spec schema.ProblemSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	return &spec, nil
}

func validateInstance(sch *jsonschema.Schema, instance any) error {
	err := sch.Validate(instance)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("schema: %w", err)
	}
	schemaErr := &SchemaError{}
	collectSchemaErrors(ve, &schemaErr.Problems)
	return schemaErr
}

func collectSchemaErrors(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/" + strings.Join(ve.InstanceLocation, "/")
		*out = append(*out, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, out)
	}
}

// toJSONCompatible rewrites yaml.v3 values into the shapes the validator accepts.
func toJSONCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = toJSONCompatible(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = toJSONCompatible(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = toJSONCompatible(item)
		}
		return out
	default:
		return v
	}
}
