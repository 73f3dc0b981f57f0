package dogs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/dogcatalog/internal/common"
	"github.com/dmitrijs2005/dogcatalog/internal/server/models"
	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "dogcatalog/dog.schema.json"

// GenerateSchema reflects the JSON Schema for caller-supplied dog fields.
func GenerateSchema() ([]byte, error) {
	r := jsonschema.Reflector{DoNotReference: true}
	schema := r.Reflect(&models.DogFields{})
	schema.Title = "Dog catalog entry"

	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

var compiledSchema = sync.OnceValues(func() (*jschema.Schema, error) {
	raw, err := GenerateSchema()
	if err != nil {
		return nil, err
	}

	doc, err := jschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}

	c := jschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	return c.Compile(schemaURL)
})

// ValidateFields checks f against the dog schema. Schema violations wrap
// common.ErrorBadRequest.
func ValidateFields(f models.DogFields) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode dog: %w", err)
	}
	inst, err := jschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode dog: %w", err)
	}

	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorBadRequest, err)
	}
	return nil
}
