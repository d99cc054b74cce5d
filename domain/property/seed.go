package property

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed seed.json
var seedJSON []byte

//go:embed seed.schema.json
var seedSchemaJSON []byte

const seedSchemaURL = "rentlink://property/seed.schema.json"

// Seed returns the bootstrap catalog, validated against the embedded schema.
func Seed() ([]Property, error) {
	return decodeSeed(seedJSON)
}

func decodeSeed(data []byte) ([]Property, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(seedSchemaURL, bytes.NewReader(seedSchemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add seed schema: %w", err)
	}
	schema, err := compiler.Compile(seedSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile seed schema: %w", err)
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("seed does not match schema: %w", err)
	}

	var props []Property
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, fmt.Errorf("failed to decode seed: %w", err)
	}
	for i := range props {
		if err := props[i].Validate(); err != nil {
			return nil, fmt.Errorf("seed property %q: %w", props[i].ID, err)
		}
	}
	return props, nil
}
