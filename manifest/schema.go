package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	sjsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://c123chain.dev/schemas/cdk-abi.json"

// Schema returns the JSON Schema (draft 2020-12) of the manifest format.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(&Manifest{})
	schema.ID = jsonschema.ID(schemaURL)
	schema.Title = "cdk-go contract ABI manifest"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// ValidateDocument checks a JSON manifest document against Schema. It
// catches structural problems, such as a missing field or an unknown type
// tag, before the document is decoded.
func ValidateDocument(data []byte) error {
	raw, err := Schema()
	if err != nil {
		return err
	}
	compiler := sjsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("failed to add schema resource: %w", err)
	}
	sch, err := compiler.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("invalid manifest schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("manifest does not match schema: %w", err)
	}
	return nil
}
