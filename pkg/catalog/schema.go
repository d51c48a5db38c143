package catalog

import (
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "https://github.com/aretw0/survey/schemas/catalog.json"

// catalogSchemaJSON is the JSON Schema for catalog documents (YAML or JSON).
const catalogSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/aretw0/survey/schemas/catalog.json",
  "type": "object",
  "required": ["questions"],
  "properties": {
    "entry": { "type": "integer", "minimum": 1 },
    "title": { "type": "string" },
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": { "$ref": "#/$defs/question" }
    }
  },
  "additionalProperties": false,
  "$defs": {
    "question": {
      "type": "object",
      "required": ["id", "prompt", "kind"],
      "properties": {
        "id": { "type": "integer", "minimum": 1 },
        "prompt": { "type": "string", "minLength": 1 },
        "kind": {
          "type": "string",
          "enum": ["single_choice", "multi_choice", "short_text", "long_text", "radio", "checkbox", "text", "textarea"]
        },
        "options": {
          "type": "array",
          "items": { "$ref": "#/$defs/option" }
        },
        "next": {
          "oneOf": [
            { "type": "null" },
            { "type": "integer", "minimum": 1 },
            {
              "type": "object",
              "minProperties": 1,
              "additionalProperties": { "type": "integer", "minimum": 1 }
            }
          ]
        }
      },
      "additionalProperties": false
    },
    "option": {
      "type": "object",
      "required": ["label", "value"],
      "properties": {
        "label": { "type": "string" },
        "value": { "type": "string", "minLength": 1 }
      },
      "additionalProperties": false
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// documentSchema compiles the catalog schema on first use.
func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(catalogSchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("unmarshal catalog schema: %w", err)
			return
		}
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add catalog schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}
