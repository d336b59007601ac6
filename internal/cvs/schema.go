package cvs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
)

// The raw CV documents are externally maintained. Checking them against
// a schema before structuring turns shape drift in the CV repository
// into an ErrCVSchema naming the file, rather than zero values deep in
// validation.

const drsSchema = `{
    "type": "object",
    "required": [
        "directory_path_template",
        "directory_path_example",
        "filename_template",
        "filename_example"
    ],
    "additionalProperties": false,
    "properties": {
        "directory_path_template": {"type": "string"},
        "directory_path_example": {"type": "string"},
        "filename_template": {"type": "string"},
        "filename_example": {"type": "string"}
    }
}`

const sourceIDSchema = `{
    "type": "object",
    "minProperties": 1,
    "additionalProperties": {
        "type": "object",
        "required": ["contact", "institution_id", "license_id", "mip_era", "source_version"],
        "properties": {
            "contact": {"type": "string"},
            "further_info_url": {"type": "string"},
            "institution_id": {"type": "string"},
            "license_id": {"type": "string"},
            "mip_era": {"type": "string"},
            "source_version": {"type": "string"}
        }
    }
}`

const activityIDSchema = `{
    "type": "object",
    "minProperties": 1,
    "additionalProperties": {
        "type": "object",
        "required": ["URL", "long_name"],
        "properties": {
            "URL": {"type": "string"},
            "long_name": {"type": "string"}
        }
    }
}`

const licenseSchema = `{
    "type": "object",
    "minProperties": 1,
    "additionalProperties": {
        "type": "object",
        "required": ["conditions", "license_url", "long_name"],
        "properties": {
            "conditions": {"type": "string"},
            "exceptions_contact": {"type": "string"},
            "license_url": {"type": "string"},
            "long_name": {"type": "string"}
        }
    }
}`

const institutionIDSchema = `{
    "anyOf": [
        {"type": "array", "items": {"type": "string"}},
        {
            "type": "object",
            "required": ["institution_id"],
            "properties": {
                "institution_id": {"type": "array", "items": {"type": "string"}}
            }
        }
    ]
}`

func compileSchema(schema string) (*jsonschema.Schema, error) {
	if !gjson.Valid(schema) {
		return nil, fmt.Errorf("invalid JSON schema")
	}
	compiler := jsonschema.NewCompiler()
	compiler.LoadURL = func(url string) (io.ReadCloser, error) {
		if url == "inline://schema" {
			return io.NopCloser(bytes.NewReader([]byte(schema))), nil
		}
		return nil, fmt.Errorf("unsupported schema ref: %s", url)
	}
	if err := compiler.AddResource("inline://schema", bytes.NewReader([]byte(schema))); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	return compiler.Compile("inline://schema")
}

// checkRawAgainstSchema validates a raw CV document against its schema.
func checkRawAgainstSchema(filename, raw, schema string) error {
	compiled, err := compileSchema(schema)
	if err != nil {
		return ErrCVSchema.MsgErr("could not compile schema for "+filename, err)
	}
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return ErrCVSchema.MsgErr(filename+" is not valid JSON", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return ErrCVSchema.MsgErr(filename+" does not match its schema", err)
	}
	return nil
}
