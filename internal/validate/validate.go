// Package validate checks JSON documents against JSON schemas.
package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/visualtopology/skadi-build/internal/jsonc"
	"github.com/visualtopology/skadi-build/internal/logger"
	"github.com/visualtopology/skadi-build/schemas"
)

// JSONC validates a JSONC file against an embedded schema.
func JSONC(path string, schemaName string) error {
	schema, err := schemas.Compile(schemaName)
	if err != nil {
		return err
	}
	return document(path, schema)
}

// Value validates an already decoded document against an embedded schema.
// name identifies the document in the error.
func Value(name string, instance any, schemaName string) error {
	schema, err := schemas.Compile(schemaName)
	if err != nil {
		return err
	}
	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("%s invalid: %w", name, err)
	}
	return nil
}

// File validates the document at path against the schema file at
// schemaPath. An empty schemaPath selects the embedded package schema.
func File(path, schemaPath string) error {
	var schema *jsonschema.Schema
	if schemaPath == "" {
		s, err := schemas.Compile(schemas.Package)
		if err != nil {
			return err
		}
		schema = s
	} else {
		data, err := os.ReadFile(schemaPath)
		if err != nil {
			return fmt.Errorf("read %s: %w", schemaPath, err)
		}
		s, err := schemas.CompileBytes(filepath.Base(schemaPath), data)
		if err != nil {
			return err
		}
		schema = s
	}
	return document(path, schema)
}

// Valid reports whether the document at path satisfies the schema. Failures
// are logged rather than returned.
func Valid(path, schemaPath string) bool {
	logger.Info("validating %s", path)
	if err := File(path, schemaPath); err != nil {
		logger.Error("validation failed for %s: %v", path, err)
		return false
	}
	logger.Info("validated %s", path)
	return true
}

func document(path string, schema *jsonschema.Schema) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	var instance any
	if err := json.Unmarshal(jsonc.Clean(data), &instance); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("%s invalid: %w", path, err)
	}
	return nil
}
