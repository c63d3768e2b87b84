// Package schemas validates CV JSON against the schemas embedded in the binary.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	rootschemas "github.com/jonathan/cv-builder/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// Kind selects one of the embedded schemas.
type Kind string

const (
	// Snapshot is the persisted form written by every storage backend.
	Snapshot Kind = "cv_snapshot"
	// Import is a parsed document given to the import command.
	Import Kind = "cv_import"
)

var sources = map[Kind]string{
	Snapshot: rootschemas.CVSnapshot,
	Import:   rootschemas.CVImport,
}

// ValidationError lists every schema violation found in a document.
type ValidationError struct {
	Kind   Kind
	Errors []FieldError
}

// FieldError is one violation, located by its JSON field path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s validation failed:\n", ve.Kind)
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// SchemaLoadError means an embedded schema does not compile.
type SchemaLoadError struct {
	Kind  Kind
	Cause error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Kind, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

type compiled struct {
	once   sync.Once
	schema *gojsonschema.Schema
	err    error
}

var cache = map[Kind]*compiled{
	Snapshot: {},
	Import:   {},
}

func schemaFor(kind Kind) (*gojsonschema.Schema, error) {
	c, ok := cache[kind]
	if !ok {
		return nil, &SchemaLoadError{Kind: kind, Cause: fmt.Errorf("unknown schema")}
	}
	c.once.Do(func() {
		c.schema, c.err = gojsonschema.NewSchema(gojsonschema.NewStringLoader(sources[kind]))
		if c.err != nil {
			c.err = &SchemaLoadError{Kind: kind, Cause: c.err}
		}
	})
	return c.schema, c.err
}

// Validate checks raw JSON against the schema of the given kind.
func Validate(kind Kind, raw []byte) error {
	schema, err := schemaFor(kind)
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("failed to read %s JSON: %w", kind, err)
	}
	return resultError(kind, result)
}

// ValidateSnapshot checks raw snapshot JSON against the CV snapshot schema.
func ValidateSnapshot(raw []byte) error {
	return Validate(Snapshot, raw)
}

// ValidateImport checks a document handed to the import command.
func ValidateImport(raw []byte) error {
	return Validate(Import, raw)
}

func resultError(kind Kind, result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Kind:   kind,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
