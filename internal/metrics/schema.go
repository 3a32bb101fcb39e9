// internal/metrics/schema.go
package metrics

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// requiredFieldsSchema only constrains the four headline fields. Optional
// sections are decoded leniently and unknown keys are allowed.
var requiredFieldsSchema = map[string]any{
	"type":     "object",
	"required": []string{"model_name", "MAE_days", "RMSE_days", "R2"},
	"properties": map[string]any{
		"model_name": map[string]any{"type": "string"},
		"MAE_days":   map[string]any{"type": "number", "minimum": 0},
		"RMSE_days":  map[string]any{"type": "number", "minimum": 0},
		"R2":         map[string]any{"type": "number"},
	},
}

var compiledSchema = mustCompileSchema(requiredFieldsSchema)

func mustCompileSchema(def map[string]any) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(def))
	if err != nil {
		panic(fmt.Sprintf("compile metrics schema: %v", err))
	}
	return schema
}

// ValidationError lists every schema violation found in an artifact.
type ValidationError struct {
	Path     string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("metrics artifact %s failed validation: %s", e.Path, strings.Join(e.Problems, "; "))
}

// Unwrap lets errors.Is match ErrArtifactMalformed.
func (e *ValidationError) Unwrap() error {
	return ErrArtifactMalformed
}

func validateRequired(path string, doc map[string]any) error {
	result, err := compiledSchema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: schema validation of %s: %v", ErrArtifactMalformed, path, err)
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return &ValidationError{Path: path, Problems: problems}
}
