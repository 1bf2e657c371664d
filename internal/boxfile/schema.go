package boxfile

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

// ErrSchema indicates a Boxfile that does not match the schema.
var ErrSchema = errors.New("boxfile does not match schema")

var schemaLoader = gojsonschema.NewStringLoader(schemaJSON)

// ValidateSchema validates a decoded document against the Boxfile schema.
func ValidateSchema(doc map[string]any) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validate schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		problems = append(problems, resultErr.String())
	}
	return fmt.Errorf("%w:\n  %s", ErrSchema, strings.Join(problems, "\n  "))
}
