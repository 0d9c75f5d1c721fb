// Package schema provides utilities for working with JSON schemas.
package schema

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/invopop/jsonschema"
	"github.com/yeisme/yieldcli/pkg/configs"
)

// GenConfigSchema generates the JSON schema for the entire application configuration and writes it to the provided writer.
func GenConfigSchema(out io.Writer) error {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               "mapstructure",
	}
	configSchema := reflector.Reflect(configs.Config{})
	schemaJSON, err := json.MarshalIndent(configSchema, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(out, string(schemaJSON))
	return nil
}
