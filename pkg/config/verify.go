package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	validator "github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "https://flowreader.local/config.schema.json"

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{DoNotReference: true, RequiredFromJSONSchemaTags: true}
	return r.Reflect(&Config{})
}

// VerifySchema validates the config against the reflected JSON schema
func VerifySchema(cfg *Config) error {
	sch, err := compileSchema()
	if err != nil {
		return err
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	doc, err := validator.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if err := sch.Validate(doc); err != nil {
		var ve *validator.ValidationError
		if !errors.As(err, &ve) {
			return fmt.Errorf("validate config: %w", err)
		}
		leaf := ve
		for len(leaf.Causes) > 0 {
			leaf = leaf.Causes[0]
		}
		field := strings.Join(leaf.InstanceLocation, ".")
		if field == "" {
			field = "config"
		}
		return fmt.Errorf("%s fails %s: %w", field, strings.Join(leaf.ErrorKind.KeywordPath(), "/"), err)
	}
	return nil
}

func compileSchema() (*validator.Schema, error) {
	data, err := json.Marshal(GenerateSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	doc, err := validator.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	c := validator.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	sch, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return sch, nil
}
