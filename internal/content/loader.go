package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema/content.schema.json
var schemaJSON []byte

const schemaURL = "content.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func packSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("adding content schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// LoadFile reads a YAML (or JSON) content pack and builds a registry.
func LoadFile(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	reg, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing content %s: %w", path, err)
	}
	slog.Info("loaded content pack",
		"path", path,
		"items", len(reg.items),
		"menus", len(reg.menus),
		"pieces", len(reg.pieces),
		"recipes", len(reg.recipes))
	return reg, nil
}

// Parse validates raw against the content schema and builds a registry.
func Parse(raw []byte) (*Registry, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	var p Pack
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decoding pack: %w", err)
	}
	return p.Build()
}

// Validate checks raw YAML/JSON against the embedded content schema.
func Validate(raw []byte) error {
	s, err := packSchema()
	if err != nil {
		return err
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decoding pack: %w", err)
	}
	// Schema validation works on JSON values.
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("converting pack to json: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("converting pack to json: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("validating pack: %w", err)
	}
	return nil
}
