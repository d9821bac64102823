// Package schemafile loads schema declarations from JSON or YAML files
// so a registry can be assembled from a directory of declarations.
package schemafile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/attestia/vcschema/schema"
)

// declaration is the file-level shape: an id plus either an enum or a
// properties bag.
type declaration struct {
	ID         string `json:"id" yaml:"id"`
	Type       string `json:"type" yaml:"type"`
	Enum       []any  `json:"enum" yaml:"enum"`
	Properties any    `json:"properties" yaml:"properties"`
}

// Load reads one schema file, or every .json/.yaml/.yml file in a
// directory, and returns the parsed schemas. Ids must be unique across
// the loaded set.
func Load(path string) ([]*schema.Schema, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	if !info.IsDir() {
		s, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		return []*schema.Schema{s}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !supportedFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	var schemas []*schema.Schema
	ids := map[string]string{}
	for _, name := range names {
		file := filepath.Join(path, name)
		s, err := LoadFile(file)
		if err != nil {
			return nil, err
		}
		if previous, dup := ids[s.ID()]; dup {
			return nil, fmt.Errorf("schemafile: %s: schema id %q already declared in %s", file, s.ID(), previous)
		}
		ids[s.ID()] = file
		schemas = append(schemas, s)
	}
	if len(schemas) == 0 {
		return nil, fmt.Errorf("schemafile: no schema files in %s", path)
	}
	return schemas, nil
}

// LoadFile reads one schema declaration. A missing id falls back to the
// file's stem.
func LoadFile(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	var decl declaration
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &decl); err != nil {
			return nil, fmt.Errorf("schemafile: %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &decl); err != nil {
			return nil, fmt.Errorf("schemafile: %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("schemafile: %s: unsupported extension", path)
	}
	id := decl.ID
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if len(decl.Enum) > 0 {
		s, err := schema.NewEnum(id, decl.Enum, decl.Type)
		if err != nil {
			return nil, fmt.Errorf("schemafile: %s: %w", path, err)
		}
		return s, nil
	}
	if decl.Properties == nil {
		return nil, fmt.Errorf("schemafile: %s: declaration needs properties or enum", path)
	}
	bag, err := decodeBag(decl.Properties)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %s: %w", path, err)
	}
	s, err := schema.New(id, bag)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %s: %w", path, err)
	}
	return s, nil
}

// decodeBag round-trips the raw properties value through the JSON codec
// so the property model's own decoding rules apply to YAML input too.
func decodeBag(raw any) (schema.Bag, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var bag schema.Bag
	if err := json.Unmarshal(data, &bag); err != nil {
		return nil, err
	}
	return bag, nil
}

func supportedFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
