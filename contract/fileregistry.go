package contract

import (
	"fmt"
	"os"

	"github.com/uber-go/mapdecode"
	"gopkg.in/yaml.v2"
)

// recordDecl is one entry of a contract file, decoded from YAML via an
// intermediate map[string]interface{} and mapdecode — the same
// decode-from-loosely-typed-map idiom go.uber.org/yarpc/internal/config
// uses for transport configuration (DecodeInto wraps mapdecode.Decode).
type recordDecl struct {
	Name   string   `mapdecode:"name"`
	Fields []string `mapdecode:"fields"`
}

type fileSchema struct {
	Records []recordDecl `mapdecode:"records"`
}

// FileRegistry is a Registry backed by a static YAML declaration of
// record schemas, e.g.:
//
//	records:
//	  - name: point
//	    fields: [x, y]
//	  - name: point
//	    fields: [x, y, z]
//
// Two entries may share a Name at different arities, matching spec.md
// §4.4's (record_name, arity) keying.
type FileRegistry struct {
	byKey map[RecordKey][]string
	keys  []RecordKey
}

// LoadFileRegistry reads and parses a YAML contract file.
func LoadFileRegistry(path string) (*FileRegistry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("contract: read %q: %w", path, err)
	}
	return ParseFileRegistry(raw)
}

// ParseFileRegistry parses a YAML contract document already read into
// memory.
func ParseFileRegistry(yamlDoc []byte) (*FileRegistry, error) {
	var generic map[string]interface{}
	if err := yaml.Unmarshal(yamlDoc, &generic); err != nil {
		return nil, fmt.Errorf("contract: parse yaml: %w", err)
	}

	var schema fileSchema
	if err := mapdecode.Decode(&schema, generic); err != nil {
		return nil, fmt.Errorf("contract: decode schema: %w", err)
	}

	r := &FileRegistry{byKey: make(map[RecordKey][]string, len(schema.Records))}
	for _, decl := range schema.Records {
		key := RecordKey{Name: decl.Name, Arity: len(decl.Fields)}
		if _, dup := r.byKey[key]; dup {
			return nil, fmt.Errorf("contract: duplicate record %s/%d", decl.Name, key.Arity)
		}
		r.byKey[key] = append([]string(nil), decl.Fields...)
		r.keys = append(r.keys, key)
	}
	return r, nil
}

func (r *FileRegistry) Records() []RecordKey {
	return append([]RecordKey(nil), r.keys...)
}

func (r *FileRegistry) RecordFields(name string, arity int) ([]string, bool) {
	fields, ok := r.byKey[RecordKey{Name: name, Arity: arity}]
	if !ok {
		return nil, false
	}
	return append([]string(nil), fields...), true
}
