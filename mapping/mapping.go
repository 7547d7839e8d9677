// Package mapping loads field schemas from YAML files and serves them to
// the indexing and query layers, picking up file changes at runtime.
package mapping

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v2"

	"github.com/seqmap/seqmap/datefield"
	"github.com/seqmap/seqmap/keywordfield"
	"github.com/seqmap/seqmap/schema"
)

type schemaFile struct {
	Settings struct {
		DateParseUpperInclusive *bool `yaml:"date_parse_upper_inclusive"`
	} `yaml:"settings"`
	Mapping []map[any]any `yaml:"mapping-list"`
}

// Schema is the set of built fields of one index, keyed by name.
type Schema struct {
	fields map[string]schema.Field
}

func ReadSchema(data []byte) (*Schema, error) {
	var file schemaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}
	if len(file.Mapping) == 0 {
		return nil, errors.New("invalid schema provided")
	}

	var dateOpts []datefield.Option
	if v := file.Settings.DateParseUpperInclusive; v != nil {
		dateOpts = append(dateOpts, datefield.WithParseUpperInclusive(*v))
	}

	s := &Schema{fields: make(map[string]schema.Field, len(file.Mapping))}
	for _, item := range file.Mapping {
		name, node, err := itemNode(item)
		if err != nil {
			return nil, err
		}
		if _, ok := s.fields[name]; ok {
			return nil, fmt.Errorf("duplicate field in schema: %s", name)
		}
		f, err := buildField(name, node, dateOpts)
		if err != nil {
			return nil, err
		}
		s.fields[name] = f
	}
	return s, nil
}

// itemNode splits one mapping-list entry into the field name and its
// definition node. YAML hands back untyped keys, only flat string-keyed
// scalars are accepted.
func itemNode(item map[any]any) (string, schema.NodeMap, error) {
	var name string
	node := make(schema.NodeMap, len(item))
	for k, v := range item {
		key, ok := k.(string)
		if !ok {
			return "", nil, fmt.Errorf("bad key [%v] in mapping item", k)
		}
		if key == "name" {
			s, ok := v.(string)
			if !ok || s == "" {
				return "", nil, errors.New("field name must be a non-empty string")
			}
			name = s
			continue
		}
		switch v.(type) {
		case nil, string, bool, int, int64, float64:
			node[key] = v
		default:
			return "", nil, fmt.Errorf("property [%s] must be a scalar", key)
		}
	}
	if name == "" {
		return "", nil, errors.New("mapping item without a name")
	}
	return name, node, nil
}

func buildField(name string, node schema.NodeMap, dateOpts []datefield.Option) (schema.Field, error) {
	kind, _ := node.String("type")
	switch schema.FieldKind(kind) {
	case schema.KindDate:
		return datefield.Build(name, node, dateOpts...)
	case schema.KindKeyword:
		return keywordfield.Build(name, node)
	}
	return nil, &schema.ConfigError{Field: name, Prop: "type", Err: fmt.Errorf("unknown field type [%s]", kind)}
}

func (s *Schema) Len() int {
	return len(s.fields)
}

func (s *Schema) Field(name string) (schema.Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Date returns the field only if it is a date field.
func (s *Schema) Date(name string) (*datefield.Config, bool) {
	f, ok := s.fields[name].(*datefield.Config)
	return f, ok
}

// Keyword returns the field only if it is a keyword field.
func (s *Schema) Keyword(name string) (*keywordfield.Config, bool) {
	f, ok := s.fields[name].(*keywordfield.Config)
	return f, ok
}

func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge folds the incoming schema into this one: new fields are added,
// existing ones merge field-wise. With simulate set nothing changes and
// every incompatibility is reported at once.
func (s *Schema) Merge(incoming *Schema, simulate bool) error {
	var errs error
	for _, name := range incoming.Names() {
		inField := incoming.fields[name]
		cur, ok := s.fields[name]
		if !ok {
			if !simulate {
				s.fields[name] = inField
			}
			continue
		}
		errs = multierr.Append(errs, schema.Merge(cur, inField, simulate))
	}
	return errs
}

// Serialize renders every field definition the way it would be written
// back to a schema file.
func (s *Schema) Serialize() map[string]schema.NodeMap {
	out := make(map[string]schema.NodeMap, len(s.fields))
	for name, f := range s.fields {
		out[name] = f.Serialize()
	}
	return out
}

// RawSchema caches the serialized schema as JSON, handed out to clients
// verbatim.
type RawSchema struct {
	data []byte
}

func NewRawSchema(s *Schema) *RawSchema {
	b, err := json.Marshal(s.Serialize())
	if err != nil {
		panic(fmt.Errorf("BUG: can't marshal schema: %s", err))
	}
	return &RawSchema{data: b}
}

func (r *RawSchema) Bytes() []byte {
	return r.data
}
