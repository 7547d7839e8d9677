// Package keywordfield implements the verbatim-string field of a schema.
// A value indexes as a single term, optionally case folded and capped in
// size.
package keywordfield

import (
	"errors"
	"fmt"

	"github.com/seqmap/seqmap/consts"
	"github.com/seqmap/seqmap/schema"
)

type Config struct {
	name            string
	caseSensitive   bool
	partialIndexing bool
	maxTokenSize    int

	nullValue    string
	hasNullValue bool
}

// Build constructs a keyword field from its definition node, rejecting
// unknown properties.
func Build(name string, node schema.NodeMap) (*Config, error) {
	c := &Config{
		name:          name,
		caseSensitive: true,
		maxTokenSize:  consts.DefaultMaxTokenSize,
	}

	for key := range node {
		switch key {
		case "type":
			if s, _ := node.String(key); s != string(schema.KindKeyword) {
				return nil, configErr(name, key, fmt.Errorf("unexpected type [%s]", s))
			}
		case "case_sensitive":
			b, ok := node.Bool(key)
			if !ok {
				return nil, configErr(name, key, errors.New("expected a boolean"))
			}
			c.caseSensitive = b
		case "partial_indexing":
			b, ok := node.Bool(key)
			if !ok {
				return nil, configErr(name, key, errors.New("expected a boolean"))
			}
			c.partialIndexing = b
		case "max_token_size":
			v, ok := node.Int(key)
			if !ok {
				return nil, configErr(name, key, errors.New("expected an integer"))
			}
			if v < 1 {
				return nil, configErr(name, key, fmt.Errorf("value [%d] must be positive", v))
			}
			c.maxTokenSize = v
		case "null_value":
			if node.IsNull(key) {
				continue
			}
			s, ok := node.String(key)
			if !ok {
				return nil, configErr(name, key, errors.New("expected a scalar"))
			}
			c.nullValue, c.hasNullValue = s, true
		default:
			return nil, configErr(name, key, errors.New("unknown property"))
		}
	}
	return c, nil
}

func configErr(field, prop string, err error) error {
	return &schema.ConfigError{Field: field, Prop: prop, Err: err}
}

func (c *Config) Name() string {
	return c.name
}

func (c *Config) Kind() schema.FieldKind {
	return schema.KindKeyword
}

func (c *Config) NullValue() (string, bool) {
	return c.nullValue, c.hasNullValue
}

func (c *Config) Merge(incoming schema.Field, simulate bool) error {
	other, ok := incoming.(*Config)
	if !ok {
		return &schema.IncompatibleMergeError{Field: c.name, Current: c.Kind(), Incoming: incoming.Kind()}
	}
	if simulate {
		return nil
	}
	c.nullValue, c.hasNullValue = other.nullValue, other.hasNullValue
	return nil
}

func (c *Config) Serialize() schema.NodeMap {
	node := schema.NodeMap{
		"type": string(schema.KindKeyword),
	}
	if !c.caseSensitive {
		node["case_sensitive"] = false
	}
	if c.partialIndexing {
		node["partial_indexing"] = true
	}
	if c.maxTokenSize != consts.DefaultMaxTokenSize {
		node["max_token_size"] = c.maxTokenSize
	}
	if c.hasNullValue {
		node["null_value"] = c.nullValue
	}
	return node
}
