// Package datefield implements the temporal field of a schema: it
// normalizes date values from documents and queries into canonical epoch
// milliseconds, produces sortable index terms at a precision step, and
// builds the numeric predicates queries execute.
package datefield

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/seqmap/seqmap/consts"
	"github.com/seqmap/seqmap/dateformat"
	"github.com/seqmap/seqmap/datemath"
	"github.com/seqmap/seqmap/schema"
)

// Config is one date field. Everything here is immutable after Build
// except the null value, which Merge may replace. Readers and the merge
// path are serialized by the schema provider.
type Config struct {
	name   string
	format *dateformat.Formatter
	math   *datemath.Parser

	precisionStep uint32
	boost         float64
	timeUnit      schema.TimeUnit

	// fuzzyRaw keeps the configured spelling ("1h" or "2.5") for
	// serialization, fuzzyFactor is its millisecond scale
	fuzzyRaw    string
	fuzzyFactor float64

	parseUpperInclusive bool

	includeInAll    bool
	hasIncludeInAll bool

	nullValue    string
	hasNullValue bool
}

type options struct {
	parseUpperInclusive bool
}

type Option func(*options)

// WithParseUpperInclusive controls whether truncated inclusive upper
// bounds round to the end of their period. On by default, schema-level
// settings may turn it off.
func WithParseUpperInclusive(v bool) Option {
	return func(o *options) {
		o.parseUpperInclusive = v
	}
}

// Build constructs a date field from its definition node. Properties are
// strict: a key Build does not know fails the definition instead of
// being dropped.
func Build(name string, node schema.NodeMap, opts ...Option) (*Config, error) {
	o := options{parseUpperInclusive: true}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Config{
		name:                name,
		format:              dateformat.Default(),
		precisionStep:       consts.DefaultPrecisionStep,
		boost:               consts.DefaultBoost,
		fuzzyFactor:         consts.DefaultFuzzyFactor,
		timeUnit:            schema.Milliseconds,
		parseUpperInclusive: o.parseUpperInclusive,
	}

	for key := range node {
		switch key {
		case "type":
			if s, _ := node.String(key); s != string(schema.KindDate) {
				return nil, configErr(name, key, fmt.Errorf("unexpected type [%s]", s))
			}
		case "format":
			s, ok := node.String(key)
			if !ok {
				return nil, configErr(name, key, errors.New("expected a pattern string"))
			}
			f, err := dateformat.New(s)
			if err != nil {
				return nil, configErr(name, key, err)
			}
			c.format = f
		case "precision_step":
			v, ok := node.Int(key)
			if !ok {
				return nil, configErr(name, key, errors.New("expected an integer"))
			}
			if v < 1 || v > consts.MaxPrecisionStep {
				return nil, configErr(name, key, fmt.Errorf("value [%d] out of range [1..%d]", v, consts.MaxPrecisionStep))
			}
			c.precisionStep = uint32(v)
		case "fuzzy_factor":
			s, ok := node.String(key)
			if !ok {
				return nil, configErr(name, key, errors.New("expected a duration or a number"))
			}
			if d, err := schema.ParseTimeValue(s); err == nil {
				c.fuzzyFactor = float64(d.Milliseconds())
			} else if f, err := strconv.ParseFloat(s, 64); err == nil {
				c.fuzzyFactor = f
			} else {
				return nil, configErr(name, key, fmt.Errorf("[%s] is neither a duration nor a number", s))
			}
			c.fuzzyRaw = s
		case "boost":
			f, ok := node.Float(key)
			if !ok {
				return nil, configErr(name, key, errors.New("expected a number"))
			}
			c.boost = f
		case "null_value":
			if node.IsNull(key) {
				continue
			}
			s, ok := node.String(key)
			if !ok {
				return nil, configErr(name, key, errors.New("expected a scalar"))
			}
			c.nullValue, c.hasNullValue = s, true
		case "numeric_resolution":
			s, ok := node.String(key)
			if !ok {
				return nil, configErr(name, key, errors.New("expected a unit name"))
			}
			u, err := schema.ParseTimeUnit(s)
			if err != nil {
				return nil, configErr(name, key, err)
			}
			c.timeUnit = u
		case "include_in_all":
			b, ok := node.Bool(key)
			if !ok {
				return nil, configErr(name, key, errors.New("expected a boolean"))
			}
			c.includeInAll, c.hasIncludeInAll = b, true
		default:
			return nil, configErr(name, key, errors.New("unknown property"))
		}
	}

	c.math = datemath.NewParser(c.format, c.timeUnit)
	return c, nil
}

func configErr(field, prop string, err error) error {
	return &schema.ConfigError{Field: field, Prop: prop, Err: err}
}

func (c *Config) Name() string {
	return c.name
}

func (c *Config) Kind() schema.FieldKind {
	return schema.KindDate
}

func (c *Config) Format() *dateformat.Formatter {
	return c.format
}

func (c *Config) PrecisionStep() uint32 {
	return c.precisionStep
}

func (c *Config) NullValue() (string, bool) {
	return c.nullValue, c.hasNullValue
}

// Merge folds a redefinition of the field into this one. Only the null
// value is mutable, everything else is fixed at Build and checked for
// compatibility by the schema layer. With simulate set nothing changes.
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

// Serialize renders the definition with only non-default properties, the
// format is always spelled out.
func (c *Config) Serialize() schema.NodeMap {
	node := schema.NodeMap{
		"type":   string(schema.KindDate),
		"format": c.format.Name(),
	}
	if c.precisionStep != consts.DefaultPrecisionStep {
		node["precision_step"] = int(c.precisionStep)
	}
	if c.fuzzyRaw != "" {
		node["fuzzy_factor"] = c.fuzzyRaw
	}
	if c.boost != consts.DefaultBoost {
		node["boost"] = c.boost
	}
	if c.hasNullValue {
		node["null_value"] = c.nullValue
	}
	if c.hasIncludeInAll {
		node["include_in_all"] = c.includeInAll
	}
	if c.timeUnit != schema.Milliseconds {
		node["numeric_resolution"] = c.timeUnit.String()
	}
	return node
}
