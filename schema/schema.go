// Package schema defines the field vocabulary shared by every field kind:
// the Field interface, loosely typed definition nodes, time units and the
// error taxonomy of the mapping layer.
package schema

// FieldKind names a concrete field implementation.
type FieldKind string

const (
	KindDate    FieldKind = "date"
	KindKeyword FieldKind = "keyword"
)

// Field is one named field of a schema. Implementations keep their
// configuration immutable after construction except for the parts their
// Merge explicitly allows to change.
type Field interface {
	Name() string
	Kind() FieldKind

	// Merge folds a redefinition of the same field into this one.
	// Kinds must match, otherwise IncompatibleMergeError is returned.
	// With simulate set the compatibility check runs but nothing is
	// mutated. Callers serialize Merge against readers themselves,
	// see Provider.
	Merge(incoming Field, simulate bool) error

	// Serialize renders the definition back into a node map,
	// emitting only non-default properties.
	Serialize() NodeMap
}

// Merge is the schema-update entry point: it validates and applies a field
// redefinition. It is a plain dispatch, the kind check lives in the field
// implementations so each can name its own kind in the error.
func Merge(target, incoming Field, simulate bool) error {
	return target.Merge(incoming, simulate)
}
