// Package docstream presents one document field's payload as a flat
// stream of tagged tokens. Field extractors consume the stream instead
// of inspecting JSON nodes, so the same state machine serves any
// document parser that can be adapted to tokens.
package docstream

import (
	"strconv"

	"github.com/seqmap/seqmap/util"
)

type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindObjectStart
	KindFieldName
	KindObjectEnd
)

var kindNames = map[Kind]string{
	KindNull:        "null",
	KindNumber:      "number",
	KindString:      "string",
	KindObjectStart: "object_start",
	KindFieldName:   "field_name",
	KindObjectEnd:   "object_end",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Token is one element of a field payload. Data holds the scalar text
// (unquoted) for numbers and strings, and the name for field names.
type Token struct {
	Kind Kind
	Data []byte
}

func (t Token) Text() string {
	return string(t.Data)
}

// Int64 reads a number token, truncating a fractional literal the way
// lenient JSON readers do.
func (t Token) Int64() (int64, error) {
	s := util.ByteToStringUnsafe(t.Data)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

func (t Token) Float64() (float64, error) {
	return strconv.ParseFloat(util.ByteToStringUnsafe(t.Data), 64)
}
