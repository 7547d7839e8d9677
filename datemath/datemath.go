// Package datemath resolves date expressions used in query bounds: an
// absolute formatted date, or an anchor ("now" or a literal followed by
// "||") with a chain of calendar operations, e.g. "now-1d/d",
// "2015-01-01||+1M/M". The anchor "now" resolves to the caller-supplied
// instant, never to the wall clock, which keeps resolution deterministic.
package datemath

import (
	"strconv"
	"time"

	"github.com/seqmap/seqmap/dateformat"
	"github.com/seqmap/seqmap/schema"
)

type Parser struct {
	format *dateformat.Formatter
	unit   schema.TimeUnit
}

// NewParser builds a resolver bound to a field's format and numeric
// resolution. The numeric resolution only applies to the bare-integer
// anchor fallback, the same escape hatch the value coercer has.
func NewParser(format *dateformat.Formatter, unit schema.TimeUnit) *Parser {
	return &Parser{format: format, unit: unit}
}

// Resolve evaluates the expression against now (epoch milliseconds).
func (p *Parser) Resolve(expr string, now int64) (int64, error) {
	return p.resolve(expr, now, false)
}

// ResolveUpperInclusive evaluates the expression rounding to the end of
// periods instead of the start: a truncated literal maps to the last
// millisecond of its period, and rounding operations ("/d") land on the
// last millisecond instead of the first. Only inclusive upper bounds of
// ranges resolve in this mode.
func (p *Parser) ResolveUpperInclusive(expr string, now int64) (int64, error) {
	return p.resolve(expr, now, true)
}

func (p *Parser) resolve(expr string, now int64, roundUp bool) (int64, error) {
	anchor := now
	math := ""

	if len(expr) >= 3 && expr[:3] == "now" {
		math = expr[3:]
	} else {
		literal := expr
		if i := indexSeparator(expr); i >= 0 {
			literal, math = expr[:i], expr[i+2:]
		}
		var err error
		if anchor, err = p.parseAnchor(literal, roundUp); err != nil {
			return 0, err
		}
	}

	if math == "" {
		return anchor, nil
	}

	mp := mathParser{
		expr: expr,
		off:  len(expr) - len(math),
		data: []rune(math),
	}
	return mp.eval(anchor, roundUp)
}

func indexSeparator(expr string) int {
	for i := 0; i+1 < len(expr); i++ {
		if expr[i] == '|' && expr[i+1] == '|' {
			return i
		}
	}
	return -1
}

// parseAnchor resolves the absolute part: a formatted date, or a bare
// integer taken as a raw timestamp in the field's numeric resolution.
func (p *Parser) parseAnchor(literal string, roundUp bool) (int64, error) {
	var ms int64
	var formatErr error
	if roundUp {
		ms, formatErr = p.format.ParseEndOfPeriod(literal)
	} else {
		ms, formatErr = p.format.Parse(literal)
	}
	if formatErr == nil {
		return ms, nil
	}

	n, numberErr := strconv.ParseInt(literal, 10, 64)
	if numberErr == nil {
		return p.unit.Millis(n), nil
	}

	return 0, &schema.ValueParseError{
		Value:     literal,
		Pattern:   p.format.Name(),
		FormatErr: formatErr,
		NumberErr: numberErr,
	}
}

type mathParser struct {
	expr string // whole expression, for diagnostics
	off  int    // offset of the math part within expr
	data []rune
	pos  int
}

func (mp *mathParser) cur() rune {
	return mp.data[mp.pos]
}

func (mp *mathParser) eof() bool {
	return mp.pos == len(mp.data)
}

func (mp *mathParser) errorAt(pos int, msg string) error {
	return &schema.DateMathParseError{Expr: mp.expr, Pos: mp.off + pos, Msg: msg}
}

func (mp *mathParser) eval(anchor int64, roundUp bool) (int64, error) {
	t := time.UnixMilli(anchor).UTC()

	for !mp.eof() {
		opPos := mp.pos
		op := mp.cur()
		mp.pos++

		var sign int
		switch op {
		case '/':
			sign = 0
		case '+':
			sign = 1
		case '-':
			sign = -1
		default:
			return 0, mp.errorAt(opPos, "operator ["+string(op)+"] not supported")
		}

		num := 1
		numPos := mp.pos
		for !mp.eof() && mp.cur() >= '0' && mp.cur() <= '9' {
			mp.pos++
		}
		if mp.pos > numPos {
			n, err := strconv.Atoi(string(mp.data[numPos:mp.pos]))
			if err != nil {
				return 0, mp.errorAt(numPos, "bad number")
			}
			num = n
		}

		if sign == 0 && num != 1 {
			return 0, mp.errorAt(numPos, "rounding can only be used on single unit types")
		}
		if mp.eof() {
			return 0, mp.errorAt(mp.pos, "truncated expression, expected a unit")
		}

		unitPos := mp.pos
		unit := mp.cur()
		mp.pos++

		var ok bool
		if sign == 0 {
			t, ok = roundFloor(t, unit)
			if ok && roundUp {
				// go to the next whole period and step back one
				// millisecond, landing on its last instant
				t = addUnit(t, 1, unit).Add(-time.Millisecond)
			}
		} else {
			t, ok = addUnitChecked(t, sign*num, unit)
		}
		if !ok {
			return 0, mp.errorAt(unitPos, "unit ["+string(unit)+"] not supported")
		}
	}

	return t.UnixMilli(), nil
}

func roundFloor(t time.Time, unit rune) (time.Time, bool) {
	switch unit {
	case 'y':
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC), true
	case 'M':
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), true
	case 'w':
		// ISO week, Monday start
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return day.AddDate(0, 0, -((int(t.Weekday()) + 6) % 7)), true
	case 'd':
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	case 'h', 'H':
		return t.Truncate(time.Hour), true
	case 'm':
		return t.Truncate(time.Minute), true
	case 's':
		return t.Truncate(time.Second), true
	}
	return t, false
}

func addUnitChecked(t time.Time, n int, unit rune) (time.Time, bool) {
	switch unit {
	case 'y', 'M', 'w', 'd', 'h', 'H', 'm', 's':
		return addUnit(t, n, unit), true
	}
	return t, false
}

func addUnit(t time.Time, n int, unit rune) time.Time {
	switch unit {
	case 'y':
		return addMonths(t, 12*n)
	case 'M':
		return addMonths(t, n)
	case 'w':
		return t.AddDate(0, 0, 7*n)
	case 'd':
		return t.AddDate(0, 0, n)
	case 'h', 'H':
		return t.Add(time.Duration(n) * time.Hour)
	case 'm':
		return t.Add(time.Duration(n) * time.Minute)
	case 's':
		return t.Add(time.Duration(n) * time.Second)
	}
	return t
}

// addMonths clamps to the end of a short target month: Jan 31 plus one
// month is Feb 28, not Mar 3 as AddDate normalization would have it.
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC).AddDate(0, n, 0)
	if days := daysIn(first.Year(), first.Month()); d > days {
		d = days
	}
	return first.AddDate(0, 0, d-1)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
