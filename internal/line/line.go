// Package line is the line/field engine: the current record, its lazily
// split fields, field rewrite, and join/escape helpers.
package line

import (
	"strings"

	"rowvm/internal/ir"
	"rowvm/internal/rx"
	"rowvm/internal/value"
	"rowvm/internal/vmerr"
)

// Engine holds the current record as a shared string plus an optional
// cached field vector. The cache is invalidated whenever the record, the
// field separator, or an individual field is written.
type Engine struct {
	record value.Str
	fields []value.Str // nil means "not split yet"
	fs     value.Str
	rx     *rx.Cache
	wanted ir.FieldSet
}

func New(rxCache *rx.Cache) *Engine {
	return &Engine{fs: value.StrFromString(" "), rx: rxCache, wanted: ir.FieldSet{All: true}}
}

// SetFieldSet installs the program's declared column usage, letting
// ensureSplit skip materializing fields the program never reads.
func (e *Engine) SetFieldSet(fs ir.FieldSet) {
	e.wanted = fs
	e.fields = nil
}

// SetRecord replaces the whole record ($0 = v) and invalidates the field
// cache.
func (e *Engine) SetRecord(v value.Str) {
	e.record.Release()
	e.record = v.Retain()
	e.fields = nil
}

// Record returns the current $0.
func (e *Engine) Record() value.Str { return e.record }

// SetFS updates the field separator, invalidating the field cache since
// a later split must use the new separator.
func (e *Engine) SetFS(fs value.Str) {
	e.fs.Release()
	e.fs = fs.Retain()
	e.fields = nil
}

func (e *Engine) splitRaw(record, fs string) ([]string, error) {
	if record == "" {
		return nil, nil
	}
	switch {
	case fs == " ":
		return strings.Fields(record), nil
	case len(fs) == 1:
		return strings.Split(record, fs), nil
	default:
		return e.rx.Split(fs, record)
	}
}

// ensureSplit splits the record into fields on first use. When the
// program's declared FieldSet names only specific columns, a field the
// program never reads is left as a zero value.Str instead of being
// wrapped: the byte offsets still have to be found to know where later
// wanted fields start, but the unused ones cost nothing beyond that.
func (e *Engine) ensureSplit() error {
	if e.fields != nil {
		return nil
	}
	parts, err := e.splitRaw(e.record.String(), e.fs.String())
	if err != nil {
		return err
	}
	fields := make([]value.Str, len(parts))
	for i, p := range parts {
		if e.wanted.Uses(i + 1) {
			fields[i] = value.StrFromString(p)
		}
	}
	e.fields = fields
	return nil
}

// NF forces a split if one hasn't happened yet and returns the field
// count.
func (e *Engine) NF() (int, error) {
	if err := e.ensureSplit(); err != nil {
		return 0, err
	}
	return len(e.fields), nil
}

// GetColumn implements $k: k=0 is the whole record, k>=1 is a (possibly
// lazily split) field, empty string if k>NF. Negative k is a usage
// error.
func (e *Engine) GetColumn(k int) (value.Str, error) {
	if k < 0 {
		return value.Str{}, vmerr.New(vmerr.Invariant, "negative field index")
	}
	if k == 0 {
		return e.record, nil
	}
	if err := e.ensureSplit(); err != nil {
		return value.Str{}, err
	}
	if k > len(e.fields) {
		return value.Str{}, nil
	}
	return e.fields[k-1], nil
}

// SetColumn implements $k = v. k=0 replaces the whole record outright;
// k>=1 extends the field cache with empty strings as needed, writes the
// field, then rebuilds $0 by joining with ofs.
func (e *Engine) SetColumn(k int, v value.Str, ofs value.Str) error {
	if k < 0 {
		return vmerr.New(vmerr.Invariant, "negative field index")
	}
	if k == 0 {
		e.SetRecord(v)
		return nil
	}
	if err := e.ensureSplit(); err != nil {
		return err
	}
	for len(e.fields) < k {
		e.fields = append(e.fields, value.Str{})
	}
	e.fields[k-1].Release()
	e.fields[k-1] = v.Retain()
	e.rebuild(ofs)
	return nil
}

func (e *Engine) rebuild(ofs value.Str) {
	parts := make([]string, len(e.fields))
	for i, f := range e.fields {
		parts[i] = f.String()
	}
	e.record.Release()
	e.record = value.StrFromString(strings.Join(parts, ofs.String()))
}

// clampRange clamps a 1-based inclusive [s, e] column range to [1, NF],
// reporting whether any fields remain in range.
func clampRange(s, end, nf int) (int, int, bool) {
	if s < 1 {
		s = 1
	}
	if end > nf {
		end = nf
	}
	if s > end {
		return 0, 0, false
	}
	return s, end, true
}

// JoinColumns joins fields s..e (1-based, clamped to [1, NF]) with sep,
// optionally mapping each field through escape first.
func (e *Engine) JoinColumns(s, end int, sep value.Str, escape func(value.Str) value.Str) (value.Str, error) {
	if err := e.ensureSplit(); err != nil {
		return value.Str{}, err
	}
	lo, hi, ok := clampRange(s, end, len(e.fields))
	if !ok {
		return value.Str{}, nil
	}
	parts := make([]string, 0, hi-lo+1)
	for _, f := range e.fields[lo-1 : hi] {
		if escape != nil {
			f = escape(f)
		}
		parts = append(parts, f.String())
	}
	return value.StrFromString(strings.Join(parts, sep.String())), nil
}

// JoinCSV is JoinColumns with "," and CSV escaping.
func (e *Engine) JoinCSV(s, end int) (value.Str, error) {
	return e.JoinColumns(s, end, value.StrFromString(","), value.EscapeCSV)
}

// JoinTSV is JoinColumns with "\t" and TSV escaping.
func (e *Engine) JoinTSV(s, end int) (value.Str, error) {
	return e.JoinColumns(s, end, value.StrFromString("\t"), value.EscapeTSV)
}
