// Package vars is the built-in variables table: named, typed cells for
// the field/record separators, record counters, current filename, and
// friends.
package vars

import "rowvm/internal/value"

// Name enumerates the built-in variable identifiers the compiler may
// reference in LoadVar*/StoreVar* opcodes. NF is deliberately absent: it
// is owned by the line engine (reading it forces a field split), not by
// this table.
type Name uint8

const (
	FS Name = iota
	OFS
	RS
	ORS
	SUBSEP
	FILENAME
	NR
	FNR
	RSTART
	RLENGTH
	ARGC
	ARGV // IntMap-kind builtin: ARGV[i] -> the i'th command-line argument
)

// Table holds every built-in variable's current value.
type Table struct {
	fs, ofs, rs, ors, subsep, filename value.Str
	nr, fnr, rstart, rlength, argc     int64
	argv                               value.IntStrMap
}

// New returns a table with AWK's traditional defaults: FS=" ", OFS=" ",
// RS="\n", ORS="\n", SUBSEP="\x1c".
func New() *Table {
	return &Table{
		fs:      value.StrFromString(" "),
		ofs:     value.StrFromString(" "),
		rs:      value.StrFromString("\n"),
		ors:     value.StrFromString("\n"),
		subsep:  value.StrFromString("\x1c"),
		argv:    value.NewIntStrMap(),
		rstart:  0,
		rlength: -1,
	}
}

func (t *Table) FS() value.Str  { return t.fs }
func (t *Table) OFS() value.Str { return t.ofs }
func (t *Table) RS() value.Str  { return t.rs }
func (t *Table) ORS() value.Str { return t.ors }
func (t *Table) SUBSEP() value.Str { return t.subsep }
func (t *Table) Filename() value.Str { return t.filename }
func (t *Table) NR() int64     { return t.nr }
func (t *Table) FNR() int64    { return t.fnr }
func (t *Table) RStart() int64  { return t.rstart }
func (t *Table) RLength() int64 { return t.rlength }
func (t *Table) ARGC() int64    { return t.argc }
func (t *Table) ARGV() value.IntStrMap { return t.argv }

func (t *Table) SetFS(s value.Str)  { t.fs.Release(); t.fs = s.Retain() }
func (t *Table) SetOFS(s value.Str) { t.ofs.Release(); t.ofs = s.Retain() }
func (t *Table) SetRS(s value.Str)  { t.rs.Release(); t.rs = s.Retain() }
func (t *Table) SetORS(s value.Str) { t.ors.Release(); t.ors = s.Retain() }
func (t *Table) SetSUBSEP(s value.Str) { t.subsep.Release(); t.subsep = s.Retain() }
func (t *Table) SetFilename(s value.Str) {
	t.filename.Release()
	t.filename = s.Retain()
}
func (t *Table) SetNR(n int64)      { t.nr = n }
func (t *Table) SetFNR(n int64)     { t.fnr = n }
func (t *Table) SetRStart(n int64)  { t.rstart = n }
func (t *Table) SetRLength(n int64) { t.rlength = n }
func (t *Table) SetARGC(n int64)    { t.argc = n }

// BumpRecordCounters increments NR and FNR together, the usual step
// after reading one record.
func (t *Table) BumpRecordCounters() {
	t.nr++
	t.fnr++
}

// ResetForNewFile resets FNR to 0 and records the new filename, the
// effect NextFile must have before the next NextLine*.
func (t *Table) ResetForNewFile(filename value.Str) {
	t.fnr = 0
	t.SetFilename(filename)
}

// SeedARGV populates ARGC/ARGV from a file list the host process passed
// in. Only the file list is stored, keyed from 0: ARGV[0] is the first
// file, not a program name, and ARGC is the number of files.
func (t *Table) SeedARGV(args []string) {
	t.argv = value.NewIntStrMap()
	for i, a := range args {
		t.argv.Store(int64(i), value.StrFromString(a))
	}
	t.argc = int64(len(args))
}
