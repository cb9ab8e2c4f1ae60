package line

import (
	"testing"

	"rowvm/internal/ir"
	"rowvm/internal/rx"
	"rowvm/internal/value"
)

func newEngine(record, fs string) *Engine {
	e := New(rx.New())
	e.SetFS(value.StrFromString(fs))
	e.SetRecord(value.StrFromString(record))
	return e
}

func TestNFWithWhitespaceFS(t *testing.T) {
	e := newEngine("  a  b   c ", " ")
	nf, err := e.NF()
	if err != nil {
		t.Fatalf("NF: %v", err)
	}
	if nf != 3 {
		t.Fatalf("got NF=%d, want 3", nf)
	}
}

func TestGetColumnZeroIsWholeRecord(t *testing.T) {
	e := newEngine("a b c", " ")
	v, err := e.GetColumn(0)
	if err != nil {
		t.Fatalf("GetColumn: %v", err)
	}
	if v.String() != "a b c" {
		t.Fatalf("got %q", v.String())
	}
}

func TestGetColumnBeyondNFIsEmpty(t *testing.T) {
	e := newEngine("a b", " ")
	v, err := e.GetColumn(5)
	if err != nil {
		t.Fatalf("GetColumn: %v", err)
	}
	if v.Len() != 0 {
		t.Fatalf("got %q, want empty", v.String())
	}
}

func TestGetColumnNegativeIsError(t *testing.T) {
	e := newEngine("a b", " ")
	if _, err := e.GetColumn(-1); err == nil {
		t.Fatal("expected an error for a negative field index")
	}
}

func TestSetColumnRebuildsRecord(t *testing.T) {
	e := newEngine("a b c", " ")
	if err := e.SetColumn(2, value.StrFromString("X"), value.StrFromString(" ")); err != nil {
		t.Fatalf("SetColumn: %v", err)
	}
	if e.Record().String() != "a X c" {
		t.Fatalf("got %q", e.Record().String())
	}
}

func TestSetColumnExtendsFields(t *testing.T) {
	e := newEngine("a b", " ")
	if err := e.SetColumn(4, value.StrFromString("d"), value.StrFromString(",")); err != nil {
		t.Fatalf("SetColumn: %v", err)
	}
	if e.Record().String() != "a,b,,d" {
		t.Fatalf("got %q", e.Record().String())
	}
}

func TestSingleCharFSSplitsLiterally(t *testing.T) {
	e := newEngine("a,,b", ",")
	nf, err := e.NF()
	if err != nil {
		t.Fatalf("NF: %v", err)
	}
	if nf != 3 {
		t.Fatalf("got NF=%d, want 3 (empty middle field preserved)", nf)
	}
}

func TestRegexFSSplits(t *testing.T) {
	e := newEngine("a1b22c", "[0-9]+")
	nf, err := e.NF()
	if err != nil {
		t.Fatalf("NF: %v", err)
	}
	if nf != 3 {
		t.Fatalf("got NF=%d, want 3", nf)
	}
}

func TestJoinCSVEscapesFields(t *testing.T) {
	e := newEngine("a,b c", " ")
	// fields after whitespace split: "a,b" and "c"
	out, err := e.JoinCSV(1, 2)
	if err != nil {
		t.Fatalf("JoinCSV: %v", err)
	}
	if out.String() != `"a,b",c` {
		t.Fatalf("got %q", out.String())
	}
}

func TestFieldSetSkipsUnusedColumns(t *testing.T) {
	e := newEngine("a b c", " ")
	e.SetFieldSet(ir.FieldSet{Cols: map[int]bool{2: true}})
	v, err := e.GetColumn(2)
	if err != nil {
		t.Fatalf("GetColumn(2): %v", err)
	}
	if v.String() != "b" {
		t.Fatalf("got $2=%q, want b", v.String())
	}
	v, err = e.GetColumn(1)
	if err != nil {
		t.Fatalf("GetColumn(1): %v", err)
	}
	if v.Len() != 0 {
		t.Fatalf("got $1=%q, want empty (column not in FieldSet)", v.String())
	}
}

func TestEmptyRecordHasZeroFields(t *testing.T) {
	e := newEngine("", " ")
	nf, err := e.NF()
	if err != nil {
		t.Fatalf("NF: %v", err)
	}
	if nf != 0 {
		t.Fatalf("got NF=%d, want 0", nf)
	}
}
