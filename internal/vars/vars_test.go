package vars

import (
	"testing"

	"rowvm/internal/value"
)

func TestDefaults(t *testing.T) {
	v := New()
	if v.FS().String() != " " || v.OFS().String() != " " {
		t.Fatalf("got FS=%q OFS=%q, want both \" \"", v.FS().String(), v.OFS().String())
	}
	if v.RS().String() != "\n" || v.ORS().String() != "\n" {
		t.Fatalf("got RS=%q ORS=%q, want both \\n", v.RS().String(), v.ORS().String())
	}
	if v.SUBSEP().String() != "\x1c" {
		t.Fatalf("got SUBSEP=%q", v.SUBSEP().String())
	}
	if v.RLength() != -1 {
		t.Fatalf("got RLENGTH=%d, want -1", v.RLength())
	}
}

func TestBumpRecordCounters(t *testing.T) {
	v := New()
	v.BumpRecordCounters()
	v.BumpRecordCounters()
	if v.NR() != 2 || v.FNR() != 2 {
		t.Fatalf("got NR=%d FNR=%d, want 2,2", v.NR(), v.FNR())
	}
}

func TestResetForNewFileResetsFNROnly(t *testing.T) {
	v := New()
	v.BumpRecordCounters()
	v.BumpRecordCounters()
	v.ResetForNewFile(value.StrFromString("b.txt"))
	if v.FNR() != 0 {
		t.Fatalf("got FNR=%d, want 0", v.FNR())
	}
	if v.NR() != 2 {
		t.Fatalf("got NR=%d, want unchanged 2", v.NR())
	}
	if v.Filename().String() != "b.txt" {
		t.Fatalf("got FILENAME=%q", v.Filename().String())
	}
}

func TestSeedARGV(t *testing.T) {
	v := New()
	v.SeedARGV([]string{"one", "two", "three"})
	if v.ARGC() != 3 {
		t.Fatalf("got ARGC=%d, want 3", v.ARGC())
	}
	if v.ARGV().Lookup(1).String() != "two" {
		t.Fatalf("got ARGV[1]=%q, want two", v.ARGV().Lookup(1).String())
	}
}
