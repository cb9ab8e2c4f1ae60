package value

import "testing"

func TestMapSnapshotIgnoresLaterMutation(t *testing.T) {
	m := NewStrIntMap()
	m.Store(StrFromString("a"), 1)
	m.Store(StrFromString("b"), 2)
	m.Store(StrFromString("c"), 3)

	it := m.Iter()

	m.Delete(StrFromString("b"))
	m.Store(StrFromString("d"), 4)

	var got []string
	for it.HasNext() {
		got = append(got, it.Next())
	}
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("snapshot length = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("snapshot[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMapMissingKeyIsZeroValue(t *testing.T) {
	ii := NewIntIntMap()
	if ii.Lookup(99) != 0 {
		t.Fatal("missing int->int key must read back 0")
	}
	is := NewIntStrMap()
	if is.Lookup(99).Len() != 0 {
		t.Fatal("missing int->str key must read back empty string")
	}
}

func TestMapLenTracksCardinality(t *testing.T) {
	m := NewIntFloatMap()
	m.Store(1, 1.5)
	m.Store(2, 2.5)
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	m.Delete(1)
	if m.Len() != 1 {
		t.Fatalf("Len() after delete = %d, want 1", m.Len())
	}
}

func TestStrValuedMapOverwriteKeepsLatestValue(t *testing.T) {
	m := NewStrStrMap()
	k := StrFromString("k")
	m.Store(k, StrFromString("first"))
	m.Store(k, StrFromString("second"))
	if got := m.Lookup(k).String(); got != "second" {
		t.Fatalf("Lookup = %q, want %q", got, "second")
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
}
