package rx

import "testing"

func TestIsMatch(t *testing.T) {
	c := New()
	ok, err := c.IsMatch(`[0-9]+`, "abc123")
	if err != nil {
		t.Fatalf("IsMatch: %v", err)
	}
	if !ok {
		t.Fatal("expected match")
	}
}

func TestMatchLocNoMatch(t *testing.T) {
	c := New()
	start, length, err := c.MatchLoc(`z+`, "abc")
	if err != nil {
		t.Fatalf("MatchLoc: %v", err)
	}
	if start != 0 || length != -1 {
		t.Fatalf("got start=%d length=%d, want 0,-1", start, length)
	}
}

func TestMatchLocFound(t *testing.T) {
	c := New()
	start, length, err := c.MatchLoc(`b+`, "abbbc")
	if err != nil {
		t.Fatalf("MatchLoc: %v", err)
	}
	if start != 2 || length != 3 {
		t.Fatalf("got start=%d length=%d, want 2,3", start, length)
	}
}

func TestSubstFirstExpandsAmpersand(t *testing.T) {
	c := New()
	out, count, err := c.SubstFirst(`[0-9]+`, `<&>`, "x42y42")
	if err != nil {
		t.Fatalf("SubstFirst: %v", err)
	}
	if count != 1 || out != "x<42>y42" {
		t.Fatalf("got %q count=%d", out, count)
	}
}

func TestSubstFirstLiteralAmpersand(t *testing.T) {
	c := New()
	out, count, err := c.SubstFirst(`[0-9]+`, `\&`, "x42y")
	if err != nil {
		t.Fatalf("SubstFirst: %v", err)
	}
	if count != 1 || out != "x&y" {
		t.Fatalf("got %q count=%d", out, count)
	}
}

func TestSubstAllReplacesEveryMatch(t *testing.T) {
	c := New()
	out, count, err := c.SubstAll(`[0-9]+`, `<&>`, "a1b22c333")
	if err != nil {
		t.Fatalf("SubstAll: %v", err)
	}
	if count != 3 || out != "a<1>b<22>c<333>" {
		t.Fatalf("got %q count=%d", out, count)
	}
}

func TestSplit(t *testing.T) {
	c := New()
	parts, err := c.Split(`,\s*`, "a, b,c")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(parts) != len(want) {
		t.Fatalf("got %v, want %v", parts, want)
	}
	for i := range want {
		if parts[i] != want[i] {
			t.Fatalf("got %v, want %v", parts, want)
		}
	}
}

func TestBadPatternIsRegexCompileError(t *testing.T) {
	c := New()
	_, err := c.IsMatch(`[`, "x")
	if err == nil {
		t.Fatal("expected a compile error")
	}
}

func TestCacheReusesCompiledPattern(t *testing.T) {
	c := New()
	if _, err := c.IsMatch(`a+`, "aaa"); err != nil {
		t.Fatalf("IsMatch: %v", err)
	}
	if len(c.compiled) != 1 {
		t.Fatalf("expected 1 cached pattern, got %d", len(c.compiled))
	}
	if _, err := c.IsMatch(`a+`, "bbb"); err != nil {
		t.Fatalf("IsMatch: %v", err)
	}
	if len(c.compiled) != 1 {
		t.Fatalf("expected pattern reuse, cache grew to %d", len(c.compiled))
	}
}
