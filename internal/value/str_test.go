package value

import "testing"

func TestLenMatchesBytes(t *testing.T) {
	for _, s := range []string{"", "short", "this one runs well past the small-string capacity"} {
		v := StrFromString(s)
		if v.Len() != len(s) {
			t.Fatalf("Len(%q) = %d, want %d", s, v.Len(), len(s))
		}
	}
}

func TestConcatThenSubstrRoundTrips(t *testing.T) {
	a := StrFromString("hello ")
	b := StrFromString("world, this tail pushes past the inline small-string capacity")
	c := Concat(a, b)
	got := Substr(c, 1, a.Len())
	if got.String() != a.String() {
		t.Fatalf("Substr(Concat(a,b), 1, len(a)) = %q, want %q", got.String(), a.String())
	}
}

func TestSubstrClamping(t *testing.T) {
	s := StrFromString("abcdef")
	cases := []struct {
		l, r int
		want string
	}{
		{1, 6, "abcdef"},
		{0, 3, "abc"},
		{4, 100, "def"},
		{5, 3, ""},
		{7, 9, ""},
	}
	for _, c := range cases {
		if got := Substr(s, c.l, c.r).String(); got != c.want {
			t.Fatalf("Substr(%q, %d, %d) = %q, want %q", s.String(), c.l, c.r, got, c.want)
		}
	}
}

func TestSubstrIndex(t *testing.T) {
	s := StrFromString("banana")
	if got := SubstrIndex(s, StrFromString("nan")); got != 3 {
		t.Fatalf("SubstrIndex = %d, want 3", got)
	}
	if got := SubstrIndex(s, StrFromString("xyz")); got != 0 {
		t.Fatalf("SubstrIndex(missing) = %d, want 0", got)
	}
}

func TestIntStrRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 42, -9223372036854775808, 9223372036854775807} {
		if got := StrToInt(IntToStr(n)); got != n {
			t.Fatalf("StrToInt(IntToStr(%d)) = %d", n, got)
		}
	}
}

func TestFloatStrRoundTrip(t *testing.T) {
	for _, f := range []float64{0, 1, -1, 3.5, 1e10, -0.000125} {
		if got := StrToFloat(FloatToStr(f)); got != f {
			t.Fatalf("StrToFloat(FloatToStr(%v)) = %v", f, got)
		}
	}
}

func TestStrToIntParseFailureIsZero(t *testing.T) {
	if got := StrToInt(StrFromString("not a number")); got != 0 {
		t.Fatalf("StrToInt(garbage) = %d, want 0", got)
	}
}

func TestHexStrToInt(t *testing.T) {
	if got := HexStrToInt(StrFromString("0xFF")); got != 255 {
		t.Fatalf("HexStrToInt(0xFF) = %d, want 255", got)
	}
	if got := HexStrToInt(StrFromString("ff")); got != 255 {
		t.Fatalf("HexStrToInt(ff) = %d, want 255", got)
	}
}

func TestEqualAndCompare(t *testing.T) {
	a := StrFromString("same bytes, independently built")
	b := StrFromBytes([]byte("same bytes, independently built"))
	if !Equal(a, b) {
		t.Fatal("identical-byte strings must compare equal")
	}
	if Compare(StrFromString("a"), StrFromString("b")) >= 0 {
		t.Fatal("\"a\" must order before \"b\"")
	}
}

func TestEscapeCSV(t *testing.T) {
	if got := EscapeCSV(StrFromString("plain")).String(); got != "plain" {
		t.Fatalf("EscapeCSV(plain) = %q", got)
	}
	if got := EscapeCSV(StrFromString(`a,"b`)).String(); got != `"a,""b"` {
		t.Fatalf("EscapeCSV = %q", got)
	}
}

func TestEscapeTSV(t *testing.T) {
	if got := EscapeTSV(StrFromString("a\tb")).String(); got != `a\tb` {
		t.Fatalf("EscapeTSV = %q", got)
	}
}
