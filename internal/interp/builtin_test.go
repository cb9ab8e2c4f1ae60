package interp

import (
	"testing"

	"rowvm/internal/ir"
	"rowvm/internal/value"
)

// newBuiltinTestInterp returns an Interp with enough Str/Int registers
// to exercise execBuiltin directly, without running a full program.
func newBuiltinTestInterp(t *testing.T) *Interp {
	t.Helper()
	prog := &ir.Program{
		Functions: []ir.Function{{Name: "main", Code: nil}},
		Entry:     0,
		Regs:      ir.RegCounts{Str: 4, Int: 4},
	}
	return newTestInterp(t, prog)
}

func TestBuiltinDigestEmptyString(t *testing.T) {
	const (
		regAlg int32 = iota
	)
	const (
		regData int32 = iota
		regDst
	)
	cases := []struct {
		name string
		alg  ir.DigestAlg
		want string
	}{
		{"md5", ir.DigestMD5, "d41d8cd98f00b204e9800998ecf8427e"},
		{"sha1", ir.DigestSHA1, "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"sha256", ir.DigestSHA256, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			it := newBuiltinTestInterp(t)
			it.intv[regAlg] = int64(c.alg)
			in := ir.Instr{
				Op:   ir.OpBuiltin,
				Imm:  int64(ir.BuiltinDigest),
				Regs: []int32{regDst},
				Args: []ir.Arg{
					{Type: ir.RegInt, Index: regAlg},
					{Type: ir.RegStr, Index: regData},
				},
			}
			if err := it.execBuiltin(nil, in); err != nil {
				t.Fatalf("execBuiltin: %v", err)
			}
			if got := it.str[regDst].String(); got != c.want {
				t.Fatalf("digest of empty string = %q, want %q", got, c.want)
			}
		})
	}
}

func TestBuiltinStrftimeFormatsEpoch(t *testing.T) {
	const (
		regEpoch int32 = iota
		regLayout
		regDst
	)
	it := newBuiltinTestInterp(t)
	it.intv[regEpoch] = 0
	it.str[regLayout].Release()
	it.str[regLayout] = value.StrFromString("%Y-%m-%d")
	in := ir.Instr{
		Op:   ir.OpBuiltin,
		Imm:  int64(ir.BuiltinStrftime),
		Regs: []int32{regDst},
		Args: []ir.Arg{
			{Type: ir.RegInt, Index: regEpoch},
			{Type: ir.RegStr, Index: regLayout},
		},
	}
	if err := it.execBuiltin(nil, in); err != nil {
		t.Fatalf("execBuiltin: %v", err)
	}
	if got := it.str[regDst].String(); got != "1970-01-01" {
		t.Fatalf("strftime(0, %%Y-%%m-%%d) = %q, want 1970-01-01", got)
	}
}

func TestBuiltinHumanBytes(t *testing.T) {
	const regN int32 = 0
	const regDst int32 = 1
	it := newBuiltinTestInterp(t)
	it.intv[regN] = 1536
	in := ir.Instr{
		Op:   ir.OpBuiltin,
		Imm:  int64(ir.BuiltinHumanBytes),
		Regs: []int32{regDst},
		Args: []ir.Arg{{Type: ir.RegInt, Index: regN}},
	}
	if err := it.execBuiltin(nil, in); err != nil {
		t.Fatalf("execBuiltin: %v", err)
	}
	if got := it.str[regDst].String(); got != "1.5 kB" {
		t.Fatalf("humanBytes(1536) = %q, want 1.5 kB", got)
	}
}
