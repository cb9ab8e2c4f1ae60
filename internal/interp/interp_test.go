package interp

import (
	"testing"

	"rowvm/internal/ir"
)

// buildArithProgram returns a tiny program computing (a+b)*2, pushing the
// result as the last thing before Ret so the test can observe it on the
// interpreter's Int push stack (the same convention a caller would use
// to read a function's result).
func buildArithProgram() *ir.Program {
	const (
		regA int32 = iota
		regB
		regSum
		regTwo
		regOut
	)
	code := []ir.Instr{
		{Op: ir.OpStoreConstInt, Regs: []int32{regA}, Imm: 3},
		{Op: ir.OpStoreConstInt, Regs: []int32{regB}, Imm: 4},
		{Op: ir.OpAddInt, Regs: []int32{regSum, regA, regB}},
		{Op: ir.OpStoreConstInt, Regs: []int32{regTwo}, Imm: 2},
		{Op: ir.OpMulInt, Regs: []int32{regOut, regSum, regTwo}},
		{Op: ir.OpPushInt, Regs: []int32{regOut}},
		{Op: ir.OpRet},
	}
	return &ir.Program{
		Functions: []ir.Function{{Name: "main", Code: code}},
		Entry:     0,
		Regs:      ir.RegCounts{Int: 5},
	}
}

func newTestInterp(t *testing.T, prog *ir.Program) *Interp {
	t.Helper()
	it, err := New(prog, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return it
}

func TestArithProgramComputesExpectedValue(t *testing.T) {
	it := newTestInterp(t, buildArithProgram())
	if err := it.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(it.pushInt) != 1 || it.pushInt[0] != 14 {
		t.Fatalf("got push stack %v, want [14]", it.pushInt)
	}
}

func TestStringRegisterOpsConcatAndCompare(t *testing.T) {
	const (
		regStrA int32 = iota // "foo", later overwritten with "foobar"
		regStrB               // "bar"
		regStrC               // concat result
	)
	const regEq int32 = 0 // Int bank
	code := []ir.Instr{
		{Op: ir.OpStoreConstStr, Regs: []int32{regStrA}, Str: "foo"},
		{Op: ir.OpStoreConstStr, Regs: []int32{regStrB}, Str: "bar"},
		{Op: ir.OpConcat, Regs: []int32{regStrC, regStrA, regStrB}},
		{Op: ir.OpStoreConstStr, Regs: []int32{regStrA}, Str: "foobar"},
		{Op: ir.OpEQStr, Regs: []int32{regEq, regStrC, regStrA}},
		{Op: ir.OpPushInt, Regs: []int32{regEq}},
		{Op: ir.OpRet},
	}
	prog := &ir.Program{
		Functions: []ir.Function{{Name: "main", Code: code}},
		Entry:     0,
		Regs:      ir.RegCounts{Str: 3, Int: 1},
	}
	it := newTestInterp(t, prog)
	if err := it.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(it.pushInt) != 1 || it.pushInt[0] != 1 {
		t.Fatalf("got %v, want [1] (concat(\"foo\",\"bar\") == \"foobar\")", it.pushInt)
	}
}

func TestMapStoreThenLookup(t *testing.T) {
	const (
		regMap int32 = iota
	)
	const (
		regK0 int32 = iota
		regK1
		regV0
		regV1
		regGot0
		regGot1
	)
	code := []ir.Instr{
		{Op: ir.OpAllocIntInt, Regs: []int32{regMap}},
		{Op: ir.OpStoreConstInt, Regs: []int32{regK0}, Imm: 10},
		{Op: ir.OpStoreConstInt, Regs: []int32{regV0}, Imm: 100},
		{Op: ir.OpStoreIntInt, Regs: []int32{regMap, regK0, regV0}},
		{Op: ir.OpStoreConstInt, Regs: []int32{regK1}, Imm: 20},
		{Op: ir.OpStoreConstInt, Regs: []int32{regV1}, Imm: 200},
		{Op: ir.OpStoreIntInt, Regs: []int32{regMap, regK1, regV1}},
		{Op: ir.OpLookupIntInt, Regs: []int32{regGot0, regMap, regK0}},
		{Op: ir.OpLookupIntInt, Regs: []int32{regGot1, regMap, regK1}},
		{Op: ir.OpPushInt, Regs: []int32{regGot0}},
		{Op: ir.OpPushInt, Regs: []int32{regGot1}},
		{Op: ir.OpRet},
	}
	prog := &ir.Program{
		Functions: []ir.Function{{Name: "main", Code: code}},
		Entry:     0,
		Regs:      ir.RegCounts{Int: 6, IntIntMap: 1},
	}
	it := newTestInterp(t, prog)
	if err := it.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(it.pushInt) != 2 || it.pushInt[0] != 100 || it.pushInt[1] != 200 {
		t.Fatalf("got %v, want [100 200]", it.pushInt)
	}
}
