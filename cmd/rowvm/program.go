package main

import "rowvm/internal/ir"

// demoProgram builds the equivalent of the classic `awk '{print $1, NF}'`
// as a hand-assembled ir.Program. There is no front end in this
// repository (parsing/compiling source text to bytecode is a separate
// concern); this is the bytecode a compiler would eventually emit for
// that one-liner, wired up so the interpreter has something concrete to
// run end to end.
func demoProgram() *ir.Program {
	const (
		regLine  int32 = iota // Str
		regField1             // Str
	)
	const (
		regOne int32 = iota // Int
		regOk
		regNotOk
		regNF
	)
	const (
		loopStart = 1
		end       = 8
	)
	code := []ir.Instr{
		{Op: ir.OpStoreConstInt, Regs: []int32{regOne}, Imm: 1},
		{Op: ir.OpNextLineStdin, Regs: []int32{regLine, regOk}},
		{Op: ir.OpNot, Regs: []int32{regNotOk, regOk}},
		{Op: ir.OpJmpIf, Regs: []int32{regNotOk}, Imm: end},
		{Op: ir.OpGetColumn, Regs: []int32{regField1, regOne}},
		{Op: ir.OpFieldCount, Regs: []int32{regNF}},
		{
			Op:   ir.OpPrintf,
			Str:  "%s %d\n",
			Args: []ir.Arg{{Type: ir.RegStr, Index: regField1}, {Type: ir.RegInt, Index: regNF}},
		},
		{Op: ir.OpJmp, Imm: loopStart},
		{Op: ir.OpRet},
	}
	return &ir.Program{
		Functions: []ir.Function{{Name: "main", Code: code}},
		Entry:     0,
		Regs:      ir.RegCounts{Str: 2, Int: 4},
		Fields:    ir.FieldSet{All: true},
	}
}
