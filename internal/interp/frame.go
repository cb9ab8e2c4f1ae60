// Package interp is the dispatch core: the typed register banks, call
// frames, and the instruction loop that executes an ir.Program.
package interp

import (
	"rowvm/internal/ir"
	"rowvm/internal/value"
)

// frame is one call's continuation: which function is running and where
// in its code it has reached. It owns no registers -- every typed
// operand bank lives once on the Interp for the life of the whole
// program, per the shared-register-file model; Call only pushes a new
// (function, pc) pair and Ret pops it, the registers underneath are
// untouched.
type frame struct {
	fn *ir.Function
	pc int
}

func newFrame(fn *ir.Function) *frame {
	return &frame{fn: fn}
}

// banks holds the program-wide register file: one slice per typed
// operand kind, sized once from the program's single ir.RegCounts and
// reused by every call for the process's whole lifetime.
type banks struct {
	float []float64
	intv  []int64
	str   []value.Str

	intIntMap   []value.IntIntMap
	intFloatMap []value.IntFloatMap
	intStrMap   []value.IntStrMap
	strIntMap   []value.StrIntMap
	strFloatMap []value.StrFloatMap
	strStrMap   []value.StrStrMap

	intIter []value.IntIter
	strIter []value.StrIter
}

// newBanks allocates the shared register file, pre-populating every map
// register with an empty map of its kind so a Store before the first
// Alloc still has somewhere to land.
func newBanks(rc ir.RegCounts) *banks {
	b := &banks{
		float:       make([]float64, rc.Float),
		intv:        make([]int64, rc.Int),
		str:         make([]value.Str, rc.Str),
		intIntMap:   make([]value.IntIntMap, rc.IntIntMap),
		intFloatMap: make([]value.IntFloatMap, rc.IntFloatMap),
		intStrMap:   make([]value.IntStrMap, rc.IntStrMap),
		strIntMap:   make([]value.StrIntMap, rc.StrIntMap),
		strFloatMap: make([]value.StrFloatMap, rc.StrFloatMap),
		strStrMap:   make([]value.StrStrMap, rc.StrStrMap),
		intIter:     make([]value.IntIter, rc.IntIter),
		strIter:     make([]value.StrIter, rc.StrIter),
	}
	for i := range b.intIntMap {
		b.intIntMap[i] = value.NewIntIntMap()
	}
	for i := range b.intFloatMap {
		b.intFloatMap[i] = value.NewIntFloatMap()
	}
	for i := range b.intStrMap {
		b.intStrMap[i] = value.NewIntStrMap()
	}
	for i := range b.strIntMap {
		b.strIntMap[i] = value.NewStrIntMap()
	}
	for i := range b.strFloatMap {
		b.strFloatMap[i] = value.NewStrFloatMap()
	}
	for i := range b.strStrMap {
		b.strStrMap[i] = value.NewStrStrMap()
	}
	return b
}
