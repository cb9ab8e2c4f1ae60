package interp

import (
	"rowvm/internal/ir"
	"rowvm/internal/value"
)

// execMapOrIter dispatches the map-family (Alloc/Lookup/Contains/Delete/
// Len/Store/Mov, one set per key/value pair) and iterator-family ops.
// Kept out of the main exec switch purely to keep that switch's size
// manageable; there is nothing semantically distinct about these ops.
func (it *Interp) execMapOrIter(fr *frame, in ir.Instr) error {
	r := in.Regs
	switch in.Op {

	case ir.OpAllocIntInt:
		it.intIntMap[r[0]].Release()
		it.intIntMap[r[0]] = value.NewIntIntMap()
	case ir.OpAllocIntFloat:
		it.intFloatMap[r[0]].Release()
		it.intFloatMap[r[0]] = value.NewIntFloatMap()
	case ir.OpAllocIntStr:
		it.intStrMap[r[0]].Release()
		it.intStrMap[r[0]] = value.NewIntStrMap()
	case ir.OpAllocStrInt:
		it.strIntMap[r[0]].Release()
		it.strIntMap[r[0]] = value.NewStrIntMap()
	case ir.OpAllocStrFloat:
		it.strFloatMap[r[0]].Release()
		it.strFloatMap[r[0]] = value.NewStrFloatMap()
	case ir.OpAllocStrStr:
		it.strStrMap[r[0]].Release()
		it.strStrMap[r[0]] = value.NewStrStrMap()

	case ir.OpLookupIntInt:
		it.intv[r[0]] = it.intIntMap[r[1]].Lookup(it.intv[r[2]])
	case ir.OpLookupIntFloat:
		it.float[r[0]] = it.intFloatMap[r[1]].Lookup(it.intv[r[2]])
	case ir.OpLookupIntStr:
		it.str[r[0]].Release()
		it.str[r[0]] = it.intStrMap[r[1]].Lookup(it.intv[r[2]]).Retain()
	case ir.OpLookupStrInt:
		it.intv[r[0]] = it.strIntMap[r[1]].Lookup(it.str[r[2]])
	case ir.OpLookupStrFloat:
		it.float[r[0]] = it.strFloatMap[r[1]].Lookup(it.str[r[2]])
	case ir.OpLookupStrStr:
		it.str[r[0]].Release()
		it.str[r[0]] = it.strStrMap[r[1]].Lookup(it.str[r[2]]).Retain()

	case ir.OpContainsIntInt:
		it.intv[r[0]] = boolToInt(it.intIntMap[r[1]].Contains(it.intv[r[2]]))
	case ir.OpContainsIntFloat:
		it.intv[r[0]] = boolToInt(it.intFloatMap[r[1]].Contains(it.intv[r[2]]))
	case ir.OpContainsIntStr:
		it.intv[r[0]] = boolToInt(it.intStrMap[r[1]].Contains(it.intv[r[2]]))
	case ir.OpContainsStrInt:
		it.intv[r[0]] = boolToInt(it.strIntMap[r[1]].Contains(it.str[r[2]]))
	case ir.OpContainsStrFloat:
		it.intv[r[0]] = boolToInt(it.strFloatMap[r[1]].Contains(it.str[r[2]]))
	case ir.OpContainsStrStr:
		it.intv[r[0]] = boolToInt(it.strStrMap[r[1]].Contains(it.str[r[2]]))

	case ir.OpDeleteIntInt:
		it.intIntMap[r[0]].Delete(it.intv[r[1]])
	case ir.OpDeleteIntFloat:
		it.intFloatMap[r[0]].Delete(it.intv[r[1]])
	case ir.OpDeleteIntStr:
		it.intStrMap[r[0]].Delete(it.intv[r[1]])
	case ir.OpDeleteStrInt:
		it.strIntMap[r[0]].Delete(it.str[r[1]])
	case ir.OpDeleteStrFloat:
		it.strFloatMap[r[0]].Delete(it.str[r[1]])
	case ir.OpDeleteStrStr:
		it.strStrMap[r[0]].Delete(it.str[r[1]])

	case ir.OpLenIntInt:
		it.intv[r[0]] = int64(it.intIntMap[r[1]].Len())
	case ir.OpLenIntFloat:
		it.intv[r[0]] = int64(it.intFloatMap[r[1]].Len())
	case ir.OpLenIntStr:
		it.intv[r[0]] = int64(it.intStrMap[r[1]].Len())
	case ir.OpLenStrInt:
		it.intv[r[0]] = int64(it.strIntMap[r[1]].Len())
	case ir.OpLenStrFloat:
		it.intv[r[0]] = int64(it.strFloatMap[r[1]].Len())
	case ir.OpLenStrStr:
		it.intv[r[0]] = int64(it.strStrMap[r[1]].Len())

	case ir.OpStoreIntInt:
		it.intIntMap[r[0]].Store(it.intv[r[1]], it.intv[r[2]])
	case ir.OpStoreIntFloat:
		it.intFloatMap[r[0]].Store(it.intv[r[1]], it.float[r[2]])
	case ir.OpStoreIntStr:
		it.intStrMap[r[0]].Store(it.intv[r[1]], it.str[r[2]])
	case ir.OpStoreStrInt:
		it.strIntMap[r[0]].Store(it.str[r[1]], it.intv[r[2]])
	case ir.OpStoreStrFloat:
		it.strFloatMap[r[0]].Store(it.str[r[1]], it.float[r[2]])
	case ir.OpStoreStrStr:
		it.strStrMap[r[0]].Store(it.str[r[1]], it.str[r[2]])

	case ir.OpMovIntInt:
		it.intIntMap[r[0]].Release()
		it.intIntMap[r[0]] = it.intIntMap[r[1]].Retain()
	case ir.OpMovIntFloat:
		it.intFloatMap[r[0]].Release()
		it.intFloatMap[r[0]] = it.intFloatMap[r[1]].Retain()
	case ir.OpMovIntStr:
		it.intStrMap[r[0]].Release()
		it.intStrMap[r[0]] = it.intStrMap[r[1]].Retain()
	case ir.OpMovStrInt:
		it.strIntMap[r[0]].Release()
		it.strIntMap[r[0]] = it.strIntMap[r[1]].Retain()
	case ir.OpMovStrFloat:
		it.strFloatMap[r[0]].Release()
		it.strFloatMap[r[0]] = it.strFloatMap[r[1]].Retain()
	case ir.OpMovStrStr:
		it.strStrMap[r[0]].Release()
		it.strStrMap[r[0]] = it.strStrMap[r[1]].Retain()

	case ir.OpIterBeginIntInt:
		it.intIter[r[0]] = it.intIntMap[r[1]].Iter()
	case ir.OpIterBeginIntFloat:
		it.intIter[r[0]] = it.intFloatMap[r[1]].Iter()
	case ir.OpIterBeginIntStr:
		it.intIter[r[0]] = it.intStrMap[r[1]].Iter()
	case ir.OpIterBeginStrInt:
		it.strIter[r[0]] = it.strIntMap[r[1]].Iter()
	case ir.OpIterBeginStrFloat:
		it.strIter[r[0]] = it.strFloatMap[r[1]].Iter()
	case ir.OpIterBeginStrStr:
		it.strIter[r[0]] = it.strStrMap[r[1]].Iter()
	case ir.OpIterHasNextInt:
		it.intv[r[0]] = boolToInt(it.intIter[r[1]].HasNext())
	case ir.OpIterHasNextStr:
		it.intv[r[0]] = boolToInt(it.strIter[r[1]].HasNext())
	case ir.OpIterGetNextInt:
		it.intv[r[0]] = it.intIter[r[1]].Next()
	case ir.OpIterGetNextStr:
		it.str[r[0]].Release()
		it.str[r[0]] = value.StrFromString(it.strIter[r[1]].Next())

	// Reserved slot family: parsed but not wired to a storage backend.
	case ir.OpLoadSlotInt, ir.OpLoadSlotFloat, ir.OpLoadSlotStr,
		ir.OpLoadSlotIntInt, ir.OpLoadSlotIntFloat, ir.OpLoadSlotIntStr,
		ir.OpLoadSlotStrInt, ir.OpLoadSlotStrFloat, ir.OpLoadSlotStrStr,
		ir.OpStoreSlotInt, ir.OpStoreSlotFloat, ir.OpStoreSlotStr,
		ir.OpStoreSlotIntInt, ir.OpStoreSlotIntFloat, ir.OpStoreSlotIntStr,
		ir.OpStoreSlotStrInt, ir.OpStoreSlotStrFloat, ir.OpStoreSlotStrStr:
		return errUnimplementedSlot

	default:
		return errUnknownOp
	}
	return nil
}
