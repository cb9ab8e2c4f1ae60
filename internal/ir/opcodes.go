// Package ir is the compiler-to-interpreter contract: the typed
// instruction set, program/function layout, and register-count
// descriptor an external front end hands to the interpreter. Nothing in
// this package executes anything; it is pure data.
package ir

// Op is one member of the typed opcode family. Every opcode implicitly
// names the operand-bank types of its Regs entries -- there is no
// runtime type tag on a register reference, the same way a compiler
// targeting this IR statically knows each register's type. The exact
// meaning of Regs[i]/Imm/Str/Args for a given Op is defined by the
// interpreter's dispatch switch (internal/interp); the comments here are
// a human summary, not a second source of truth.
type Op uint16

const (
	// ---- Constants ----
	OpStoreConstStr   Op = iota // dst=Regs[0] (Str); value=Str
	OpStoreConstInt             // dst=Regs[0] (Int); value=Imm
	OpStoreConstFloat           // dst=Regs[0] (Float); value=bits in Imm

	// ---- Type coercions ----
	OpIntToStr    // dst Str = Regs[0], src Int = Regs[1]
	OpFloatToStr  // dst Str = Regs[0], src Float = Regs[1]
	OpStrToInt    // dst Int = Regs[0], src Str = Regs[1]
	OpStrToFloat  // dst Float = Regs[0], src Str = Regs[1]
	OpHexStrToInt // dst Int = Regs[0], src Str = Regs[1]
	OpFloatToInt  // dst Int = Regs[0], src Float = Regs[1]
	OpIntToFloat  // dst Float = Regs[0], src Int = Regs[1]

	// ---- Arithmetic ----
	OpAddInt // dst, lhs, rhs = Regs[0..2], two's-complement wrap
	OpAddFloat
	OpMulInt
	OpMulFloat
	OpMinusInt
	OpMinusFloat
	OpModInt
	OpModFloat
	OpDiv // always floating-point: dst Float, lhs/rhs Float
	OpPow // dst Float = lhs Float ^ rhs Float
	OpNegInt
	OpNegFloat
	OpNot    // dst, src Int: dst = (src==0) ? 1 : 0
	OpNotStr // dst Int, src Str: dst = (len(src)==0) ? 1 : 0
	OpFloat1 // unary float math, dst/src Float, Imm selects {sin,cos,exp,log,sqrt,atan}
	OpFloat2 // binary float math, dst/lhs/rhs Float, Imm selects {atan2,pow}

	// ---- Strings ----
	OpConcat      // dst, lhs, rhs = Str Regs[0..2]
	OpLenStr      // dst Int = Regs[0], src Str = Regs[1]
	OpSubstr      // dst Str=Regs[0], src Str=Regs[1], start Int=Regs[2], end Int=Regs[3]
	OpSubstrIndex // dst Int=Regs[0], haystack Str=Regs[1], needle Str=Regs[2]
	OpEscapeCSV   // dst, src = Str Regs[0..1]
	OpEscapeTSV

	// ---- Regex ----
	OpMatch    // dst Int (1-based start or 0) = Regs[0], pattern Str=Regs[1], text Str=Regs[2]
	OpIsMatch  // dst Int bool=Regs[0], pattern Str=Regs[1], text Str=Regs[2]
	OpSub      // out Str=Regs[0], count Int=Regs[1], pattern Str=Regs[2], repl Str=Regs[3], text Str=Regs[4]
	OpGSub     // same shape as OpSub, global
	OpSplitInt // count Int=Regs[0], pattern Str=Regs[1], text Str=Regs[2], dst IntStrMap=Regs[3]
	OpSplitStr // count Int=Regs[0], pattern Str=Regs[1], text Str=Regs[2], dst StrStrMap=Regs[3]

	// ---- Comparisons ----
	OpLTInt
	OpGTInt
	OpLTEInt
	OpGTEInt
	OpEQInt
	OpLTFloat
	OpGTFloat
	OpLTEFloat
	OpGTEFloat
	OpEQFloat
	OpLTStr
	OpGTStr
	OpLTEStr
	OpGTEStr
	OpEQStr

	// ---- Fields ----
	OpGetColumn   // dst Str=Regs[0], k Int=Regs[1]
	OpSetColumn   // k Int=Regs[0], v Str=Regs[1]
	OpJoinColumns // dst Str=Regs[0], s Int=Regs[1], e Int=Regs[2], sep Str=Regs[3]
	OpJoinCSV     // dst Str=Regs[0], s Int=Regs[1], e Int=Regs[2]
	OpJoinTSV
	OpFieldCount  // dst Int=Regs[0]: NF, forcing a split if not already done

	// ---- Output ----
	OpPrintStdout // src Str=Regs[0]
	OpPrint       // text Str=Regs[0], Str=path, Imm=0/1 append
	OpPrintf      // Str=fmt, dest Str=Regs[0] (optional; absent or "" = stdout), Args=typed operand list
	OpSprintf     // dst Str=Regs[0], Str=fmt, Args=typed operand list
	OpClose       // path Str=Regs[0]

	// ---- Input ----
	OpReadErr            // dst Int=Regs[0]
	OpNextLine           // dst Str=Regs[0], ok Int=Regs[1], Str=source key
	OpReadErrStdin       // dst Int=Regs[0]
	OpNextLineStdin      // dst Str=Regs[0], ok Int=Regs[1]
	OpNextLineStdinFused // dst Str=Regs[0] (reused in place), changedFile Int=Regs[1]
	OpNextFile           // no operands

	// ---- Maps: Alloc/Lookup/Contains/Delete/Len/Store/Mov per key/value pair ----
	OpAllocIntInt
	OpAllocIntFloat
	OpAllocIntStr
	OpAllocStrInt
	OpAllocStrFloat
	OpAllocStrStr
	OpLookupIntInt
	OpLookupIntFloat
	OpLookupIntStr
	OpLookupStrInt
	OpLookupStrFloat
	OpLookupStrStr
	OpContainsIntInt
	OpContainsIntFloat
	OpContainsIntStr
	OpContainsStrInt
	OpContainsStrFloat
	OpContainsStrStr
	OpDeleteIntInt
	OpDeleteIntFloat
	OpDeleteIntStr
	OpDeleteStrInt
	OpDeleteStrFloat
	OpDeleteStrStr
	OpLenIntInt
	OpLenIntFloat
	OpLenIntStr
	OpLenStrInt
	OpLenStrFloat
	OpLenStrStr
	OpStoreIntInt
	OpStoreIntFloat
	OpStoreIntStr
	OpStoreStrInt
	OpStoreStrFloat
	OpStoreStrStr
	OpMovIntInt
	OpMovIntFloat
	OpMovIntStr
	OpMovStrInt
	OpMovStrFloat
	OpMovStrStr

	// ---- Iteration ----
	OpIterBeginIntInt
	OpIterBeginIntFloat
	OpIterBeginIntStr
	OpIterBeginStrInt
	OpIterBeginStrFloat
	OpIterBeginStrStr
	OpIterHasNextInt
	OpIterHasNextStr
	OpIterGetNextInt
	OpIterGetNextStr

	// ---- Variables ----
	OpLoadVarStr
	OpLoadVarInt
	OpLoadVarIntMap
	OpStoreVarStr
	OpStoreVarInt
	OpStoreVarIntMap

	// ---- Random ----
	OpRand
	OpSrand
	OpReseedRng

	// ---- Control ----
	OpJmp  // Imm = target label
	OpJmpIf // cond Int=Regs[0], Imm = target label
	OpCall  // Imm = target function index
	OpRet
	OpHalt

	// ---- Parameter passing: one Push/Pop per operand type ----
	OpPushFloat
	OpPushInt
	OpPushStr
	OpPushIntIntMap
	OpPushIntFloatMap
	OpPushIntStrMap
	OpPushStrIntMap
	OpPushStrFloatMap
	OpPushStrStrMap
	OpPopFloat
	OpPopInt
	OpPopStr
	OpPopIntIntMap
	OpPopIntFloatMap
	OpPopIntStrMap
	OpPopStrIntMap
	OpPopStrFloatMap
	OpPopStrStrMap

	// ---- Slots (reserved, unimplemented per spec) ----
	OpLoadSlotInt
	OpLoadSlotFloat
	OpLoadSlotStr
	OpLoadSlotIntInt
	OpLoadSlotIntFloat
	OpLoadSlotIntStr
	OpLoadSlotStrInt
	OpLoadSlotStrFloat
	OpLoadSlotStrStr
	OpStoreSlotInt
	OpStoreSlotFloat
	OpStoreSlotStr
	OpStoreSlotIntInt
	OpStoreSlotIntFloat
	OpStoreSlotIntStr
	OpStoreSlotStrInt
	OpStoreSlotStrFloat
	OpStoreSlotStrStr

	// ---- Builtin helpers (expansion: time/digest/uuid/human) ----
	OpBuiltin // dst=Regs[0] (type depends on Imm), Imm=builtin ID, Args=typed operand list
)

// FloatUnaryFn and FloatBinaryFn enumerate the Float1/Float2 Imm
// selectors.
type FloatUnaryFn int64

const (
	FnSin FloatUnaryFn = iota
	FnCos
	FnExp
	FnLog
	FnSqrt
	FnAtan
)

type FloatBinaryFn int64

const (
	FnAtan2 FloatBinaryFn = iota
	FnPow
)

// BuiltinID enumerates the expansion Builtin family.
type BuiltinID int64

const (
	BuiltinStrftime BuiltinID = iota
	BuiltinSystime
	BuiltinUUID
	BuiltinDigest
	BuiltinHumanBytes
)

// DigestAlg enumerates Digest's algorithm selector, carried as the first
// Arg of a Digest Builtin call.
type DigestAlg int64

const (
	DigestMD5 DigestAlg = iota
	DigestSHA1
	DigestSHA256
	DigestBlake2b
)
