package interp

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/ncruces/go-strftime"
	"golang.org/x/crypto/blake2b"

	"rowvm/internal/ir"
	"rowvm/internal/value"
	"rowvm/internal/vmerr"
)

// execBuiltin dispatches the expansion Builtin opcode family: strftime,
// systime, uuid generation, digest computation, and human-readable byte
// sizes. None of these have a dedicated opcode of their own since they
// are rarely hot and share the same "dst register, typed arg list"
// shape.
func (it *Interp) execBuiltin(fr *frame, in ir.Instr) error {
	r := in.Regs
	switch ir.BuiltinID(in.Imm) {
	case ir.BuiltinStrftime:
		return it.builtinStrftime(fr, r, in.Args)
	case ir.BuiltinSystime:
		it.intv[r[0]] = time.Now().Unix()
		return nil
	case ir.BuiltinUUID:
		it.str[r[0]].Release()
		it.str[r[0]] = value.StrFromString(uuid.NewString())
		return nil
	case ir.BuiltinDigest:
		return it.builtinDigest(fr, r, in.Args)
	case ir.BuiltinHumanBytes:
		n := it.argInt(fr, in.Args[0])
		it.str[r[0]].Release()
		it.str[r[0]] = value.StrFromString(humanize.Bytes(uint64(n)))
		return nil
	default:
		return vmerr.New(vmerr.Invariant, "unknown builtin id")
	}
}

// builtinStrftime formats Args[0] (an epoch-seconds Int) per the layout
// string in Args[1] (Str), in the style of the time module C strftime
// directives.
func (it *Interp) builtinStrftime(fr *frame, r []int32, args []ir.Arg) error {
	if len(args) < 2 {
		return vmerr.New(vmerr.TypeMisuse, "strftime: expected (epoch, layout)")
	}
	epoch := it.argInt(fr, args[0])
	layout := it.argStr(fr, args[1])
	s := strftime.Format(layout, time.Unix(epoch, 0).UTC())
	it.str[r[0]].Release()
	it.str[r[0]] = value.StrFromString(s)
	return nil
}

// builtinDigest hashes Args[1] (a Str) with the algorithm named by
// Args[0] (an Int selector, see ir.DigestAlg) and stores the lowercase
// hex digest.
func (it *Interp) builtinDigest(fr *frame, r []int32, args []ir.Arg) error {
	if len(args) < 2 {
		return vmerr.New(vmerr.TypeMisuse, "digest: expected (alg, data)")
	}
	alg := ir.DigestAlg(it.argInt(fr, args[0]))
	data := []byte(it.argStr(fr, args[1]))
	var sum []byte
	switch alg {
	case ir.DigestMD5:
		h := md5.Sum(data)
		sum = h[:]
	case ir.DigestSHA1:
		h := sha1.Sum(data)
		sum = h[:]
	case ir.DigestSHA256:
		h := sha256.Sum256(data)
		sum = h[:]
	case ir.DigestBlake2b:
		h := blake2b.Sum256(data)
		sum = h[:]
	default:
		return vmerr.New(vmerr.TypeMisuse, "digest: unknown algorithm")
	}
	it.str[r[0]].Release()
	it.str[r[0]] = value.StrFromString(hex.EncodeToString(sum))
	return nil
}
