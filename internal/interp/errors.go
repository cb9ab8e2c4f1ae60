package interp

import "rowvm/internal/vmerr"

var (
	errUnimplementedSlot = vmerr.New(vmerr.Invariant, "slot storage is reserved and not implemented")
	errUnknownOp         = vmerr.New(vmerr.Invariant, "unknown opcode")
)
