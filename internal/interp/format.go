package interp

import (
	"fmt"
	"strings"

	"rowvm/internal/ir"
	"rowvm/internal/value"
	"rowvm/internal/vmerr"
)

// formatPrintf renders in.Str as an AWK-style format string against
// in.Args, pulling each argument from the register bank in.Args[i].Type
// names. Supported directives: %d %i %o %x %X %c %s %e %E %f %g %G %%,
// each accepting the usual flags, width, and precision.
func (it *Interp) formatPrintf(fr *frame, in ir.Instr) (string, error) {
	format := in.Str
	args := in.Args
	var out strings.Builder
	argi := 0

	nextArg := func() (ir.Arg, error) {
		if argi >= len(args) {
			return ir.Arg{}, vmerr.New(vmerr.TypeMisuse, "printf: not enough arguments for format string")
		}
		a := args[argi]
		argi++
		return a, nil
	}

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			out.WriteByte(c)
			continue
		}
		start := i
		i++
		if i >= len(format) {
			return "", vmerr.New(vmerr.TypeMisuse, "printf: trailing %")
		}
		if format[i] == '%' {
			out.WriteByte('%')
			continue
		}
		// Scan flags, width, precision up to the verb letter.
		for i < len(format) && strings.ContainsRune("-+ 0#", rune(format[i])) {
			i++
		}
		for i < len(format) && format[i] >= '0' && format[i] <= '9' {
			i++
		}
		if i < len(format) && format[i] == '.' {
			i++
			for i < len(format) && format[i] >= '0' && format[i] <= '9' {
				i++
			}
		}
		if i >= len(format) {
			return "", vmerr.New(vmerr.TypeMisuse, "printf: incomplete directive")
		}
		verb := format[i]
		spec := format[start : i+1]

		a, err := nextArg()
		if err != nil {
			return "", err
		}
		rendered, err := it.formatOne(fr, spec, verb, a)
		if err != nil {
			return "", err
		}
		out.WriteString(rendered)
	}
	return out.String(), nil
}

func (it *Interp) formatOne(fr *frame, spec string, verb byte, a ir.Arg) (string, error) {
	switch verb {
	case 'd', 'i':
		goSpec := spec[:len(spec)-1] + "d"
		return fmt.Sprintf(goSpec, it.argInt(fr, a)), nil
	case 'o', 'x', 'X':
		return fmt.Sprintf(spec, it.argInt(fr, a)), nil
	case 'c':
		n := it.argInt(fr, a)
		return fmt.Sprintf(spec[:len(spec)-1]+"c", rune(n)), nil
	case 's':
		return fmt.Sprintf(spec, it.argStr(fr, a)), nil
	case 'e', 'E', 'f', 'g', 'G':
		return fmt.Sprintf(spec, it.argFloat(fr, a)), nil
	default:
		return "", vmerr.New(vmerr.TypeMisuse, "printf: unsupported verb %"+string(verb))
	}
}

func (it *Interp) argInt(fr *frame, a ir.Arg) int64 {
	switch a.Type {
	case ir.RegInt:
		return it.intv[a.Index]
	case ir.RegFloat:
		return int64(it.float[a.Index])
	case ir.RegStr:
		return value.StrToInt(it.str[a.Index])
	default:
		return 0
	}
}

func (it *Interp) argFloat(fr *frame, a ir.Arg) float64 {
	switch a.Type {
	case ir.RegFloat:
		return it.float[a.Index]
	case ir.RegInt:
		return float64(it.intv[a.Index])
	default:
		return 0
	}
}

func (it *Interp) argStr(fr *frame, a ir.Arg) string {
	switch a.Type {
	case ir.RegStr:
		return it.str[a.Index].String()
	case ir.RegInt:
		return fmt.Sprintf("%d", it.intv[a.Index])
	case ir.RegFloat:
		return fmt.Sprintf("%g", it.float[a.Index])
	default:
		return ""
	}
}
