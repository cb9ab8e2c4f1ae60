// Package rx is the regex cache: compiled-pattern reuse keyed by the raw
// pattern string, plus the match/substitute/split operations the
// instruction set exposes.
package rx

import (
	"regexp"
	"strings"

	"rowvm/internal/vmerr"
)

// Cache memoizes compiled regexes by pattern text.
type Cache struct {
	compiled map[string]*regexp.Regexp
}

func New() *Cache {
	return &Cache{compiled: make(map[string]*regexp.Regexp)}
}

func (c *Cache) get(pattern string) (*regexp.Regexp, error) {
	if re, ok := c.compiled[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, vmerr.Wrap(vmerr.RegexCompile, "compiling pattern "+pattern, err)
	}
	c.compiled[pattern] = re
	return re, nil
}

// IsMatch reports whether pattern matches anywhere in s.
func (c *Cache) IsMatch(pattern, s string) (bool, error) {
	re, err := c.get(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}

// MatchLoc returns the 1-based start index of the first match (0 if
// none), along with the match length observed as a side effect (callers
// use this to populate RSTART/RLENGTH).
func (c *Cache) MatchLoc(pattern, s string) (start, length int, err error) {
	re, err := c.get(pattern)
	if err != nil {
		return 0, 0, err
	}
	loc := re.FindStringIndex(s)
	if loc == nil {
		return 0, -1, nil
	}
	return loc[0] + 1, loc[1] - loc[0], nil
}

// expandRepl implements the substitution replacement rule: a literal `&`
// expands to the matched substring; `\&` is a literal `&`. No other
// backreferences are supported.
func expandRepl(repl, matched string) string {
	var b strings.Builder
	for i := 0; i < len(repl); i++ {
		switch {
		case repl[i] == '\\' && i+1 < len(repl) && repl[i+1] == '&':
			b.WriteByte('&')
			i++
		case repl[i] == '&':
			b.WriteString(matched)
		default:
			b.WriteByte(repl[i])
		}
	}
	return b.String()
}

// SubstFirst replaces the first match of pattern in in, returning the
// new string and 1 if a substitution happened, 0 otherwise.
func (c *Cache) SubstFirst(pattern, repl, in string) (string, int, error) {
	re, err := c.get(pattern)
	if err != nil {
		return in, 0, err
	}
	loc := re.FindStringIndex(in)
	if loc == nil {
		return in, 0, nil
	}
	out := in[:loc[0]] + expandRepl(repl, in[loc[0]:loc[1]]) + in[loc[1]:]
	return out, 1, nil
}

// SubstAll replaces every non-overlapping match of pattern in in,
// returning the new string and the substitution count.
func (c *Cache) SubstAll(pattern, repl, in string) (string, int, error) {
	re, err := c.get(pattern)
	if err != nil {
		return in, 0, err
	}
	locs := re.FindAllStringIndex(in, -1)
	if locs == nil {
		return in, 0, nil
	}
	var b strings.Builder
	prev := 0
	for _, loc := range locs {
		b.WriteString(in[prev:loc[0]])
		b.WriteString(expandRepl(repl, in[loc[0]:loc[1]]))
		prev = loc[1]
	}
	b.WriteString(in[prev:])
	return b.String(), len(locs), nil
}

// Split splits s on pattern, returning the pieces.
func (c *Cache) Split(pattern, s string) ([]string, error) {
	re, err := c.get(pattern)
	if err != nil {
		return nil, err
	}
	return re.Split(s, -1), nil
}
