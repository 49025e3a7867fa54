package types

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// RegExp is the host RegExp proxy. It compiles with dlclark/regexp2 rather
// than Go's stdlib regexp package so that payload patterns relying on
// ECMAScript-only constructs (lookaround, backreferences) -- common in
// anti-bot probes that validate UA/canvas strings -- behave the way the
// browser's RegExp would, per spec.md §4.C.
type RegExp struct {
	*Object
	re     *regexp2.Regexp
	global bool
	source string
	flags  string
}

var _ Value = (*RegExp)(nil)

// NewRegExp compiles pattern with the given JS-style modifier flags ("g",
// "i", "m"), matching proxy/builtins.py's RegExp.__init__.
func NewRegExp(pattern, modifiers string) (*RegExp, error) {
	global := strings.Contains(modifiers, "g")
	opts := regexp2.None
	for _, c := range modifiers {
		switch c {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		}
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	return &RegExp{
		Object: NewObject("RegExp"),
		re:     re,
		global: global,
		source: pattern,
		flags:  modifiers,
	}, nil
}

func (r *RegExp) String() string { return "/" + r.source + "/" + r.flags }

// Exec returns a match array (group 0 plus captures) or Null, per
// RegExp.prototype.exec.
func (r *RegExp) Exec(s string) any {
	m, err := r.re.FindStringMatch(s)
	if err != nil || m == nil {
		return Null
	}
	groups := m.Groups()
	out := make([]any, len(groups))
	for i, g := range groups {
		if len(g.Captures) == 0 {
			out[i] = Undefined
			continue
		}
		out[i] = g.String()
	}
	return NewArray(out...)
}

// Test reports whether s matches, per RegExp.prototype.test.
func (r *RegExp) Test(s string) bool {
	m, err := r.re.FindStringMatch(s)
	return err == nil && m != nil
}

// Match implements String.prototype.match: an array of every match when
// the regexp is global, else the same shape as Exec.
func (r *RegExp) Match(s string) any {
	if !r.global {
		return r.Exec(s)
	}
	var out []any
	m, _ := r.re.FindStringMatch(s)
	for m != nil {
		out = append(out, m.String())
		m, _ = r.re.FindNextMatch(m)
	}
	return NewArray(out...)
}

// Split implements String.prototype.split(RegExp).
func (r *RegExp) Split(s string) []string {
	var out []string
	last := 0
	m, _ := r.re.FindStringMatch(s)
	for m != nil {
		start := m.Index
		out = append(out, s[last:start])
		last = start + m.Length
		m, _ = r.re.FindNextMatch(m)
	}
	out = append(out, s[last:])
	return out
}

// ReplaceFunc implements String.prototype.replace(RegExp, fn|string) by
// invoking replace for each match (every match when global, else just the
// first), per proxy/builtins.py's String.replace.
func (r *RegExp) ReplaceFunc(s string, replace func(match string) string) string {
	var b strings.Builder
	last := 0
	m, _ := r.re.FindStringMatch(s)
	for m != nil {
		start := m.Index
		b.WriteString(s[last:start])
		b.WriteString(replace(m.String()))
		last = start + m.Length
		if !r.global {
			break
		}
		m, _ = r.re.FindNextMatch(m)
	}
	b.WriteString(s[last:])
	return b.String()
}
