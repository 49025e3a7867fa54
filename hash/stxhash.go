package hash

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Context is the growing identifier-renaming table the hash threads through
// a single handler body: the dispatcher's four parameter names are
// preseeded to fixed tokens, and every other single-letter identifier seen
// is assigned "t0", "t1", … in first-seen order.
type Context struct {
	names map[string]string
	// Loose, when true, canonicalizes every single-character identifier
	// (not just uppercase ones). The stricter uppercase-only rule is tried
	// first; Loose exists so a caller can retry with the looser rule if
	// the stricter one leaves handlers unresolved (spec's documented
	// source ambiguity between the two copies of this function).
	Loose bool
}

// NewContext seeds ctx with the dispatcher's four parameter names, in the
// fixed order (program-counter-like, arg-array-like, window, stack).
func NewContext(pcParam, argsParam, winParam, stackParam string) *Context {
	return &Context{names: map[string]string{
		pcParam:    "p",
		argsParam:  "P",
		winParam:   "window",
		stackParam: "S",
	}}
}

// lookup returns the canonical token for name, assigning a fresh "tN" the
// first time an unseen name is looked up.
func (c *Context) lookup(name string) string {
	if v, ok := c.names[name]; ok {
		return v
	}
	v := fmt.Sprintf("t%d", len(c.names)-4)
	c.names[name] = v
	return v
}

// HashNode canonicalizes a single node per the node-kind rules; use
// HashList below for a list of nodes joined by a separator.
func HashNode(n Node, ctx *Context) string {
	switch n.Type() {
	case "Literal":
		return literalRepr(n.Str("raw"))

	case "Identifier":
		name := n.Str("name")
		if len(name) == 1 && (ctx.Loose || isUpper(name)) {
			return ctx.lookup(name)
		}
		return name

	case "VariableDeclaration":
		return n.Str("kind") + " " + HashList(n.List("declarations"), ctx, ",")

	case "VariableDeclarator":
		id := HashNode(n.Child("id"), ctx)
		if init := n.Child("init"); init != nil {
			return id + "=" + HashNode(init, ctx)
		}
		return id

	case "AssignmentExpression":
		return HashNode(n.Child("left"), ctx) + n.Str("operator") + HashNode(n.Child("right"), ctx)

	case "BinaryExpression":
		return HashNode(n.Child("left"), ctx) + n.Str("operator") + HashNode(n.Child("right"), ctx)

	case "UnaryExpression":
		return n.Str("operator") + HashNode(n.Child("argument"), ctx)

	case "UpdateExpression":
		// Reproduces the source's operator-precedence bug verbatim: the
		// ternary picks between the literal "^" and ""+operator, so a
		// prefix update hashes to "^" alone and a postfix one hashes to
		// the bare operator. See spec's open-question note; this must
		// not be "fixed".
		if n.Bool("prefix") {
			return "^"
		}
		return n.Str("operator")

	case "ArrayExpression":
		return "[" + HashList(n.List("elements"), ctx, ",") + "]"

	case "CallExpression":
		return HashNode(n.Child("callee"), ctx) + "(" + HashList(n.List("arguments"), ctx, ",") + ")"

	case "MemberExpression":
		return HashNode(n.Child("object"), ctx) + "[" + HashNode(n.Child("property"), ctx) + "]"

	case "ExpressionStatement":
		return HashNode(n.Child("expression"), ctx)

	case "SequenceExpression":
		return HashList(n.List("expressions"), ctx, ",")

	case "ConditionalExpression":
		return HashNode(n.Child("test"), ctx) + "?(" + HashNode(n.Child("consequent"), ctx) + "):(" + HashNode(n.Child("alternate"), ctx) + ")"

	case "ReturnStatement":
		return "return " + HashNode(n.Child("argument"), ctx)

	case "ThrowStatement":
		return "throw " + HashNode(n.Child("argument"), ctx)

	case "ForStatement":
		return "for"

	case "ForInStatement":
		return "for in"

	default:
		return ""
	}
}

// HashList joins the canonical hash of each node in nodes with sep,
// tolerating nil entries (sparse array holes) by hashing them as "".
func HashList(nodes []Node, ctx *Context, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = HashNode(n, ctx)
	}
	return strings.Join(parts, sep)
}

func isUpper(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// literalRepr reproduces Python's repr(ast.literal_eval(raw)) for the
// literal shapes that actually appear in handler bodies: integers, floats,
// quoted strings, and the JS null literal (special-cased in the source).
func literalRepr(raw string) string {
	if raw == "null" {
		return "null"
	}
	if raw == "true" {
		return "True"
	}
	if raw == "false" {
		return "False"
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		if f == math.Trunc(f) && !strings.ContainsAny(raw, ".eE") {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if len(raw) >= 2 && (raw[0] == '\'' || raw[0] == '"') && raw[len(raw)-1] == raw[0] {
		return pyReprString(raw[1 : len(raw)-1])
	}
	return raw
}

// pyReprString mimics Python's str repr quoting rule: prefer single
// quotes, switch to double quotes when the string contains a single quote
// and no double quote.
func pyReprString(s string) string {
	quote := byte('\'')
	if strings.Contains(s, "'") && !strings.Contains(s, "\"") {
		quote = '"'
	}
	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s {
		switch r {
		case rune(quote):
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}
