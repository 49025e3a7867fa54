package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func lit(raw string) Node { return Node{"type": "Literal", "raw": raw} }
func ident(name string) Node { return Node{"type": "Identifier", "name": name} }

func TestHashNodeLiterals(t *testing.T) {
	ctx := NewContext("p", "P", "w", "S")
	require.Equal(t, "null", HashNode(Node{"type": "Literal", "raw": "null"}, ctx))
	require.Equal(t, "5", HashNode(lit("5"), ctx))
	require.Equal(t, "'hi'", HashNode(lit(`'hi'`), ctx))
}

func TestHashNodeIdentifierUppercaseOnlyRule(t *testing.T) {
	ctx := NewContext("p", "P", "w", "S")
	// single-char uppercase names canonicalize through the context table
	require.Equal(t, "t0", HashNode(ident("A"), ctx))
	require.Equal(t, "t1", HashNode(ident("B"), ctx))
	require.Equal(t, "t0", HashNode(ident("A"), ctx)) // first-seen reuse

	// multi-char and lowercase single-char names pass through unchanged
	require.Equal(t, "foo", HashNode(ident("foo"), ctx))
	require.Equal(t, "a", HashNode(ident("a"), ctx))
}

func TestHashNodeIdentifierLooseRule(t *testing.T) {
	ctx := NewContext("p", "P", "w", "S")
	ctx.Loose = true
	require.Equal(t, "t0", HashNode(ident("a"), ctx))
	require.Equal(t, "t1", HashNode(ident("b"), ctx))
}

func TestHashNodePreseededParams(t *testing.T) {
	ctx := NewContext("p", "P", "w", "S")
	require.Equal(t, "p", HashNode(ident("p"), ctx))
	require.Equal(t, "window", HashNode(ident("w"), ctx))
	require.Equal(t, "S", HashNode(ident("S"), ctx))
}

func TestHashNodeUpdateExpressionBug(t *testing.T) {
	ctx := NewContext("p", "P", "w", "S")
	prefix := Node{"type": "UpdateExpression", "operator": "++", "prefix": true, "argument": ident("x")}
	postfix := Node{"type": "UpdateExpression", "operator": "++", "prefix": false, "argument": ident("x")}
	require.Equal(t, "^", HashNode(prefix, ctx))
	require.Equal(t, "++", HashNode(postfix, ctx))
}

func TestHashNodeBinaryAndMember(t *testing.T) {
	ctx := NewContext("p", "P", "w", "S")
	bin := Node{"type": "BinaryExpression", "operator": "+", "left": ident("a"), "right": lit("1")}
	require.Equal(t, "a+1", HashNode(bin, ctx))

	member := Node{"type": "MemberExpression", "object": ident("S"), "property": ident("a")}
	require.Equal(t, "S[a]", HashNode(member, ctx))
}

func TestHashNodeCallAndArray(t *testing.T) {
	ctx := NewContext("p", "P", "w", "S")
	arr := Node{"type": "ArrayExpression", "elements": []Node{lit("1"), lit("2")}}
	require.Equal(t, "[1,2]", HashNode(arr, ctx))

	call := Node{"type": "CallExpression", "callee": ident("f"), "arguments": []Node{ident("a"), ident("b")}}
	require.Equal(t, "f(a,b)", HashNode(call, ctx))
}

func TestHashNodeConditionalAndSequence(t *testing.T) {
	ctx := NewContext("p", "P", "w", "S")
	cond := Node{"type": "ConditionalExpression", "test": ident("a"), "consequent": lit("1"), "alternate": lit("2")}
	require.Equal(t, "a?(1):(2)", HashNode(cond, ctx))

	seq := Node{"type": "SequenceExpression", "expressions": []Node{ident("a"), ident("b")}}
	require.Equal(t, "a,b", HashNode(seq, ctx))
}

func TestHashNodeForLoops(t *testing.T) {
	ctx := NewContext("p", "P", "w", "S")
	require.Equal(t, "for", HashNode(Node{"type": "ForStatement"}, ctx))
	require.Equal(t, "for in", HashNode(Node{"type": "ForInStatement"}, ctx))
}

func TestHashNodeUnknownKindIsEmpty(t *testing.T) {
	ctx := NewContext("p", "P", "w", "S")
	require.Equal(t, "", HashNode(Node{"type": "BreakStatement"}, ctx))
}

func TestIdentifyHandlerUnknownFingerprint(t *testing.T) {
	ctx := NewContext("p", "P", "w", "S")
	body := []Node{{"type": "ReturnStatement", "argument": ident("nonsense")}}
	_, err := IdentifyHandler(body, ctx)
	require.Error(t, err)
}

func TestOpFeatsHasFiftyEightEntries(t *testing.T) {
	require.Len(t, OpNames, 58)
	require.Len(t, OpFeats, 58)
	seen := make(map[string]bool, 58)
	for _, f := range OpFeats {
		require.False(t, seen[f], "duplicate fingerprint %s", f)
		seen[f] = true
	}
}
