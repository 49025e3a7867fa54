package loader

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/chaosvm/hash"
)

func TestUnquoteJSString(t *testing.T) {
	require.Equal(t, "abc", unquoteJSString(`"abc"`))
	require.Equal(t, "abc", unquoteJSString(`'abc'`))
	require.Equal(t, "abc", unquoteJSString("`abc`"))
	require.Equal(t, "abc", unquoteJSString("abc"))
}

func paramIdent(name string) hash.Node { return hash.Node{"type": "Identifier", "name": name} }

func ops(params []string, handlers []hash.Node) hash.Node {
	paramNodes := make([]hash.Node, len(params))
	for i, p := range params {
		paramNodes[i] = paramIdent(p)
	}
	return hash.Node{
		"type":   "FunctionDeclaration",
		"id":     hash.Node{"type": "Identifier", "name": "__TENCENT_CHAOS_VM"},
		"params": paramNodes,
		"body": hash.Node{
			"type": "BlockStatement",
			"body": []hash.Node{
				{
					"type": "VariableDeclaration",
					"kind": "var",
					"declarations": []hash.Node{
						{
							"type": "VariableDeclarator",
							"id":   hash.Node{"type": "Identifier", "name": "ops"},
							"init": hash.Node{"type": "ArrayExpression", "elements": handlers},
						},
					},
				},
			},
		},
	}
}

func TestBuildOpcodeMappingUnrecognizedFingerprint(t *testing.T) {
	handler := hash.Node{
		"type": "FunctionExpression",
		"body": hash.Node{
			"type": "BlockStatement",
			"body": []hash.Node{
				{"type": "ReturnStatement", "argument": paramIdent("nonsense")},
			},
		},
	}
	vmDcl := ops([]string{"p", "P", "w", "S"}, []hash.Node{handler})
	_, err := buildOpcodeMapping(vmDcl, vmDcl.List("params"), false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "local opcode 0")
}

func TestBuildOpcodeMappingSkipsNilHoles(t *testing.T) {
	vmDcl := ops([]string{"p", "P", "w", "S"}, []hash.Node{nil, nil})
	m, err := buildOpcodeMapping(vmDcl, vmDcl.List("params"), false)
	require.NoError(t, err)
	require.Empty(t, m)
}

func TestBuildOpcodeMappingMissingDispatchArray(t *testing.T) {
	vmDcl := hash.Node{
		"type":   "FunctionDeclaration",
		"params": []hash.Node{paramIdent("p"), paramIdent("P"), paramIdent("w"), paramIdent("S")},
		"body":   hash.Node{"type": "BlockStatement", "body": []hash.Node{}},
	}
	_, err := buildOpcodeMapping(vmDcl, vmDcl.List("params"), false)
	require.Error(t, err)
}
