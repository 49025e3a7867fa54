// Package loader extracts the opcode stream, the opcode-identity map, and
// the VM entry point from a chaosvm payload's source text (spec.md §4.B).
package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dop251/goja/parser"

	"github.com/mna/chaosvm/hash"
)

// Bindings are the three global properties the payload's first three
// top-level statements install on window, extracted by property name
// rather than hardcoded (spec.md §4.B step 1).
type Bindings struct {
	DateCtorName   string // window[DateCtorName] = the host Date constructor
	DateStaticName string // window[DateStaticName] = forwarder to static Date methods
	RawAttrName    string
	RawAttrValue   string // literal raw string taken from bodies[2]'s RHS
}

// Parsed is everything parse_vm recovers from a payload's source text.
type Parsed struct {
	Bindings Bindings
	OpMap    map[int]int
	Opcodes  []int
	PC       int
}

// ParseVM parses the payload's JS source and recovers the opcode stream,
// the local->canonical opcode map, the entry PC, and the three early
// global bindings. It never executes anything; it only reads the AST.
func ParseVM(src string) (*Parsed, error) {
	prog, err := parser.ParseFile(nil, "payload.js", src, 0)
	if err != nil {
		return nil, fmt.Errorf("loader: parse payload: %w", err)
	}

	all := fromProgram(prog)
	bodies := make([]hash.Node, 0, len(all))
	for _, n := range all {
		if n.Type() != "EmptyStatement" {
			bodies = append(bodies, n)
		}
	}
	if len(bodies) < 3 {
		return nil, fmt.Errorf("loader: payload has fewer than 3 top-level statements")
	}

	bindings, err := extractBindings(bodies)
	if err != nil {
		return nil, err
	}

	stackDcl, err := firstVariableDeclaration(bodies, "__TENCENT_CHAOS_STACK")
	if err != nil {
		return nil, err
	}
	stackBodies, err := iifeBody(stackDcl)
	if err != nil {
		return nil, err
	}

	stackRet, ok := firstOfType(stackBodies, "ReturnStatement")
	if !ok {
		return nil, fmt.Errorf("loader: __TENCENT_CHAOS_STACK body has no return statement")
	}
	retExpr := stackRet.Child("argument").List("expressions")

	outerVM, ok := firstCallExpression(retExpr)
	if !ok {
		return nil, fmt.Errorf("loader: VM entry call expression not found")
	}
	args := outerVM.List("arguments")
	if len(args) < 2 {
		return nil, fmt.Errorf("loader: VM entry call has fewer than 2 arguments")
	}
	pc, err := strconv.Atoi(args[0].Str("raw"))
	if err != nil {
		return nil, fmt.Errorf("loader: entry pc not an integer literal: %w", err)
	}

	alCore := args[1]
	coreArgs := alCore.List("arguments")
	if len(coreArgs) == 0 {
		return nil, fmt.Errorf("loader: core() call has no arguments")
	}
	elems := coreArgs[0].List("elements")
	if len(elems) != 2 {
		return nil, fmt.Errorf("loader: opcode array literal does not have exactly 2 elements")
	}
	data, opdata := elems[0], elems[1]
	b64 := unquoteJSString(data.Str("raw"))

	ins := make([]int, 0, len(opdata.List("elements")))
	for _, e := range opdata.List("elements") {
		v, err := strconv.Atoi(e.Str("raw"))
		if err != nil {
			return nil, fmt.Errorf("loader: non-integer insertion literal: %w", err)
		}
		ins = append(ins, v)
	}

	opcodes, err := DecodeOpcodes(b64, ins)
	if err != nil {
		return nil, fmt.Errorf("loader: decode opcode stream: %w", err)
	}

	vmDcl, ok := firstFunctionDeclaration(stackBodies, "__TENCENT_CHAOS_VM")
	if !ok {
		return nil, fmt.Errorf("loader: __TENCENT_CHAOS_VM declaration not found")
	}
	opmap, err := parseOpcodeMapping(vmDcl)
	if err != nil {
		return nil, err
	}

	return &Parsed{Bindings: bindings, OpMap: opmap, Opcodes: opcodes, PC: pc}, nil
}

func extractBindings(bodies []hash.Node) (Bindings, error) {
	name := func(i int) (string, error) {
		n := bodies[i].Child("expression").Child("left").Child("property").Str("name")
		if n == "" {
			return "", fmt.Errorf("loader: top-level statement %d is not a property assignment", i)
		}
		return n, nil
	}
	var b Bindings
	var err error
	if b.DateCtorName, err = name(0); err != nil {
		return b, err
	}
	if b.DateStaticName, err = name(1); err != nil {
		return b, err
	}
	if b.RawAttrName, err = name(2); err != nil {
		return b, err
	}
	b.RawAttrValue = unquoteJSString(bodies[2].Child("expression").Child("right").Str("raw"))
	return b, nil
}

func firstVariableDeclaration(bodies []hash.Node, name string) (hash.Node, error) {
	for _, n := range bodies {
		if n.Type() != "VariableDeclaration" {
			continue
		}
		decls := n.List("declarations")
		if len(decls) > 0 && decls[0].Child("id").Str("name") == name {
			return n, nil
		}
	}
	return nil, fmt.Errorf("loader: declaration %q not found", name)
}

// iifeBody digs into `name = (function(){ ... })(...)`'s function body.
func iifeBody(dcl hash.Node) ([]hash.Node, error) {
	init := dcl.List("declarations")[0].Child("init")
	callee := init.Child("callee")
	body := callee.Child("body").List("body")
	if body == nil {
		return nil, fmt.Errorf("loader: IIFE body not found")
	}
	return body, nil
}

func firstOfType(nodes []hash.Node, typ string) (hash.Node, bool) {
	for _, n := range nodes {
		if n.Type() == typ {
			return n, true
		}
	}
	return nil, false
}

func firstCallExpression(nodes []hash.Node) (hash.Node, bool) {
	return firstOfType(nodes, "CallExpression")
}

func firstFunctionDeclaration(bodies []hash.Node, name string) (hash.Node, bool) {
	for _, n := range bodies {
		if n.Type() == "FunctionDeclaration" && n.Child("id").Str("name") == name {
			return n, true
		}
	}
	return nil, false
}

// parseOpcodeMapping builds the local->canonical opcode map by syntax-
// hashing each handler in the dispatcher's opcode table, per spec.md
// §4.B step 3. It tries the stricter uppercase-only single-letter
// identifier rule first and falls back to the looser any-single-letter
// rule if any handler's fingerprint goes unrecognized, per the
// documented source ambiguity (spec.md §9).
func parseOpcodeMapping(vmDcl hash.Node) (map[int]int, error) {
	params := vmDcl.List("params")
	m, err := buildOpcodeMapping(vmDcl, params, false)
	if err == nil {
		return m, nil
	}
	m2, err2 := buildOpcodeMapping(vmDcl, params, true)
	if err2 != nil {
		return nil, fmt.Errorf("loader: opcode identity recovery failed under both identifier rules: strict=%v loose=%v", err, err2)
	}
	return m2, nil
}

func buildOpcodeMapping(vmDcl hash.Node, params []hash.Node, loose bool) (map[int]int, error) {
	paramNames := make([]string, 4)
	for i := 0; i < 4 && i < len(params); i++ {
		paramNames[i] = params[i].Str("name")
	}

	declContent := vmDcl.Child("body").List("body")
	var opDefList []hash.Node
	for _, d := range declContent {
		if d.Type() != "VariableDeclaration" {
			continue
		}
		for _, decl := range d.List("declarations") {
			init := decl.Child("init")
			if init.Type() == "ArrayExpression" {
				opDefList = init.List("elements")
				break
			}
		}
		if opDefList != nil {
			break
		}
	}
	if opDefList == nil {
		return nil, fmt.Errorf("opcode dispatch array not found")
	}

	out := make(map[int]int, len(opDefList))
	for i, fn := range opDefList {
		if fn == nil {
			continue
		}
		ctx := hash.NewContext(paramNames[0], paramNames[1], paramNames[2], paramNames[3])
		ctx.Loose = loose
		body := fn.Child("body").List("body")
		idx, err := hash.IdentifyHandler(body, ctx)
		if err != nil {
			return nil, fmt.Errorf("local opcode %d: %w", i, err)
		}
		out[i] = idx
	}
	return out, nil
}

func unquoteJSString(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 && (raw[0] == '\'' || raw[0] == '"' || raw[0] == '`') {
		return raw[1 : len(raw)-1]
	}
	return raw
}
