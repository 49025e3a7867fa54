package shim

import (
	"math"
	"math/rand"
	"strings"

	"github.com/mna/chaosvm/types"
)

// newMathGlobal builds window.Math: not constructible, its static methods
// are the only observable surface, per proxy/builtins.py's Math class.
func newMathGlobal() *NativeConstructor {
	m := NewConstructor("Math", notAConstructor("Math"))
	m.Static("random", types.NativeFunc("random", func(any, []any) (any, error) {
		return rand.Float64(), nil
	}))
	m.Static("floor", types.NativeFunc("floor", func(_ any, args []any) (any, error) {
		return math.Floor(types.ToNumber(arg(args, 0))), nil
	}))
	m.Static("ceil", types.NativeFunc("ceil", func(_ any, args []any) (any, error) {
		return math.Ceil(types.ToNumber(arg(args, 0))), nil
	}))
	m.Static("round", types.NativeFunc("round", func(_ any, args []any) (any, error) {
		return math.Round(types.ToNumber(arg(args, 0))), nil
	}))
	m.Static("abs", types.NativeFunc("abs", func(_ any, args []any) (any, error) {
		return math.Abs(types.ToNumber(arg(args, 0))), nil
	}))
	m.Static("pow", types.NativeFunc("pow", func(_ any, args []any) (any, error) {
		return math.Pow(types.ToNumber(arg(args, 0)), types.ToNumber(arg(args, 1))), nil
	}))
	m.Static("sqrt", types.NativeFunc("sqrt", func(_ any, args []any) (any, error) {
		return math.Sqrt(types.ToNumber(arg(args, 0))), nil
	}))
	m.Static("max", types.NativeFunc("max", func(_ any, args []any) (any, error) {
		out := math.Inf(-1)
		for _, a := range args {
			out = math.Max(out, types.ToNumber(a))
		}
		return out, nil
	}))
	m.Static("min", types.NativeFunc("min", func(_ any, args []any) (any, error) {
		out := math.Inf(1)
		for _, a := range args {
			out = math.Min(out, types.ToNumber(a))
		}
		return out, nil
	}))
	m.Static("PI", math.Pi)
	return m
}

// newJSONGlobal builds window.JSON: stringify is the only method the
// bytecode observed exercising, per proxy/builtins.py's JSON class.
func newJSONGlobal() *NativeConstructor {
	j := NewConstructor("JSON", notAConstructor("JSON"))
	j.Static("stringify", types.NativeFunc("stringify", func(_ any, args []any) (any, error) {
		return types.JSONStringify(arg(args, 0))
	}))
	return j
}

func newArrayGlobal() *NativeConstructor {
	a := NewConstructor("Array", func(_ any, args []any) (any, error) {
		return types.NewArray(args...), nil
	})
	a.Static("isArray", types.NativeFunc("isArray", func(_ any, args []any) (any, error) {
		_, ok := arg(args, 0).(*types.Array)
		return ok, nil
	}))
	return a
}

func newObjectGlobal() *NativeConstructor {
	o := NewConstructor("Object", func(_ any, args []any) (any, error) {
		if len(args) > 0 {
			if ha, ok := args[0].(types.HasAttrs); ok {
				return ha, nil
			}
		}
		return types.NewObject("Object"), nil
	})
	o.Static("keys", types.NativeFunc("keys", func(_ any, args []any) (any, error) {
		ks := keysOf(arg(args, 0))
		out := make([]any, len(ks))
		for i, k := range ks {
			out[i] = k
		}
		return types.NewArray(out...), nil
	}))
	o.Static("assign", types.NativeFunc("assign", func(_ any, args []any) (any, error) {
		if len(args) == 0 {
			return types.NewObject("Object"), nil
		}
		target, ok := args[0].(types.HasAttrs)
		if !ok {
			return args[0], nil
		}
		for _, src := range args[1:] {
			for _, k := range keysOf(src) {
				v, _ := types.GetAttr(src, k)
				target.SetAttr(k, v)
			}
		}
		return target, nil
	}))
	return o
}

func keysOf(v any) []string {
	type keysIface interface{ Keys() []string }
	if k, ok := v.(keysIface); ok {
		return k.Keys()
	}
	return nil
}

func newStringGlobal() *NativeConstructor {
	s := NewConstructor("String", func(_ any, args []any) (any, error) {
		return types.NewString(types.ToDisplayString(arg(args, 0))), nil
	})
	s.Static("fromCharCode", types.NativeFunc("fromCharCode", func(_ any, args []any) (any, error) {
		codes := make([]int64, len(args))
		for i, a := range args {
			codes[i] = int64(types.ToNumber(a))
		}
		return types.FromCharCode(codes...), nil
	}))
	return s
}

func newNumberGlobal() *NativeConstructor {
	n := NewConstructor("Number", func(_ any, args []any) (any, error) {
		return types.NewNumber(types.ToNumber(arg(args, 0))), nil
	})
	n.Static("isNaN", types.NativeFunc("isNaN", func(_ any, args []any) (any, error) {
		v := types.ToNumber(arg(args, 0))
		return v != v, nil
	}))
	n.Static("MAX_SAFE_INTEGER", float64(1<<53-1))
	return n
}

func newDateGlobal() *NativeConstructor {
	d := NewConstructor("Date", func(_ any, args []any) (any, error) {
		switch len(args) {
		case 0:
			return types.NewDate(), nil
		case 1:
			if s, ok := types.IsString(args[0]); ok {
				return types.NewDateFromISO(s)
			}
			return types.NewDateFromMillis(int64(types.ToNumber(args[0]))), nil
		default:
			return types.NewDate(), nil
		}
	})
	d.Static("now", types.NativeFunc("now", func(any, []any) (any, error) {
		return types.NewDate().GetTime(), nil
	}))
	return d
}

func newRegExpGlobal() *NativeConstructor {
	return NewConstructor("RegExp", func(_ any, args []any) (any, error) {
		pattern := types.RawString(arg(args, 0))
		flags := ""
		if len(args) > 1 {
			flags = types.RawString(args[1])
		}
		return types.NewRegExp(pattern, flags)
	})
}

func newSymbolGlobal() *NativeConstructor {
	s := NewConstructor("Symbol", func(_ any, args []any) (any, error) {
		desc := ""
		if len(args) > 0 {
			desc = types.RawString(args[0])
		}
		return types.NewSymbol(desc), nil
	})
	s.Static("for", types.NativeFunc("for", func(_ any, args []any) (any, error) {
		return types.SymbolFor(types.RawString(arg(args, 0))), nil
	}))
	s.Static("keyFor", types.NativeFunc("keyFor", func(_ any, args []any) (any, error) {
		sym, _ := arg(args, 0).(*types.Symbol)
		key, ok := types.SymbolKeyFor(sym)
		if !ok {
			return types.Undefined, nil
		}
		return key, nil
	}))
	s.Static("iterator", types.SymbolIterator)
	return s
}

func newErrorGlobal() *NativeConstructor {
	return NewConstructor("Error", func(_ any, args []any) (any, error) {
		msg := ""
		if len(args) > 0 {
			msg = types.ToDisplayString(args[0])
		}
		return types.NewProxyException(&types.JsError{Value: msg}, ""), nil
	})
}

// CSSObjectModel is window.CSS -- supports() always reports true, per
// proxy/dom.py's CSSObjectModel.
func newCSSGlobal() *types.Object {
	css := types.NewObject("CSS")
	css.SetAttr("supports", types.NativeFunc("supports", func(any, []any) (any, error) { return true, nil }))
	return css
}

// newMediaQueryList builds the fixed result of window.matchMedia(query):
// matches is true only for a query whose literal text contains
// "no-preference", per proxy/dom.py's MediaQueryList fixture.
func newMediaQueryList(query string) *types.Object {
	mql := types.NewObject("MediaQueryList")
	mql.SetAttr("matches", strings.Contains(query, "no-preference"))
	mql.SetAttr("media", query)
	mql.SetAttr("addListener", types.NativeFunc("addListener", func(any, []any) (any, error) { return types.Undefined, nil }))
	return mql
}
