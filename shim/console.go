package shim

import (
	"fmt"
	"io"
	"os"

	"github.com/mna/chaosvm/types"
)

// Console is window.console -- log/debug/info/warn/error all write a line
// to an injected io.Writer, generalizing proxy/dom.py's Console.log (a bare
// print). A nil writer falls back to os.Stdout.
type Console struct {
	*types.Object
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	c := &Console{Object: types.NewObject("Console"), w: w}
	for _, name := range []string{"log", "debug", "info", "warn", "error"} {
		c.bind(name)
	}
	return c
}

func (c *Console) bind(name string) {
	c.SetAttr(name, types.NativeFunc(name, func(_ any, args []any) (any, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = types.ToDisplayString(a)
		}
		fmt.Fprintln(c.w, fmt.Sprintf("console.%s", name), fmt.Sprint(anySlice(parts)...))
		return types.Undefined, nil
	}))
}

func anySlice(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
