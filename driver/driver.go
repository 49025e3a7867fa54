// Package driver orchestrates a single payload run: parse, build the
// host window, bind the payload's recovered globals, invoke the VM, and
// return the populated TDC object (spec.md §4.E), grounded on
// __init__.py's prepare() and stack.py's ChaosStack.
package driver

import (
	"fmt"
	"io"

	"github.com/mna/chaosvm/loader"
	"github.com/mna/chaosvm/shim"
	"github.com/mna/chaosvm/types"
	"github.com/mna/chaosvm/vm"
)

// Options are the five prepare() parameters plus the supplemented
// device-profile overrides (spec.md §4.E/§6).
type Options struct {
	IP         string
	UserAgent  string
	Href       string
	Referer    string
	MouseTrack []shim.MousePoint
	Screen     shim.ScreenProfile
	Navigator  shim.NavigatorProfile
	Trace      io.Writer
}

func (o Options) toWindowOptions() shim.WindowOptions {
	return shim.WindowOptions{
		IP:         o.IP,
		UserAgent:  o.UserAgent,
		Href:       o.Href,
		Referer:    o.Referer,
		MouseTrack: o.MouseTrack,
		Screen:     o.Screen,
		Navigator:  o.Navigator,
		Trace:      o.Trace,
	}
}

// Run parses payload, builds a fresh top-level window configured by opts,
// binds the payload's recovered structural globals, executes its bytecode
// stack, and returns window.TDC -- the object the payload's own bytecode
// populated with getInfo/getData/setData/clearTc.
func Run(payload string, opts Options) (*types.Object, error) {
	parsed, err := loader.ParseVM(payload)
	if err != nil {
		return nil, fmt.Errorf("driver: parse payload: %w", err)
	}

	win := shim.NewWindow(opts.toWindowOptions())
	win.BindPayloadGlobals(
		parsed.Bindings.DateCtorName,
		parsed.Bindings.DateStaticName,
		parsed.Bindings.RawAttrName,
		parsed.Bindings.RawAttrValue,
	)

	m := vm.NewMachine(parsed.PC, parsed.Opcodes, parsed.OpMap, win)
	if _, err := m.Run(); err != nil {
		return nil, fmt.Errorf("driver: run payload: %w", err)
	}

	return win.TDC(), nil
}
