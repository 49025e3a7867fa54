package shim

import (
	"encoding/base64"
	"io"
	"math"
	"net/url"
	"regexp"
	"strconv"

	"github.com/mna/chaosvm/types"
)

// TCaptchaReferrer is the fixed referrer window.TCaptchaReferrer exposes,
// per proxy/dom.py's Window class constant.
const TCaptchaReferrer = "https://xui.ptlogin2.qq.com/cgi-bin/xlogin"

// Window is the root host object every payload observes as `window`
// (spec.md §4.C). It owns the Document/Navigator/Screen/Console/Storage
// singletons, the handful of callable globals (Math/JSON/Array/...), and a
// fallback property bag for whatever obfuscated names the payload itself
// installs there.
type Window struct {
	eventTarget
	top bool

	document         *Document
	navigator        *Navigator
	screen           *Screen
	console          *Console
	sessionStorage   *Storage
	localStorage     *Storage
	css              *types.Object
	location         *Location
	rtcDefaultIP     string
	tdc              *types.Object
	props            *types.Object
	globals          map[string]any
	trace            io.Writer
}

var (
	_ types.Value    = (*Window)(nil)
	_ types.HasAttrs = (*Window)(nil)
)

// WindowOptions seeds the handful of per-run fields driver.Run overrides
// before handing the window to the parsed payload, mirroring
// __init__.py's prepare() parameters.
type WindowOptions struct {
	IP         string
	UserAgent  string
	Href       string
	Referer    string
	MouseTrack []MousePoint
	Screen     ScreenProfile
	Navigator  NavigatorProfile
	Trace      io.Writer
}

// NewWindow builds a top-level window with the given options applied.
func NewWindow(opts WindowOptions) *Window {
	w := newWindow(true)
	w.trace = opts.Trace
	if opts.IP != "" {
		w.rtcDefaultIP = opts.IP
	}
	if opts.Screen.Width != 0 || opts.Screen.Height != 0 {
		w.screen = NewScreen(opts.Screen)
	}
	nav := opts.Navigator
	if opts.UserAgent != "" {
		nav.UserAgent = opts.UserAgent
	}
	w.navigator = NewNavigator(w, nav)
	if opts.Href != "" {
		w.location.SetHref(opts.Href)
	}
	if opts.Referer != "" {
		w.location.SetReferer(opts.Referer)
	}
	w.document.SetMouseTrack(opts.MouseTrack)
	return w
}

// NewIframeWindow builds a non-top nested window, recomputed fresh every
// time an <iframe>'s contentWindow is read (proxy/element.py's Iframe).
func NewIframeWindow() *Window { return newWindow(false) }

func newWindow(top bool) *Window {
	loc := NewLocation()
	w := &Window{
		eventTarget:    newEventTarget(),
		top:            top,
		document:       NewDocument(loc),
		screen:         NewScreen(ScreenProfile{}),
		console:        NewConsole(nil),
		sessionStorage: NewStorage("SessionStorage"),
		localStorage:   NewStorage("LocalStorage"),
		css:            newCSSGlobal(),
		location:       loc,
		rtcDefaultIP:   defaultRTCIP,
		tdc:            types.NewObject("TDC"),
		props:          types.NewObject("object"),
		globals:        make(map[string]any),
	}
	w.navigator = NewNavigator(w, NavigatorProfile{})
	w.globals["Math"] = newMathGlobal()
	w.globals["JSON"] = newJSONGlobal()
	w.globals["Array"] = newArrayGlobal()
	w.globals["Object"] = newObjectGlobal()
	w.globals["String"] = newStringGlobal()
	w.globals["Number"] = newNumberGlobal()
	w.globals["Date"] = newDateGlobal()
	w.globals["RegExp"] = newRegExpGlobal()
	w.globals["Symbol"] = newSymbolGlobal()
	w.globals["Error"] = newErrorGlobal()
	w.globals["CustomElementRegistry"] = types.NewObject("CustomElementRegistry")
	w.globals["SyncManager"] = types.NewObject("SyncManager")
	w.globals["ServiceWorkerContainer"] = types.NewObject("ServiceWorkerContainer")
	w.globals["RTCPeerConnection"] = NewConstructor("RTCPeerConnection", func(_ any, args []any) (any, error) {
		return newRTCPeerConnection(w.rtcDefaultIP), nil
	})
	return w
}

// SetRTCDefaultIP overrides the candidate IP baked into every
// RTCPeerConnection constructed afterward, standing in for the Python
// original's class-attribute mutation before any instance exists.
func (w *Window) SetRTCDefaultIP(ip string) { w.rtcDefaultIP = ip }

// AddMouseTrack stores the mouse-track samples replayed to every
// "mousemove" listener the payload registers on document.
func (w *Window) AddMouseTrack(points []MousePoint) { w.document.SetMouseTrack(points) }

// BindPayloadGlobals installs the three structural bindings a parsed
// payload declares at module scope (the Date constructor under its
// obfuscated name, a by-name Date-attribute forwarder, and a raw literal
// constant), per loader.Bindings / parse.py's parse_vm.
func (w *Window) BindPayloadGlobals(dateCtorName, dateStaticName, rawAttrName, rawAttrValue string) {
	dateCtor := w.globals["Date"]
	if dateCtorName != "" {
		w.globals[dateCtorName] = dateCtor
	}
	if dateStaticName != "" {
		w.globals[dateStaticName] = types.NativeFunc(dateStaticName, func(_ any, args []any) (any, error) {
			if len(args) == 0 {
				return types.Undefined, nil
			}
			name := types.RawString(args[0])
			fn, err := types.GetAttr(dateCtor, name)
			if err != nil {
				return nil, err
			}
			callable, ok := fn.(types.Callable)
			if !ok {
				return types.Undefined, nil
			}
			rest := []any{}
			if len(args) > 1 {
				rest = args[1:]
			}
			return callable.Call(nil, rest)
		})
	}
	if rawAttrName != "" {
		w.globals[rawAttrName] = rawAttrValue
	}
}

// TDC returns the host object the payload's bytecode populates with
// getInfo/getData/setData/clearTc via ordinary property writes -- it is
// never stubbed by the driver itself, per proxy/dom.py's TDC.
func (w *Window) TDC() *types.Object { return w.tdc }

func (w *Window) Type() string   { return "Window" }
func (w *Window) String() string { return "[object Window]" }

func (w *Window) trackMiss(name string) {
	if w.trace != nil {
		io.WriteString(w.trace, "window."+name+" not defined\n")
	}
}

var trailingDigits = regexp.MustCompile(`[^\d]`)

// parseIntJS replicates Python's re.split(r"[^\d]", s, 1)[0] then
// int(s, base): take the leading digit run and parse it, failing to NaN.
func parseIntJS(s string, base int) any {
	loc := trailingDigits.FindStringIndex(s)
	head := s
	if loc != nil {
		head = s[:loc[0]]
	}
	if head == "" {
		return math.NaN()
	}
	n, err := strconv.ParseInt(head, base, 64)
	if err != nil {
		return math.NaN()
	}
	return float64(n)
}

// encodeURIComponentJS replicates Python's urllib.parse.quote(s) default
// behavior (safe="/"): percent-encode everything except unreserved
// characters and "/", unlike Go's url.QueryEscape (which escapes space as
// "+" and encodes "/").
func encodeURIComponentJS(s string) string {
	var out []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) || c == '/' {
			out = append(out, c)
			continue
		}
		out = append(out, '%')
		out = append(out, upperHex(c>>4), upperHex(c&0xf))
	}
	return string(out)
}

func isUnreserved(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.' || c == '~'
}

func upperHex(nibble byte) byte {
	const digits = "0123456789ABCDEF"
	return digits[nibble]
}

func (w *Window) getAttrMiss(name string) (any, error) {
	w.trackMiss(name)
	return types.Undefined, nil
}

func (w *Window) GetAttr(name string) (any, error) {
	switch name {
	case "window", "self", "top", "parent", "globalThis":
		return w, nil
	case "document":
		return w.document, nil
	case "navigator":
		return w.navigator, nil
	case "screen":
		return w.screen, nil
	case "console":
		return w.console, nil
	case "location":
		return w.location, nil
	case "sessionStorage":
		return w.sessionStorage, nil
	case "localStorage":
		return w.localStorage, nil
	case "CSS":
		return w.css, nil
	case "undefined":
		return types.Undefined, nil
	case "innerWidth":
		return int64(300), nil
	case "innerHeight":
		return int64(230), nil
	case "TCaptchaReferrer":
		return TCaptchaReferrer, nil
	case "TDC":
		return w.tdc, nil
	case "addEventListener":
		return types.NativeFunc("addEventListener", func(_ any, args []any) (any, error) {
			event, fn, capture := extractListenerArgs(args)
			if fn != nil {
				w.addEventListener(event, fn, capture)
			}
			return types.Undefined, nil
		}), nil
	case "btoa":
		return types.NativeFunc("btoa", func(_ any, args []any) (any, error) {
			return base64.StdEncoding.EncodeToString([]byte(types.RawString(arg(args, 0)))), nil
		}), nil
	case "parseInt":
		return types.NativeFunc("parseInt", func(_ any, args []any) (any, error) {
			s := types.RawString(arg(args, 0))
			base := 10
			if len(args) > 1 {
				if b := int(types.ToNumber(args[1])); b != 0 {
					base = b
				}
			}
			return parseIntJS(s, base), nil
		}), nil
	case "encodeURIComponent":
		return types.NativeFunc("encodeURIComponent", func(_ any, args []any) (any, error) {
			return encodeURIComponentJS(types.RawString(arg(args, 0))), nil
		}), nil
	case "decodeURIComponent":
		return types.NativeFunc("decodeURIComponent", func(_ any, args []any) (any, error) {
			s, err := url.QueryUnescape(types.RawString(arg(args, 0)))
			if err != nil {
				return arg(args, 0), nil
			}
			return s, nil
		}), nil
	case "setTimeout", "setInterval":
		return types.NativeFunc(name, func(_ any, args []any) (any, error) {
			if fn, ok := arg(args, 0).(types.Callable); ok {
				rest := []any{}
				if len(args) > 2 {
					rest = args[2:]
				}
				if _, err := fn.Call(nil, rest); err != nil {
					return nil, err
				}
			}
			return int64(1), nil
		}), nil
	case "clearInterval", "clearTimeout":
		return types.NativeFunc(name, func(any, []any) (any, error) { return types.Undefined, nil }), nil
	case "getComputedStyle":
		return types.NativeFunc("getComputedStyle", func(_ any, args []any) (any, error) {
			el, _ := arg(args, 0).(*Element)
			return NewComputedStyle(el), nil
		}), nil
	case "matchMedia":
		return types.NativeFunc("matchMedia", func(_ any, args []any) (any, error) {
			return newMediaQueryList(types.RawString(arg(args, 0))), nil
		}), nil
	}

	if v, ok := w.globals[name]; ok {
		return v, nil
	}
	if fn, ok := w.first(name); ok {
		return fn, nil
	}
	if w.props.Has(name) {
		return w.props.GetAttr(name)
	}
	return w.getAttrMiss(name)
}

func (w *Window) SetAttr(name string, v any) error {
	switch name {
	case "TDC":
		if o, ok := v.(*types.Object); ok {
			w.tdc = o
		}
		return nil
	default:
		if _, ok := w.globals[name]; ok {
			w.globals[name] = v
			return nil
		}
		return w.props.SetAttr(name, v)
	}
}

func (w *Window) DeleteAttr(name string) (bool, error) {
	delete(w.globals, name)
	return w.props.DeleteAttr(name)
}

// windowBuiltinNames mirrors every case GetAttr's switch resolves without
// consulting globals/props, so Has reports them present the way Python's
// Proxy.__contains__ does for the same names.
var windowBuiltinNames = map[string]bool{
	"window": true, "self": true, "top": true, "parent": true, "globalThis": true,
	"document": true, "navigator": true, "screen": true, "console": true,
	"location": true, "sessionStorage": true, "localStorage": true, "CSS": true,
	"undefined": true, "innerWidth": true, "innerHeight": true,
	"TCaptchaReferrer": true, "TDC": true, "addEventListener": true, "btoa": true,
	"parseInt": true, "encodeURIComponent": true, "decodeURIComponent": true,
	"setTimeout": true, "setInterval": true, "clearInterval": true, "clearTimeout": true,
	"getComputedStyle": true, "matchMedia": true,
}

func (w *Window) Has(name string) bool {
	if windowBuiltinNames[name] {
		return true
	}
	if _, ok := w.globals[name]; ok {
		return true
	}
	if _, ok := w.first(name); ok {
		return true
	}
	return w.props.Has(name)
}
