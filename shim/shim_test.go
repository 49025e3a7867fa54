package shim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/chaosvm/types"
)

func TestWindowExposesFixedNavigatorAndScreen(t *testing.T) {
	win := NewWindow(WindowOptions{})

	nav, err := win.GetAttr("navigator")
	require.NoError(t, err)
	ua, err := types.GetAttr(nav, "userAgent")
	require.NoError(t, err)
	require.Contains(t, types.RawString(ua), "Chrome/112.0.0.0")

	scr, err := win.GetAttr("screen")
	require.NoError(t, err)
	width, err := types.GetAttr(scr, "width")
	require.NoError(t, err)
	require.Equal(t, int64(1408), width)
}

func TestWindowNavigatorOverride(t *testing.T) {
	win := NewWindow(WindowOptions{UserAgent: "custom-ua/1.0"})
	nav, _ := win.GetAttr("navigator")
	ua, _ := types.GetAttr(nav, "userAgent")
	require.Equal(t, "custom-ua/1.0", ua)
}

func TestDocumentCreateElementDispatchesByTag(t *testing.T) {
	win := NewWindow(WindowOptions{})
	doc, _ := win.GetAttr("document")
	d := doc.(*Document)

	canvasEl := d.CreateElement("canvas")
	_, ok := canvasEl.(*Canvas)
	require.True(t, ok)

	ifr := d.CreateElement("iframe")
	_, ok = ifr.(*IframeElement)
	require.True(t, ok)

	div := d.CreateElement("div")
	_, ok = div.(*Element)
	require.True(t, ok)
}

func TestDocumentGetElementByIDFindsNestedElement(t *testing.T) {
	win := NewWindow(WindowOptions{})
	doc, _ := win.GetAttr("document")
	d := doc.(*Document)

	child := NewElement("div")
	child.SetAttribute("id", "target")
	d.body.AppendChild(child)

	found := d.GetElementByID("target")
	require.Equal(t, child, found)

	require.Equal(t, types.Null, d.GetElementByID("missing"))
}

func TestDocumentMousemoveListenerReplaysTrack(t *testing.T) {
	win := NewWindow(WindowOptions{MouseTrack: []MousePoint{{X: 1, Y: 2}, {X: 3, Y: 4}}})
	doc, _ := win.GetAttr("document")
	d := doc.(*Document)

	var seen []float64
	listener := types.NativeFunc("onmove", func(_ any, args []any) (any, error) {
		x, _ := types.GetAttr(args[0], "pageX")
		seen = append(seen, x.(float64))
		return types.Undefined, nil
	})

	addEvt, _ := d.GetAttr("addEventListener")
	_, err := addEvt.(types.Callable).Call(nil, []any{"mousemove", listener})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 3}, seen)
}

func TestElementAttributeRoundtrip(t *testing.T) {
	el := NewElement("div")
	require.NoError(t, el.SetAttr("class", "foo"))
	v, err := el.GetAttr("class")
	require.NoError(t, err)
	require.Equal(t, "foo", v)

	ok, err := el.DeleteAttr("class")
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, el.Has("class"))
}

func TestElementGetBoundingClientRectParsesLeadingDigits(t *testing.T) {
	el := NewElement("div")
	el.style.SetAttr("left", "12px")
	el.style.SetAttr("top", "34px")
	el.style.SetAttr("width", "56px")
	el.style.SetAttr("height", "78px")

	rect := el.GetBoundingClientRect()
	x, _ := rect.GetAttr("x")
	y, _ := rect.GetAttr("y")
	w, _ := rect.GetAttr("width")
	h, _ := rect.GetAttr("height")
	require.Equal(t, int64(12), x)
	require.Equal(t, int64(34), y)
	require.Equal(t, int64(56), w)
	require.Equal(t, int64(78), h)
}

func TestElementAppendChildAndInnerHTML(t *testing.T) {
	parent := NewElement("div")
	parent.AppendChild("hello ")
	child := NewElement("span")
	child.AppendChild("world")
	parent.AppendChild(child)

	require.Equal(t, "hello <span>world</span>", parent.InnerHTML())
}

func TestCanvasToDataURLIsFixed(t *testing.T) {
	c := NewCanvas()
	fn, err := c.GetAttr("toDataURL")
	require.NoError(t, err)
	v, err := fn.(types.Callable).Call(c, nil)
	require.NoError(t, err)
	require.Contains(t, v.(string), "data:image/png;base64,")
}

func TestCanvasGetContextDispatch(t *testing.T) {
	c := NewCanvas()
	fn, _ := c.GetAttr("getContext")
	ctx2d, err := fn.(types.Callable).Call(c, []any{"2d"})
	require.NoError(t, err)
	_, ok := ctx2d.(*RenderingContext2D)
	require.True(t, ok)

	ctxGL, err := fn.(types.Callable).Call(c, []any{"webgl"})
	require.NoError(t, err)
	_, ok = ctxGL.(*WebGLRenderingContext)
	require.True(t, ok)
}

func TestWebGLGetParameterReportsFixedVendorRenderer(t *testing.T) {
	ctx := NewWebGLRenderingContext()
	fn, _ := ctx.GetAttr("getParameter")
	vendor, err := fn.(types.Callable).Call(ctx, []any{int64(37445)})
	require.NoError(t, err)
	require.Equal(t, "Google Inc. (Intel)", vendor)
}

func TestIframeContentWindowRecomputedEachAccess(t *testing.T) {
	ifr := NewIframeElement()
	a, err := ifr.GetAttr("contentWindow")
	require.NoError(t, err)
	b, err := ifr.GetAttr("contentWindow")
	require.NoError(t, err)
	require.NotSame(t, a, b)
}

func TestRTCPeerConnectionFiresICECandidateOnOnicecandidateAssignment(t *testing.T) {
	win := NewWindow(WindowOptions{IP: "203.0.113.7"})
	ctor, _ := win.GetAttr("RTCPeerConnection")
	rtcVal, err := ctor.(types.Callable).Call(nil, nil)
	require.NoError(t, err)
	rtc := rtcVal.(*RTCPeerConnection)

	var candidate any
	listener := types.NativeFunc("onicecandidate", func(_ any, args []any) (any, error) {
		c, _ := types.GetAttr(args[0], "candidate")
		candidate, _ = types.GetAttr(c, "candidate")
		return types.Undefined, nil
	})

	err = rtc.SetAttr("onicecandidate", listener)
	require.NoError(t, err)

	require.Contains(t, candidate.(string), "203.0.113.7")
	require.Contains(t, candidate.(string), "a=candidate:735671172 1 udp 2113937151")
}

func TestRTCPeerConnectionCreateOfferReusesCandidateString(t *testing.T) {
	win := NewWindow(WindowOptions{IP: "203.0.113.7"})
	ctor, _ := win.GetAttr("RTCPeerConnection")
	rtcVal, _ := ctor.(types.Callable).Call(nil, nil)
	rtc := rtcVal.(*RTCPeerConnection)

	createOffer, _ := rtc.GetAttr("createOffer")
	result, err := createOffer.(types.Callable).Call(rtc, nil)
	require.NoError(t, err)

	promise := result.(*types.Promise)
	var sdp any
	onFulfilled := types.NativeFunc("onFulfilled", func(_ any, args []any) (any, error) {
		sdp, _ = types.GetAttr(args[0], "sdp")
		return types.Undefined, nil
	})
	promise.Then(onFulfilled, nil)
	require.Equal(t, "a=candidate:735671172 1 udp 2113937151 203.0.113.7 60444 typ host generation 0 network-cost 999", sdp)
}

func TestWindowParseIntLeadingDigits(t *testing.T) {
	fn, _ := NewWindow(WindowOptions{}).GetAttr("parseInt")
	v, err := fn.(types.Callable).Call(nil, []any{"42px"})
	require.NoError(t, err)
	require.Equal(t, 42.0, v)
}

func TestWindowEncodeURIComponentMatchesPythonQuote(t *testing.T) {
	fn, _ := NewWindow(WindowOptions{}).GetAttr("encodeURIComponent")
	v, err := fn.(types.Callable).Call(nil, []any{"a b/c"})
	require.NoError(t, err)
	require.Equal(t, "a%20b/c", v)
}

func TestWindowBindPayloadGlobalsInstallsBindings(t *testing.T) {
	win := NewWindow(WindowOptions{})
	win.BindPayloadGlobals("_0x1a", "_0x1b", "_0x1c", "raw-value")

	ctor, err := win.GetAttr("_0x1a")
	require.NoError(t, err)
	_, ok := ctor.(*NativeConstructor)
	require.True(t, ok)

	raw, err := win.GetAttr("_0x1c")
	require.NoError(t, err)
	require.Equal(t, "raw-value", raw)

	forwarder, err := win.GetAttr("_0x1b")
	require.NoError(t, err)
	now, err := forwarder.(types.Callable).Call(nil, []any{"now"})
	require.NoError(t, err)
	require.IsType(t, int64(0), now)
}

func TestWindowMatchMediaMatchesNoPreferenceQueries(t *testing.T) {
	win := NewWindow(WindowOptions{})
	fn, _ := win.GetAttr("matchMedia")
	mql, err := fn.(types.Callable).Call(nil, []any{"(prefers-reduced-motion: no-preference)"})
	require.NoError(t, err)
	matches, _ := types.GetAttr(mql, "matches")
	require.Equal(t, true, matches)
}
