package shim

import "github.com/mna/chaosvm/types"

// MousePoint is one recorded mouse-track sample (driver.Options's mouse
// track input), replayed as synchronous mousemove events the moment a
// "mousemove" listener registers, per proxy/dom.py's
// Document.addEventListener override.
type MousePoint struct {
	X, Y float64
}

// Document is window.document -- a fixed documentElement/head/body tree
// plus createElement dispatch, per proxy/dom.py's Document.
type Document struct {
	*types.Object
	eventTarget
	documentElement *Element
	head            *Element
	body            *Element
	location        *Location
	mouseTrack      []MousePoint
}

func NewDocument(loc *Location) *Document {
	html := NewElement("html")
	head := NewElement("head")
	body := NewElement("body")
	html.AppendChild(head)
	html.AppendChild(body)

	d := &Document{
		Object:          types.NewObject("Document"),
		eventTarget:     newEventTarget(),
		documentElement: html,
		head:            head,
		body:            body,
		location:        loc,
	}
	d.SetAttr("documentMode", types.Undefined)
	d.SetAttr("characterSet", "UTF-8")
	d.SetAttr("cookie", "")
	d.SetAttr("documentElement", html)
	d.SetAttr("head", head)
	d.SetAttr("body", body)
	d.SetAttr("location", loc)
	return d
}

// SetMouseTrack stores the samples replayed to each mousemove listener
// registered afterward (driver.Options.MouseTrack).
func (d *Document) SetMouseTrack(points []MousePoint) { d.mouseTrack = points }

// CreateElement dispatches on tag the way proxy/element.py's
// document.createElement does: canvas/iframe/style/video get their own
// wrapper type, everything else a bare Element.
func (d *Document) CreateElement(tag string) any {
	switch tag {
	case "canvas":
		return NewCanvas()
	case "iframe":
		return NewIframeElement()
	case "style":
		return NewStyleElement()
	case "video":
		return NewVideoElement()
	default:
		return NewElement(tag)
	}
}

func findByID(root elementLike, id string) elementLike {
	e := root.base()
	if e.attrs["id"] == id {
		return root
	}
	for _, c := range e.children {
		if el, ok := c.(elementLike); ok {
			if found := findByID(el, id); found != nil {
				return found
			}
		}
	}
	return nil
}

// GetElementByID searches the document tree depth-first; a found <video>
// gets its captureStream-bearing wrapper preserved (it is already stored
// as such in the tree), matching proxy/dom.py's special case.
func (d *Document) GetElementByID(id string) any {
	roots := []elementLike{d.documentElement, d.head, d.body}
	for _, r := range roots {
		if found := findByID(r, id); found != nil {
			return found
		}
	}
	return types.Null
}

func (d *Document) GetAttr(name string) (any, error) {
	switch name {
	case "createElement":
		return types.NativeFunc("createElement", func(_ any, args []any) (any, error) {
			tag := ""
			if len(args) > 0 {
				tag = types.RawString(args[0])
			}
			return d.CreateElement(tag), nil
		}), nil
	case "getElementById":
		return types.NativeFunc("getElementById", func(_ any, args []any) (any, error) {
			if len(args) == 0 {
				return types.Null, nil
			}
			return d.GetElementByID(types.RawString(args[0])), nil
		}), nil
	case "addEventListener":
		return types.NativeFunc("addEventListener", func(_ any, args []any) (any, error) {
			event, fn, capture := extractListenerArgs(args)
			if fn == nil {
				return types.Undefined, nil
			}
			d.addEventListener(event, fn, capture)
			if event == "mousemove" {
				d.replayMouseTrack(fn)
			}
			return types.Undefined, nil
		}), nil
	}
	if fn, ok := d.first(name); ok {
		return fn, nil
	}
	return d.Object.GetAttr(name)
}

func (d *Document) replayMouseTrack(fn types.Callable) {
	for _, p := range d.mouseTrack {
		ev := types.NewObject("MouseEvent")
		ev.SetAttr("type", "mouseevent")
		ev.SetAttr("pageX", p.X)
		ev.SetAttr("pageY", p.Y)
		fn.Call(nil, []any{ev})
	}
}
