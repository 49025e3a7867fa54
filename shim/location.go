package shim

import "github.com/mna/chaosvm/types"

// Location is window.location / document.location -- a default href and
// referer, both of which the driver can override per-run (spec.md §4.C, E).
type Location struct {
	*types.Object
	href     string
	referer  string
	hostname string
}

// defaultHref/defaultReferer mirror the fixed constants proxy/dom.py's
// Location class ships with before a driver run overrides them.
const (
	defaultHref     = "https://t.captcha.qq.com/template/drag_ele.html"
	defaultReferer  = "https://xui.ptlogin2.qq.com/cgi-bin/xlogin"
	defaultHostname = "t.captcha.qq.com"
)

func NewLocation() *Location {
	return &Location{
		Object:   types.NewObject("Location"),
		href:     defaultHref,
		referer:  defaultReferer,
		hostname: defaultHostname,
	}
}

func (l *Location) SetHref(href string)       { l.href = href }
func (l *Location) SetReferer(referer string) { l.referer = referer }

func (l *Location) GetAttr(name string) (any, error) {
	switch name {
	case "href":
		return l.href, nil
	case "referer", "referrer":
		return l.referer, nil
	case "hostname", "host":
		return l.hostname, nil
	case "protocol":
		return "https:", nil
	case "toString":
		return types.NativeFunc("toString", func(any, []any) (any, error) { return l.href, nil }), nil
	}
	return l.Object.GetAttr(name)
}
