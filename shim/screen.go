package shim

import "github.com/mna/chaosvm/types"

// Screen is window.screen -- a fixed geometry fixture, per proxy/dom.py's
// Screen (1408x792, 24-bit color).
type Screen struct {
	*types.Object
}

// ScreenProfile is the subset of Screen's fixed fields a device profile
// may override (config package feeds this from YAML).
type ScreenProfile struct {
	Width  int
	Height int
}

func NewScreen(profile ScreenProfile) *Screen {
	if profile.Width == 0 {
		profile.Width = 1408
	}
	if profile.Height == 0 {
		profile.Height = 792
	}
	s := &Screen{Object: types.NewObject("Screen")}
	s.SetAttr("width", int64(profile.Width))
	s.SetAttr("height", int64(profile.Height))
	s.SetAttr("availWidth", int64(profile.Width))
	s.SetAttr("availHeight", int64(profile.Height))
	s.SetAttr("availLeft", int64(0))
	s.SetAttr("availTop", int64(0))
	s.SetAttr("colorDepth", int64(24))
	s.SetAttr("pixelDepth", int64(24))
	s.SetAttr("isExtended", false)
	return s
}
