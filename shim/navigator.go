package shim

import "github.com/mna/chaosvm/types"

// NavigatorProfile is the subset of window.navigator's fixed fields a
// device profile may override; zero-valued fields fall back to the
// Chrome-112-on-Windows-10-x64 defaults proxy/dom.py's Navigator ships.
type NavigatorProfile struct {
	UserAgent            string   `yaml:"userAgent"`
	Platform             string   `yaml:"platform"`
	Languages            []string `yaml:"languages"`
	HardwareConcurrency  int      `yaml:"hardwareConcurrency"`
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/112.0.0.0 Safari/537.36 Edg/112.0.1722.64"

func defaultNavigatorProfile() NavigatorProfile {
	return NavigatorProfile{
		UserAgent:           defaultUserAgent,
		Platform:            "Win32",
		Languages:           []string{"zh-CN", "en", "en-GB", "en-US"},
		HardwareConcurrency: 8,
	}
}

// Navigator is window.navigator -- a fixed fingerprint fixture, per
// proxy/dom.py's Navigator.
type Navigator struct {
	*types.Object
	userAgent string
}

func NewNavigator(win *Window, profile NavigatorProfile) *Navigator {
	if profile.UserAgent == "" {
		profile.UserAgent = defaultUserAgent
	}
	if profile.Platform == "" {
		profile.Platform = "Win32"
	}
	if len(profile.Languages) == 0 {
		profile.Languages = []string{"zh-CN", "en", "en-GB", "en-US"}
	}
	if profile.HardwareConcurrency == 0 {
		profile.HardwareConcurrency = 8
	}

	n := &Navigator{Object: types.NewObject("Navigator"), userAgent: profile.UserAgent}
	n.SetAttr("cookieEnabled", true)
	langs := make([]any, len(profile.Languages))
	for i, l := range profile.Languages {
		langs[i] = l
	}
	n.SetAttr("languages", types.NewArray(langs...))
	n.SetAttr("language", profile.Languages[0])
	n.SetAttr("userAgent", profile.UserAgent)
	n.SetAttr("platform", profile.Platform)
	n.SetAttr("hardwareConcurrency", int64(profile.HardwareConcurrency))
	n.SetAttr("appVersion", appVersionFromUA(profile.UserAgent))
	n.SetAttr("vendor", "Google Inc.")
	n.SetAttr("appName", "Netscape")
	n.SetAttr("webdriver", false)

	midi := types.NewObject("MIDIAccess")
	midi.SetAttr("inputs", types.NewObject("MIDIInputMap"))
	midi.SetAttr("outputs", types.NewObject("MIDIOutputMap"))
	n.SetAttr("requestMIDIAccess", types.NativeFunc("requestMIDIAccess", func(any, []any) (any, error) {
		return types.NewPromise(func(resolve func(any), _ func(error)) { resolve(midi) }), nil
	}))
	n.SetAttr("serviceWorker", types.NewObject("ServiceWorkerContainer"))
	return n
}

// SetUserAgent overrides the fixture (driver.Options's UA override).
func (n *Navigator) SetUserAgent(ua string) {
	n.userAgent = ua
	n.SetAttr("userAgent", ua)
	n.SetAttr("appVersion", appVersionFromUA(ua))
}

func appVersionFromUA(ua string) string {
	if len(ua) > 8 {
		return ua[8:]
	}
	return ua
}
