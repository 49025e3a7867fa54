package shim

import (
	"fmt"

	"github.com/mna/chaosvm/types"
)

// defaultRTCIP is the candidate IP address baked into the ICE candidate and
// SDP fixtures below, per proxy/dom.py's RTCPeerConnection._ip class
// default. A driver run overrides it per-Window via WindowOptions.IP (or
// later via Window.SetRTCDefaultIP), standing in for the Python original's pre-construction class-attribute
// mutation (win.RTCPeerConnection._ip = ip).
const defaultRTCIP = "114.5.1.4"

// RTCPeerConnection is window.RTCPeerConnection -- assigning its
// onicecandidate property is the only registration mechanism the payload
// has, and the assignment itself synchronously fires one fixed ICE
// candidate event, mirroring proxy/dom.py's RTCPeerConnection.__setitem__
// override (there is no addEventListener on this class). createOffer
// resolves synchronously to a fixed SDP offer reusing the same candidate
// string, per proxy/dom.py's RTCPeerConnection.
type RTCPeerConnection struct {
	*types.Object
	ip string
}

var (
	_ types.Value    = (*RTCPeerConnection)(nil)
	_ types.HasAttrs = (*RTCPeerConnection)(nil)
)

func newRTCPeerConnection(ip string) *RTCPeerConnection {
	if ip == "" {
		ip = defaultRTCIP
	}
	rtc := &RTCPeerConnection{Object: types.NewObject("RTCPeerConnection"), ip: ip}
	rtc.Object.SetAttr("createDataChannel", types.NativeFunc("createDataChannel", func(_ any, args []any) (any, error) {
		label := ""
		if len(args) > 0 {
			label = types.RawString(args[0])
		}
		ch := types.NewObject("RTCDataChannel")
		ch.SetAttr("label", label)
		if len(args) > 1 {
			ch.SetAttr("options", args[1])
		}
		return ch, nil
	}))
	rtc.Object.SetAttr("createOffer", types.NativeFunc("createOffer", func(any, []any) (any, error) {
		desc := types.NewObject("RTCSessionDescription")
		desc.SetAttr("sdp", rtc.candidateString())
		return types.NewPromise(func(resolve func(any), _ func(error)) { resolve(desc) }), nil
	}))
	rtc.Object.SetAttr("setLocalDescription", types.NativeFunc("setLocalDescription", func(_ any, args []any) (any, error) {
		if len(args) > 0 {
			rtc.Object.SetAttr("localDescription", args[0])
		}
		return types.NewPromise(func(resolve func(any), _ func(error)) { resolve(types.Undefined) }), nil
	}))
	return rtc
}

// candidateString is the single fixed candidate line proxy/dom.py embeds
// both in the onicecandidate event and in createOffer's SDP.
func (rtc *RTCPeerConnection) candidateString() string {
	return fmt.Sprintf("a=candidate:735671172 1 udp 2113937151 %s 60444 typ host generation 0 network-cost 999", rtc.ip)
}

// SetAttr mirrors proxy/dom.py's __setitem__ override: assigning
// onicecandidate is the only way a payload observes ICE candidates, and
// doing so immediately fires one synthetic event carrying the fixed
// candidate string.
func (rtc *RTCPeerConnection) SetAttr(name string, v any) error {
	if err := rtc.Object.SetAttr(name, v); err != nil {
		return err
	}
	if name != "onicecandidate" {
		return nil
	}
	fn, ok := v.(types.Callable)
	if !ok {
		return nil
	}
	cand := types.NewObject("RTCIceCandidate")
	cand.SetAttr("candidate", rtc.candidateString())
	ev := types.NewObject("RTCPeerConnectionIceEvent")
	ev.SetAttr("candidate", cand)
	_, err := fn.Call(nil, []any{ev})
	return err
}
