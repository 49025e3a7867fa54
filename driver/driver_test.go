package driver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/chaosvm/shim"
)

func TestRunRejectsUnparsablePayload(t *testing.T) {
	_, err := Run("not even javascript {{{", Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse payload")
}

func TestRunRejectsPayloadMissingStack(t *testing.T) {
	_, err := Run(`var a = 1; var b = 2; var c = "x";`, Options{})
	require.Error(t, err)
}

func TestOptionsToWindowOptionsForwardsFields(t *testing.T) {
	track := []shim.MousePoint{{X: 1, Y: 2}}
	opts := Options{
		IP:         "1.2.3.4",
		UserAgent:  "ua",
		Href:       "https://example.test/",
		Referer:    "https://ref.test/",
		MouseTrack: track,
		Screen:     shim.ScreenProfile{Width: 100, Height: 200},
		Navigator:  shim.NavigatorProfile{Platform: "Linux x86_64"},
	}

	wo := opts.toWindowOptions()
	require.Equal(t, "1.2.3.4", wo.IP)
	require.Equal(t, "ua", wo.UserAgent)
	require.Equal(t, "https://example.test/", wo.Href)
	require.Equal(t, "https://ref.test/", wo.Referer)
	require.Equal(t, track, wo.MouseTrack)
	require.Equal(t, 100, wo.Screen.Width)
	require.Equal(t, "Linux x86_64", wo.Navigator.Platform)
}
