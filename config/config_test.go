package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesEnvDefaults(t *testing.T) {
	o, err := Load()
	require.NoError(t, err)
	require.Equal(t, "114.5.1.4", o.IP)
	require.Equal(t, "default", o.Profile)
	require.Empty(t, o.UA)
}

func TestLoadReadsOverrides(t *testing.T) {
	t.Setenv("CHAOSVM_IP", "203.0.113.9")
	t.Setenv("CHAOSVM_UA", "custom-ua/1.0")
	t.Setenv("CHAOSVM_PROFILE", "laptop")

	o, err := Load()
	require.NoError(t, err)
	require.Equal(t, "203.0.113.9", o.IP)
	require.Equal(t, "custom-ua/1.0", o.UA)
	require.Equal(t, "laptop", o.Profile)
}

func TestLoadProfilesKeysByName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")
	doc := `
- name: laptop
  navigator:
    platform: Win32
    hardwareConcurrency: 8
  screen:
    width: 1408
    height: 792
- name: phone
  navigator:
    platform: Linux armv8l
    hardwareConcurrency: 4
  screen:
    width: 412
    height: 915
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	profiles, err := LoadProfiles(path)
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	laptop, ok := profiles["laptop"]
	require.True(t, ok)
	require.Equal(t, "Win32", laptop.Navigator.Platform)
	require.Equal(t, 1408, laptop.Screen.Width)

	phone, ok := profiles["phone"]
	require.True(t, ok)
	require.Equal(t, 4, phone.Navigator.HardwareConcurrency)
	require.Equal(t, 915, phone.Screen.Height)
}

func TestLoadProfilesMissingFile(t *testing.T) {
	_, err := LoadProfiles(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
