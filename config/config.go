// Package config supplies the ambient environment-variable and
// device-profile configuration layer around driver.Options: the original
// Python build hardcodes one IP/UA/profile, this package lets the CLI
// source those from the process environment and a canned YAML catalog
// instead (spec.md SPEC_FULL.md "Supplemented features").
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"

	"github.com/mna/chaosvm/shim"
)

// Options holds driver.Options' scalar fields sourced from the process
// environment via struct tags, the same caarlos0/env/v6 convention the
// rest of this codebase's go.mod already lists.
type Options struct {
	IP      string `env:"CHAOSVM_IP" envDefault:"114.5.1.4"`
	UA      string `env:"CHAOSVM_UA"`
	Href    string `env:"CHAOSVM_HREF"`
	Referer string `env:"CHAOSVM_REFERER"`
	Profile string `env:"CHAOSVM_PROFILE" envDefault:"default"`
}

// Load reads Options from the environment, applying envDefault tags for
// anything unset.
func Load() (Options, error) {
	var o Options
	if err := env.Parse(&o); err != nil {
		return Options{}, fmt.Errorf("config: parse environment: %w", err)
	}
	return o, nil
}

// DeviceProfile is one canned navigator/screen preset a YAML catalog can
// name and select by key, so the shim is not pinned to a single hardcoded
// UA/platform pair the way the original Navigator/Screen classes are.
type DeviceProfile struct {
	Name      string                `yaml:"name"`
	Navigator shim.NavigatorProfile `yaml:"navigator"`
	Screen    shim.ScreenProfile    `yaml:"screen"`
}

// LoadProfiles reads a YAML document of named device profiles keyed by
// DeviceProfile.Name.
func LoadProfiles(path string) (map[string]DeviceProfile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read profiles: %w", err)
	}
	var list []DeviceProfile
	if err := yaml.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("config: parse profiles: %w", err)
	}
	out := make(map[string]DeviceProfile, len(list))
	for _, p := range list {
		out[p.Name] = p
	}
	return out, nil
}
