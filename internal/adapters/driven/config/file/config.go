// Package file loads pipeline configuration from a TOML file at the
// pipeline root. A missing file means defaults; a malformed file is a
// configuration error.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/crucible-labs/forge-cli/internal/core/domain"
)

// ConfigFileName is the name looked up under the pipeline root.
const ConfigFileName = "forge.toml"

// Config holds the pipeline settings a forge.toml may override.
type Config struct {
	Draft DraftConfig `toml:"draft"`
}

// DraftConfig configures the drafting stage.
type DraftConfig struct {
	// Model is the model used for drafting when the --model flag is
	// not given. Empty means the adapter default.
	Model string `toml:"model"`

	// RequestsPerSecond throttles drafting calls. Zero means the
	// adapter default.
	RequestsPerSecond float64 `toml:"requests_per_second"`

	// Burst is the throttle burst size. Zero means the adapter default.
	Burst int `toml:"burst"`
}

// Load reads forge.toml from dir. A missing file yields the zero
// config, which downstream constructors fill with defaults.
func Load(dir string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", ConfigFileName, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: parse %s: %v", domain.ErrConfiguration, ConfigFileName, err)
	}
	return cfg, nil
}
