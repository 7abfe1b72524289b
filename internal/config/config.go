// Package config loads the optional hlc.toml project file: the target
// backend, output directory, and whether build should run the result.
// CLI flags always win over the file, which wins over these defaults.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"tlog.app/go/errors"
)

// Config is the project's hlc.toml contents, already merged with defaults.
type Config struct {
	Target string `toml:"target"`
	OutDir string `toml:"out_dir"`
	Run    bool   `toml:"run"`
}

// Default returns the built-in defaults, used when no hlc.toml is found.
func Default() Config {
	return Config{Target: "py", OutDir: ".", Run: false}
}

// Load looks for hlc.toml in dir and merges it over Default. A missing file
// is not an error; a malformed one is.
func Load(dir string) (Config, error) {
	cfg := Default()

	path := dir + string(os.PathSeparator) + "hlc.toml"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode %s", path)
	}

	return cfg, nil
}
