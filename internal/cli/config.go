package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/demes/pkg/demes"
	"github.com/matzehuels/demes/pkg/errors"
	"github.com/matzehuels/demes/pkg/io"
)

// config holds user defaults read from a TOML file. Command-line flags
// take precedence over every field.
//
//	format = "json"    # output format when writing to stdout
//	rel_tol = 1e-6     # compare tolerances
//	abs_tol = 0
type config struct {
	Format string   `toml:"format"`
	RelTol *float64 `toml:"rel_tol"`
	AbsTol *float64 `toml:"abs_tol"`
}

// configDir returns the config directory using XDG standard (~/.config/demes/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// loadConfig decodes the config file at path. An empty path selects the
// default location, which may be absent; an explicit path must exist.
func loadConfig(path string) (config, error) {
	var cfg config
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.Valuef("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Format != "" {
		if _, err := io.ParseFormat(cfg.Format); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeValue, err, "config %s", path)
		}
	}
	for name, v := range map[string]*float64{"rel_tol": cfg.RelTol, "abs_tol": cfg.AbsTol} {
		if v != nil && *v < 0 {
			return cfg, errors.Valuef("config %s: %s must be non-negative, got %v", path, name, *v)
		}
	}
	return cfg, nil
}

// tolerance returns the configured comparison tolerance, falling back to
// the library default for unset fields.
func (cfg config) tolerance() demes.Tolerance {
	tol := demes.DefaultTolerance
	if cfg.RelTol != nil {
		tol.Rel = *cfg.RelTol
	}
	if cfg.AbsTol != nil {
		tol.Abs = *cfg.AbsTol
	}
	return tol
}

// outputFormat picks the format for writing a graph: an explicit flag
// wins, then the extension of the output path, then the config file.
func (cfg config) outputFormat(flag, output string) (io.Format, error) {
	switch {
	case flag != "":
		return io.ParseFormat(flag)
	case output != "":
		return io.FormatFromPath(output), nil
	case cfg.Format != "":
		return io.ParseFormat(cfg.Format)
	default:
		return io.FormatYAML, nil
	}
}
