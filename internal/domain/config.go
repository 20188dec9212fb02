package domain

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// OracleMode selects which oracle backend a run resolves.
type OracleMode string

const (
	OracleModeAuto    OracleMode = "auto"
	OracleModeBuiltin OracleMode = "builtin"
	OracleModeObsPy   OracleMode = "obspy"
	OracleModeNone    OracleMode = "none"
)

// ValidOracleModes enumerates all recognized oracle modes.
var ValidOracleModes = []OracleMode{
	OracleModeAuto,
	OracleModeBuiltin,
	OracleModeObsPy,
	OracleModeNone,
}

// Config holds project-level configuration loaded from .fixturecheck.yaml.
type Config struct {
	FixturesDir string       `yaml:"fixtures_dir" json:"fixtures_dir"`
	VectorsDir  string       `yaml:"vectors_dir"  json:"vectors_dir"`
	Pattern     string       `yaml:"pattern"      json:"pattern"`
	StateDir    string       `yaml:"state_dir"    json:"state_dir"`
	Oracle      OracleConfig `yaml:"oracle"       json:"oracle"`
}

// OracleConfig configures oracle resolution.
type OracleConfig struct {
	Mode   OracleMode `yaml:"mode"   json:"mode"`
	Python string     `yaml:"python" json:"python,omitempty"`
}

// DefaultConfig mirrors the layout of a stationxml-rs checkout.
func DefaultConfig() Config {
	return Config{
		FixturesDir: filepath.Join("tests", "fixtures"),
		VectorsDir:  filepath.Join("pyscripts", "test_vectors"),
		Pattern:     "*.xml",
		StateDir:    ".fixturecheck",
		Oracle: OracleConfig{
			Mode:   OracleModeAuto,
			Python: "python3",
		},
	}
}

// WithDefaults fills every empty field from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.FixturesDir == "" {
		c.FixturesDir = d.FixturesDir
	}
	if c.VectorsDir == "" {
		c.VectorsDir = d.VectorsDir
	}
	if c.Pattern == "" {
		c.Pattern = d.Pattern
	}
	if c.StateDir == "" {
		c.StateDir = d.StateDir
	}
	if c.Oracle.Mode == "" {
		c.Oracle.Mode = d.Oracle.Mode
	}
	if c.Oracle.Python == "" {
		c.Oracle.Python = d.Oracle.Python
	}
	return c
}

// Resolve makes every directory absolute relative to projectPath.
func (c Config) Resolve(projectPath string) Config {
	abs := func(p string) string {
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(projectPath, p)
	}
	c.FixturesDir = abs(c.FixturesDir)
	c.VectorsDir = abs(c.VectorsDir)
	c.StateDir = abs(c.StateDir)
	return c
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	if c.Oracle.Mode != "" && !isValidOracleMode(c.Oracle.Mode) {
		return fmt.Errorf("unknown oracle mode %q (valid: auto, builtin, obspy, none)", c.Oracle.Mode)
	}
	if c.Pattern != "" {
		if !doublestar.ValidatePattern(c.Pattern) {
			return fmt.Errorf("invalid pattern %q: %w", c.Pattern, doublestar.ErrBadPattern)
		}
	}
	return nil
}

func isValidOracleMode(m OracleMode) bool {
	for _, v := range ValidOracleModes {
		if m == v {
			return true
		}
	}
	return false
}
