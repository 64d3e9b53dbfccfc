// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/buzzedword/puppet/internal/searchpath"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultEnvironment is the environment used when none is configured.
	DefaultEnvironment = "production"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidEnvironmentName is the sentinel error wrapped by InvalidEnvironmentNameError.
	ErrInvalidEnvironmentName = errors.New("invalid environment name")

	environmentNameRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

type (
	// ColorScheme selects the terminal color scheme for rendered output.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not
	// recognized. It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidEnvironmentNameError is returned when an environment name
	// contains characters outside [A-Za-z0-9_]. It wraps
	// ErrInvalidEnvironmentName for errors.Is() compatibility.
	InvalidEnvironmentNameError struct {
		Value string
	}

	// EnvironmentConfig holds per-environment overrides.
	EnvironmentConfig struct {
		// Modulepath overrides the global modulepath when non-empty.
		Modulepath string `mapstructure:"modulepath"`
	}

	// UIConfig controls terminal output behavior.
	UIConfig struct {
		ColorScheme ColorScheme `mapstructure:"color_scheme"`
		Verbose     bool        `mapstructure:"verbose"`
	}

	// Config is the top-level puppet configuration.
	Config struct {
		// Modulepath is the list-separated set of directories searched
		// for installed modules.
		Modulepath string `mapstructure:"modulepath"`

		// ModuleRepository is the root directory of the local module
		// release repository. Empty means no repository is configured.
		ModuleRepository string `mapstructure:"module_repository"`

		// Environment names the active environment.
		Environment string `mapstructure:"environment"`

		// Environments holds per-environment overrides, keyed by name.
		Environments map[string]EnvironmentConfig `mapstructure:"environments"`

		UI UIConfig `mapstructure:"ui"`
	}
)

func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", string(e.Value))
}

func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

func (e *InvalidEnvironmentNameError) Error() string {
	return fmt.Sprintf("invalid environment name %q (only letters, digits and underscores)", e.Value)
}

func (e *InvalidEnvironmentNameError) Unwrap() error {
	return ErrInvalidEnvironmentName
}

// IsValid reports whether the color scheme is one of the known values.
func (c ColorScheme) IsValid() bool {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true
	}
	return false
}

// Validate returns a typed error when the color scheme is not recognized.
func (c ColorScheme) Validate() error {
	if !c.IsValid() {
		return &InvalidColorSchemeError{Value: c}
	}
	return nil
}

// DefaultModulepath returns the built-in module search path.
func DefaultModulepath() string {
	return searchpath.Join([]string{
		filepath.Join("/etc", "puppet", "modules"),
		filepath.Join("/usr", "share", "puppet", "modules"),
	})
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Modulepath:  DefaultModulepath(),
		Environment: DefaultEnvironment,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Validate checks constraints the CUE schema cannot express on
// already-decoded values.
func (c *Config) Validate() error {
	if err := c.UI.ColorScheme.Validate(); err != nil {
		return err
	}
	if c.Environment != "" && !environmentNameRegex.MatchString(c.Environment) {
		return &InvalidEnvironmentNameError{Value: c.Environment}
	}
	for name := range c.Environments {
		if !environmentNameRegex.MatchString(name) {
			return &InvalidEnvironmentNameError{Value: name}
		}
	}
	return nil
}

// EffectiveEnvironment returns the environment to operate in: the
// override when non-empty, else the configured one, else the default.
func (c *Config) EffectiveEnvironment(override string) string {
	if override != "" {
		return override
	}
	if c.Environment != "" {
		return c.Environment
	}
	return DefaultEnvironment
}

// EffectiveModulepath returns the module search path for the given
// environment as a directory list. An environment with its own
// modulepath shadows the global one.
func (c *Config) EffectiveModulepath(environment string) []string {
	env := c.EffectiveEnvironment(environment)
	if envCfg, ok := c.Environments[env]; ok && envCfg.Modulepath != "" {
		return searchpath.Split(envCfg.Modulepath)
	}
	return searchpath.Split(c.Modulepath)
}
