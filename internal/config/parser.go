package config

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"kdforge/internal/prf"
)

// Default derivation parameters applied to profiles that leave them out.
const (
	DefaultPRF        = "hmac-sha256"
	DefaultIterations = 600000
	DefaultKeyLength  = 32
	DefaultOutput     = "hex"
)

// Parser handles configuration file parsing and validation
type Parser struct {
	configPath string
	config     *Config
}

// NewParser creates a new configuration parser
func NewParser(configPath string) *Parser {
	return &Parser{
		configPath: configPath,
	}
}

// Load reads and parses the configuration file
func (p *Parser) Load() (*Config, error) {
	data, err := os.ReadFile(p.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", p.configPath, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	// Set defaults
	p.setDefaults(&config)

	// Validate configuration
	if err := p.validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	p.config = &config
	return &config, nil
}

// setDefaults applies default values to configuration
func (p *Parser) setDefaults(config *Config) {
	for name, profile := range config.Profiles {
		if profile.Name == "" {
			profile.Name = name
		}
		if profile.PRF == "" {
			profile.PRF = DefaultPRF
		}
		if profile.Iterations == 0 {
			profile.Iterations = DefaultIterations
		}
		if profile.KeyLength == 0 {
			profile.KeyLength = DefaultKeyLength
		}
		if profile.Output == "" {
			profile.Output = DefaultOutput
		}
		config.Profiles[name] = profile
	}

	// A single profile is the implicit default
	if config.DefaultProfile == "" && len(config.Profiles) == 1 {
		for name := range config.Profiles {
			config.DefaultProfile = name
		}
	}
}

// validate checks the configuration for correctness
func (p *Parser) validate(config *Config) error {
	if len(config.Profiles) == 0 {
		return fmt.Errorf("no derivation profiles defined")
	}

	if config.DefaultProfile != "" {
		if _, ok := config.Profiles[config.DefaultProfile]; !ok {
			return fmt.Errorf("default profile %q not defined", config.DefaultProfile)
		}
	}

	for name, profile := range config.Profiles {
		if _, err := prf.Lookup(profile.PRF); err != nil {
			return fmt.Errorf("profile %q: %w", name, err)
		}
		if profile.Iterations < 1 {
			return fmt.Errorf("profile %q: iterations must be at least 1, got %d", name, profile.Iterations)
		}
		if profile.KeyLength < 1 {
			return fmt.Errorf("profile %q: key length must be at least 1, got %d", name, profile.KeyLength)
		}

		saltSources := 0
		if profile.SaltHex != "" {
			saltSources++
		}
		if profile.SaltBase64 != "" {
			saltSources++
		}
		if profile.SaltFile != "" {
			saltSources++
		}
		if saltSources > 1 {
			return fmt.Errorf("profile %q: at most one of salt_hex, salt_base64, salt_file may be set", name)
		}

		switch profile.Output {
		case "hex", "base64", "raw":
		default:
			return fmt.Errorf("profile %q: unsupported output encoding %q", name, profile.Output)
		}
	}

	return nil
}

// GetProfile returns a named profile, or the default profile when name
// is empty.
func (c *Config) GetProfile(name string) (Profile, error) {
	if name == "" {
		name = c.DefaultProfile
	}
	if name == "" {
		return Profile{}, fmt.Errorf("no profile selected and no default profile configured")
	}
	profile, ok := c.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("profile %q not defined", name)
	}
	return profile, nil
}

// Salt decodes the profile's configured salt source. Profiles without a
// salt source return an empty salt.
func (pr Profile) Salt() ([]byte, error) {
	switch {
	case pr.SaltHex != "":
		salt, err := hex.DecodeString(pr.SaltHex)
		if err != nil {
			return nil, fmt.Errorf("failed to decode salt_hex: %w", err)
		}
		return salt, nil
	case pr.SaltBase64 != "":
		salt, err := base64.StdEncoding.DecodeString(pr.SaltBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode salt_base64: %w", err)
		}
		return salt, nil
	case pr.SaltFile != "":
		salt, err := os.ReadFile(pr.SaltFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read salt file %s: %w", pr.SaltFile, err)
		}
		return salt, nil
	}
	return nil, nil
}
