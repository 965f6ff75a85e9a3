package config

// Config represents the main derivation profile configuration
type Config struct {
	Name           string             `yaml:"name,omitempty"`            // Configuration name
	Version        int                `yaml:"version,omitempty"`         // Configuration version
	DefaultProfile string             `yaml:"default_profile,omitempty"` // Profile used when none is selected
	Profiles       map[string]Profile `yaml:"profiles"`
}

// Profile defines the parameters of one named key derivation
type Profile struct {
	Name       string `yaml:"name,omitempty"`
	PRF        string `yaml:"prf"`
	Iterations int    `yaml:"iterations"`
	KeyLength  int    `yaml:"key_length"`
	SaltHex    string `yaml:"salt_hex,omitempty"`
	SaltBase64 string `yaml:"salt_base64,omitempty"`
	SaltFile   string `yaml:"salt_file,omitempty"`
	Output     string `yaml:"output,omitempty"` // hex, base64 or raw
}
