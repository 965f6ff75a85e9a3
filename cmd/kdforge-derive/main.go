package main

import (
	"bufio"
	"encoding/base64"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"kdforge/internal/config"
	"kdforge/internal/kdf"
	"kdforge/internal/prf"
)

var (
	configPath  = flag.String("config", "", "Path to derivation profile configuration file")
	profileName = flag.String("profile", "", "Profile to use from the configuration file")
	prfName     = flag.String("prf", config.DefaultPRF, "Keyed PRF to derive with")
	iterations  = flag.Int("iterations", config.DefaultIterations, "PBKDF2 iteration count")
	keyLength   = flag.Int("length", config.DefaultKeyLength, "Derived key length in bytes")
	saltHex     = flag.String("salt-hex", "", "Salt as a hex string")
	saltBase64  = flag.String("salt-base64", "", "Salt as a base64 string")
	saltFile    = flag.String("salt-file", "", "File containing the raw salt bytes")
	output      = flag.String("output", config.DefaultOutput, "Output encoding (hex, base64, raw)")
	workers     = flag.Int("workers", 1, "Worker goroutines for block generation")
	logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	version     = flag.Bool("version", false, "Show version and exit")
)

const (
	toolVersion = "1.0.0"
	toolName    = "kdforge-derive"
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("%s version %s\n", toolName, toolVersion)
		os.Exit(0)
	}

	// Setup logging
	if err := setupLogging(*logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logging: %v\n", err)
		os.Exit(1)
	}

	profile, err := resolveProfile()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to resolve derivation parameters")
	}

	logrus.WithFields(logrus.Fields{
		"prf":        profile.PRF,
		"iterations": profile.Iterations,
		"key_length": profile.KeyLength,
	}).Info("Derivation parameters resolved")

	descriptor, err := prf.Lookup(profile.PRF)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to resolve PRF")
	}

	salt, err := profile.Salt()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load salt")
	}
	if len(salt) == 0 {
		logrus.Warn("Deriving with an empty salt")
	}

	password, err := readPassword()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to read password")
	}

	key, err := kdf.DeriveParallel(descriptor.PRF(), password, salt,
		profile.Iterations, profile.KeyLength, *workers)
	kdf.Wipe(password)
	if err != nil {
		logrus.WithError(err).Fatal("Key derivation failed")
	}

	if err := writeKey(key, profile.Output); err != nil {
		logrus.WithError(err).Fatal("Failed to write derived key")
	}
	kdf.Wipe(key)
}

// resolveProfile builds the effective derivation profile from either
// the configuration file or the command-line flags.
func resolveProfile() (config.Profile, error) {
	if *configPath != "" {
		parser := config.NewParser(*configPath)
		cfg, err := parser.Load()
		if err != nil {
			return config.Profile{}, err
		}
		logrus.WithFields(logrus.Fields{
			"config":   *configPath,
			"profiles": len(cfg.Profiles),
		}).Info("Configuration loaded successfully")
		return cfg.GetProfile(*profileName)
	}

	return config.Profile{
		PRF:        *prfName,
		Iterations: *iterations,
		KeyLength:  *keyLength,
		SaltHex:    *saltHex,
		SaltBase64: *saltBase64,
		SaltFile:   *saltFile,
		Output:     *output,
	}, nil
}

// readPassword sources the password from KDFORGE_PASSWORD or, failing
// that, the first line of stdin. The bytes are passed through verbatim.
func readPassword() ([]byte, error) {
	if pw, ok := os.LookupEnv("KDFORGE_PASSWORD"); ok {
		return []byte(pw), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("failed to read password from stdin: %w", err)
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// writeKey emits the derived key on stdout in the requested encoding.
func writeKey(key []byte, encoding string) error {
	switch encoding {
	case "hex":
		fmt.Println(hex.EncodeToString(key))
	case "base64":
		fmt.Println(base64.StdEncoding.EncodeToString(key))
	case "raw":
		if _, err := os.Stdout.Write(key); err != nil {
			return fmt.Errorf("failed to write raw key: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output encoding %q", encoding)
	}
	return nil
}

func setupLogging(level string) error {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		DisableColors: false,
	})

	parsedLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %s: %w", level, err)
	}

	logrus.SetLevel(parsedLevel)
	return nil
}
