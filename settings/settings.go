// Package settings centralizes the SDK's runtime configuration, loaded from
// environment variables and an optional config file via viper, matching
// the recognized options in the lifecycle design's Configuration section.
package settings

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/originals-sdk/sdk/ulogger"
)

// Network identifies the Bitcoin network an inscription/transfer targets.
type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkRegtest Network = "regtest"
	NetworkSignet  Network = "signet"
	NetworkTestnet Network = "testnet"
)

// KeyType identifies a supported verification-method key algorithm.
type KeyType string

const (
	KeyTypeEd25519    KeyType = "Ed25519"
	KeyTypeES256K     KeyType = "ES256K"
	KeyTypeES256      KeyType = "ES256"
	KeyTypeBLS12381G2 KeyType = "Bls12381G2"
)

// LoggingConfig mirrors spec §6's logging block.
type LoggingConfig struct {
	Level          ulogger.Level
	Outputs        []string
	SanitizeLogs   bool
	EventLogging   map[string]ulogger.Level
}

// MetricsConfig mirrors spec §6's metrics block.
type MetricsConfig struct {
	Enabled bool
}

// RetryConfig carries retry settings for adapter network calls (spec §5,
// §7). Load fills MaxRetries from configuration, but no adapter reads this
// struct: the did:webvh log fetcher applies its own fixed policy (three
// attempts, exponential backoff, and a 15 s request timeout when it is
// given no HTTP client).
type RetryConfig struct {
	RequestTimeout time.Duration
	MaxRetries     int
	BaseBackoff    time.Duration
	MaxBackoff     time.Duration
}

// Settings is the central configuration object threaded through every
// manager constructor in this SDK, mirroring the teacher's
// *settings.Settings threading convention.
type Settings struct {
	Network        Network
	DefaultKeyType KeyType
	WebVHNetwork   string
	EnableLogging  bool
	Logging        LoggingConfig
	Metrics        MetricsConfig
	Retry          RetryConfig
}

// Default returns a Settings populated with the SDK's documented defaults.
func Default() *Settings {
	return &Settings{
		Network:        NetworkMainnet,
		DefaultKeyType: KeyTypeEd25519,
		EnableLogging:  true,
		Logging: LoggingConfig{
			Level:        ulogger.LevelInfo,
			Outputs:      []string{"stdout"},
			EventLogging: map[string]ulogger.Level{},
		},
		Metrics: MetricsConfig{Enabled: true},
		Retry: RetryConfig{
			RequestTimeout: 15 * time.Second,
			MaxRetries:     3,
			BaseBackoff:    time.Second,
			MaxBackoff:     30 * time.Second,
		},
	}
}

// Load builds Settings from environment variables (prefixed ORIGINALS_)
// and, if present, a config file at configPath, overlaying onto the
// documented defaults. An empty configPath skips file loading.
func Load(configPath string) (*Settings, error) {
	s := Default()

	v := viper.New()
	v.SetEnvPrefix("ORIGINALS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	if network := v.GetString("network"); network != "" {
		s.Network = Network(network)
	}
	if keyType := v.GetString("defaultKeyType"); keyType != "" {
		s.DefaultKeyType = KeyType(keyType)
	}
	if domain := v.GetString("webvhNetwork"); domain != "" {
		s.WebVHNetwork = domain
	}
	if v.IsSet("enableLogging") {
		s.EnableLogging = v.GetBool("enableLogging")
	}
	if level := v.GetString("logging.level"); level != "" {
		s.Logging.Level = ulogger.Level(level)
	}
	if v.IsSet("metrics.enabled") {
		s.Metrics.Enabled = v.GetBool("metrics.enabled")
	}
	if v.IsSet("retry.maxRetries") {
		s.Retry.MaxRetries = v.GetInt("retry.maxRetries")
	}

	return s, nil
}

// Validate checks that the settings form a coherent configuration,
// returning a ConfigurationError for anything invalid.
func (s *Settings) Validate() error {
	switch s.Network {
	case NetworkMainnet, NetworkRegtest, NetworkSignet, NetworkTestnet:
	default:
		return invalidNetwork(s.Network)
	}

	switch s.DefaultKeyType {
	case KeyTypeEd25519, KeyTypeES256K, KeyTypeES256:
	default:
		return invalidKeyType(s.DefaultKeyType)
	}

	return nil
}
