package config

import (
	"errors"
	"fmt"
	"math/big"
	os2 "os"
	"strings"
	"time"

	"github.com/tessellated-io/foresight/log"
	"github.com/tessellated-io/foresight/simulation"
	"gopkg.in/yaml.v2"
)

const (
	DefaultConfigFile = "~/.foresight/config.yaml"

	defaultLogLevel           = "info"
	defaultTimeoutSeconds     = 30
	defaultWalletAttempts     = 3
	defaultWalletRetryDelayMs = 500
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the on-disk configuration of the foresight CLI.
type Config struct {
	Slug      string `yaml:"slug" comment:"Tenderly account slug"`
	AccessKey string `yaml:"access_key" comment:"Tenderly access key, sent as the X-Access-Key header"`
	ProjectID string `yaml:"project_id" comment:"Tenderly project to save simulations in"`
	BaseURL   string `yaml:"base_url" comment:"Simulation API base url. Leave empty for https://api.tenderly.co"`

	RPCURL  string `yaml:"rpc_url" comment:"JSON-RPC endpoint queried for the chain id. Leave empty to use chain_id instead"`
	ChainID uint64 `yaml:"chain_id" comment:"Chain id to simulate on when no rpc_url is set"`
	Account string `yaml:"account" comment:"Address simulations are sent from when no --from is given"`

	LogLevel           string `yaml:"log_level" comment:"One of debug, info, warn, error"`
	TimeoutSeconds     uint   `yaml:"timeout_seconds" comment:"HTTP timeout for a simulation request in seconds, 0 disables it"`
	WalletAttempts     uint   `yaml:"wallet_attempts" comment:"Attempts made when querying rpc_url"`
	WalletRetryDelayMs uint   `yaml:"wallet_retry_delay_ms" comment:"Delay between rpc_url attempts in milliseconds"`
}

// Template returns the config written by `foresight init`.
func Template() *Config {
	return &Config{
		Slug:      "my-account",
		AccessKey: "my-access-key",
		ProjectID: "my-project",
		ChainID:   1,
		Account:   "0x0000000000000000000000000000000000000000",

		LogLevel:           defaultLogLevel,
		TimeoutSeconds:     defaultTimeoutSeconds,
		WalletAttempts:     defaultWalletAttempts,
		WalletRetryDelayMs: defaultWalletRetryDelayMs,
	}
}

// Load reads and validates a YAML config file.
func Load(configFile string) (*Config, error) {
	expanded, err := ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	contents, err := os2.ReadFile(expanded)
	if err != nil {
		return nil, err
	}

	return Parse(contents)
}

func Parse(contents []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.UnmarshalStrict(contents, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.WalletAttempts == 0 {
		c.WalletAttempts = defaultWalletAttempts
	}
}

func (c *Config) Validate() error {
	missing := []string{}
	if strings.TrimSpace(c.Slug) == "" {
		missing = append(missing, "slug")
	}
	if strings.TrimSpace(c.AccessKey) == "" {
		missing = append(missing, "access_key")
	}
	if strings.TrimSpace(c.ProjectID) == "" {
		missing = append(missing, "project_id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}

	if !log.IsValidLogLevel(c.LogLevel) {
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

func (c *Config) ProviderConfig() simulation.ProviderConfig {
	return simulation.ProviderConfig{
		Slug:      c.Slug,
		AccessKey: c.AccessKey,
		ProjectID: c.ProjectID,
		BaseURL:   c.BaseURL,
	}
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *Config) WalletRetryDelay() time.Duration {
	return time.Duration(c.WalletRetryDelayMs) * time.Millisecond
}

func (c *Config) ChainIDBig() *big.Int {
	return new(big.Int).SetUint64(c.ChainID)
}
