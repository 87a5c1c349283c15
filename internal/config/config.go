package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/WebHash-eth/sui-domain/internal/domain/model"
	"github.com/WebHash-eth/sui-domain/internal/suins"
)

const (
	SignerModeBridge   = "bridge"
	SignerModeExecutor = "executor"
)

type Config struct {
	Sui     SuiConfig
	Signer  SignerConfig
	Server  ServerConfig
	Link    LinkConfig
	Tracing TracingConfig
	Log     LogConfig

	// Chain is the SuiNS deployment, mainnet unless SUINS_DEPLOYMENT_FILE
	// overrides it.
	Chain suins.ChainConfig
}

type SuiConfig struct {
	RPCURL    string
	Network   model.Network
	Timeout   time.Duration
	RateRPS   float64
	RateBurst int

	BreakerFailureThreshold int
	BreakerSuccessThreshold int
	BreakerOpenTimeout      time.Duration

	DeploymentFile string
}

type SignerConfig struct {
	Mode      string
	BridgeURL string
	Sender    string
	GasBudget uint64
	Timeout   time.Duration
}

type ServerConfig struct {
	HTTPPort        int
	ShutdownTimeout time.Duration

	// TrustProxyHeaders keys API rate limits on X-Forwarded-For.
	TrustProxyHeaders bool
}

type LinkConfig struct {
	PrefillCID string
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	Insecure    bool
	SampleRatio float64
}

type LogConfig struct {
	Level         string
	Format        string
	IncludeCaller bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Sui: SuiConfig{
			RPCURL:                  getEnv("SUI_RPC_URL", "https://suins-rpc.mainnet.sui.io"),
			Network:                 model.Network(getEnv("SUI_NETWORK", string(model.NetworkMainnet))),
			Timeout:                 time.Duration(getEnvInt("SUI_RPC_TIMEOUT_SEC", 30)) * time.Second,
			RateRPS:                 getEnvFloat("SUI_RPC_RATE_LIMIT_RPS", 10),
			RateBurst:               getEnvInt("SUI_RPC_RATE_LIMIT_BURST", 20),
			BreakerFailureThreshold: getEnvInt("SUI_RPC_BREAKER_FAILURES", 5),
			BreakerSuccessThreshold: getEnvInt("SUI_RPC_BREAKER_SUCCESSES", 1),
			BreakerOpenTimeout:      time.Duration(getEnvInt("SUI_RPC_BREAKER_OPEN_SEC", 30)) * time.Second,
			DeploymentFile:          getEnv("SUINS_DEPLOYMENT_FILE", ""),
		},
		Signer: SignerConfig{
			Mode:      strings.ToLower(getEnv("SIGNER_MODE", SignerModeBridge)),
			BridgeURL: getEnv("SIGNER_BRIDGE_URL", "http://localhost:8787/sign-and-execute"),
			Sender:    getEnv("SIGNER_SENDER", ""),
			GasBudget: uint64(getEnvInt("SIGNER_GAS_BUDGET", 50_000_000)),
			Timeout:   time.Duration(getEnvInt("SIGNER_TIMEOUT_SEC", 120)) * time.Second,
		},
		Server: ServerConfig{
			HTTPPort:          getEnvInt("HTTP_PORT", 8080),
			ShutdownTimeout:   time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SEC", 10)) * time.Second,
			TrustProxyHeaders: getEnvBool("HTTP_TRUST_PROXY_HEADERS", false),
		},
		Link: LinkConfig{
			PrefillCID: strings.TrimSpace(getEnv("LINK_PREFILL_CID", "")),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvBool("TRACING_ENABLED", false),
			Endpoint:    getEnv("TRACING_ENDPOINT", "localhost:4317"),
			Insecure:    getEnvBool("TRACING_INSECURE", true),
			SampleRatio: getEnvFloat("TRACING_SAMPLE_RATIO", 1.0),
		},
		Log: LogConfig{
			Level:         getEnv("LOG_LEVEL", "info"),
			Format:        strings.ToLower(getEnv("LOG_FORMAT", "json")),
			IncludeCaller: getEnvBool("LOG_INCLUDE_CALLER", false),
		},
	}

	cfg.Chain = suins.MainnetChainConfig()
	if cfg.Sui.DeploymentFile != "" {
		chain, err := LoadDeployment(cfg.Sui.DeploymentFile, cfg.Chain)
		if err != nil {
			return nil, err
		}
		cfg.Chain = chain
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Sui.RPCURL == "" {
		return fmt.Errorf("SUI_RPC_URL is required")
	}
	if _, err := url.ParseRequestURI(c.Sui.RPCURL); err != nil {
		return fmt.Errorf("SUI_RPC_URL: %w", err)
	}
	if !c.Sui.Network.Valid() {
		return fmt.Errorf("SUI_NETWORK %q is not a known network", c.Sui.Network)
	}
	if c.Sui.RateRPS < 0 {
		return fmt.Errorf("SUI_RPC_RATE_LIMIT_RPS must not be negative")
	}
	switch c.Signer.Mode {
	case SignerModeBridge:
		if c.Signer.BridgeURL == "" {
			return fmt.Errorf("SIGNER_BRIDGE_URL is required in bridge mode")
		}
	case SignerModeExecutor:
		if c.Signer.BridgeURL == "" {
			return fmt.Errorf("SIGNER_BRIDGE_URL is required in executor mode")
		}
		if c.Signer.Sender == "" {
			return fmt.Errorf("SIGNER_SENDER is required in executor mode")
		}
	default:
		return fmt.Errorf("SIGNER_MODE must be %q or %q", SignerModeBridge, SignerModeExecutor)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT %d out of range", c.Server.HTTPPort)
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("TRACING_SAMPLE_RATIO must be within [0, 1]")
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("LOG_FORMAT must be json or text")
	}
	if err := c.Chain.Validate(); err != nil {
		return fmt.Errorf("suins deployment: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
