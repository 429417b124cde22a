package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadAPI layers the server configuration, lowest precedence first:
//  1. built-in defaults (Default)
//  2. YAML file named by KLICKS_CONFIG, if set
//  3. environment variables with the KLICKS_ prefix (KLICKS_ADDR,
//     KLICKS_ADMIN_TOKEN, KLICKS_CLICK_COOLDOWN_MS, ...)
//
// PORT wins over any configured addr, matching the usual PaaS contract.
func LoadAPI() (*APIConfig, error) {
	k := koanf.New(".")

	if path := strings.TrimSpace(os.Getenv("KLICKS_CONFIG")); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("KLICKS_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "klicks_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	// A configured table replaces the default outright; decoding onto the
	// default slice would merge element-wise and keep its tail.
	if k.Exists("tiers") {
		cfg.Tiers = nil
	}
	if k.Exists("businesses") {
		cfg.Businesses = nil
	}
	if k.Exists("vehicles") {
		cfg.Vehicles = nil
	}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Addr = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadCLI reads the client settings from the environment.
func LoadCLI() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("KLK_API_BASE_URL", "http://localhost:8080"), "/"),
		AdminToken: strings.TrimSpace(os.Getenv("KLK_ADMIN_TOKEN")),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
