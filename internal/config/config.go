package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix namespaces environment overrides. Nested keys use a double
// underscore: STUDIO_SMTP__HOST -> smtp.host.
const EnvPrefix = "STUDIO_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}

	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid database.driver %q: must be sqlite or postgres", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}

	switch c.Contact.Mode {
	case ContactSimulated, ContactLive:
	default:
		return fmt.Errorf("invalid contact.mode %q: must be simulated or live", c.Contact.Mode)
	}
	if c.Contact.RateLimit < 0 {
		return fmt.Errorf("contact.rate_limit must be non-negative")
	}

	switch c.Assets.Source {
	case SourceFile:
		if c.Assets.Dir == "" {
			return fmt.Errorf("assets.dir is required for the file source")
		}
	case SourceHTTP:
		if c.Assets.BaseURL == "" {
			return fmt.Errorf("assets.base_url is required for the http source")
		}
	case SourceS3:
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket is required for the s3 source")
		}
	default:
		return fmt.Errorf("invalid assets.source %q: must be file, http or s3", c.Assets.Source)
	}

	for name, cc := range map[string]CarouselConfig{
		"hero":      c.Carousels.Hero,
		"filmstrip": c.Carousels.Filmstrip,
		"roll":      c.Carousels.Roll,
		"services":  c.Carousels.Services,
	} {
		if cc.Interval <= 0 {
			return fmt.Errorf("carousels.%s.interval must be positive", name)
		}
		if cc.Transition < 0 || cc.ResumeDelay < 0 {
			return fmt.Errorf("carousels.%s timings must be non-negative", name)
		}
	}

	if c.Sessions.TTL <= 0 {
		return fmt.Errorf("sessions.ttl must be positive")
	}
	return nil
}
