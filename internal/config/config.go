package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all settings for both the ingest server and the subscriber.
// Values come from LPR_-prefixed environment variables, e.g. LPR_SERVER_ADDR
// or LPR_COLLECTOR_URL.
type Config struct {
	Server    ServerConfig
	Bus       BusConfig
	Collector CollectorConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Addr        string
	CORSOrigins []string
}

type BusConfig struct {
	NATSURL string
	Topic   string
}

// CollectorConfig configures the external sink. An empty URL disables
// forwarding entirely.
type CollectorConfig struct {
	URL            string
	TimeoutSeconds int
	SystemName     string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LPR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("bus.nats_url", "nats://localhost:4222")
	v.SetDefault("bus.topic", "lpr_data")
	v.SetDefault("collector.url", "")
	v.SetDefault("collector.timeout_seconds", 5)
	v.SetDefault("collector.system_name", "lpr-relay")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	cfg := &Config{
		Server: ServerConfig{
			Addr:        v.GetString("server.addr"),
			CORSOrigins: v.GetStringSlice("server.cors_origins"),
		},
		Bus: BusConfig{
			NATSURL: v.GetString("bus.nats_url"),
			Topic:   v.GetString("bus.topic"),
		},
		Collector: CollectorConfig{
			URL:            v.GetString("collector.url"),
			TimeoutSeconds: v.GetInt("collector.timeout_seconds"),
			SystemName:     v.GetString("collector.system_name"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}

	if cfg.Bus.Topic == "" {
		return nil, fmt.Errorf("bus topic must not be empty")
	}
	if cfg.Collector.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("collector timeout must be positive, got %d", cfg.Collector.TimeoutSeconds)
	}

	return cfg, nil
}

// ForwardingEnabled reports whether events should also be sent to the
// external collector.
func (c *Config) ForwardingEnabled() bool {
	return c.Collector.URL != ""
}

// ForwardTimeout bounds one collector POST. The upstream design had no
// timeout at all; a bounded one keeps a dead collector from stalling request
// handling indefinitely.
func (c *Config) ForwardTimeout() time.Duration {
	return time.Duration(c.Collector.TimeoutSeconds) * time.Second
}
