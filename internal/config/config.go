/*
Package config gathers the settings of a sprout run from a configuration
file, SPROUT_* environment variables and command line flags, in increasing
order of priority.
*/
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pbanos/sprout"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the environment variables read into a Config
const EnvPrefix = "SPROUT"

const positiveLabelKey = "positive-label"

// Redis holds the settings to connect to a Redis server storing trees
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// Mongo holds the settings to read records from a MongoDB collection
type Mongo struct {
	URL        string `mapstructure:"url"`
	Collection string `mapstructure:"collection"`
}

// Config holds the settings of a sprout run
type Config struct {
	PositiveLabel   string  `mapstructure:"positive-label"`
	PurityThreshold float64 `mapstructure:"purity-threshold"`
	MaxDepth        int     `mapstructure:"max-depth"`
	Workers         int     `mapstructure:"workers"`
	Seed            int64   `mapstructure:"seed"`
	Metadata        string  `mapstructure:"metadata"`
	SQLite          string  `mapstructure:"sqlite"`
	Postgres        string  `mapstructure:"postgres"`
	Listen          string  `mapstructure:"listen"`
	Redis           Redis   `mapstructure:"redis"`
	Mongo           Mongo   `mapstructure:"mongo"`
	// PositiveLabelSet tells whether the positive label came from the
	// file, the environment or a flag rather than from the default
	PositiveLabelSet bool `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(positiveLabelKey, sprout.DefaultPositiveLabel)
	v.SetDefault("purity-threshold", sprout.DefaultPurityThreshold)
	v.SetDefault("max-depth", 0)
	v.SetDefault("workers", 1)
	v.SetDefault("seed", 0)
	v.SetDefault("metadata", "")
	v.SetDefault("sqlite", "")
	v.SetDefault("postgres", "")
	v.SetDefault("listen", ":8080")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "sprout:tree")
	v.SetDefault("mongo.url", "")
	v.SetDefault("mongo.collection", "records")
}

/*
Load takes the path to a configuration file (which may be empty) and a set
of flags, and returns the Config resulting from the defaults, the file, the
environment and the flags that were set, or an error if the file cannot be
read or the result is invalid. Only flags named after a setting are taken
into account.
*/
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %v", file, err)
		}
	}
	if flags != nil {
		known := make(map[string]bool)
		for _, k := range v.AllKeys() {
			known[k] = true
		}
		var err error
		flags.VisitAll(func(f *pflag.Flag) {
			if err == nil && known[f.Name] {
				err = v.BindPFlag(f.Name, f)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("binding flags: %v", err)
		}
	}
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decoding configuration: %v", err)
	}
	_, inEnv := os.LookupEnv(EnvPrefix + "_POSITIVE_LABEL")
	c.PositiveLabelSet = inEnv || v.InConfig(positiveLabelKey) || (flags != nil && flags.Changed(positiveLabelKey))
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Policy returns the growth policy of the configuration
func (c *Config) Policy() sprout.Policy {
	return sprout.Policy{
		PositiveLabel:   c.PositiveLabel,
		PurityThreshold: c.PurityThreshold,
		MaxDepth:        c.MaxDepth,
	}
}

// Validate returns an error if the configuration cannot be used
func (c *Config) Validate() error {
	if err := c.Policy().Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid configuration: workers must be positive, got %d", c.Workers)
	}
	return nil
}
