package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/arloliu/symcodec"
	"github.com/arloliu/symcodec/container"
	"github.com/arloliu/symcodec/format"
)

const envVarPrefix = "SYMCODEC"

// Config holds the command settings. Values come from flags, SYMCODEC_*
// environment variables and an optional YAML file, in that order of precedence.
type Config struct {
	// Compression applied to the encoded buffer: none, zstd, s2 or lz4.
	Compression string `mapstructure:"compression"`
	// Keep one code table per component when it pays off.
	ComponentContexts bool `mapstructure:"component-contexts"`
	// Write container header integers in big-endian order.
	BigEndian bool `mapstructure:"big-endian"`
	// Minimum level of a log entry to be written. Options: debug, info, warn, error
	LogLevel string `mapstructure:"log-level"`
	// Compare the decoded values with the input and fail on mismatch.
	Verify bool `mapstructure:"verify"`
}

func newFlagSet(output io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("symcodec", pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(output, "usage: symcodec [flags] <input> [num_components]")
		fs.PrintDefaults()
	}

	fs.String("config", "", "path to a YAML config file")
	fs.String("compression", "none", "container compression: none, zstd, s2 or lz4")
	fs.Bool("component-contexts", false, "allow one code table per component")
	fs.Bool("big-endian", false, "write big-endian container headers")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.Bool("verify", false, "compare the decoded values with the input")

	return fs
}

// loadConfig merges the parsed flags with the environment and the config file.
func loadConfig(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func (c *Config) compression() (format.CompressionType, error) {
	ct, ok := format.ParseCompression(c.Compression)
	if !ok {
		return 0, errors.New("unknown compression " + c.Compression)
	}

	return ct, nil
}

func (c *Config) codecOptions(logger logrus.FieldLogger) []symcodec.Option {
	return []symcodec.Option{
		symcodec.WithLogger(logger),
		symcodec.WithComponentContexts(c.ComponentContexts),
	}
}

func (c *Config) containerOptions() ([]container.Option, error) {
	ct, err := c.compression()
	if err != nil {
		return nil, err
	}

	opts := []container.Option{container.WithCompression(ct)}
	if c.BigEndian {
		opts = append(opts, container.WithBigEndian())
	}

	return opts, nil
}

func newLogger(cfg *Config, w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	return &logrus.Logger{
		Out: w,
		Formatter: &logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
			DisableSorting:  true,
		},
		Hooks: make(logrus.LevelHooks),
		Level: level,
	}, nil
}
