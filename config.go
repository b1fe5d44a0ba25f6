package symcodec

import (
	"fmt"
	"io"

	"github.com/arloliu/symcodec/errs"
	"github.com/arloliu/symcodec/format"
	"github.com/arloliu/symcodec/internal/options"
	"github.com/sirupsen/logrus"
)

// Config holds codec settings. It is built from Options by NewCodec and is
// read-only afterwards.
type Config struct {
	logger            logrus.FieldLogger
	componentContexts bool
	scheme            format.SchemeType // 0 selects automatically
}

// Option configures a Codec.
type Option = options.Option[*Config]

var discardLogger = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{logger: discardLogger}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithLogger sets the logger receiving encode and decode diagnostics at debug level.
// A nil logger restores the default, which discards everything.
func WithLogger(logger logrus.FieldLogger) Option {
	return options.NoError(func(c *Config) {
		if logger == nil {
			c.logger = discardLogger
			return
		}
		c.logger = logger
	})
}

// WithComponentContexts enables the per-component scheme, which keeps one code
// table per interleaved component. It is only chosen when its estimate is
// strictly smaller than every whole-sequence scheme.
func WithComponentContexts(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.componentContexts = enabled
	})
}

// WithScheme bypasses scheme selection and always encodes with s.
func WithScheme(s format.SchemeType) Option {
	return options.New(func(c *Config) error {
		if !s.IsValid() {
			return fmt.Errorf("%w: scheme %d", errs.ErrUnknownScheme, s)
		}
		c.scheme = s

		return nil
	})
}
