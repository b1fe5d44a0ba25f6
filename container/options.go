package container

import (
	"fmt"

	"github.com/arloliu/symcodec/errs"
	"github.com/arloliu/symcodec/format"
	"github.com/arloliu/symcodec/internal/options"
)

type config struct {
	flag Flag
}

// Option configures Marshal and Write.
type Option = options.Option[*config]

// WithCompression compresses the payload with c. The default is format.CompressionNone.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *config) error {
		if !c.IsValid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, c)
		}
		cfg.flag = cfg.flag.WithCompression(c)

		return nil
	})
}

// WithBigEndian stores header integers in big-endian byte order.
func WithBigEndian() Option {
	return options.NoError(func(cfg *config) {
		cfg.flag = cfg.flag.WithBigEndian()
	})
}
