// The symcodec command compresses a file of little-endian uint32 values into a
// container and decodes it back, mirroring a round trip through the codec.
//
//	symcodec [flags] <input> [num_components]
//
// The encoded container is written to <input>.enc<N> and the decoded values to
// <input>.enc<N>.dec<N>, where N is the number of components (default 1). A
// missing input file is created with a small sample sequence first.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/arloliu/symcodec/compress"
	"github.com/arloliu/symcodec/container"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// run executes the command with args and writes logs and usage to out.
func run(args []string, out io.Writer) error {
	fs := newFlagSet(out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return errors.New("expected <input> [num_components]")
	}

	cfg, err := loadConfig(fs)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, out)
	if err != nil {
		return err
	}

	input := fs.Arg(0)
	numComponents := 1
	if fs.NArg() == 2 {
		numComponents, err = strconv.Atoi(fs.Arg(1))
		if err != nil || numComponents < 1 {
			return fmt.Errorf("invalid num_components %q", fs.Arg(1))
		}
	}

	if !fileExists(input) {
		logger.WithField("path", input).Info("input not found, creating sample file")
		if err := createDummyFile(input); err != nil {
			return err
		}
	}

	encoded := input + ".enc" + strconv.Itoa(numComponents)
	decoded := encoded + ".dec" + strconv.Itoa(numComponents)

	values, err := encodeFile(cfg, logger, input, encoded, numComponents)
	if err != nil {
		return err
	}

	restored, err := decodeFile(cfg, logger, encoded, decoded)
	if err != nil {
		return err
	}

	if cfg.Verify {
		if !slices.Equal(values, restored) {
			return fmt.Errorf("verification failed: %s differs from %s", decoded, input)
		}
		logger.WithField("values", len(values)).Info("verification passed")
	}

	return nil
}

func encodeFile(cfg *Config, logger *logrus.Logger, input, output string, numComponents int) ([]uint32, error) {
	values, err := readValues(input)
	if err != nil {
		return nil, err
	}
	if len(values)%numComponents != 0 {
		return nil, fmt.Errorf("%d values cannot be split into %d components", len(values), numComponents)
	}

	frame, err := container.NewFrame(values, numComponents, cfg.codecOptions(logger)...)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", input, err)
	}

	opts, err := cfg.containerOptions()
	if err != nil {
		return nil, err
	}

	f, err := os.Create(output)
	if err != nil {
		return nil, err
	}
	n, err := container.Write(f, frame, opts...)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", output, err)
	}

	fields := logrus.Fields{
		"input":      input,
		"output":     output,
		"values":     len(values),
		"components": numComponents,
		"raw_bytes":  len(values) * 4,
		"codec":      len(frame.Data),
		"container":  n,
	}
	if ct, err := cfg.compression(); err == nil {
		if st, err := compress.Measure(ct, frame.Data); err == nil {
			fields["compression"] = ct.String()
			fields["compression_savings"] = fmt.Sprintf("%.1f%%", st.SpaceSavings())
		}
	}
	logger.WithFields(fields).Info("encoded")

	return values, nil
}

func decodeFile(cfg *Config, logger *logrus.Logger, input, output string) ([]uint32, error) {
	f, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	frame, err := container.Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", input, err)
	}

	values, err := frame.Decode(cfg.codecOptions(logger)...)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", input, err)
	}

	if err := writeValues(output, values); err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"input":  input,
		"output": output,
		"values": len(values),
	}).Info("decoded")

	return values, nil
}
