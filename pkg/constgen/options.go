package constgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
)

// Option configures an Emitter.
type Option func(*Emitter) error

// WithHeaderExt sets the extension of the declarations artifact.
func WithHeaderExt(ext string) Option {
	return func(e *Emitter) error {
		if err := checkExt(ext); err != nil {
			return fmt.Errorf("header extension: %w", err)
		}
		e.headerExt = ext
		return nil
	}
}

// WithSourceExt sets the extension of the definitions artifact.
func WithSourceExt(ext string) Option {
	return func(e *Emitter) error {
		if err := checkExt(ext); err != nil {
			return fmt.Errorf("source extension: %w", err)
		}
		e.sourceExt = ext
		return nil
	}
}

// WithLogger sets the emitter's logger. Without one the emitter is silent.
func WithLogger(logger arbor.ILogger) Option {
	return func(e *Emitter) error {
		e.logger = logger
		return nil
	}
}

func checkExt(ext string) error {
	if ext == "" {
		return errors.New("must not be empty")
	}
	if !strings.HasPrefix(ext, ".") {
		return fmt.Errorf("%q must start with '.'", ext)
	}
	return nil
}
