package hmacauth

import (
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied by Options.withDefaults.
const (
	// DefaultSecretTimeout bounds a single SecretResolver call.
	DefaultSecretTimeout = 10 * time.Second

	// DefaultTimestampSkew is the permitted difference between the request
	// date header and the server clock.
	DefaultTimestampSkew = time.Minute

	// DefaultBodySizeLimit caps how many body bytes AuthenticateRequest
	// buffers.
	DefaultBodySizeLimit = 1 << 20 // 1 MiB
)

// Options configures a Verifier. The zero value is usable: unset fields
// fall back to the documented defaults. There are no other tunables.
type Options struct {
	// SecretTimeout bounds how long a SecretResolver call may take before
	// the verification fails with CodeSecretTimeout. Defaults to 10s.
	SecretTimeout time.Duration

	// TimestampSkew is the maximum allowed difference between the request's
	// date header and the server clock; requests outside the window are
	// rejected with CodeDateHeaderInvalid. Defaults to one minute.
	TimestampSkew time.Duration

	// BodySizeLimit caps the number of body bytes AuthenticateRequest will
	// buffer before giving up with ErrBodyTooLarge. Defaults to 1 MiB.
	BodySizeLimit int64

	// Verbose enables per-verification diagnostic logging.
	Verbose bool

	// Logger receives diagnostics when Verbose is set. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.SecretTimeout <= 0 {
		o.SecretTimeout = DefaultSecretTimeout
	}

	if o.TimestampSkew <= 0 {
		o.TimestampSkew = DefaultTimestampSkew
	}

	if o.BodySizeLimit <= 0 {
		o.BodySizeLimit = DefaultBodySizeLimit
	}

	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	return o
}

// optionsFile is the YAML shape accepted by ParseOptions. Durations are
// spelled in milliseconds, matching the protocol's documented surface.
type optionsFile struct {
	SecretForKeyTimeoutMs    int64 `yaml:"secretForKeyTimeoutMs"`
	PermittedTimestampSkewMs int64 `yaml:"permittedTimestampSkewMs"`
	BodySizeLimit            int64 `yaml:"bodySizeLimit"`
	Verbose                  bool  `yaml:"verbose"`
}

// ParseOptions reads Options from YAML:
//
//	secretForKeyTimeoutMs: 10000
//	permittedTimestampSkewMs: 60000
//	bodySizeLimit: 1048576
//	verbose: true
//
// Omitted fields are left zero and pick up their defaults when the Options
// are handed to NewVerifier.
func ParseOptions(data []byte) (Options, error) {
	var f optionsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Options{}, fmt.Errorf("hmacauth: parse options: %w", err)
	}

	return Options{
		SecretTimeout: time.Duration(f.SecretForKeyTimeoutMs) * time.Millisecond,
		TimestampSkew: time.Duration(f.PermittedTimestampSkewMs) * time.Millisecond,
		BodySizeLimit: f.BodySizeLimit,
		Verbose:       f.Verbose,
	}, nil
}
