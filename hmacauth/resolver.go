package hmacauth

import (
	"context"
	"time"
)

// SecretResolver maps an API key to its shared secret. It is supplied by
// the integrating application; the package never stores secrets itself.
//
// SecretForKey returns found=false with a nil error when the key is not
// recognized. A non-nil error signals an infrastructure failure, which the
// Verifier reports distinctly from an unrecognized key. The context is
// cancelled when the lookup times out or the surrounding request is
// abandoned.
type SecretResolver interface {
	SecretForKey(ctx context.Context, apiKey string) (secret string, found bool, err error)
}

// SecretResolverFunc adapts a function to the SecretResolver interface.
type SecretResolverFunc func(ctx context.Context, apiKey string) (string, bool, error)

func (f SecretResolverFunc) SecretForKey(ctx context.Context, apiKey string) (string, bool, error) {
	return f(ctx, apiKey)
}

type secretOutcome struct {
	secret string
	found  bool
	err    error
}

// resolveSecret races the resolver against the configured timeout. The
// first settlement wins exactly once: a result arriving after the timer or
// the caller's context has fired is discarded, and no retry is attempted.
func resolveSecret(ctx context.Context, resolver SecretResolver, apiKey string, timeout time.Duration) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	outcome := make(chan secretOutcome, 1)
	go func() {
		secret, found, err := resolver.SecretForKey(callCtx, apiKey)
		outcome <- secretOutcome{secret: secret, found: found, err: err}
	}()

	select {
	case out := <-outcome:
		if out.err != nil {
			return "", newAuthError(CodeSecretDiscoveryError,
				"secret lookup for API key %q failed: %v", apiKey, out.err)
		}

		if !out.found {
			return "", newAuthError(CodeAPIKeyUnrecognized,
				"API key %q is not recognized", apiKey)
		}

		return out.secret, nil

	case <-callCtx.Done():
		if err := ctx.Err(); err != nil {
			// The surrounding request was abandoned; surface its error
			// rather than a protocol code.
			return "", err
		}

		return "", newAuthError(CodeSecretTimeout,
			"secret lookup for API key %q did not complete within %s", apiKey, timeout)
	}
}
