package hmacauth

import (
	"fmt"
	"net/http"

	"golang.org/x/net/http2"
)

// Transport is an http.RoundTripper that signs every outgoing request with
// the configured API key and secret before delegating to a base transport.
//
// Use NewTransport to create a Transport with a configured *http.Transport
// for proxy, TLS, and timeout settings.
type Transport struct {
	base      http.RoundTripper
	apiKey    string
	secret    string
	algorithm Algorithm
}

// TransportConfig configures NewTransport.
type TransportConfig struct {
	// APIKey identifies the caller; sent in the x-api-key header.
	APIKey string

	// Secret is the shared secret bound to APIKey.
	Secret string

	// Algorithm selects the HMAC variant. Defaults to sha256.
	Algorithm Algorithm
}

// NewTransport creates a signing Transport that delegates to base after
// signing each request. When base is nil, a clone of http.DefaultTransport
// is used, giving an independent connection pool with default proxy, TLS,
// and timeout settings. A caller-supplied base is configured for HTTP/2,
// which custom transports otherwise lose.
func NewTransport(base *http.Transport, cfg TransportConfig) (*Transport, error) {
	alg := cfg.Algorithm
	if alg == "" {
		alg = AlgorithmSHA256
	}

	if !alg.Supported() {
		return nil, newAuthError(CodeHMACAlgorithmInvalid, "unsupported HMAC algorithm %q", alg)
	}

	var rt http.RoundTripper
	if base != nil {
		if err := http2.ConfigureTransport(base); err != nil {
			return nil, fmt.Errorf("hmacauth: configure http2 on base transport: %w", err)
		}

		rt = base
	} else {
		rt = http.DefaultTransport.(*http.Transport).Clone()
	}

	return &Transport{
		base:      rt,
		apiKey:    cfg.APIKey,
		secret:    cfg.Secret,
		algorithm: alg,
	}, nil
}

// RoundTrip clones the request, signs the clone, and delegates to the base
// transport. When GetBody is available the clone receives its own body copy
// so signing does not consume the caller's body.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if clone.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}

		clone.Body = body
	}

	if err := SignRequest(clone, t.apiKey, t.secret, t.algorithm); err != nil {
		return nil, err
	}

	return t.base.RoundTrip(clone)
}
