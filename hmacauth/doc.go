// Package hmacauth implements a shared-secret request-signing protocol for
// HTTP APIs. A client signs each outgoing request with an HMAC over a
// canonical representation of the request; the server independently rebuilds
// the same canonical string, recomputes the signature with the secret it
// resolves for the presented API key, and accepts the request only when the
// two digests match and the request timestamp is fresh.
//
// # Wire Contract
//
// A signed request carries four headers:
//
//	x-api-key: <key>
//	date: <RFC 1123 date>
//	authorization: signature <algorithm> <hex HMAC digest>
//	content-length / content-type: mirrored when a body is present
//
// The canonical string is five newline-joined sections: the uppercased
// method, the URI path, the sorted percent-encoded query string, the sorted
// name:value lines for the signed header whitelist (x-api-key, date, and,
// when a body is present, content-length and content-type), and the hex
// SHA-256 digest of the body (the digest of the empty string when there is
// no body). The canonicalization is a pure function of its inputs: both
// peers must produce byte-identical output or verification fails.
//
// Query values are percent-encoded with the encodeURIComponent character
// set (space becomes %20, never +). Structured query values must be
// flattened to compact JSON before encoding; FlattenQueryValue implements
// the rule both peers are required to share.
//
// # Signing Requests
//
// Use SignRequest to stamp the signature headers onto an outgoing request:
//
//	err := hmacauth.SignRequest(req, "my-api-key", secret, hmacauth.AlgorithmSHA256)
//
// Or let a Transport sign every request a client sends:
//
//	transport, err := hmacauth.NewTransport(nil, hmacauth.TransportConfig{
//	    APIKey: "my-api-key",
//	    Secret: secret,
//	})
//	client := &http.Client{Transport: transport}
//
// # Verifying Requests
//
// The server supplies a SecretResolver that maps an API key to its secret;
// key issuance and storage stay entirely in the integrating application:
//
//	resolver := hmacauth.SecretResolverFunc(func(ctx context.Context, apiKey string) (string, bool, error) {
//	    secret, ok := keys[apiKey]
//	    return secret, ok, nil
//	})
//
//	verifier := hmacauth.NewVerifier(resolver, hmacauth.Options{})
//	result, err := verifier.AuthenticateRequest(r.Context(), r)
//
// Every failure carries a stable machine-readable code (see the Code
// constants); errors.Is against the package's canonical error values
// distinguishes, for example, an unrecognized key from a resolver outage.
//
// # Server Middleware
//
// Middleware wraps a handler so only authenticated requests reach it. The
// verification result is stored in the request context:
//
//	mw, err := hmacauth.Middleware(hmacauth.MiddlewareConfig{Verifier: verifier})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	handler = mw(handler)
//
//	// Inside a handler:
//	result := hmacauth.ResultFromContext(r.Context())
//
// The protocol proves identity and integrity of a single request within a
// bounded time window. It does not provide confidentiality (use TLS) and it
// is not an authorization system.
package hmacauth
