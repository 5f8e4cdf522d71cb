package hmacauth

import (
	"context"
	"crypto/hmac"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AuthorizationScheme is the literal first token of the authorization
// header.
const AuthorizationScheme = "signature"

// Verifier authenticates inbound requests against secrets supplied by a
// SecretResolver. It is safe for concurrent use: every verification
// computes its state freshly and shares nothing with other verifications.
type Verifier struct {
	resolver SecretResolver
	opts     Options
	now      func() time.Time
}

// NewVerifier creates a Verifier. Zero fields of opts pick up the
// documented defaults.
func NewVerifier(resolver SecretResolver, opts Options) *Verifier {
	return &Verifier{
		resolver: resolver,
		opts:     opts.withDefaults(),
		now:      time.Now,
	}
}

// AuthenticateRequest buffers the request body (bounded by
// Options.BodySizeLimit), restores it for downstream handlers, and runs
// Authenticate over the buffered bytes. Use Authenticate directly when the
// caller has already drained the body.
func (v *Verifier) AuthenticateRequest(ctx context.Context, r *http.Request) (*Result, error) {
	body, err := readAndRestoreBody(r, v.opts.BodySizeLimit)
	if err != nil {
		return nil, err
	}

	return v.Authenticate(ctx, r, body)
}

// Authenticate runs the server-side verification sequence over a request
// whose body has already been buffered, short-circuiting on the first
// failure:
//
//  1. Extract the API key from the x-api-key header, falling back to the
//     apiKey query parameter.
//  2. Resolve the secret through the SecretResolver, bounded by
//     Options.SecretTimeout.
//  3. Require the authorization and date headers.
//  4. Enforce the timestamp skew window on the date header.
//  5. Parse "signature <algorithm> <hex digest>" from authorization.
//  6. Recompute the canonical string and signature.
//  7. Compare digests in constant time.
//
// On success the returned Result carries the API key, its secret, and the
// matched signature. Every failure is terminal; the Verifier never retries.
func (v *Verifier) Authenticate(ctx context.Context, r *http.Request, body []byte) (*Result, error) {
	if v.resolver == nil {
		return nil, ErrNoSecretResolver
	}

	log := v.verboseLogger()

	apiKey := r.Header.Get(HeaderAPIKey)
	if apiKey == "" {
		apiKey = r.URL.Query().Get(QueryParameterAPIKey)
	}

	if apiKey == "" {
		return nil, v.fail(log, newAuthError(CodeAPIKeyMissing,
			"request carries no API key in the %s header or %s query parameter",
			HeaderAPIKey, QueryParameterAPIKey))
	}

	secret, err := resolveSecret(ctx, v.resolver, apiKey, v.opts.SecretTimeout)
	if err != nil {
		return nil, v.fail(log, err)
	}

	authHeader := r.Header.Get(HeaderAuthorization)
	if authHeader == "" {
		return nil, v.fail(log, newAuthError(CodeAuthorizationHeaderMissing,
			"missing %s header", HeaderAuthorization))
	}

	dateHeader := r.Header.Get(HeaderDate)
	if dateHeader == "" {
		return nil, v.fail(log, newAuthError(CodeDateHeaderMissing,
			"missing %s header", HeaderDate))
	}

	if err := v.checkTimestamp(dateHeader); err != nil {
		return nil, v.fail(log, err)
	}

	alg, presented, err := parseAuthorizationHeader(authHeader)
	if err != nil {
		return nil, v.fail(log, err)
	}

	expected, err := Sign(canonicalizeRequest(r, body), secret, alg)
	if err != nil {
		return nil, v.fail(log, err)
	}

	if !hmac.Equal([]byte(expected), []byte(presented)) {
		return nil, v.fail(log, newAuthError(CodeSignatureInvalid,
			"request signature %s does not match the expected signature %s", presented, expected))
	}

	if log != nil {
		log.Info("request authenticated",
			slog.String("api_key", apiKey),
			slog.String("signature", presented))
	}

	return &Result{APIKey: apiKey, Secret: secret, Signature: presented}, nil
}

// checkTimestamp parses the date header and enforces the permitted skew
// window in both directions, bounding replay exposure regardless of
// signature validity.
func (v *Verifier) checkTimestamp(value string) error {
	requestTime, err := http.ParseTime(value)
	if err != nil {
		return newAuthError(CodeDateHeaderInvalid, "cannot parse date header %q: %v", value, err)
	}

	now := v.now()

	skew := now.Sub(requestTime)
	if skew < 0 {
		skew = -skew
	}

	if skew > v.opts.TimestampSkew {
		return newAuthError(CodeDateHeaderInvalid,
			"date header outside the permitted skew window: request time %s, current time %s",
			requestTime.UTC().Format(http.TimeFormat), now.UTC().Format(http.TimeFormat))
	}

	return nil
}

// parseAuthorizationHeader splits "signature <algorithm> <hex digest>" into
// its algorithm and digest.
func parseAuthorizationHeader(header string) (Algorithm, string, error) {
	fields := strings.Fields(header)
	if len(fields) != 3 || fields[0] != AuthorizationScheme {
		return "", "", newAuthError(CodeAuthorizationHeaderInvalid,
			"authorization header must have the form %q",
			AuthorizationScheme+" <algorithm> <signature>")
	}

	alg := Algorithm(fields[1])
	if !alg.Supported() {
		return "", "", newAuthError(CodeHMACAlgorithmInvalid,
			"unsupported HMAC algorithm %q", fields[1])
	}

	return alg, fields[2], nil
}

// verboseLogger returns a logger tagged with a fresh verification id, or
// nil when verbose diagnostics are disabled.
func (v *Verifier) verboseLogger() *slog.Logger {
	if !v.opts.Verbose {
		return nil
	}

	return v.opts.Logger.With(slog.String("verification_id", uuid.NewString()))
}

func (v *Verifier) fail(log *slog.Logger, err error) error {
	if log != nil {
		log.Warn("verification failed", slog.String("error", err.Error()))
	}

	return err
}
