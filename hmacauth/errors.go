package hmacauth

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable machine-readable codes carried by every verification failure.
const (
	// CodeAPIKeyMissing: the request presented no API key in the x-api-key
	// header or the apiKey query parameter.
	CodeAPIKeyMissing = "API_KEY_MISSING"

	// CodeAPIKeyUnrecognized: the resolver reported the key as not found.
	CodeAPIKeyUnrecognized = "API_KEY_UNRECOGNIZED"

	// CodeSecretDiscoveryError: the resolver returned an error.
	CodeSecretDiscoveryError = "INTERNAL_ERROR_SECRET_DISCOVERY"

	// CodeSecretTimeout: the resolver did not settle within SecretTimeout.
	CodeSecretTimeout = "INTERNAL_ERROR_SECRET_TIMEOUT"

	// CodeAuthorizationHeaderMissing: the authorization header is absent.
	CodeAuthorizationHeaderMissing = "AUTHORIZATION_HEADER_MISSING"

	// CodeAuthorizationHeaderInvalid: the authorization header does not
	// have the form "signature <algorithm> <hex digest>".
	CodeAuthorizationHeaderInvalid = "AUTHORIZATION_HEADER_INVALID"

	// CodeDateHeaderMissing: the date header is absent.
	CodeDateHeaderMissing = "DATE_HEADER_MISSING"

	// CodeDateHeaderInvalid: the date header cannot be parsed or lies
	// outside the permitted timestamp skew window.
	CodeDateHeaderInvalid = "DATE_HEADER_INVALID"

	// CodeHMACAlgorithmInvalid: the named algorithm is not supported.
	CodeHMACAlgorithmInvalid = "HMAC_ALGORITHM_INVALID"

	// CodeSignatureInvalid: the recomputed signature does not match the
	// presented one.
	CodeSignatureInvalid = "SIGNATURE_INVALID"
)

// AuthError is a verification failure with a stable machine-readable code
// and a human-readable message. errors.Is matches two AuthErrors by code,
// so callers can compare against the package's canonical error values.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return "hmacauth: " + e.Message + " (" + e.Code + ")"
}

// Is reports whether target is an AuthError with the same code.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Code == e.Code
}

func newAuthError(code, format string, args ...any) *AuthError {
	return &AuthError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Canonical error values, one per code, for use with errors.Is. The errors
// a Verifier actually returns carry request-specific messages.
var (
	ErrAPIKeyMissing              = &AuthError{Code: CodeAPIKeyMissing, Message: "API key missing"}
	ErrAPIKeyUnrecognized         = &AuthError{Code: CodeAPIKeyUnrecognized, Message: "API key unrecognized"}
	ErrSecretDiscovery            = &AuthError{Code: CodeSecretDiscoveryError, Message: "secret discovery failed"}
	ErrSecretTimeout              = &AuthError{Code: CodeSecretTimeout, Message: "secret discovery timed out"}
	ErrAuthorizationHeaderMissing = &AuthError{Code: CodeAuthorizationHeaderMissing, Message: "authorization header missing"}
	ErrAuthorizationHeaderInvalid = &AuthError{Code: CodeAuthorizationHeaderInvalid, Message: "authorization header invalid"}
	ErrDateHeaderMissing          = &AuthError{Code: CodeDateHeaderMissing, Message: "date header missing"}
	ErrDateHeaderInvalid          = &AuthError{Code: CodeDateHeaderInvalid, Message: "date header invalid"}
	ErrUnsupportedAlgorithm       = &AuthError{Code: CodeHMACAlgorithmInvalid, Message: "unsupported HMAC algorithm"}
	ErrSignatureInvalid           = &AuthError{Code: CodeSignatureInvalid, Message: "signature invalid"}
)

// Programmer errors. These indicate a misconfigured integration, not a bad
// request, and are returned immediately rather than hanging.
var (
	// ErrNoSecretResolver is returned when a Verifier has no SecretResolver.
	ErrNoSecretResolver = errors.New("hmacauth: secret resolver must not be nil")

	// ErrNoVerifier is returned when MiddlewareConfig has no Verifier.
	ErrNoVerifier = errors.New("hmacauth: verifier must not be nil")
)

// HTTPStatus maps a verification error to the response status its class
// calls for: resolver outages and timeouts are server errors, an oversized
// body is 413, and every other verification failure is the caller's fault.
func HTTPStatus(err error) int {
	if errors.Is(err, ErrBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		return http.StatusInternalServerError
	}

	switch authErr.Code {
	case CodeSecretDiscoveryError, CodeSecretTimeout:
		return http.StatusInternalServerError
	default:
		return http.StatusUnauthorized
	}
}
