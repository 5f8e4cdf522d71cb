package hmacauth

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// SignRequest signs an outgoing request in place. It stamps the x-api-key
// header, a date header (only when the caller has not set one), and a
// content-length header mirroring the body, then computes the canonical
// string with exactly the rules the server applies and sets
//
//	authorization: signature <algorithm> <hex digest>
//
// A content-type header is bound into the signature only when the caller
// has set one. The body is read through GetBody when available so the
// transport can still replay the original; otherwise Body is drained and
// restored.
func SignRequest(r *http.Request, apiKey, secret string, alg Algorithm) error {
	if !alg.Supported() {
		return newAuthError(CodeHMACAlgorithmInvalid, "unsupported HMAC algorithm %q", alg)
	}

	body, err := outgoingBody(r)
	if err != nil {
		return err
	}

	r.Header.Set(HeaderAPIKey, apiKey)

	if r.Header.Get(HeaderDate) == "" {
		r.Header.Set(HeaderDate, time.Now().UTC().Format(http.TimeFormat))
	}

	if len(body) > 0 {
		r.Header.Set(HeaderContentLength, strconv.Itoa(len(body)))
		r.ContentLength = int64(len(body))
	}

	signature, err := Sign(canonicalizeRequest(r, body), secret, alg)
	if err != nil {
		return err
	}

	r.Header.Set(HeaderAuthorization, AuthorizationScheme+" "+alg.String()+" "+signature)

	return nil
}

// outgoingBody buffers the request body without consuming it, preferring
// GetBody so the original stream stays untouched.
func outgoingBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	if r.GetBody != nil {
		rc, err := r.GetBody()
		if err != nil {
			return nil, fmt.Errorf("hmacauth: reopen request body: %w", err)
		}
		defer rc.Close()

		body, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("hmacauth: read request body: %w", err)
		}

		return body, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("hmacauth: read request body: %w", err)
	}

	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}
