package hmacauth

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrBodyTooLarge is returned when a request body exceeds
// Options.BodySizeLimit before it is fully buffered.
var ErrBodyTooLarge = errors.New("hmacauth: request body exceeds the configured size limit")

// readAndRestoreBody buffers up to limit bytes of the request body and
// replaces it with a fresh reader so downstream handlers can consume it
// again. A nil body yields nil bytes.
func readAndRestoreBody(r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("hmacauth: read request body: %w", err)
	}

	r.Body.Close()

	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, limit)
	}

	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}
