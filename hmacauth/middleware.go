package hmacauth

import (
	"errors"
	"net/http"
)

// MiddlewareConfig configures the server-side verification middleware.
type MiddlewareConfig struct {
	// Verifier authenticates each inbound request. Required.
	Verifier *Verifier

	// OnError is called when verification fails. When nil, a response with
	// the status from HTTPStatus and the error code as the body is sent.
	OnError func(w http.ResponseWriter, r *http.Request, err error)
}

// Middleware returns a net/http middleware that authenticates every inbound
// request before invoking the next handler. The request body is buffered
// and restored, and authenticated requests carry their Result in the
// context; retrieve it with ResultFromContext.
//
// It returns ErrNoVerifier when MiddlewareConfig.Verifier is nil.
func Middleware(cfg MiddlewareConfig) (func(http.Handler) http.Handler, error) {
	if cfg.Verifier == nil {
		return nil, ErrNoVerifier
	}

	onError := cfg.OnError
	if onError == nil {
		onError = defaultOnError
	}

	verifier := cfg.Verifier

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := verifier.AuthenticateRequest(r.Context(), r)
			if err != nil {
				onError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithResult(r.Context(), res)))
		})
	}, nil
}

// defaultOnError writes the status matching the error class, with the
// machine-readable code as the body when one is present.
func defaultOnError(w http.ResponseWriter, _ *http.Request, err error) {
	status := HTTPStatus(err)

	var authErr *AuthError
	if errors.As(err, &authErr) {
		http.Error(w, authErr.Code, status)
		return
	}

	http.Error(w, http.StatusText(status), status)
}
