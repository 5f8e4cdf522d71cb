package hmacauth

import "context"

// Result is the successful outcome of a verification. It is created fresh
// for each authenticated request and never cached or reused.
type Result struct {
	// APIKey is the key the request presented.
	APIKey string

	// Secret is the shared secret the resolver returned for APIKey.
	Secret string

	// Signature is the hex HMAC digest the request carried, which the
	// server's recomputation matched.
	Signature string
}

type resultContextKey struct{}

// ContextWithResult returns a context annotated with a verification result.
// Middleware does this for every request it authenticates.
func ContextWithResult(ctx context.Context, res *Result) context.Context {
	return context.WithValue(ctx, resultContextKey{}, res)
}

// ResultFromContext returns the verification result stored by Middleware,
// or nil when the request was not authenticated.
func ResultFromContext(ctx context.Context) *Result {
	res, _ := ctx.Value(resultContextKey{}).(*Result)
	return res
}
