package hmacauth

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Header names the protocol reads and writes. Lowercase, as they appear in
// the canonical string.
const (
	HeaderAPIKey        = "x-api-key"
	HeaderDate          = "date"
	HeaderContentLength = "content-length"
	HeaderContentType   = "content-type"
	HeaderAuthorization = "authorization"
)

// QueryParameterAPIKey is the query parameter the Verifier falls back to
// when the x-api-key header is absent.
const QueryParameterAPIKey = "apiKey"

// Canonicalize builds the deterministic representation of a request that
// both peers sign. It is a pure function: identical inputs yield
// byte-identical output, and any divergence between client and server makes
// verification fail.
//
// The result is five newline-joined sections: the uppercased method, the
// path as given, the sorted percent-encoded query string, the sorted
// name:value lines of the signed header whitelist, and the hex SHA-256
// digest of the body. An empty or nil body hashes the empty string.
func Canonicalize(method, path string, query url.Values, headers map[string]string, body []byte) string {
	sum := sha256.Sum256(body)

	sections := []string{
		strings.ToUpper(method),
		path,
		encodeQuery(query),
		strings.Join(headerLines(headers, len(body) > 0), "\n"),
		hex.EncodeToString(sum[:]),
	}

	return strings.Join(sections, "\n")
}

// headerLines filters headers down to the signed whitelist, lowercases the
// names, trims the values, and returns "name:value" lines sorted by name.
// content-length and content-type are bound only when a body is present.
func headerLines(headers map[string]string, hasBody bool) []string {
	lines := make([]string, 0, 4)

	for name, value := range headers {
		name = strings.ToLower(strings.TrimSpace(name))

		switch name {
		case HeaderAPIKey, HeaderDate:
		case HeaderContentLength, HeaderContentType:
			if !hasBody {
				continue
			}
		default:
			continue
		}

		lines = append(lines, name+":"+strings.TrimSpace(value))
	}

	sort.Strings(lines)

	return lines
}

// canonicalizeRequest derives the canonical string from an *http.Request
// and an already-buffered body.
//
// net/http promotes Content-Length out of the header map on inbound
// requests, so the field is consulted when the header is absent.
func canonicalizeRequest(r *http.Request, body []byte) string {
	headers := make(map[string]string, 4)
	for _, name := range []string{HeaderAPIKey, HeaderDate, HeaderContentLength, HeaderContentType} {
		if v := r.Header.Get(name); v != "" {
			headers[name] = v
		}
	}

	if _, ok := headers[HeaderContentLength]; !ok && r.ContentLength > 0 {
		headers[HeaderContentLength] = strconv.FormatInt(r.ContentLength, 10)
	}

	path := r.URL.Path
	if path == "" {
		path = "/"
	}

	return Canonicalize(r.Method, path, r.URL.Query(), headers, body)
}
