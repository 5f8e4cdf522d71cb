package hmacauth

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// FlattenQueryValue converts a query parameter value to the stable string
// representation both peers must agree on before percent-encoding: strings
// pass through unchanged, everything else (arrays, objects, numbers) is
// marshaled as compact JSON. Clients that put structured values in query
// parameters must apply this exact rule, or signatures will never match.
func FlattenQueryValue(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("hmacauth: flatten query value: %w", err)
	}

	return string(data), nil
}

// encodeQuery renders the query as "key=value" pairs with both sides
// percent-encoded, sorted lexicographically by encoded key (repeated keys
// fall back to value order), and joined with "&". An empty query yields an
// empty string.
func encodeQuery(query url.Values) string {
	if len(query) == 0 {
		return ""
	}

	type pair struct {
		key   string
		value string
	}

	pairs := make([]pair, 0, len(query))
	for key, values := range query {
		encodedKey := percentEncode(key)

		if len(values) == 0 {
			pairs = append(pairs, pair{key: encodedKey})
			continue
		}

		for _, value := range values {
			pairs = append(pairs, pair{key: encodedKey, value: percentEncode(value)})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].key != pairs[j].key {
			return pairs[i].key < pairs[j].key
		}

		return pairs[i].value < pairs[j].value
	})

	encoded := make([]string, len(pairs))
	for i, p := range pairs {
		encoded[i] = p.key + "=" + p.value
	}

	return strings.Join(encoded, "&")
}

// percentEncode escapes s with the encodeURIComponent character set:
// ALPHA / DIGIT / - _ . ! ~ * ' ( ) stay literal, every other byte becomes
// %XX with uppercase hex. Space is %20, never +.
func percentEncode(s string) string {
	const upperhex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}

		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xF])
	}

	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}

	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}

	return false
}
