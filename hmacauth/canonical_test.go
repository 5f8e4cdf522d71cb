package hmacauth

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Hex SHA-256 of the empty string; every bodyless request's canonical
// string ends with it.
const emptyBodyHash = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

func TestCanonicalize(t *testing.T) {
	t.Run("golden five-section string", func(t *testing.T) {
		body := []byte(`{"test":"body"}`)

		got := Canonicalize("POST", "/items/test",
			url.Values{"paramA": {"valueA"}, "paramB": {"value B"}},
			map[string]string{
				"content-length": "15",
				"date":           "Tue, 20 Apr 2016 18:48:24 GMT",
				"x-api-key":      "12345",
			},
			body)

		want := "POST\n" +
			"/items/test\n" +
			"paramA=valueA&paramB=value%20B\n" +
			"content-length:15\n" +
			"date:Tue, 20 Apr 2016 18:48:24 GMT\n" +
			"x-api-key:12345\n" +
			"8ea970f91712fb7ab0b96dbe6e9706642ca1f76a582786250c1a272a9399e683"

		assert.Equal(t, want, got)
	})

	t.Run("deterministic", func(t *testing.T) {
		query := url.Values{"b": {"2"}, "a": {"1"}}
		headers := map[string]string{"x-api-key": "k", "date": "Tue, 20 Apr 2016 18:48:24 GMT"}

		first := Canonicalize("get", "/path", query, headers, []byte("payload"))
		second := Canonicalize("get", "/path", query, headers, []byte("payload"))

		assert.Equal(t, first, second)
	})

	t.Run("method uppercased", func(t *testing.T) {
		got := Canonicalize("post", "/", nil, nil, nil)
		assert.Equal(t, "POST", got[:4])
	})

	t.Run("empty body hashes the empty string", func(t *testing.T) {
		got := Canonicalize("GET", "/status", nil, map[string]string{"x-api-key": "k"}, nil)
		assert.Equal(t, "GET\n/status\n\nx-api-key:k\n"+emptyBodyHash, got)
	})

	t.Run("empty query and headers yield empty sections", func(t *testing.T) {
		got := Canonicalize("GET", "/", nil, nil, nil)
		assert.Equal(t, "GET\n/\n\n\n"+emptyBodyHash, got)
	})

	t.Run("content headers excluded without body", func(t *testing.T) {
		headers := map[string]string{
			"content-length": "0",
			"content-type":   "application/json",
			"x-api-key":      "k",
		}

		got := Canonicalize("GET", "/", nil, headers, nil)
		assert.Equal(t, "GET\n/\n\nx-api-key:k\n"+emptyBodyHash, got)
	})

	t.Run("content headers included with body", func(t *testing.T) {
		headers := map[string]string{
			"content-length": "3",
			"content-type":   "text/plain",
		}

		got := Canonicalize("POST", "/", nil, headers, []byte("abc"))
		assert.Contains(t, got, "content-length:3\ncontent-type:text/plain\n")
	})

	t.Run("unlisted headers are never signed", func(t *testing.T) {
		headers := map[string]string{
			"x-api-key":       "k",
			"user-agent":      "curl/8.0",
			"x-forwarded-for": "10.0.0.1",
		}

		got := Canonicalize("GET", "/", nil, headers, nil)
		assert.NotContains(t, got, "user-agent")
		assert.NotContains(t, got, "x-forwarded-for")
	})

	t.Run("header names case-normalized and values trimmed", func(t *testing.T) {
		headers := map[string]string{
			"X-API-Key": "  12345  ",
			"Date":      "Tue, 20 Apr 2016 18:48:24 GMT",
		}

		got := Canonicalize("GET", "/", nil, headers, nil)
		assert.Contains(t, got, "date:Tue, 20 Apr 2016 18:48:24 GMT\nx-api-key:12345\n")
	})

	t.Run("header lines sorted by name", func(t *testing.T) {
		headers := map[string]string{
			"x-api-key":      "k",
			"date":           "d",
			"content-type":   "t",
			"content-length": "1",
		}

		got := Canonicalize("POST", "/", nil, headers, []byte("x"))
		assert.Contains(t, got, "content-length:1\ncontent-type:t\ndate:d\nx-api-key:k\n")
	})
}
