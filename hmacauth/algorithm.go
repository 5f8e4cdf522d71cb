package hmacauth

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
)

// Algorithm identifies the HMAC digest variant named in the authorization
// header.
type Algorithm string

const (
	// AlgorithmSHA1 is HMAC using SHA-1. Supported for interoperability
	// with existing deployments; prefer SHA-256 or SHA-512 for new keys.
	AlgorithmSHA1 Algorithm = "sha1"

	// AlgorithmSHA256 is HMAC using SHA-256.
	AlgorithmSHA256 Algorithm = "sha256"

	// AlgorithmSHA512 is HMAC using SHA-512.
	AlgorithmSHA512 Algorithm = "sha512"
)

// String returns the algorithm name as it appears on the wire.
func (a Algorithm) String() string {
	return string(a)
}

// Supported reports whether a names one of the HMAC variants this package
// implements.
func (a Algorithm) Supported() bool {
	_, ok := a.hashFunc()
	return ok
}

func (a Algorithm) hashFunc() (func() hash.Hash, bool) {
	switch a {
	case AlgorithmSHA1:
		return sha1.New, true
	case AlgorithmSHA256:
		return sha256.New, true
	case AlgorithmSHA512:
		return sha512.New, true
	default:
		return nil, false
	}
}

// Sign computes the HMAC of the canonical string under secret using the
// named algorithm and returns the digest as lowercase hex. An unsupported
// algorithm fails with CodeHMACAlgorithmInvalid.
func Sign(canonical, secret string, alg Algorithm) (string, error) {
	newHash, ok := alg.hashFunc()
	if !ok {
		return "", newAuthError(CodeHMACAlgorithmInvalid, "unsupported HMAC algorithm %q", alg)
	}

	h := hmac.New(newHash, []byte(secret))
	h.Write([]byte(canonical))

	return hex.EncodeToString(h.Sum(nil)), nil
}
