package hmacauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsWithDefaults(t *testing.T) {
	t.Run("zero value picks up every default", func(t *testing.T) {
		o := Options{}.withDefaults()

		assert.Equal(t, DefaultSecretTimeout, o.SecretTimeout)
		assert.Equal(t, DefaultTimestampSkew, o.TimestampSkew)
		assert.Equal(t, int64(DefaultBodySizeLimit), o.BodySizeLimit)
		assert.NotNil(t, o.Logger)
	})

	t.Run("explicit values are kept", func(t *testing.T) {
		o := Options{
			SecretTimeout: 2 * time.Second,
			TimestampSkew: 5 * time.Minute,
			BodySizeLimit: 512,
		}.withDefaults()

		assert.Equal(t, 2*time.Second, o.SecretTimeout)
		assert.Equal(t, 5*time.Minute, o.TimestampSkew)
		assert.Equal(t, int64(512), o.BodySizeLimit)
	})
}

func TestParseOptions(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		opts, err := ParseOptions([]byte(`
secretForKeyTimeoutMs: 2500
permittedTimestampSkewMs: 30000
bodySizeLimit: 4096
verbose: true
`))
		require.NoError(t, err)

		assert.Equal(t, 2500*time.Millisecond, opts.SecretTimeout)
		assert.Equal(t, 30*time.Second, opts.TimestampSkew)
		assert.Equal(t, int64(4096), opts.BodySizeLimit)
		assert.True(t, opts.Verbose)
	})

	t.Run("omitted fields stay zero for later defaulting", func(t *testing.T) {
		opts, err := ParseOptions([]byte(`verbose: false`))
		require.NoError(t, err)

		assert.Zero(t, opts.SecretTimeout)
		assert.Zero(t, opts.TimestampSkew)
		assert.Zero(t, opts.BodySizeLimit)
		assert.False(t, opts.Verbose)
	})

	t.Run("malformed YAML", func(t *testing.T) {
		_, err := ParseOptions([]byte("secretForKeyTimeoutMs: [not a number"))
		assert.Error(t, err)
	})
}
