package secure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecureBuffer_RoundTrip(t *testing.T) {
	t.Parallel()

	buf, err := NewSecureBuffer([]byte("s3cr3t-password"))
	require.NoError(t, err)

	locked, err := buf.Open()
	require.NoError(t, err)
	defer locked.Destroy()

	assert.Equal(t, "s3cr3t-password", string(locked.Bytes()))
}

func TestSecureBuffer_OpenTwice(t *testing.T) {
	t.Parallel()

	buf, err := NewSecureBuffer([]byte("token-value"))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		locked, err := buf.Open()
		require.NoError(t, err)
		assert.Equal(t, "token-value", string(locked.Bytes()))
		locked.Destroy()
	}
}

func TestSecureBuffer_EmptyDataRejected(t *testing.T) {
	t.Parallel()

	_, err := NewSecureBuffer(nil)
	assert.Error(t, err)
}

func TestSecureBuffer_Destroy(t *testing.T) {
	t.Parallel()

	buf, err := NewSecureBuffer([]byte("short-lived"))
	require.NoError(t, err)

	buf.Destroy()
	buf.Destroy() // idempotent

	_, err = buf.Open()
	assert.ErrorIs(t, err, ErrDestroyed)
}
