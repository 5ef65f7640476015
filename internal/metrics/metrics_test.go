package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordBeforeInitIsNoOp(t *testing.T) {
	// Must not panic when metrics were never registered.
	RecordOperation("read", "success")
	RecordRetry("write")
	RecordReauthentication()
}

func TestInitIsIdempotent(t *testing.T) {
	Init()
	Init()

	assert.True(t, IsRegistered())

	// Recording after registration must not panic either.
	RecordOperation("delete", "error")
	RecordRetry("read")
	RecordReauthentication()
}
