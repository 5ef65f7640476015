// Package secure wraps memguard to keep credentials encrypted at rest in
// memory between uses. The plaintext only exists inside a locked buffer that
// the caller must destroy after each use.
package secure

import (
	"errors"
	"sync"

	"github.com/awnumar/memguard"
)

// ErrDestroyed is returned when opening a buffer after Destroy.
var ErrDestroyed = errors.New("secure buffer destroyed")

// SecureBuffer provides memory-safe storage for sensitive data. It wraps
// memguard.Enclave to encrypt secrets at rest and protect them from swapping
// via mlock.
type SecureBuffer struct {
	enclave *memguard.Enclave
	mu      sync.RWMutex
	// destroyed allows idempotent Destroy() calls and prevents use after
	// destroy
	destroyed bool
}

// NewSecureBuffer creates a protected buffer from secret bytes. The input is
// copied into an encrypted enclave; callers should zero their copy.
func NewSecureBuffer(data []byte) (*SecureBuffer, error) {
	if len(data) == 0 {
		return nil, errors.New("secure buffer requires non-empty data")
	}

	return &SecureBuffer{
		enclave: memguard.NewEnclave(data),
	}, nil
}

// Open decrypts and returns the protected data in a locked buffer.
// The caller MUST call Destroy() on the returned LockedBuffer when done
// to securely wipe the plaintext from memory.
//
//	locked, err := buf.Open()
//	if err != nil {
//	    return err
//	}
//	defer locked.Destroy()
//	secret := locked.Bytes()
func (s *SecureBuffer) Open() (*memguard.LockedBuffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.destroyed {
		return nil, ErrDestroyed
	}

	return s.enclave.Open()
}

// Destroy marks this SecureBuffer as destroyed and prevents further use.
// Idempotent. The encrypted enclave data is safe without explicit wiping;
// for full cleanup at process exit call memguard.Purge().
func (s *SecureBuffer) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return
	}

	s.enclave = nil
	s.destroyed = true
}
