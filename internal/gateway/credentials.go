package gateway

import "sync"

// TokenHolder owns the session's bearer credential. One holder is created
// per wizard run and passed to the Client by reference, so the credential
// is scoped to the session that earned it rather than to the process.
//
// The token lives only in memory and is never written anywhere durable.
// A 401 from the backend clears it, forcing re-verification on next use.
type TokenHolder struct {
	mu    sync.RWMutex
	token string
}

// NewTokenHolder creates an empty, unauthenticated holder
func NewTokenHolder() *TokenHolder {
	return &TokenHolder{}
}

// Set stores the bearer token obtained from OTP verification
func (h *TokenHolder) Set(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
}

// Get returns the held token, empty when unauthenticated
func (h *TokenHolder) Get() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Clear discards the held token
func (h *TokenHolder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = ""
}

// Authenticated reports whether a token is currently held
func (h *TokenHolder) Authenticated() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token != ""
}
