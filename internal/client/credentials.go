package client

import "sync"

// CredentialHolder stores the bearer token between requests. An empty token
// means "not logged in". Implementations must be safe for concurrent use.
type CredentialHolder interface {
	Token() string
	SetToken(token string)
	Clear()
}

// MemoryHolder is a CredentialHolder backed by process memory.
type MemoryHolder struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryHolder() *MemoryHolder {
	return &MemoryHolder{}
}

func (h *MemoryHolder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *MemoryHolder) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
}

func (h *MemoryHolder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = ""
}
