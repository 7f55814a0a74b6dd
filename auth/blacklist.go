package auth

import "sync"

// Blacklist is a process-wide set of revoked token strings. It is consulted by
// the JWT extraction middleware after signature/expiry validation: a
// blacklisted token is treated as unauthenticated regardless of validity.
//
// The set is in-memory only. A server restart clears all revocations; callers
// needing durable revocation must re-populate it at startup.
type Blacklist struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

func NewBlacklist() *Blacklist {
	return &Blacklist{tokens: map[string]struct{}{}}
}

func (b *Blacklist) Add(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[token] = struct{}{}
}

// Remove deletes a token from the blacklist. Returns true if it was present.
func (b *Blacklist) Remove(token string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.tokens[token]
	delete(b.tokens, token)
	return ok
}

// Clear empties the blacklist and returns the number of removed tokens.
func (b *Blacklist) Clear() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := len(b.tokens)
	b.tokens = map[string]struct{}{}
	return n
}

func (b *Blacklist) Contains(token string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.tokens[token]
	return ok
}

func (b *Blacklist) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.tokens)
}
