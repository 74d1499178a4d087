package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrTokenInvalid covers unknown tokens and tokens past their TTL.
	ErrTokenInvalid = errors.New("token invalid or expired")
)

// HashPassword hashes a plaintext password with bcrypt at the given cost.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// TokenStore issues short-lived opaque tokens bound to a player, used for
// reconnects so clients do not resend credentials. Tokens are single-use.
type TokenStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	tokens map[string]tokenEntry
	now    func() time.Time
}

type tokenEntry struct {
	playerID string
	expires  time.Time
}

// NewTokenStore creates a store whose tokens live for the given TTL.
func NewTokenStore(ttl time.Duration) *TokenStore {
	return &TokenStore{
		ttl:    ttl,
		tokens: make(map[string]tokenEntry),
		now:    time.Now,
	}
}

// Issue mints a token for the player.
func (s *TokenStore) Issue(playerID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.tokens[token] = tokenEntry{playerID: playerID, expires: s.now().Add(s.ttl)}
	return token
}

// Redeem consumes a token and returns the player it was issued to.
func (s *TokenStore) Redeem(token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.tokens[token]
	if !ok {
		return "", ErrTokenInvalid
	}
	delete(s.tokens, token)
	if s.now().After(entry.expires) {
		return "", ErrTokenInvalid
	}
	return entry.playerID, nil
}

// Prune drops expired tokens and returns how many were removed.
func (s *TokenStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for token, entry := range s.tokens {
		if now.After(entry.expires) {
			delete(s.tokens, token)
			removed++
		}
	}
	return removed
}
