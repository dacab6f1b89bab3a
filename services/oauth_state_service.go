package services

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

const stateTTL = 10 * time.Minute

// OAuthState stores temporary state for an in-flight OAuth flow.
type OAuthState struct {
	UserID    string
	Platform  string
	CreatedAt time.Time
}

// OAuthStateService manages one-time CSRF state tokens.
type OAuthStateService struct {
	mu     sync.Mutex
	states map[string]*OAuthState
}

func NewOAuthStateService() *OAuthStateService {
	service := &OAuthStateService{
		states: make(map[string]*OAuthState),
	}

	go service.cleanupExpired()

	return service
}

// GenerateState creates and stores a new random state token.
func (s *OAuthStateService) GenerateState(userID, platform string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	bytes := make([]byte, 32)
	rand.Read(bytes)
	state := hex.EncodeToString(bytes)

	s.states[state] = &OAuthState{
		UserID:    userID,
		Platform:  platform,
		CreatedAt: time.Now(),
	}

	return state
}

// ValidateState validates and consumes a state token. One-time use.
func (s *OAuthStateService) ValidateState(state string) (*OAuthState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	oauthState, exists := s.states[state]
	if !exists {
		return nil, false
	}

	delete(s.states, state)

	if time.Since(oauthState.CreatedAt) > stateTTL {
		return nil, false
	}

	return oauthState, true
}

func (s *OAuthStateService) cleanupExpired() {
	ticker := time.NewTicker(stateTTL)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for state, oauthState := range s.states {
			if now.Sub(oauthState.CreatedAt) > stateTTL {
				delete(s.states, state)
			}
		}
		s.mu.Unlock()
	}
}
