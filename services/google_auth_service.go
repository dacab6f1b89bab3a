package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"SocialScheduler/database"
	"SocialScheduler/models"

	"github.com/google/uuid"
)

var googleHTTPClient = &http.Client{Timeout: 10 * time.Second}

// GoogleAuthService verifies Google ID tokens against the tokeninfo endpoint
// and provisions users on first sign-in.
type GoogleAuthService struct {
	db           *database.Database
	clientID     string
	tokenInfoURL string
}

func NewGoogleAuthService(db *database.Database, clientID, tokenInfoURL string) *GoogleAuthService {
	return &GoogleAuthService{
		db:           db,
		clientID:     clientID,
		tokenInfoURL: tokenInfoURL,
	}
}

type googleTokenInfo struct {
	Audience string `json:"aud"`
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
}

// Authenticate verifies the ID token, then finds the user by email or creates
// a google-provider user with a username derived from the email local part.
func (g *GoogleAuthService) Authenticate(credential, requestedUsername string) (*models.User, error) {
	info, err := g.verifyIDToken(credential)
	if err != nil {
		return nil, err
	}

	if user, err := g.db.GetUserByEmail(info.Email); err == nil {
		return user, nil
	}

	username := requestedUsername
	if username == "" {
		username = strings.SplitN(info.Email, "@", 2)[0]
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     info.Email,
		Name:      info.Name,
		PhotoURL:  info.Picture,
		Provider:  models.ProviderGoogle,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := g.db.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to provision user: %w", err)
	}

	return user, nil
}

func (g *GoogleAuthService) verifyIDToken(credential string) (*googleTokenInfo, error) {
	if credential == "" {
		return nil, fmt.Errorf("missing credential")
	}

	endpoint := g.tokenInfoURL + "?" + url.Values{"id_token": {credential}}.Encode()
	resp, err := googleHTTPClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tokeninfo response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token verification failed with status %d", resp.StatusCode)
	}

	var info googleTokenInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse tokeninfo response: %w", err)
	}

	if g.clientID != "" && info.Audience != g.clientID {
		return nil, fmt.Errorf("token audience mismatch")
	}
	if info.Email == "" || info.Subject == "" {
		return nil, fmt.Errorf("token missing identity claims")
	}

	return &info, nil
}
