package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var linkedinHTTPClient = &http.Client{Timeout: 10 * time.Second}

const (
	defaultLinkedInAuthURL     = "https://www.linkedin.com/oauth/v2/authorization"
	defaultLinkedInTokenURL    = "https://www.linkedin.com/oauth/v2/accessToken"
	defaultLinkedInUserInfoURL = "https://api.linkedin.com/v2/userinfo"

	linkedInScopes = "openid profile w_member_social"
)

// LinkedInService drives the LinkedIn OAuth code flow: auth URL generation,
// code-to-token exchange, and profile fetch.
type LinkedInService struct {
	clientID     string
	clientSecret string
	redirectURI  string

	// Endpoint URLs, overridable for tests.
	AuthURL     string
	TokenURL    string
	UserInfoURL string
}

func NewLinkedInService(clientID, clientSecret, redirectURI string) *LinkedInService {
	return &LinkedInService{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		AuthURL:      defaultLinkedInAuthURL,
		TokenURL:     defaultLinkedInTokenURL,
		UserInfoURL:  defaultLinkedInUserInfoURL,
	}
}

func (l *LinkedInService) Configured() bool {
	return l.clientID != "" && l.clientSecret != ""
}

// BuildAuthURL returns the LinkedIn authorization URL carrying the CSRF state.
func (l *LinkedInService) BuildAuthURL(state string) string {
	params := url.Values{
		"response_type": {"code"},
		"client_id":     {l.clientID},
		"redirect_uri":  {l.redirectURI},
		"state":         {state},
		"scope":         {linkedInScopes},
	}
	return l.AuthURL + "?" + params.Encode()
}

type linkedInToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type LinkedInProfile struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// ExchangeCode trades the authorization code for an access token and fetches
// the member profile bound to it.
func (l *LinkedInService) ExchangeCode(code string) (accessToken string, expiresAt time.Time, profile *LinkedInProfile, err error) {
	data := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {l.redirectURI},
		"client_id":     {l.clientID},
		"client_secret": {l.clientSecret},
	}

	req, err := http.NewRequest(http.MethodPost, l.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", time.Time{}, nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := linkedinHTTPClient.Do(req)
	if err != nil {
		return "", time.Time{}, nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", time.Time{}, nil, fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", time.Time{}, nil, fmt.Errorf("token exchange failed with status %d: %s", resp.StatusCode, string(body))
	}

	var token linkedInToken
	if err := json.Unmarshal(body, &token); err != nil {
		return "", time.Time{}, nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", time.Time{}, nil, fmt.Errorf("empty access token in response")
	}

	profile, err = l.fetchProfile(token.AccessToken)
	if err != nil {
		return "", time.Time{}, nil, err
	}

	expiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	return token.AccessToken, expiresAt, profile, nil
}

func (l *LinkedInService) fetchProfile(accessToken string) (*LinkedInProfile, error) {
	req, err := http.NewRequest(http.MethodGet, l.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := linkedinHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile fetch failed with status %d: %s", resp.StatusCode, string(body))
	}

	var profile LinkedInProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile response: %w", err)
	}
	if profile.Sub == "" {
		return nil, fmt.Errorf("profile response missing member id")
	}

	return &profile, nil
}
