package services

import (
	"fmt"
	"time"

	"SocialScheduler/database"
	"SocialScheduler/models"
	"SocialScheduler/utils"

	"github.com/google/uuid"
)

// AccountService tracks which external platforms a user has linked.
// Tokens are encrypted before they reach the accounts table.
type AccountService struct {
	db *database.Database
}

func NewAccountService(db *database.Database) *AccountService {
	return &AccountService{db: db}
}

// Link replaces any prior connection for the platform with a fresh connected
// entry. Connected entries must carry an access token and profile id.
func (s *AccountService) Link(userID string, req models.LinkAccountRequest) (*models.PlatformConnection, error) {
	if !models.ValidPlatform(req.Platform) {
		return nil, fmt.Errorf("invalid or unsupported platform")
	}
	if req.AccessToken == "" || req.ProfileID == "" {
		return nil, fmt.Errorf("connected platforms require accessToken and profileId")
	}

	accessToken, err := utils.EncryptToken(req.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt access token: %w", err)
	}
	refreshToken := ""
	if req.RefreshToken != "" {
		if refreshToken, err = utils.EncryptToken(req.RefreshToken); err != nil {
			return nil, fmt.Errorf("failed to encrypt refresh token: %w", err)
		}
	}

	now := time.Now()
	conn := &models.PlatformConnection{
		ID:           uuid.New().String(),
		UserID:       userID,
		Platform:     req.Platform,
		IsConnected:  true,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenExpires: req.TokenExpires,
		ProfileID:    req.ProfileID,
		ProfileName:  req.ProfileName,
		Scopes:       req.Scopes,
		LastSynced:   &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.db.ReplacePlatform(conn); err != nil {
		return nil, fmt.Errorf("failed to link %s: %w", req.Platform, err)
	}

	return conn, nil
}

func (s *AccountService) Disconnect(userID string, platform models.Platform) error {
	if !models.ValidPlatform(platform) {
		return fmt.Errorf("invalid or unsupported platform")
	}

	found, err := s.db.DisconnectPlatform(userID, platform)
	if err != nil {
		return fmt.Errorf("failed to disconnect %s: %w", platform, err)
	}
	if !found {
		return ErrPlatformNotFound
	}
	return nil
}

var ErrPlatformNotFound = fmt.Errorf("platform not found")

func (s *AccountService) ConnectedPlatforms(userID string) ([]*models.PlatformConnection, error) {
	return s.db.GetUserPlatforms(userID, true)
}

func (s *AccountService) AllPlatforms(userID string) ([]*models.PlatformConnection, int, error) {
	platforms, err := s.db.GetUserPlatforms(userID, false)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.db.ConnectedCount(userID)
	if err != nil {
		return nil, 0, err
	}
	return platforms, count, nil
}

// ConnectionToken returns the decrypted access token and profile id for a
// connected platform, for outbound API calls.
func (s *AccountService) ConnectionToken(userID string, platform models.Platform) (accessToken, profileID string, err error) {
	conn, err := s.db.GetPlatform(userID, platform)
	if err != nil {
		return "", "", ErrPlatformNotFound
	}
	if !conn.IsConnected {
		return "", "", fmt.Errorf("%s is not connected", platform)
	}

	token, err := utils.DecryptToken(conn.AccessToken)
	if err != nil {
		return "", "", fmt.Errorf("failed to decrypt %s token: %w", platform, err)
	}
	return token, conn.ProfileID, nil
}
