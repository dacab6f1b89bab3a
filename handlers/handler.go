package handlers

import (
	"SocialScheduler/database"
	"SocialScheduler/services"
)

type Handler struct {
	db          *database.Database
	authService *services.AuthService
	googleAuth  *services.GoogleAuthService
	accounts    *services.AccountService
	storage     *services.StorageService
	share       *services.ShareService
	linkedin    *services.LinkedInService
	oauthStates *services.OAuthStateService
}

func NewHandler(
	db *database.Database,
	authService *services.AuthService,
	googleAuth *services.GoogleAuthService,
	accounts *services.AccountService,
	storage *services.StorageService,
	share *services.ShareService,
	linkedin *services.LinkedInService,
	oauthStates *services.OAuthStateService,
) *Handler {
	return &Handler{
		db:          db,
		authService: authService,
		googleAuth:  googleAuth,
		accounts:    accounts,
		storage:     storage,
		share:       share,
		linkedin:    linkedin,
		oauthStates: oauthStates,
	}
}
