package handlers

import (
	"encoding/json"
	"net/http"

	"SocialScheduler/models"
	"SocialScheduler/utils"
)

// GetLinkedInAuthURL starts the LinkedIn OAuth flow for the authenticated
// user, binding a one-time CSRF state token to their identity.
func (h *Handler) GetLinkedInAuthURL(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User ID not found in request context")
		return
	}

	if !h.linkedin.Configured() {
		utils.Errorf("linkedin oauth not configured: LINKEDIN_CLIENT_ID/LINKEDIN_CLIENT_SECRET missing")
		utils.RespondWithError(w, http.StatusInternalServerError,
			"LinkedIn integration is not configured")
		return
	}

	state := h.oauthStates.GenerateState(userID, string(models.LinkedIn))

	utils.Infof("linkedin oauth initiate user_id=%s", userID)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"url":   h.linkedin.BuildAuthURL(state),
		"state": state,
	})
}

// HandleLinkedInCallback exchanges the authorization code for a token, fetches
// the member profile, and records the connection on the user's account.
func (h *Handler) HandleLinkedInCallback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code  string `json:"code"`
		State string `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Code == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing authorization code")
		return
	}
	if req.State == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing state parameter")
		return
	}

	oauthState, valid := h.oauthStates.ValidateState(req.State)
	if !valid || oauthState.Platform != string(models.LinkedIn) {
		utils.Warnf("linkedin oauth invalid or expired state")
		utils.RespondWithError(w, http.StatusBadRequest,
			"Invalid or expired state token. Please try connecting again.")
		return
	}
	userID := oauthState.UserID

	accessToken, expiresAt, profile, err := h.linkedin.ExchangeCode(req.Code)
	if err != nil {
		utils.Errorf("linkedin token exchange failed user_id=%s: %v", userID, err)
		utils.RespondWithError(w, http.StatusBadGateway, "LinkedIn token exchange failed")
		return
	}

	conn, err := h.accounts.Link(userID, models.LinkAccountRequest{
		Platform:     models.LinkedIn,
		AccessToken:  accessToken,
		ProfileID:    profile.Sub,
		ProfileName:  profile.Name,
		Scopes:       []string{"openid", "profile", "w_member_social"},
		TokenExpires: &expiresAt,
	})
	if err != nil {
		utils.Errorf("linkedin account link failed user_id=%s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save LinkedIn connection")
		return
	}

	utils.Infof("linkedin connected user_id=%s profile_id=%s", userID, profile.Sub)
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"account": conn,
		"profile": profile,
	})
}
