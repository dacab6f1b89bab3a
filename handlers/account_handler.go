package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"SocialScheduler/models"
	"SocialScheduler/services"
	"SocialScheduler/utils"
)

// LinkAccount connects a platform for the authenticated user, replacing any
// previous connection for that platform.
func (h *Handler) LinkAccount(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	var req models.LinkAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	conn, err := h.accounts.Link(userID, req)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("%s connected successfully", conn.Platform),
		"account": conn,
	})
}

func (h *Handler) DisconnectAccount(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	var req models.DisconnectAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.accounts.Disconnect(userID, req.Platform); err != nil {
		if err == services.ErrPlatformNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "Platform not found")
			return
		}
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("%s disconnected successfully", req.Platform),
	})
}

func (h *Handler) GetConnectedAccounts(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	platforms, err := h.accounts.ConnectedPlatforms(userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching accounts")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, platforms)
}

// GetAccounts returns every platform row plus the derived connected count.
func (h *Handler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	platforms, connectedCount, err := h.accounts.AllPlatforms(userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching accounts")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":        userID,
		"platforms":      platforms,
		"connectedCount": connectedCount,
	})
}
