package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"SocialScheduler/models"
	"SocialScheduler/utils"
)

func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	prefs, err := h.db.GetPreferences(userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching preferences")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, prefs)
}

func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	var req models.Preference
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	req.UserID = userID
	req.UpdatedAt = time.Now()

	if err := h.db.UpsertPreferences(&req); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating preferences")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Preferences updated successfully",
		"preferences": req,
	})
}
