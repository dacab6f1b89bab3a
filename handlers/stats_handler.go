package handlers

import (
	"net/http"
	"strconv"

	"SocialScheduler/models"
	"SocialScheduler/utils"
)

// GetQuickStats powers the dashboard stat cards. Engagement is a placeholder
// until an analytics source exists.
func (h *Handler) GetQuickStats(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	scheduled, err := h.db.CountPostsByStatus(userID, models.StatusScheduled)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching stats")
		return
	}
	published, err := h.db.CountPostsByStatus(userID, models.StatusPublished)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching stats")
		return
	}

	stats := []models.QuickStat{
		{Label: "Scheduled Posts", Value: strconv.Itoa(scheduled)},
		{Label: "Published Posts", Value: strconv.Itoa(published)},
		{Label: "Avg. Engagement", Value: "24%"},
	}

	utils.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetWelcomeData(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	user, err := h.db.GetUserByID(userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	scheduled, err := h.db.CountPostsByStatus(userID, models.StatusScheduled)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching welcome data")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.WelcomeData{
		UserName:       user.Username,
		ScheduledPosts: scheduled,
	})
}
