package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"SocialScheduler/models"
	"SocialScheduler/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Drafts are posts with status "draft" — there is no separate draft entity.
// These routes exist for clients that treat drafts as their own resource.

func (h *Handler) GetDrafts(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	drafts, err := h.db.GetUserPosts(userID, models.StatusDraft)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching drafts")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, drafts)
}

func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	var req struct {
		Content    string   `json:"content"`
		Tags       []string `json:"tags"`
		Visibility string   `json:"visibility"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Content == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Content is required")
		return
	}

	visibility := models.Visibility(req.Visibility)
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	if !models.ValidVisibility(visibility) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid visibility")
		return
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	post := &models.Post{
		ID:         uuid.New().String(),
		UserID:     userID,
		Content:    req.Content,
		Tags:       tags,
		Visibility: visibility,
		Status:     models.StatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.db.CreatePost(post); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving draft")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Draft saved successfully",
		"draft":   post,
	})
}

func (h *Handler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)
	draftID := mux.Vars(r)["id"]

	post, err := h.db.GetPost(draftID)
	if err != nil || post.UserID != userID || post.Status != models.StatusDraft {
		utils.RespondWithError(w, http.StatusNotFound, "Draft not found")
		return
	}

	if _, err := h.db.DeletePost(draftID, userID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting draft")
		return
	}

	if post.ImageURL != "" {
		if err := h.storage.DeleteImageByURL(post.ImageURL); err != nil {
			utils.Warnf("failed to delete image for draft %s: %v", draftID, err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Draft deleted successfully"})
}
