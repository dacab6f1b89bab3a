package handlers

import (
	"encoding/json"
	"net/http"

	"SocialScheduler/models"
	"SocialScheduler/utils"
)

// SharePost pushes an existing post to the selected connected platforms and
// returns a per-platform result list.
func (h *Handler) SharePost(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	var req models.ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.PostID == "" || len(req.Platforms) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "postId and platforms are required")
		return
	}

	post, err := h.db.GetPost(req.PostID)
	if err != nil || post.UserID != userID {
		utils.RespondWithError(w, http.StatusNotFound, "Post not found")
		return
	}

	results := h.share.Share(post, req.Platforms)

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"post_id": post.ID,
		"results": results,
	})
}
