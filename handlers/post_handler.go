package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"SocialScheduler/models"
	"SocialScheduler/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// CreatePost accepts a multipart form: content, tags (JSON array string),
// visibility, status, scheduledDate (RFC3339), and an optional image file.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	content := r.FormValue("content")
	if content == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Content is required")
		return
	}

	tags, err := parseTags(r.FormValue("tags"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid tags payload")
		return
	}

	visibility := models.Visibility(r.FormValue("visibility"))
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	if !models.ValidVisibility(visibility) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid visibility")
		return
	}

	status := models.PostStatus(r.FormValue("status"))
	if status == "" {
		status = models.StatusDraft
	}
	if !models.ValidStatus(status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	var scheduledDate *time.Time
	if raw := r.FormValue("scheduledDate"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "scheduledDate must be RFC3339")
			return
		}
		scheduledDate = &parsed
	}

	// A scheduled post needs a strictly future publication time.
	if status == models.StatusScheduled {
		if scheduledDate == nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Scheduled posts require a scheduledDate")
			return
		}
		if !scheduledDate.After(time.Now()) {
			utils.RespondWithError(w, http.StatusBadRequest, "scheduledDate must be in the future")
			return
		}
	}
	if status != models.StatusScheduled {
		scheduledDate = nil
	}

	imageURL, err := h.saveUploadedImage(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	post := &models.Post{
		ID:            uuid.New().String(),
		UserID:        userID,
		Content:       content,
		ImageURL:      imageURL,
		Tags:          tags,
		Visibility:    visibility,
		Status:        status,
		ScheduledDate: scheduledDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.db.CreatePost(post); err != nil {
		utils.Errorf("create post failed user_id=%s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating post")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Post created successfully",
		"post":    post,
	})
}

func (h *Handler) GetPosts(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	status := models.PostStatus(r.URL.Query().Get("status"))
	if status != "" && !models.ValidStatus(status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status filter")
		return
	}

	posts, err := h.db.GetUserPosts(userID, status)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching posts")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, posts)
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)
	postID := mux.Vars(r)["id"]

	post, err := h.db.GetPost(postID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Post not found")
		return
	}

	if post.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, post)
}

type updatePostRequest struct {
	Content       *string   `json:"content"`
	Tags          *[]string `json:"tags"`
	Visibility    *string   `json:"visibility"`
	Status        *string   `json:"status"`
	ScheduledDate *string   `json:"scheduledDate"`
}

// UpdatePost applies a partial update under the lifecycle guards: a published
// post never changes status again, and moving to scheduled requires a
// scheduledDate. Accepts JSON or multipart (for image replacement).
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)
	postID := mux.Vars(r)["id"]

	post, err := h.db.GetPost(postID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Post not found")
		return
	}
	if post.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	req, newImageURL, err := h.parseUpdateRequest(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	newStatus := post.Status
	if req.Status != nil {
		newStatus = models.PostStatus(*req.Status)
		if !models.ValidStatus(newStatus) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
			return
		}
	}

	// Published posts are frozen: no status transition leaves published.
	if post.Status == models.StatusPublished && newStatus != models.StatusPublished {
		utils.RespondWithError(w, http.StatusBadRequest, "Published posts cannot change status")
		return
	}

	if req.Content != nil {
		if *req.Content == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Content is required")
			return
		}
		post.Content = *req.Content
	}
	if req.Tags != nil {
		post.Tags = *req.Tags
	}
	if req.Visibility != nil {
		visibility := models.Visibility(*req.Visibility)
		if !models.ValidVisibility(visibility) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid visibility")
			return
		}
		post.Visibility = visibility
	}

	if req.ScheduledDate != nil {
		parsed, err := time.Parse(time.RFC3339, *req.ScheduledDate)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "scheduledDate must be RFC3339")
			return
		}
		post.ScheduledDate = &parsed
	}

	if newStatus == models.StatusScheduled && post.ScheduledDate == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Scheduled posts require a scheduledDate")
		return
	}
	if newStatus != models.StatusScheduled {
		post.ScheduledDate = nil
	}
	post.Status = newStatus

	if newImageURL != "" {
		// Replacing the image removes the previous file, best-effort.
		if post.ImageURL != "" {
			if err := h.storage.DeleteImageByURL(post.ImageURL); err != nil {
				utils.Warnf("failed to delete replaced image %s: %v", post.ImageURL, err)
			}
		}
		post.ImageURL = newImageURL
	}

	post.UpdatedAt = time.Now()
	if err := h.db.UpdatePost(post); err != nil {
		utils.Errorf("update post failed post_id=%s: %v", postID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating post")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"post": post})
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)
	postID := mux.Vars(r)["id"]

	post, err := h.db.GetPost(postID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Post not found")
		return
	}
	if post.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	deleted, err := h.db.DeletePost(postID, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting post")
		return
	}
	if !deleted {
		utils.RespondWithError(w, http.StatusNotFound, "Post not found")
		return
	}

	if post.ImageURL != "" {
		if err := h.storage.DeleteImageByURL(post.ImageURL); err != nil {
			utils.Warnf("failed to delete image for post %s: %v", postID, err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}

// parseUpdateRequest decodes a JSON body, or a multipart form when the client
// replaces the image alongside field edits.
func (h *Handler) parseUpdateRequest(r *http.Request) (*updatePostRequest, string, error) {
	req := &updatePostRequest{}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return nil, "", err
		}

		setIfPresent := func(field string, dst **string) {
			if values, ok := r.MultipartForm.Value[field]; ok && len(values) > 0 {
				v := values[0]
				*dst = &v
			}
		}
		setIfPresent("content", &req.Content)
		setIfPresent("visibility", &req.Visibility)
		setIfPresent("status", &req.Status)
		setIfPresent("scheduledDate", &req.ScheduledDate)

		if values, ok := r.MultipartForm.Value["tags"]; ok && len(values) > 0 {
			tags, err := parseTags(values[0])
			if err != nil {
				return nil, "", err
			}
			req.Tags = &tags
		}

		imageURL, err := h.saveUploadedImage(r)
		if err != nil {
			return nil, "", err
		}
		return req, imageURL, nil
	}

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return nil, "", err
	}
	return req, "", nil
}

// saveUploadedImage stores the "image" form file when present. Absence is not
// an error.
func (h *Handler) saveUploadedImage(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	return h.storage.SaveImage(file, header)
}

func parseTags(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
