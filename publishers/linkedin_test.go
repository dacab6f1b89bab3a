package publishers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"SocialScheduler/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkedInPublish(t *testing.T) {
	var gotAuth, gotRestli string
	var gotPayload map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRestli = r.Header.Get("X-Restli-Protocol-Version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "urn:li:share:42"})
	}))
	defer srv.Close()

	p := NewLinkedInPublisher()
	p.UGCPostsURL = srv.URL

	post := &models.Post{ID: "p1", Content: "hello linkedin"}
	result := p.Publish(post, "the-token", "member-1")

	assert.True(t, result.Success)
	assert.Equal(t, models.LinkedIn, result.Platform)
	assert.Equal(t, "urn:li:share:42", result.PostID)
	assert.Equal(t, "Bearer the-token", gotAuth)
	assert.Equal(t, "2.0.0", gotRestli)
	assert.Equal(t, "urn:li:person:member-1", gotPayload["author"])
}

func TestLinkedInPublish_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"token expired"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewLinkedInPublisher()
	p.UGCPostsURL = srv.URL

	result := p.Publish(&models.Post{Content: "x"}, "stale-token", "member-1")

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "LinkedIn API error (401)")
}

func TestLinkedInPublish_MissingCredentials(t *testing.T) {
	p := NewLinkedInPublisher()

	result := p.Publish(&models.Post{Content: "x"}, "", "")

	assert.False(t, result.Success)
	assert.Equal(t, "Missing LinkedIn credentials", result.Message)
}
