package publishers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"SocialScheduler/models"
)

const defaultUGCPostsURL = "https://api.linkedin.com/v2/ugcPosts"

// LinkedInPublisher shares a post through the LinkedIn UGC posts API.
type LinkedInPublisher struct {
	client *http.Client

	// UGCPostsURL is overridable for tests.
	UGCPostsURL string
}

func NewLinkedInPublisher() *LinkedInPublisher {
	return &LinkedInPublisher{
		client:      &http.Client{Timeout: 10 * time.Second},
		UGCPostsURL: defaultUGCPostsURL,
	}
}

func (l *LinkedInPublisher) Publish(post *models.Post, accessToken, profileID string) models.ShareResult {
	if accessToken == "" || profileID == "" {
		return models.ShareResult{
			Platform: models.LinkedIn,
			Success:  false,
			Message:  "Missing LinkedIn credentials",
		}
	}

	payload := map[string]interface{}{
		"author":         fmt.Sprintf("urn:li:person:%s", profileID),
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]interface{}{
			"com.linkedin.ugc.ShareContent": map[string]interface{}{
				"shareCommentary": map[string]string{
					"text": post.Content,
				},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return models.ShareResult{Platform: models.LinkedIn, Success: false, Message: err.Error()}
	}

	req, err := http.NewRequest(http.MethodPost, l.UGCPostsURL, bytes.NewReader(body))
	if err != nil {
		return models.ShareResult{Platform: models.LinkedIn, Success: false, Message: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return models.ShareResult{
			Platform: models.LinkedIn,
			Success:  false,
			Message:  fmt.Sprintf("LinkedIn API request failed: %v", err),
		}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.ShareResult{
			Platform: models.LinkedIn,
			Success:  false,
			Message:  fmt.Sprintf("LinkedIn API error (%d): %s", resp.StatusCode, string(respBody)),
		}
	}

	var created struct {
		ID string `json:"id"`
	}
	json.Unmarshal(respBody, &created)

	return models.ShareResult{
		Platform: models.LinkedIn,
		Success:  true,
		Message:  "Published successfully on LinkedIn",
		PostID:   created.ID,
	}
}
