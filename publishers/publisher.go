package publishers

import (
	"SocialScheduler/models"
)

// PlatformPublisher pushes an existing post to one external platform using a
// connected account's credentials.
type PlatformPublisher interface {
	Publish(post *models.Post, accessToken, profileID string) models.ShareResult
}
