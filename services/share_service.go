package services

import (
	"fmt"
	"sync"

	"SocialScheduler/models"
	"SocialScheduler/publishers"
)

// ShareService fans an existing post out to the user's connected platforms.
// One platform's failure never blocks the others; every platform gets a
// result entry.
type ShareService struct {
	accounts   *AccountService
	publishers map[models.Platform]publishers.PlatformPublisher
}

func NewShareService(accounts *AccountService) *ShareService {
	return &ShareService{
		accounts: accounts,
		publishers: map[models.Platform]publishers.PlatformPublisher{
			models.LinkedIn: publishers.NewLinkedInPublisher(),
		},
	}
}

func (s *ShareService) Share(post *models.Post, platforms []models.Platform) []models.ShareResult {
	var wg sync.WaitGroup
	results := make([]models.ShareResult, len(platforms))

	for i, platform := range platforms {
		wg.Add(1)
		go func(idx int, plt models.Platform) {
			defer wg.Done()

			publisher, ok := s.publishers[plt]
			if !ok {
				results[idx] = models.ShareResult{
					Platform: plt,
					Success:  false,
					Message:  "Platform not supported",
				}
				return
			}

			accessToken, profileID, err := s.accounts.ConnectionToken(post.UserID, plt)
			if err != nil {
				results[idx] = models.ShareResult{
					Platform: plt,
					Success:  false,
					Message:  fmt.Sprintf("%s not connected", plt),
				}
				return
			}

			results[idx] = publisher.Publish(post, accessToken, profileID)
		}(i, platform)
	}

	wg.Wait()
	return results
}
