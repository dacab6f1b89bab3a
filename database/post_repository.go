package database

import (
	"time"

	"SocialScheduler/models"

	"github.com/lib/pq"
)

const postColumns = `id, user_id, content, image_url, tags, visibility, status, scheduled_date, created_at, updated_at`

func (d *Database) CreatePost(post *models.Post) error {
	query := `INSERT INTO posts (id, user_id, content, image_url, tags, visibility, status, scheduled_date, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := d.DB.Exec(query, post.ID, post.UserID, post.Content, post.ImageURL,
		pq.Array(post.Tags), post.Visibility, post.Status, post.ScheduledDate,
		post.CreatedAt, post.UpdatedAt)
	return err
}

func (d *Database) UpdatePost(post *models.Post) error {
	query := `UPDATE posts SET content = $1, image_url = $2, tags = $3, visibility = $4,
			  status = $5, scheduled_date = $6, updated_at = $7
			  WHERE id = $8`

	_, err := d.DB.Exec(query, post.Content, post.ImageURL, pq.Array(post.Tags),
		post.Visibility, post.Status, post.ScheduledDate, post.UpdatedAt, post.ID)
	return err
}

func (d *Database) GetPost(id string) (*models.Post, error) {
	post := &models.Post{}
	var tags []string
	var imageURL *string

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	err := d.DB.QueryRow(query, id).Scan(&post.ID, &post.UserID, &post.Content,
		&imageURL, pq.Array(&tags), &post.Visibility, &post.Status,
		&post.ScheduledDate, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if imageURL != nil {
		post.ImageURL = *imageURL
	}
	post.Tags = tags
	if post.Tags == nil {
		post.Tags = []string{}
	}

	return post, nil
}

// GetUserPosts returns the user's posts newest-first, optionally filtered by
// status. An empty status returns everything.
func (d *Database) GetUserPosts(userID string, status models.PostStatus) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE user_id = $1`
	args := []interface{}{userID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := d.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post := &models.Post{}
		var tags []string
		var imageURL *string

		err := rows.Scan(&post.ID, &post.UserID, &post.Content, &imageURL,
			pq.Array(&tags), &post.Visibility, &post.Status, &post.ScheduledDate,
			&post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			continue
		}

		if imageURL != nil {
			post.ImageURL = *imageURL
		}
		post.Tags = tags
		if post.Tags == nil {
			post.Tags = []string{}
		}

		posts = append(posts, post)
	}

	return posts, rows.Err()
}

func (d *Database) DeletePost(id, userID string) (bool, error) {
	result, err := d.DB.Exec(`DELETE FROM posts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

func (d *Database) CountPostsByStatus(userID string, status models.PostStatus) (int, error) {
	var count int
	err := d.DB.QueryRow(`SELECT COUNT(*) FROM posts WHERE user_id = $1 AND status = $2`,
		userID, status).Scan(&count)
	return count, err
}

// PublishedPost identifies one post promoted by a sweep tick.
type PublishedPost struct {
	ID     string
	UserID string
}

// ClaimDuePosts promotes every due scheduled post to published in a single
// conditional update. The statement is the claim: two concurrent sweeps can
// never promote the same post twice, and a failure leaves the rows scheduled
// for the next tick.
func (d *Database) ClaimDuePosts(now time.Time) ([]PublishedPost, error) {
	query := `UPDATE posts
			  SET status = $1, scheduled_date = NULL, updated_at = $2
			  WHERE status = $3 AND scheduled_date <= $4
			  RETURNING id, user_id`

	rows, err := d.DB.Query(query, models.StatusPublished, now, models.StatusScheduled, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	published := []PublishedPost{}
	for rows.Next() {
		var p PublishedPost
		if err := rows.Scan(&p.ID, &p.UserID); err != nil {
			return published, err
		}
		published = append(published, p)
	}

	return published, rows.Err()
}
