package database

import (
	"database/sql"

	"SocialScheduler/models"
)

const userColumns = `id, username, email, password, name, phone, timezone, photo_url, provider, created_at, updated_at`

func (d *Database) CreateUser(user *models.User) error {
	query := `INSERT INTO users (id, username, email, password, name, phone, timezone, photo_url, provider, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := d.DB.Exec(query, user.ID, user.Username, user.Email, user.Password,
		user.Name, user.Phone, user.Timezone, user.PhotoURL, user.Provider,
		user.CreatedAt, user.UpdatedAt)
	return err
}

func (d *Database) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password,
		&user.Name, &user.Phone, &user.Timezone, &user.PhotoURL, &user.Provider,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (d *Database) GetUserByUsername(username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return d.scanUser(d.DB.QueryRow(query, username))
}

func (d *Database) GetUserByEmail(email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return d.scanUser(d.DB.QueryRow(query, email))
}

func (d *Database) GetUserByID(id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return d.scanUser(d.DB.QueryRow(query, id))
}

func (d *Database) UpdateUserProfile(user *models.User) error {
	query := `UPDATE users SET name = $1, phone = $2, timezone = $3, photo_url = $4, updated_at = $5
			  WHERE id = $6`
	_, err := d.DB.Exec(query, user.Name, user.Phone, user.Timezone, user.PhotoURL,
		user.UpdatedAt, user.ID)
	return err
}

func (d *Database) UpdateUserPassword(userID, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	_, err := d.DB.Exec(query, hashedPassword, userID)
	return err
}
