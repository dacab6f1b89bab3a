package database

import (
	"database/sql"

	"SocialScheduler/models"

	"github.com/lib/pq"
)

const accountColumns = `id, user_id, platform, is_connected, access_token, refresh_token,
			  token_expires, profile_id, profile_name, scopes, last_synced, created_at, updated_at`

// ReplacePlatform removes any prior row for the platform and inserts the new
// connection in one transaction, so linking the same platform twice leaves
// exactly one row.
func (d *Database) ReplacePlatform(conn *models.PlatformConnection) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM accounts WHERE user_id = $1 AND platform = $2`,
		conn.UserID, conn.Platform); err != nil {
		return err
	}

	query := `INSERT INTO accounts (id, user_id, platform, is_connected, access_token, refresh_token,
			  token_expires, profile_id, profile_name, scopes, last_synced, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	if _, err := tx.Exec(query, conn.ID, conn.UserID, conn.Platform, conn.IsConnected,
		conn.AccessToken, conn.RefreshToken, conn.TokenExpires, conn.ProfileID,
		conn.ProfileName, pq.Array(conn.Scopes), conn.LastSynced,
		conn.CreatedAt, conn.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

// DisconnectPlatform flips the row to disconnected and nulls its credentials
// in place. Returns false when the user never linked the platform.
func (d *Database) DisconnectPlatform(userID string, platform models.Platform) (bool, error) {
	query := `UPDATE accounts
			  SET is_connected = false, access_token = NULL, refresh_token = NULL,
			      profile_id = NULL, updated_at = CURRENT_TIMESTAMP
			  WHERE user_id = $1 AND platform = $2`

	result, err := d.DB.Exec(query, userID, platform)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

func (d *Database) GetUserPlatforms(userID string, connectedOnly bool) ([]*models.PlatformConnection, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1`
	if connectedOnly {
		query += ` AND is_connected = true`
	}
	query += ` ORDER BY platform`

	rows, err := d.DB.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	platforms := []*models.PlatformConnection{}
	for rows.Next() {
		conn, err := scanPlatform(rows)
		if err != nil {
			continue
		}
		platforms = append(platforms, conn)
	}

	return platforms, rows.Err()
}

func (d *Database) GetPlatform(userID string, platform models.Platform) (*models.PlatformConnection, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 AND platform = $2`

	rows, err := d.DB.Query(query, userID, platform)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, sql.ErrNoRows
	}
	return scanPlatform(rows)
}

// ConnectedCount derives the number of connected platforms on demand; it is
// never stored, so it cannot drift.
func (d *Database) ConnectedCount(userID string) (int, error) {
	var count int
	err := d.DB.QueryRow(`SELECT COUNT(*) FROM accounts WHERE user_id = $1 AND is_connected = true`,
		userID).Scan(&count)
	return count, err
}

func scanPlatform(rows *sql.Rows) (*models.PlatformConnection, error) {
	conn := &models.PlatformConnection{}
	var accessToken, refreshToken, profileID, profileName *string
	var scopes []string

	err := rows.Scan(&conn.ID, &conn.UserID, &conn.Platform, &conn.IsConnected,
		&accessToken, &refreshToken, &conn.TokenExpires, &profileID, &profileName,
		pq.Array(&scopes), &conn.LastSynced, &conn.CreatedAt, &conn.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if accessToken != nil {
		conn.AccessToken = *accessToken
	}
	if refreshToken != nil {
		conn.RefreshToken = *refreshToken
	}
	if profileID != nil {
		conn.ProfileID = *profileID
	}
	if profileName != nil {
		conn.ProfileName = *profileName
	}
	conn.Scopes = scopes

	return conn, nil
}
