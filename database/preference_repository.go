package database

import (
	"database/sql"

	"SocialScheduler/models"
)

func (d *Database) GetPreferences(userID string) (*models.Preference, error) {
	pref := &models.Preference{}
	query := `SELECT user_id, language, theme, notifications, autosave, dashboard_layout, updated_at
			  FROM preferences WHERE user_id = $1`

	err := d.DB.QueryRow(query, userID).Scan(&pref.UserID, &pref.Language, &pref.Theme,
		&pref.Notifications, &pref.Autosave, &pref.DashboardLayout, &pref.UpdatedAt)
	if err == sql.ErrNoRows {
		// Unset preferences read as the documented defaults.
		return models.DefaultPreferences(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return pref, nil
}

func (d *Database) UpsertPreferences(pref *models.Preference) error {
	query := `INSERT INTO preferences (user_id, language, theme, notifications, autosave, dashboard_layout, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (user_id)
			  DO UPDATE SET language = $2, theme = $3, notifications = $4, autosave = $5,
			                dashboard_layout = $6, updated_at = $7`

	_, err := d.DB.Exec(query, pref.UserID, pref.Language, pref.Theme,
		pref.Notifications, pref.Autosave, pref.DashboardLayout, pref.UpdatedAt)
	return err
}
