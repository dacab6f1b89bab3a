package database

import (
	"database/sql"

	_ "github.com/lib/pq"
)

type Database struct {
	DB *sql.DB
}

func NewDatabase(connStr string) (*Database, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	database := &Database{DB: db}
	if err := database.createTables(); err != nil {
		return nil, err
	}

	return database, nil
}

func (d *Database) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(255) PRIMARY KEY,
			username VARCHAR(255) UNIQUE NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255),
			name VARCHAR(255),
			phone VARCHAR(50),
			timezone VARCHAR(100),
			photo_url VARCHAR(500),
			provider VARCHAR(50) NOT NULL DEFAULT 'local',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id VARCHAR(255) PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			content TEXT NOT NULL,
			image_url VARCHAR(500),
			tags TEXT[] NOT NULL DEFAULT '{}',
			visibility VARCHAR(50) NOT NULL DEFAULT 'Public',
			status VARCHAR(50) NOT NULL DEFAULT 'draft',
			scheduled_date TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_user_status ON posts (user_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_due ON posts (status, scheduled_date)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id VARCHAR(255) PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			platform VARCHAR(50) NOT NULL,
			is_connected BOOLEAN NOT NULL DEFAULT false,
			access_token TEXT,
			refresh_token TEXT,
			token_expires TIMESTAMP,
			profile_id VARCHAR(255),
			profile_name VARCHAR(255),
			scopes TEXT[] NOT NULL DEFAULT '{}',
			last_synced TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, platform),
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS preferences (
			user_id VARCHAR(255) PRIMARY KEY,
			language VARCHAR(50) NOT NULL DEFAULT 'English',
			theme VARCHAR(50) NOT NULL DEFAULT 'Light',
			notifications BOOLEAN NOT NULL DEFAULT true,
			autosave BOOLEAN NOT NULL DEFAULT false,
			dashboard_layout VARCHAR(50) NOT NULL DEFAULT 'Grid',
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
	}

	for _, query := range queries {
		if _, err := d.DB.Exec(query); err != nil {
			return err
		}
	}

	return nil
}
