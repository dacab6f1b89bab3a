package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"SocialScheduler/database"
	"SocialScheduler/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeTokenInfoServer(t *testing.T, status int, info map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("id_token"))
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(info)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleAuthenticate_ExistingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	srv := fakeTokenInfoServer(t, http.StatusOK, map[string]string{
		"aud":   "client-123",
		"sub":   "google-sub",
		"email": "jane@example.com",
		"name":  "Jane Doe",
	})

	g := NewGoogleAuthService(&database.Database{DB: db}, "client-123", srv.URL)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "username", "email", "password", "name",
		"phone", "timezone", "photo_url", "provider", "created_at", "updated_at"}).
		AddRow("u1", "jane", "jane@example.com", "", "Jane Doe", "", "", "",
			models.ProviderGoogle, now, now)
	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("jane@example.com").
		WillReturnRows(rows)

	user, err := g.Authenticate("valid-id-token", "")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoogleAuthenticate_ProvisionsNewUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	srv := fakeTokenInfoServer(t, http.StatusOK, map[string]string{
		"aud":   "client-123",
		"sub":   "google-sub",
		"email": "newbie@example.com",
		"name":  "New Person",
	})

	g := NewGoogleAuthService(&database.Database{DB: db}, "client-123", srv.URL)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("newbie@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// Username falls back to the email local part.
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "newbie", "newbie@example.com", "", "New Person",
			"", "", "", models.ProviderGoogle, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user, err := g.Authenticate("valid-id-token", "")
	require.NoError(t, err)
	assert.Equal(t, "newbie", user.Username)
	assert.Equal(t, models.ProviderGoogle, user.Provider)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoogleAuthenticate_AudienceMismatch(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	srv := fakeTokenInfoServer(t, http.StatusOK, map[string]string{
		"aud":   "someone-else",
		"sub":   "google-sub",
		"email": "jane@example.com",
	})

	g := NewGoogleAuthService(&database.Database{DB: db}, "client-123", srv.URL)

	_, err = g.Authenticate("stolen-token", "")
	assert.EqualError(t, err, "token audience mismatch")
}

func TestGoogleAuthenticate_InvalidToken(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	srv := fakeTokenInfoServer(t, http.StatusBadRequest, map[string]string{
		"error": "invalid_token",
	})

	g := NewGoogleAuthService(&database.Database{DB: db}, "client-123", srv.URL)

	_, err = g.Authenticate("garbage", "")
	assert.ErrorContains(t, err, "token verification failed")
}

func TestGoogleAuthenticate_EmptyCredential(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	g := NewGoogleAuthService(&database.Database{DB: db}, "client-123", "http://unused")

	_, err = g.Authenticate("", "")
	assert.EqualError(t, err, "missing credential")
}
