package services

import (
	"testing"
	"time"

	"SocialScheduler/database"
	"SocialScheduler/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthServiceWithMock(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewAuthService(&database.Database{DB: db}, []byte("test-secret")), mock
}

func userRow(user *models.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "email", "password", "name",
		"phone", "timezone", "photo_url", "provider", "created_at", "updated_at"}).
		AddRow(user.ID, user.Username, user.Email, user.Password, user.Name,
			user.Phone, user.Timezone, user.PhotoURL, user.Provider,
			user.CreatedAt, user.UpdatedAt)
}

func TestRegister(t *testing.T) {
	a, mock := newAuthServiceWithMock(t)

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "jane", "jane@example.com", sqlmock.AnyArg(),
			"Jane", "", "", "", models.ProviderLocal, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user, err := a.Register(models.RegisterRequest{
		Username: "jane",
		Email:    "jane@example.com",
		Password: "s3cret",
		Name:     "Jane",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, models.ProviderLocal, user.Provider)
	// The stored password must be a hash, never the plaintext.
	assert.NotEqual(t, "s3cret", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_MissingFields(t *testing.T) {
	a, _ := newAuthServiceWithMock(t)

	_, err := a.Register(models.RegisterRequest{Username: "jane"})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	a, mock := newAuthServiceWithMock(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now().UTC()
	stored := &models.User{
		ID: "u1", Username: "jane", Email: "jane@example.com",
		Password: string(hashed), Provider: models.ProviderLocal,
		CreatedAt: now, UpdatedAt: now,
	}
	mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1`).
		WithArgs("jane").
		WillReturnRows(userRow(stored))

	user, err := a.Login(models.LoginRequest{Username: "jane", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_WrongPassword(t *testing.T) {
	a, mock := newAuthServiceWithMock(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now().UTC()
	stored := &models.User{
		ID: "u1", Username: "jane", Password: string(hashed),
		Provider: models.ProviderLocal, CreatedAt: now, UpdatedAt: now,
	}
	mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1`).
		WithArgs("jane").
		WillReturnRows(userRow(stored))

	_, err = a.Login(models.LoginRequest{Username: "jane", Password: "wrong"})
	assert.EqualError(t, err, "invalid credentials")
}

func TestLogin_UnknownUser(t *testing.T) {
	a, mock := newAuthServiceWithMock(t)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := a.Login(models.LoginRequest{Username: "ghost", Password: "whatever"})
	assert.EqualError(t, err, "invalid credentials")
}

func TestChangePassword_GoogleUserRejected(t *testing.T) {
	a, mock := newAuthServiceWithMock(t)

	now := time.Now().UTC()
	stored := &models.User{
		ID: "u1", Username: "jane", Password: "",
		Provider: models.ProviderGoogle, CreatedAt: now, UpdatedAt: now,
	}
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs("u1").
		WillReturnRows(userRow(stored))

	err := a.ChangePassword("u1", "anything", "new-pass")
	assert.EqualError(t, err, "password login is not enabled for this account")
}

func TestTokenRoundTrip(t *testing.T) {
	a, _ := newAuthServiceWithMock(t)

	user := &models.User{ID: "u1", Username: "jane"}
	token, err := a.GenerateToken(user)
	require.NoError(t, err)

	claims, err := a.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "jane", claims.Username)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	a, _ := newAuthServiceWithMock(t)

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	other := NewAuthService(&database.Database{DB: db}, []byte("different-secret"))

	token, err := other.GenerateToken(&models.User{ID: "u1", Username: "jane"})
	require.NoError(t, err)

	_, err = a.ValidateToken(token)
	assert.Error(t, err)
}
