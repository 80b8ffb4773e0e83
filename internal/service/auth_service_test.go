package service

import (
	"testing"
	"time"

	"finverse_backend/internal/config"
	"finverse_backend/internal/model"
	"finverse_backend/internal/repository"
	"finverse_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), repository.NewProgressRepository(db), cfg), db
}

func TestRegisterCreatesUserAndLedger(t *testing.T) {
	svc, db := newAuthService(t)

	user, token, err := svc.Register("Alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "s3cretpass", user.Password, "password is stored hashed")

	var stats model.UserStats
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&stats).Error)
	assert.Equal(t, "Beginner", stats.CurrentTitle)
	assert.Zero(t, stats.TotalXP)

	_, _, err = svc.Register("Alice Again", "alice@example.com", "otherpass1")
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, err := svc.Register("Bob", "bob@example.com", "s3cretpass")
	require.NoError(t, err)

	user, token, err := svc.Login("bob@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Bob", user.Name)

	_, _, err = svc.Login("bob@example.com", "wrongpass")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	_, _, err = svc.Login("nobody@example.com", "s3cretpass")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newAuthService(t)

	user, _, err := svc.Register("Carol", "carol@example.com", "s3cretpass")
	require.NoError(t, err)

	bio := "Learning to invest."
	style := "wizard"
	updated, err := svc.UpdateProfile(user.ID, nil, &bio, &style)
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, "wizard", updated.AvatarStyle)
	assert.Equal(t, "Carol", updated.Name, "omitted fields are untouched")

	bad := "alien"
	_, err = svc.UpdateProfile(user.ID, nil, nil, &bad)
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'a'
	}
	tooLong := string(long)
	_, err = svc.UpdateProfile(user.ID, nil, &tooLong, nil)
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}

func TestGetProfileEmbedsStats(t *testing.T) {
	svc, db := newAuthService(t)

	user, _, err := svc.Register("Dan", "dan@example.com", "s3cretpass")
	require.NoError(t, err)

	progression := newProgression(db)
	_, err = progression.GrantXP(user.ID, 250)
	require.NoError(t, err)

	profile, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dan", profile.User.Name)
	assert.Equal(t, 250, profile.Stats.TotalXP)
	assert.Equal(t, "Confident", profile.Stats.CurrentTitle)

	_, err = svc.GetProfile(999)
	assert.ErrorIs(t, err, util.ErrNotFound)
}
