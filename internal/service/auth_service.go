package service

import (
	"errors"
	"time"

	"finverse_backend/internal/config"
	"finverse_backend/internal/model"
	"finverse_backend/internal/repository"
	"finverse_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo     *repository.UserRepository
	progressRepo *repository.ProgressRepository
	cfg          *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, progressRepo *repository.ProgressRepository, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, progressRepo: progressRepo, cfg: cfg}
}

// Register creates the user and their ledger row, and returns a signed token.
func (s *AuthService) Register(name, email, password string) (*model.User, string, error) {
	_, err := s.userRepo.FindByEmail(email)
	if err == nil {
		return nil, "", util.ErrEmailRegistered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Name:        name,
		Email:       email,
		Password:    string(hashed),
		AvatarStyle: "default",
		LastLogin:   time.Now(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}
	if _, err := s.progressRepo.FindStats(user.ID); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	user.LastLogin = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Profile bundles the user row with their ledger stats.
type Profile struct {
	User  *model.User      `json:"user"`
	Stats *model.UserStats `json:"stats"`
}

func (s *AuthService) GetProfile(userID uint) (*Profile, error) {
	user, err := s.userRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.Wrap(util.ErrNotFound, "user %d", userID)
	}
	if err != nil {
		return nil, err
	}
	stats, err := s.progressRepo.FindStats(userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Stats: stats}, nil
}

// UpdateProfile applies the editable profile fields. Nil pointers leave the
// field untouched.
func (s *AuthService) UpdateProfile(userID uint, name, bio, avatarStyle *string) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.Wrap(util.ErrNotFound, "user %d", userID)
	}
	if err != nil {
		return nil, err
	}

	if name != nil {
		if *name == "" {
			return nil, util.Wrap(util.ErrInvalidInput, "name must not be empty")
		}
		user.Name = *name
	}
	if bio != nil {
		if len(*bio) > 500 {
			return nil, util.Wrap(util.ErrInvalidInput, "bio exceeds 500 characters")
		}
		user.Bio = *bio
	}
	if avatarStyle != nil {
		if !model.ValidAvatarStyle(*avatarStyle) {
			return nil, util.Wrap(util.ErrInvalidInput, "unknown avatar style %q", *avatarStyle)
		}
		user.AvatarStyle = *avatarStyle
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
