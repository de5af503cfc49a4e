package db

import (
	"context"
	"errors"
	"fmt"

	"microblog/models"

	"gorm.io/gorm"
)

// UserStore handles persistence for user accounts.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) (*UserStore, error) {
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return nil, fmt.Errorf("failed to create users table: %w", err)
	}

	return &UserStore{db: db}, nil
}

// CreateUser inserts a new account. The password must already be hashed.
// A taken username fails with ErrConflict.
func (s *UserStore) CreateUser(ctx context.Context, username, hashedPassword, bio string) (*models.User, error) {
	user := models.User{Username: username, Password: hashedPassword, Bio: bio}
	err := s.db.WithContext(ctx).Create(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser fetches an account by id.
func (s *UserStore) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername fetches an account by its unique username.
func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
