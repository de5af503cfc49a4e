package db

import (
	"context"
	"errors"
	"fmt"

	"microblog/models"

	"gorm.io/gorm"
)

// RetweetStore handles persistence for retweets, keyed by the natural
// (userID, postID) pair.
type RetweetStore struct {
	db *gorm.DB
}

func NewRetweetStore(db *gorm.DB) (*RetweetStore, error) {
	if err := db.AutoMigrate(&models.Retweet{}); err != nil {
		return nil, fmt.Errorf("failed to create retweets table: %w", err)
	}

	return &RetweetStore{db: db}, nil
}

// CountRetweets returns how many users have retweeted the given post.
func (s *RetweetStore) CountRetweets(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Retweet{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CreateRetweet records that userID retweeted postID. A second retweet of
// the same post by the same user fails with ErrConflict.
func (s *RetweetStore) CreateRetweet(ctx context.Context, userID, postID uint) (*models.Retweet, error) {
	retweet := models.Retweet{UserID: userID, PostID: postID}
	err := s.db.WithContext(ctx).Create(&retweet).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return &retweet, nil
}

// DeleteRetweet removes userID's retweet of postID and returns the deleted
// row.
func (s *RetweetStore) DeleteRetweet(ctx context.Context, userID, postID uint) (*models.Retweet, error) {
	var retweet models.Retweet
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&retweet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Retweet{}).Error
	if err != nil {
		return nil, err
	}
	return &retweet, nil
}

// HasUserRetweetedPost reports whether the retweet row exists. A missing
// row is false, not an error.
func (s *RetweetStore) HasUserRetweetedPost(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Retweet{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
