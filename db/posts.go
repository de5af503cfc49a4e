package db

import (
	"context"
	"errors"
	"fmt"

	"microblog/models"

	"gorm.io/gorm"
)

// PostStore handles persistence for posts.
type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) (*PostStore, error) {
	if err := db.AutoMigrate(&models.Post{}); err != nil {
		return nil, fmt.Errorf("failed to create posts table: %w", err)
	}

	return &PostStore{db: db}, nil
}

// CreatePost inserts a new post for the given author. An invalid author
// reference surfaces as the engine's foreign-key error.
func (s *PostStore) CreatePost(ctx context.Context, content string, userID uint) (*models.Post, error) {
	post := models.Post{Content: content, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost replaces the content of an existing post.
func (s *PostStore) UpdatePost(ctx context.Context, postID uint, content string) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).First(&post, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	post.Content = content
	if err := s.db.WithContext(ctx).Save(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes a post and returns the deleted row.
func (s *PostStore) DeletePost(ctx context.Context, postID uint) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).First(&post, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPost fetches one post with its author preloaded. A missing post is
// reported as (nil, nil), not as an error.
func (s *PostStore) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Preload("User").First(&post, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}
