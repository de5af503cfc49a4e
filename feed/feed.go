package feed

import (
	"context"
	"sort"
	"time"

	"microblog/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Service assembles the merged timeline of posts and retweets.
type Service struct {
	db *gorm.DB
}

// NewService creates a new instance of Service.
func NewService(db *gorm.DB) (*Service, error) {
	return &Service{
		db: db,
	}, nil
}

// Entry is one row of an assembled timeline: the post itself, its original
// author, and, when the entry comes from a retweet, the retweeting user and
// the retweet time. RetweetedBy == nil means the entry is an original post.
type Entry struct {
	ID          uint               `json:"id"`
	Content     string             `json:"content"`
	UserID      uint               `json:"user_id"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	User        models.PublicUser  `json:"user"`
	RetweetedBy *models.PublicUser `json:"retweeted_by,omitempty"`
	RetweetedAt *time.Time         `json:"retweeted_at,omitempty"`
}

// sortKey is the timestamp an entry is ranked by: the retweet time for a
// retweeted entry, the post's own creation time otherwise.
func (e Entry) sortKey() time.Time {
	if e.RetweetedAt != nil {
		return *e.RetweetedAt
	}
	return e.CreatedAt
}

// Timeline returns posts and retweets merged into one sequence, most recent
// activity first. A retweet ranks by its own creation time, so retweeting
// bumps an old post to the top of the feed.
//
// When userID is non-nil the scope narrows to that user's own posts and the
// retweets that user made: the profile view. Otherwise everything is
// returned.
//
// Both sets are fetched wholesale and sorted in memory. Fine as long as
// there is no pagination; revisit the moment a limit parameter shows up.
func (s *Service) Timeline(ctx context.Context, userID *uint) ([]Entry, error) {
	var (
		posts    []models.Post
		retweets []models.Retweet
	)

	// The two fetches are independent; only the merge needs both.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q := s.db.WithContext(gctx).Preload("User").Order("created_at DESC")
		if userID != nil {
			q = q.Where("user_id = ?", *userID)
		}
		return q.Find(&posts).Error
	})
	g.Go(func() error {
		q := s.db.WithContext(gctx).
			Preload("Post.User").
			Preload("User").
			Order("created_at DESC")
		if userID != nil {
			q = q.Where("user_id = ?", *userID)
		}
		return q.Find(&retweets).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(posts)+len(retweets))
	for _, p := range posts {
		entries = append(entries, Entry{
			ID:        p.ID,
			Content:   p.Content,
			UserID:    p.UserID,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
			User:      p.User.Public(),
		})
	}
	for _, r := range retweets {
		retweetedBy := r.User.Public()
		retweetedAt := r.CreatedAt
		entries = append(entries, Entry{
			ID:          r.Post.ID,
			Content:     r.Post.Content,
			UserID:      r.Post.UserID,
			CreatedAt:   r.Post.CreatedAt,
			UpdatedAt:   r.Post.UpdatedAt,
			User:        r.Post.User.Public(),
			RetweetedBy: &retweetedBy,
			RetweetedAt: &retweetedAt,
		})
	}

	// Stable: entries with equal timestamps keep fetch order (posts before
	// retweets, each sub-sequence newest first).
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].sortKey().After(entries[j].sortKey())
	})

	return entries, nil
}
