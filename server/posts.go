package server

import (
	"errors"
	"net/http"
	"strconv"

	"microblog/db"

	"github.com/gin-gonic/gin"
)

type postRequest struct {
	Content string `json:"content" binding:"required"`
}

// postIDParam parses the :postId path segment. Responds 400 and returns
// ok=false when it is not a number.
func postIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("postId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return 0, false
	}
	return uint(id), true
}

// listPosts returns the merged timeline, optionally scoped to one user via
// ?userId=.
func (s *Server) listPosts(c *gin.Context) {
	var userID *uint
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
			return
		}
		v := uint(id)
		userID = &v
	}

	entries, err := s.feed.Timeline(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// getPost returns one post with its author and retweet count. When the
// caller is authenticated the response also says whether they retweeted it.
func (s *Server) getPost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	post, err := s.posts.GetPost(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	count, err := s.retweets.CountRetweets(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"post":         post,
		"user":         post.User.Public(),
		"retweetCount": count,
	}
	if userID, ok := CurrentUserID(c); ok {
		retweeted, err := s.retweets.HasUserRetweetedPost(c.Request.Context(), userID, postID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		resp["retweeted"] = retweeted
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) createPost(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		s.invariantViolation(c)
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := s.posts.CreatePost(c.Request.Context(), req.Content, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// updatePost replaces the content of the caller's own post.
func (s *Server) updatePost(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		s.invariantViolation(c)
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := s.posts.GetPost(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if existing.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the author of this post"})
		return
	}

	post, err := s.posts.UpdatePost(c.Request.Context(), postID, req.Content)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, post)
}

// deletePost removes the caller's own post.
func (s *Server) deletePost(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		s.invariantViolation(c)
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	existing, err := s.posts.GetPost(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if existing.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the author of this post"})
		return
	}

	post, err := s.posts.DeletePost(c.Request.Context(), postID)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, post)
}
