package server

import (
	"errors"
	"net/http"

	"microblog/db"

	"github.com/gin-gonic/gin"
)

// createRetweet records the caller's retweet of the post and redirects to
// the post's page.
func (s *Server) createRetweet(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		// requireAuth enforces that the user id is set. This must not happen.
		s.invariantViolation(c)
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	_, err := s.retweets.CreateRetweet(c.Request.Context(), userID, postID)
	if errors.Is(err, db.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": "post already retweeted"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, "/posts/"+c.Param("postId"))
}

// deleteRetweet removes the caller's retweet of the post and redirects to
// the post's page.
func (s *Server) deleteRetweet(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		// requireAuth enforces that the user id is set. This must not happen.
		s.invariantViolation(c)
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	_, err := s.retweets.DeleteRetweet(c.Request.Context(), userID, postID)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "retweet not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, "/posts/"+c.Param("postId"))
}
