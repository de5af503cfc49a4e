package server

import (
	"log"
	"net/http"

	"microblog/db"
	"microblog/feed"

	"github.com/gin-gonic/gin"
)

// Server holds the stores and services the handlers dispatch to.
type Server struct {
	users     *db.UserStore
	posts     *db.PostStore
	retweets  *db.RetweetStore
	feed      *feed.Service
	jwtSecret string
}

func New(users *db.UserStore, posts *db.PostStore, retweets *db.RetweetStore, feedSvc *feed.Service, jwtSecret string) *Server {
	return &Server{
		users:     users,
		posts:     posts,
		retweets:  retweets,
		feed:      feedSvc,
		jwtSecret: jwtSecret,
	}
}

// Router builds the gin engine with all routes mounted.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.POST("/register", s.register)
	r.POST("/login", s.login)

	r.GET("/posts", s.listPosts)
	r.GET("/posts/:postId", optionalAuth(s.jwtSecret), s.getPost)

	auth := r.Group("/", requireAuth(s.jwtSecret))
	auth.POST("/posts", s.createPost)
	auth.PUT("/posts/:postId", s.updatePost)
	auth.DELETE("/posts/:postId", s.deletePost)
	auth.POST("/posts/:postId/retweets", s.createRetweet)
	auth.DELETE("/posts/:postId/retweets", s.deleteRetweet)

	return r
}

// invariantViolation handles the unreachable case of an authenticated route
// running without a resolved user id. Programming error, not a client one.
func (s *Server) invariantViolation(c *gin.Context) {
	log.Printf("❌ invariant violation: %s %s reached without a current user", c.Request.Method, c.Request.URL.Path)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
