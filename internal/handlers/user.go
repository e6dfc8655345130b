package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"readit/internal/middleware"
	"readit/internal/models"
	"readit/internal/services"
)

type UserHandler struct {
	db    *gorm.DB
	posts *services.PostService
}

func NewUserHandler(db *gorm.DB, posts *services.PostService) *UserHandler {
	return &UserHandler{db: db, posts: posts}
}

type submission struct {
	createdAt time.Time
	data      map[string]interface{}
}

// Profile returns a user's public page: the user plus their posts and
// comments merged into one feed, newest first, annotated for the viewer.
func (h *UserHandler) Profile(c *gin.Context) {
	username := c.Param("username")

	var user models.User
	if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		handleServiceError(c, err)
		return
	}

	viewer := middleware.CurrentUser(c)

	posts, err := h.posts.ByUser(username, viewer)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	comments, err := h.posts.CommentsByUser(username, viewer)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	submissions := make([]submission, 0, len(posts)+len(comments))
	for i := range posts {
		data, err := asSubmission("Post", &posts[i])
		if err != nil {
			handleServiceError(c, err)
			return
		}
		submissions = append(submissions, submission{posts[i].CreatedAt, data})
	}
	for i := range comments {
		data, err := asSubmission("Comment", &comments[i])
		if err != nil {
			handleServiceError(c, err)
			return
		}
		submissions = append(submissions, submission{comments[i].CreatedAt, data})
	}

	sort.Slice(submissions, func(i, j int) bool {
		return submissions[i].createdAt.After(submissions[j].createdAt)
	})

	feed := make([]map[string]interface{}, len(submissions))
	for i, s := range submissions {
		feed[i] = s.data
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"username":  user.Username,
			"createdAt": user.CreatedAt,
		},
		"submissions": feed,
	})
}

// asSubmission flattens a post or comment into a map tagged with its kind,
// mirroring the {type, ...record} objects the frontend consumes.
func asSubmission(kind string, v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	m["type"] = kind
	return m, nil
}
